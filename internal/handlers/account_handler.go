package handlers

import (
	"net/http"

	"stocktracker/internal/dto"
	"stocktracker/internal/errors"
	"stocktracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountHandler handles brokerage account endpoints
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccount creates a brokerage account for the authenticated user
// @Summary Create account
// @Description Create a named brokerage account owned by the authenticated user
// @Tags Accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} SuccessResponse "Account created"
// @Failure 400 {object} errors.ErrorResponse "Validation error - ACCOUNT_003"
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateAccountRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	account, err := h.accountService.CreateAccount(userID, &req, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrAccountNameEmpty {
			return SendError(c, errors.AccountEmptyName)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewAccountResponse(account),
		Message: "Account created successfully",
	})
}

// ListAccounts returns all accounts owned by the authenticated user
// @Summary List accounts
// @Description List the authenticated user's brokerage accounts
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AccountListResponse "Accounts"
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accounts, err := h.accountService.GetUserAccounts(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, dto.NewAccountResponse(&account))
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: responses,
		Total:    len(responses),
	})
}

// GetAccount returns one of the user's accounts with its holding count
// @Summary Get account
// @Description Get a single brokerage account and how many holdings it carries
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} dto.AccountDetailResponse "Account detail"
// @Failure 403 {object} errors.ErrorResponse "Account owned by another user"
// @Failure 404 {object} errors.ErrorResponse "Account not found - ACCOUNT_001"
// @Router /accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID)
	}

	account, holdingCount, err := h.accountService.GetAccountDetail(accountID, userID)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrAccountAccess:
			return SendError(c, errors.AuthInsufficientPermission)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountDetailResponse{
		Account:      dto.NewAccountResponse(account),
		HoldingCount: holdingCount,
	})
}
