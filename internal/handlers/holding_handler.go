package handlers

import (
	"net/http"

	"stocktracker/internal/dto"
	"stocktracker/internal/errors"
	"stocktracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HoldingHandler handles stock holding endpoints
type HoldingHandler struct {
	holdingService services.HoldingServiceInterface
}

// NewHoldingHandler creates a new holding handler
func NewHoldingHandler(holdingService services.HoldingServiceInterface) *HoldingHandler {
	return &HoldingHandler{
		holdingService: holdingService,
	}
}

// AddHolding records a stock holding under one of the user's accounts
// @Summary Add holding
// @Description Record a stock position under an account the user owns
// @Tags Holdings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID"
// @Param request body dto.AddHoldingRequest true "Holding details"
// @Success 201 {object} SuccessResponse "Holding recorded"
// @Failure 403 {object} errors.ErrorResponse "Account owned by another user"
// @Failure 404 {object} errors.ErrorResponse "Account not found - ACCOUNT_001"
// @Router /accounts/{accountId}/holdings [post]
func (h *HoldingHandler) AddHolding(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID)
	}

	var req dto.AddHoldingRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	holding, err := h.holdingService.AddHolding(userID, accountID, &req, ipAddress, userAgent)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrAccountAccess:
			return SendError(c, errors.AuthInsufficientPermission)
		case services.ErrInvalidQuantity:
			return SendError(c, errors.HoldingInvalidQuantity)
		case services.ErrInvalidSymbol:
			return SendError(c, errors.HoldingInvalidSymbol)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewHoldingResponse(holding),
		Message: "Holding recorded successfully",
	})
}

// ListHoldings returns the holdings of one of the user's accounts
// @Summary List holdings
// @Description List the holdings recorded under an account the user owns
// @Tags Holdings
// @Security BearerAuth
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} dto.HoldingListResponse "Holdings"
// @Failure 403 {object} errors.ErrorResponse "Account owned by another user"
// @Failure 404 {object} errors.ErrorResponse "Account not found - ACCOUNT_001"
// @Router /accounts/{accountId}/holdings [get]
func (h *HoldingHandler) ListHoldings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.AccountInvalidID)
	}

	holdings, err := h.holdingService.GetAccountHoldings(userID, accountID)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrAccountAccess:
			return SendError(c, errors.AuthInsufficientPermission)
		default:
			return SendSystemError(c, err)
		}
	}

	responses := dto.NewHoldingListResponse(holdings)

	return c.JSON(http.StatusOK, dto.HoldingListResponse{
		Holdings: responses,
		Total:    len(responses),
	})
}

// SetMarks toggles the mark flag for a symbol across all of the user's accounts
// @Summary Toggle marks by symbol
// @Description Set the mark flag on every holding of the symbol the user owns. The toggle spans accounts: marking AAPL in one account marks AAPL everywhere.
// @Tags Holdings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetMarksRequest true "Symbol and desired mark state"
// @Success 200 {object} dto.SetMarksResponse "Number of holdings updated; 0 when the user does not hold the symbol"
// @Router /holdings/marks [patch]
func (h *HoldingHandler) SetMarks(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.SetMarksRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	updated, err := h.holdingService.SetMarked(userID, &req, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrInvalidSymbol {
			return SendError(c, errors.HoldingInvalidSymbol)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SetMarksResponse{
		Symbol:   services.NormalizeSymbol(req.Symbol),
		IsMarked: *req.IsMarked,
		Updated:  updated,
	})
}
