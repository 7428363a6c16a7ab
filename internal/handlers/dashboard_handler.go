package handlers

import (
	"net/http"

	"stocktracker/internal/errors"
	"stocktracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the account list view payload
type DashboardHandler struct {
	portfolioService services.PortfolioServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(portfolioService services.PortfolioServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		portfolioService: portfolioService,
	}
}

// GetDashboard loads the user's accounts, their holding counts, every holding
// across accounts, and the derived duplicate-symbol index in one response
// @Summary Dashboard
// @Description Accounts with holding counts, all holdings, and the duplicate-symbol index for the authenticated user
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardResponse "Dashboard payload"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	dashboard, err := h.portfolioService.GetDashboard(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}
