package handlers

import (
	"net/http"

	"stocktracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be registered outside production
type DevHandler struct {
	seedService services.SeedServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(seedService services.SeedServiceInterface) *DevHandler {
	return &DevHandler{
		seedService: seedService,
	}
}

// SeedDemoData populates the authenticated user with demo accounts and holdings
//
// Method: POST /api/v1/dev/seed
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - accounts: Number of accounts to create (default: 2, max: 10)
//   - holdings: Holdings per account (default: 5, max: 50)
//
// Symbols are drawn from a small pool so seeded portfolios exercise the
// duplicate-symbol index.
func (h *DevHandler) SeedDemoData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	accounts := getIntParam(c, "accounts", 2)
	if accounts < 1 {
		accounts = 1
	}
	if accounts > 10 {
		accounts = 10
	}

	holdings := getIntParam(c, "holdings", 5)
	if holdings < 1 {
		holdings = 1
	}
	if holdings > 50 {
		holdings = 50
	}

	result, err := h.seedService.SeedDemoData(userID, accounts, holdings)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to seed demo data")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "demo data seeded successfully",
		"accountsCreated": result.AccountsCreated,
		"holdingsCreated": result.HoldingsCreated,
	})
}
