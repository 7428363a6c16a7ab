package dto

import (
	"stocktracker/internal/models"

	"github.com/google/uuid"
)

// Holding Request DTOs

// AddHoldingRequest represents the request payload for adding a stock
// position to an account
type AddHoldingRequest struct {
	Symbol   string `json:"symbol" validate:"required,ticker_symbol"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Quantity int64  `json:"quantity" validate:"required,positive_quantity"`
}

// SetMarksRequest represents the request payload for the symbol-scoped
// mark toggle. The toggle applies to every holding of the symbol across
// all of the owner's accounts, not to a single row.
type SetMarksRequest struct {
	Symbol   string `json:"symbol" validate:"required,ticker_symbol"`
	IsMarked *bool  `json:"isMarked" validate:"required"`
}

// Holding Response DTOs

// HoldingResponse represents a single holding in API responses. AddedAt
// is a millisecond epoch, matching the tracked record shape.
type HoldingResponse struct {
	ID        uuid.UUID `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	AccountID uuid.UUID `json:"accountId"`
	UserID    uuid.UUID `json:"userId"`
	IsMarked  bool      `json:"isMarked"`
	AddedAt   int64     `json:"addedAt"`
}

// NewHoldingResponse converts a holding model to its API representation
func NewHoldingResponse(holding *models.Holding) HoldingResponse {
	return HoldingResponse{
		ID:        holding.ID,
		Symbol:    holding.Symbol,
		Name:      holding.Name,
		Quantity:  holding.Quantity,
		AccountID: holding.AccountID,
		UserID:    holding.UserID,
		IsMarked:  holding.IsMarked,
		AddedAt:   holding.AddedAtMillis(),
	}
}

// NewHoldingListResponse converts a slice of holding models
func NewHoldingListResponse(holdings []models.Holding) []HoldingResponse {
	out := make([]HoldingResponse, 0, len(holdings))
	for i := range holdings {
		out = append(out, NewHoldingResponse(&holdings[i]))
	}
	return out
}

// AddHoldingResponse represents the response after adding a holding
type AddHoldingResponse struct {
	Holding HoldingResponse `json:"holding"`
	Message string          `json:"message"`
}

// HoldingListResponse represents the holdings of one account
type HoldingListResponse struct {
	Holdings []HoldingResponse `json:"holdings"`
	Total    int               `json:"total"`
}

// SetMarksResponse reports how many holdings a mark toggle touched
type SetMarksResponse struct {
	Symbol   string `json:"symbol"`
	IsMarked bool   `json:"isMarked"`
	Updated  int64  `json:"updated"`
}
