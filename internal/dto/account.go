package dto

import (
	"stocktracker/internal/models"

	"github.com/google/uuid"
)

// Account Request DTOs

// CreateAccountRequest represents the request payload for creating a new
// brokerage account
type CreateAccountRequest struct {
	Name string `json:"name" validate:"required,account_name"`
}

// Account Response DTOs

// AccountResponse represents a single account in API responses. CreatedAt
// is a millisecond epoch, matching the tracked record shape.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt int64     `json:"createdAt"`
}

// NewAccountResponse converts an account model to its API representation
func NewAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		UserID:    account.UserID,
		CreatedAt: account.CreatedAtMillis(),
	}
}

// CreateAccountResponse represents the response after creating an account
type CreateAccountResponse struct {
	Account AccountResponse `json:"account"`
	Message string          `json:"message"`
}

// AccountDetailResponse is the account detail view payload: the account
// plus how many holdings it carries
type AccountDetailResponse struct {
	Account      AccountResponse `json:"account"`
	HoldingCount int64           `json:"holdingCount"`
}

// AccountListResponse represents the owner's accounts
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}
