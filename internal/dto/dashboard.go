package dto

import "stocktracker/internal/models"

// AccountSummary pairs an account with its in-memory holding count
type AccountSummary struct {
	Account      AccountResponse `json:"account"`
	HoldingCount int             `json:"holdingCount"`
}

// DashboardResponse is the account-list view payload: every account with
// its holding count, the full holdings list, and the duplicate-symbol
// index derived from it.
type DashboardResponse struct {
	Accounts    []AccountSummary   `json:"accounts"`
	Holdings    []HoldingResponse  `json:"holdings"`
	SymbolIndex models.SymbolIndex `json:"symbolIndex"`
}
