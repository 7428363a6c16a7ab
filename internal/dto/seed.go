package dto

// SeedResult reports what the demo seeder created
type SeedResult struct {
	AccountsCreated int `json:"accountsCreated"`
	HoldingsCreated int `json:"holdingsCreated"`
}
