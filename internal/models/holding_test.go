package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHolding_Validate(t *testing.T) {
	validHolding := func() Holding {
		return Holding{
			Symbol:    "AAPL",
			Name:      "Apple Inc.",
			Quantity:  10,
			AccountID: uuid.New(),
			UserID:    uuid.New(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Holding)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid holding",
			mutate:  func(h *Holding) {},
			wantErr: false,
		},
		{
			name:    "empty symbol",
			mutate:  func(h *Holding) { h.Symbol = "" },
			wantErr: true,
			errMsg:  "symbol is required",
		},
		{
			name:    "whitespace symbol",
			mutate:  func(h *Holding) { h.Symbol = "  " },
			wantErr: true,
			errMsg:  "symbol is required",
		},
		{
			name:    "symbol too long",
			mutate:  func(h *Holding) { h.Symbol = strings.Repeat("A", MaxSymbolLength+1) },
			wantErr: true,
			errMsg:  "symbol is too long",
		},
		{
			name:    "empty name",
			mutate:  func(h *Holding) { h.Name = "" },
			wantErr: true,
			errMsg:  "holding name is required",
		},
		{
			name:    "name too long",
			mutate:  func(h *Holding) { h.Name = strings.Repeat("a", MaxHoldingNameLength+1) },
			wantErr: true,
			errMsg:  "holding name is too long",
		},
		{
			name:    "zero quantity",
			mutate:  func(h *Holding) { h.Quantity = 0 },
			wantErr: true,
			errMsg:  "quantity must be positive",
		},
		{
			name:    "negative quantity",
			mutate:  func(h *Holding) { h.Quantity = -5 },
			wantErr: true,
			errMsg:  "quantity must be positive",
		},
		{
			name:    "missing account",
			mutate:  func(h *Holding) { h.AccountID = uuid.Nil },
			wantErr: true,
			errMsg:  "holding account is required",
		},
		{
			name:    "missing owner",
			mutate:  func(h *Holding) { h.UserID = uuid.Nil },
			wantErr: true,
			errMsg:  "holding owner is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holding := validHolding()
			tt.mutate(&holding)

			err := holding.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHolding_AddedAtMillis(t *testing.T) {
	addedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	holding := Holding{AddedAt: addedAt}

	assert.Equal(t, addedAt.UnixMilli(), holding.AddedAtMillis())
}

func TestBuildSymbolIndex_Empty(t *testing.T) {
	index := BuildSymbolIndex(nil)

	assert.Empty(t, index)
	assert.False(t, index.IsDuplicate("AAPL"))
}

func TestBuildSymbolIndex_SingleAccount(t *testing.T) {
	accountID := uuid.New()
	holdings := []Holding{
		{Symbol: "AAPL", AccountID: accountID},
		{Symbol: "MSFT", AccountID: accountID},
	}

	index := BuildSymbolIndex(holdings)

	assert.Len(t, index, 2)
	assert.False(t, index.IsDuplicate("AAPL"))
	assert.False(t, index.IsDuplicate("MSFT"))
	assert.True(t, index.HeldBy("AAPL", accountID))
}

func TestBuildSymbolIndex_DuplicateAcrossAccounts(t *testing.T) {
	accountA := uuid.New()
	accountB := uuid.New()
	holdings := []Holding{
		{Symbol: "AAPL", AccountID: accountA},
		{Symbol: "AAPL", AccountID: accountB},
		{Symbol: "MSFT", AccountID: accountA},
	}

	index := BuildSymbolIndex(holdings)

	assert.True(t, index.IsDuplicate("AAPL"))
	assert.False(t, index.IsDuplicate("MSFT"))
	assert.True(t, index.HeldBy("AAPL", accountA))
	assert.True(t, index.HeldBy("AAPL", accountB))
	assert.False(t, index.HeldBy("MSFT", accountB))
}

func TestBuildSymbolIndex_RepeatedRowsSameAccount(t *testing.T) {
	accountID := uuid.New()
	holdings := []Holding{
		{Symbol: "AAPL", AccountID: accountID},
		{Symbol: "AAPL", AccountID: accountID},
	}

	index := BuildSymbolIndex(holdings)

	// Two rows under one account is not a cross-account duplicate.
	assert.False(t, index.IsDuplicate("AAPL"))
}

func TestBuildSymbolIndex_ThreeAccounts(t *testing.T) {
	holdings := []Holding{
		{Symbol: "TSLA", AccountID: uuid.New()},
		{Symbol: "TSLA", AccountID: uuid.New()},
		{Symbol: "TSLA", AccountID: uuid.New()},
	}

	index := BuildSymbolIndex(holdings)

	assert.True(t, index.IsDuplicate("TSLA"))
	assert.Len(t, index["TSLA"].Accounts, 3)
}

func TestHolding_TableName(t *testing.T) {
	holding := Holding{}
	assert.Equal(t, "holdings", holding.TableName())
}
