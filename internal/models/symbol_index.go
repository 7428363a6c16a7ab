package models

import "github.com/google/uuid"

// SymbolRecord tracks which accounts hold a symbol and whether the symbol
// appears under more than one of them.
type SymbolRecord struct {
	Accounts  map[uuid.UUID]bool `json:"accounts"`
	Duplicate bool               `json:"duplicate"`
}

// SymbolIndex is the derived duplicate-symbol lookup for one user's
// holdings. It is rebuilt in full from a holdings scan on every dashboard
// load and never persisted.
type SymbolIndex map[string]*SymbolRecord

// BuildSymbolIndex derives the index from a full scan of the user's
// holdings. A symbol is a duplicate iff it occurs under at least two
// distinct account IDs; repeated rows within one account do not count.
func BuildSymbolIndex(holdings []Holding) SymbolIndex {
	index := make(SymbolIndex)

	for i := range holdings {
		h := &holdings[i]
		record, ok := index[h.Symbol]
		if !ok {
			index[h.Symbol] = &SymbolRecord{
				Accounts: map[uuid.UUID]bool{h.AccountID: true},
			}
			continue
		}

		if !record.Accounts[h.AccountID] {
			record.Accounts[h.AccountID] = true
			record.Duplicate = true
		}
	}

	return index
}

// IsDuplicate reports whether the symbol is held under more than one account.
func (idx SymbolIndex) IsDuplicate(symbol string) bool {
	record, ok := idx[symbol]
	return ok && record.Duplicate
}

// HeldBy reports whether the index maps the symbol to the given account.
func (idx SymbolIndex) HeldBy(symbol string, accountID uuid.UUID) bool {
	record, ok := idx[symbol]
	return ok && record.Accounts[accountID]
}
