package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted and exported as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is a single income or expense transaction.
type Record struct {
	Amount     decimal.Decimal `json:"amount"`
	ID         string          `json:"id"`
	Type       RecordType      `json:"type"`
	CategoryID string          `json:"categoryId"`
	AccountID  string          `json:"accountId"`
	Note       string          `json:"note"`
	Date       Date            `json:"date"`
	CreatedAt  int64           `json:"createdAt"` // Unix milliseconds, set once
	UpdatedAt  int64           `json:"updatedAt"` // Unix milliseconds
}

// Budget is the single monthly spending ceiling. Zero means unset.
type Budget struct {
	Amount decimal.Decimal `json:"amount"`
}

// IsSet reports whether a positive ceiling has been configured.
func (b Budget) IsSet() bool {
	return b.Amount.IsPositive()
}

// Millis renders t the way record timestamps are stored.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
