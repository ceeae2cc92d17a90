package testutil

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Expense builds an expense input. amount must be a valid decimal literal.
func Expense(amount, categoryID, date string) ledger.RecordInput {
	return ledger.RecordInput{
		Type:       model.RecordTypeExpense,
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
		AccountID:  "cash",
		Date:       date,
	}
}

// Income builds an income input.
func Income(amount, categoryID, date string) ledger.RecordInput {
	in := Expense(amount, categoryID, date)
	in.Type = model.RecordTypeIncome
	return in
}

// RecordBuilder assembles record slices for the pure aggregation and codec
// tests without going through a repository.
type RecordBuilder struct {
	records []model.Record
	ids     int
}

// NewRecords starts an empty builder.
func NewRecords() *RecordBuilder {
	return &RecordBuilder{}
}

// Expense appends an expense record.
func (b *RecordBuilder) Expense(amount, categoryID, date string) *RecordBuilder {
	return b.add(model.RecordTypeExpense, amount, categoryID, date)
}

// Income appends an income record.
func (b *RecordBuilder) Income(amount, categoryID, date string) *RecordBuilder {
	return b.add(model.RecordTypeIncome, amount, categoryID, date)
}

// Build returns the records in insertion order.
func (b *RecordBuilder) Build() []model.Record {
	out := make([]model.Record, len(b.records))
	copy(out, b.records)
	return out
}

func (b *RecordBuilder) add(t model.RecordType, amount, categoryID, date string) *RecordBuilder {
	b.ids++
	ts := DefaultNow.UnixMilli() + int64(b.ids)
	b.records = append(b.records, model.Record{
		ID:         "rec-" + strconv.Itoa(b.ids),
		Type:       t,
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
		AccountID:  "cash",
		Date:       model.Date(date),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	})
	return b
}
