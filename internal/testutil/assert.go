package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// AssertRecordEqual compares records field by field, treating amounts as
// equal when they are numerically equal (1 and 1.00 have different
// internal representations).
func AssertRecordEqual(t *testing.T, want, got model.Record) bool {
	t.Helper()
	ok := assert.True(t, want.Amount.Equal(got.Amount), "amount: want %s, got %s", want.Amount, got.Amount)
	want.Amount, got.Amount = decimal.Zero, decimal.Zero
	return assert.Equal(t, want, got) && ok
}

// AssertRecordsEqual compares two record slices element-wise.
func AssertRecordsEqual(t *testing.T, want, got []model.Record) bool {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return false
	}
	ok := true
	for i := range want {
		ok = AssertRecordEqual(t, want[i], got[i]) && ok
	}
	return ok
}
