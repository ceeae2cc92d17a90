package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCategory(t *testing.T) {
	categories := []Category{
		{ID: "food", Name: "Food", Icon: "🍜", Type: RecordTypeExpense},
		{ID: "salary", Name: "Salary", Icon: "💰", Type: RecordTypeIncome},
	}

	cat, ok := LookupCategory(categories, "salary")
	require.True(t, ok)
	assert.Equal(t, "Salary", cat.Name)

	_, ok = LookupCategory(categories, "gone")
	assert.False(t, ok)

	unknown := CategoryOrUnknown(categories, "gone")
	assert.Equal(t, "gone", unknown.ID)
	assert.Equal(t, UnknownCategory.Name, unknown.Name)
	assert.Equal(t, DefaultIcon, unknown.Icon)
}

func TestLookupAccount(t *testing.T) {
	accounts := []Account{{ID: "cash", Name: "Cash", Icon: "💵"}}

	acc, ok := LookupAccount(accounts, "cash")
	require.True(t, ok)
	assert.Equal(t, "Cash", acc.Name)

	assert.Equal(t, UnknownAccount.Name, AccountOrUnknown(accounts, "bank").Name)
}

func TestRecordType_Valid(t *testing.T) {
	assert.True(t, RecordTypeExpense.Valid())
	assert.True(t, RecordTypeIncome.Valid())
	assert.False(t, RecordType("transfer").Valid())
	assert.False(t, RecordType("").Valid())
}

func TestRecord_JSONLayout(t *testing.T) {
	rec := Record{
		ID:         "r1",
		Type:       RecordTypeExpense,
		Amount:     decimal.RequireFromString("12.50"),
		CategoryID: "food",
		AccountID:  "cash",
		Note:       "lunch",
		Date:       "2024-05-10",
		CreatedAt:  1715299200000,
		UpdatedAt:  1715299200000,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 12.5, raw["amount"])
	assert.Equal(t, "food", raw["categoryId"])
	assert.Equal(t, "cash", raw["accountId"])
	assert.Equal(t, "2024-05-10", raw["date"])
	assert.Equal(t, float64(1715299200000), raw["createdAt"])

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, rec.Amount.Equal(back.Amount))
	assert.Equal(t, rec.Date, back.Date)
}

func TestBudget_IsSet(t *testing.T) {
	assert.False(t, Budget{}.IsSet())
	assert.False(t, Budget{Amount: decimal.NewFromInt(-1)}.IsSet())
	assert.True(t, Budget{Amount: decimal.NewFromInt(3000)}.IsSet())
}
