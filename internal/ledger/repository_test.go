package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
	"github.com/Veraticus/pocket-ledger/internal/storage"
	"github.com/Veraticus/pocket-ledger/internal/testutil"
)

func TestInit_SeedsDefaults(t *testing.T) {
	tl := testutil.SetupTestLedgerWithOptions(t, testutil.Options{SkipInit: true})
	ctx := context.Background()

	has, err := tl.Adapter.Has(ctx, storage.KeyCategories)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, tl.Repo.Init(ctx))

	for _, key := range []string{storage.KeyCategories, storage.KeyAccounts} {
		has, err := tl.Adapter.Has(ctx, key)
		require.NoError(t, err)
		assert.True(t, has, key)
	}

	accounts, err := tl.Repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger.DefaultAccounts(), accounts)
}

func TestInit_KeepsExistingCollections(t *testing.T) {
	tl := testutil.SetupTestLedger(t)
	ctx := context.Background()

	require.NoError(t, tl.Repo.ReplaceCategories(ctx, nil))
	require.NoError(t, tl.Repo.Init(ctx))

	categories, err := tl.Repo.ListCategories(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, categories, "an emptied collection is not reseeded")
}

func TestInit_StorageFailure(t *testing.T) {
	tl := testutil.SetupTestLedgerWithOptions(t, testutil.Options{
		SkipInit: true,
		WrapStore: func(inner service.KeyValueStore) service.KeyValueStore {
			fs := testutil.NewFailingStore(inner)
			fs.FailWrites(storage.KeyAccounts)
			return fs
		},
	})

	err := tl.Repo.Init(context.Background())
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestDefaultCategories_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range ledger.DefaultCategories() {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.True(t, c.Type.Valid())
	}
}

func TestSetBudget(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "500", want: "500"},
		{input: " 1234.567 ", want: "1234.57"},
		{input: "-20", want: "0"},
		{input: "abc", want: "0"},
		{input: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tl := testutil.SetupTestLedger(t)
			ctx := context.Background()

			budget, err := tl.Repo.SetBudget(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, budget.Amount.String())

			stored, err := tl.Repo.GetBudget(ctx)
			require.NoError(t, err)
			assert.True(t, budget.Amount.Equal(stored.Amount))
		})
	}
}

func TestGetBudget_DefaultsToUnset(t *testing.T) {
	tl := testutil.SetupTestLedger(t)

	budget, err := tl.Repo.GetBudget(context.Background())
	require.NoError(t, err)
	assert.False(t, budget.IsSet())
}

func TestReplaceBudget_ClampsNegative(t *testing.T) {
	tl := testutil.SetupTestLedger(t)
	ctx := context.Background()

	require.NoError(t, tl.Repo.ReplaceBudget(ctx, model.Budget{Amount: decimal.NewFromInt(-5)}))
	budget, err := tl.Repo.GetBudget(ctx)
	require.NoError(t, err)
	assert.True(t, budget.Amount.IsZero())
}

func TestSnapshot_ReadsEveryCollection(t *testing.T) {
	tl := testutil.SetupTestLedger(t)
	ctx := context.Background()

	tl.MustAddRecord(testutil.Expense("3", "food", "2024-05-01"))
	_, err := tl.Repo.SetBudget(ctx, "800")
	require.NoError(t, err)

	snap, err := tl.Repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
	assert.Len(t, snap.Categories, len(ledger.DefaultCategories()))
	assert.Len(t, snap.Accounts, len(ledger.DefaultAccounts()))
	assert.Equal(t, "800", snap.Budget.Amount.String())
}

func TestListAccounts_ReadFailureFallsBackToDefaults(t *testing.T) {
	var failing *testutil.FailingStore
	tl := testutil.SetupTestLedgerWithOptions(t, testutil.Options{
		WrapStore: func(inner service.KeyValueStore) service.KeyValueStore {
			failing = testutil.NewFailingStore(inner)
			return failing
		},
	})
	ctx := context.Background()
	require.NoError(t, tl.Repo.ReplaceAccounts(ctx, []model.Account{{ID: "only", Name: "Only"}}))

	failing.FailReads(storage.KeyAccounts)
	accounts, err := tl.Repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger.DefaultAccounts(), accounts)

	failing.Reset()
	accounts, err = tl.Repo.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "only", accounts[0].ID)
}
