package ledger

import (
	"context"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// ListAccounts returns the account labels.
func (r *Repository) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadAccounts(ctx), nil
}

// ReplaceAccounts overwrites the whole accounts collection.
func (r *Repository) ReplaceAccounts(ctx context.Context, accounts []model.Account) error {
	if accounts == nil {
		accounts = []model.Account{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.adapter.Save(ctx, storage.KeyAccounts, accounts)
}
