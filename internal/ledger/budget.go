package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// GetBudget returns the monthly budget; zero means none is set.
func (r *Repository) GetBudget(ctx context.Context) (model.Budget, error) {
	if err := ctx.Err(); err != nil {
		return model.Budget{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadBudget(ctx), nil
}

// SetBudget stores amount as the monthly budget. Text that is not a number
// and negative values are stored as 0, which clears the budget.
func (r *Repository) SetBudget(ctx context.Context, amount string) (model.Budget, error) {
	if err := ctx.Err(); err != nil {
		return model.Budget{}, err
	}

	budget := model.Budget{Amount: ParseBudgetAmount(amount)}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.adapter.Save(ctx, storage.KeyBudget, budget); err != nil {
		return model.Budget{}, err
	}
	return budget, nil
}

// ParseBudgetAmount coerces free text into a non-negative amount in cents.
func ParseBudgetAmount(amount string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value.Round(2)
}

// ReplaceBudget overwrites the budget.
func (r *Repository) ReplaceBudget(ctx context.Context, budget model.Budget) error {
	if budget.Amount.IsNegative() {
		budget.Amount = decimal.Zero
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.adapter.Save(ctx, storage.KeyBudget, budget)
}
