package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Status compares a period's expenses against the budget.
type Status struct {
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	// IsOverBudget is set only when spending strictly exceeds the budget.
	IsOverBudget bool `json:"isOverBudget"`
}

// BudgetStatus reports spending for period against budget. ok is false when
// no budget is set, in which case there is nothing to compare against.
func BudgetStatus(budget model.Budget, records []model.Record, period model.Period) (Status, bool) {
	if !budget.IsSet() {
		return Status{}, false
	}

	spent := PeriodTotals(records, period).Expense
	return Status{
		Spent:        spent,
		Remaining:    budget.Amount.Sub(spent),
		PercentUsed:  spent.Mul(hundred).DivRound(budget.Amount, 2),
		IsOverBudget: spent.GreaterThan(budget.Amount),
	}, true
}
