package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// CategoryShare is a CategoryAmount with its category resolved for display.
type CategoryShare struct {
	Category model.Category
	CategoryAmount
}

// MonthSummary bundles everything the month view renders.
type MonthSummary struct {
	Budget       *Status
	Days         []DayGroup
	TopExpense   []CategoryShare
	TopIncome    []CategoryShare
	ExpenseDaily []decimal.Decimal
	IncomeDaily  []decimal.Decimal
	Totals       Totals
	Period       model.Period
}

// Summarize computes the month view for period. Categories that no longer
// exist are reported with the unknown placeholder.
func Summarize(records []model.Record, categories []model.Category, budget model.Budget, period model.Period, limit int) MonthSummary {
	summary := MonthSummary{
		Period:       period,
		Totals:       PeriodTotals(records, period),
		Days:         GroupByDate(records, period),
		TopExpense:   resolve(TopCategories(records, period, model.RecordTypeExpense, limit), categories),
		TopIncome:    resolve(TopCategories(records, period, model.RecordTypeIncome, limit), categories),
		ExpenseDaily: DailySeries(records, period, model.RecordTypeExpense),
		IncomeDaily:  DailySeries(records, period, model.RecordTypeIncome),
	}
	if status, ok := BudgetStatus(budget, records, period); ok {
		summary.Budget = &status
	}
	return summary
}

func resolve(amounts []CategoryAmount, categories []model.Category) []CategoryShare {
	shares := make([]CategoryShare, 0, len(amounts))
	for _, amt := range amounts {
		shares = append(shares, CategoryShare{
			Category:       model.CategoryOrUnknown(categories, amt.CategoryID),
			CategoryAmount: amt,
		})
	}
	return shares
}
