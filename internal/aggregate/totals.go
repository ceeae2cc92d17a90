// Package aggregate derives period summaries from a snapshot of records.
// Every function here is pure: results depend only on the arguments and
// are never persisted.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Totals is the income, expense and balance over some span of days.
// Balance is always exactly Income minus Expense.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// PeriodTotals sums the records dated within period.
func PeriodTotals(records []model.Record, period model.Period) Totals {
	return sum(records, func(rec model.Record) bool {
		return period.Contains(rec.Date)
	})
}

// RangeTotals sums the records dated within the inclusive range.
func RangeTotals(records []model.Record, dates model.DateRange) Totals {
	return sum(records, func(rec model.Record) bool {
		return dates.Contains(rec.Date)
	})
}

func sum(records []model.Record, keep func(model.Record) bool) Totals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		switch rec.Type {
		case model.RecordTypeIncome:
			income = income.Add(rec.Amount)
		case model.RecordTypeExpense:
			expense = expense.Add(rec.Amount)
		}
	}

	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// inPeriod returns the records of type t dated within period, in input order.
func inPeriod(records []model.Record, period model.Period, t model.RecordType) []model.Record {
	var out []model.Record
	for _, rec := range records {
		if rec.Type == t && period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}
