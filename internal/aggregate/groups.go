package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// DayGroup holds one calendar day of records with that day's totals.
type DayGroup struct {
	Date    model.Date      `json:"date"`
	Records []model.Record  `json:"records"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// GroupByDate buckets the period's records by day, newest day first.
// Records inside a group keep their input order.
func GroupByDate(records []model.Record, period model.Period) []DayGroup {
	index := make(map[model.Date]int)
	var groups []DayGroup

	for _, rec := range records {
		if !period.Contains(rec.Date) {
			continue
		}
		i, ok := index[rec.Date]
		if !ok {
			i = len(groups)
			index[rec.Date] = i
			groups = append(groups, DayGroup{
				Date:    rec.Date,
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			})
		}

		g := &groups[i]
		g.Records = append(g.Records, rec)
		switch rec.Type {
		case model.RecordTypeIncome:
			g.Income = g.Income.Add(rec.Amount)
		case model.RecordTypeExpense:
			g.Expense = g.Expense.Add(rec.Amount)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}
