package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// DefaultTopCategories is how many categories TopCategories returns when
// no positive limit is given.
const DefaultTopCategories = 8

var hundred = decimal.NewFromInt(100)

// CategoryAmount is one category's share of a period total.
type CategoryAmount struct {
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	// Percent of the period total for the record type, rounded to 0.1.
	Percent decimal.Decimal `json:"percent"`
}

// CategoryBreakdown totals the period's records of type t per category,
// largest first. Ties keep the order in which categories were first seen.
func CategoryBreakdown(records []model.Record, period model.Period, t model.RecordType) []CategoryAmount {
	return breakdown(records, t, func(rec model.Record) bool {
		return period.Contains(rec.Date)
	})
}

// RangeBreakdown is CategoryBreakdown over an inclusive date range.
func RangeBreakdown(records []model.Record, dates model.DateRange, t model.RecordType) []CategoryAmount {
	return breakdown(records, t, func(rec model.Record) bool {
		return dates.Contains(rec.Date)
	})
}

func breakdown(records []model.Record, t model.RecordType, keep func(model.Record) bool) []CategoryAmount {
	index := make(map[string]int)
	var out []CategoryAmount
	total := decimal.Zero

	for _, rec := range records {
		if rec.Type != t || !keep(rec) {
			continue
		}
		i, ok := index[rec.CategoryID]
		if !ok {
			i = len(out)
			index[rec.CategoryID] = i
			out = append(out, CategoryAmount{CategoryID: rec.CategoryID, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(rec.Amount)
		total = total.Add(rec.Amount)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})

	for i := range out {
		out[i].Percent = decimal.Zero
		if total.IsPositive() {
			out[i].Percent = out[i].Amount.Mul(hundred).DivRound(total, 1)
		}
	}
	return out
}

// TopCategories returns at most limit entries of CategoryBreakdown.
// A limit of zero or less means DefaultTopCategories.
func TopCategories(records []model.Record, period model.Period, t model.RecordType, limit int) []CategoryAmount {
	if limit <= 0 {
		limit = DefaultTopCategories
	}
	breakdown := CategoryBreakdown(records, period, t)
	if len(breakdown) > limit {
		breakdown = breakdown[:limit]
	}
	return breakdown
}
