package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// DailySeries returns one total per day of the period for records of type t.
// Index 0 is the 1st; days without records are zero.
func DailySeries(records []model.Record, period model.Period, t model.RecordType) []decimal.Decimal {
	series := make([]decimal.Decimal, period.DaysInMonth())
	for i := range series {
		series[i] = decimal.Zero
	}

	for _, rec := range inPeriod(records, period, t) {
		day := rec.Date.Day()
		if day < 1 || day > len(series) {
			continue
		}
		series[day-1] = series[day-1].Add(rec.Amount)
	}
	return series
}
