package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/testutil"
)

var may2024 = model.Period{Year: 2024, Month: time.May}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestPeriodTotals(t *testing.T) {
	tests := []struct {
		name    string
		records []model.Record
		income  string
		expense string
		balance string
	}{
		{
			name:    "empty",
			records: nil,
			income:  "0", expense: "0", balance: "0",
		},
		{
			name:    "single expense",
			records: testutil.NewRecords().Expense("32.5", "food", "2024-05-03").Build(),
			income:  "0", expense: "32.5", balance: "-32.5",
		},
		{
			name: "mixed with records outside the period",
			records: testutil.NewRecords().
				Income("1000", "salary", "2024-05-01").
				Expense("0.1", "food", "2024-05-02").
				Expense("0.2", "food", "2024-05-31").
				Expense("999", "food", "2024-04-30").
				Income("999", "salary", "2024-06-01").
				Build(),
			income: "1000", expense: "0.3", balance: "999.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodTotals(tt.records, may2024)
			assertAmount(t, tt.income, got.Income)
			assertAmount(t, tt.expense, got.Expense)
			assertAmount(t, tt.balance, got.Balance)
			assert.True(t, got.Income.Sub(got.Expense).Equal(got.Balance))
		})
	}
}

func TestRangeTotals(t *testing.T) {
	records := testutil.NewRecords().
		Expense("10", "food", "2024-04-30").
		Expense("20", "food", "2024-05-01").
		Income("50", "salary", "2024-05-10").
		Expense("40", "food", "2024-05-11").
		Build()

	dates, err := model.NewDateRange("2024-05-01", "2024-05-10")
	require.NoError(t, err)

	got := RangeTotals(records, dates)
	assertAmount(t, "50", got.Income)
	assertAmount(t, "20", got.Expense)
	assertAmount(t, "30", got.Balance)
}

func TestGroupByDate_TwoDays(t *testing.T) {
	records := testutil.NewRecords().
		Expense("10", "food", "2024-05-03").
		Expense("20", "transport", "2024-05-03").
		Income("100", "salary", "2024-05-04").
		Build()

	groups := GroupByDate(records, may2024)
	require.Len(t, groups, 2)

	assert.Equal(t, model.Date("2024-05-04"), groups[0].Date)
	assert.Equal(t, model.Date("2024-05-03"), groups[1].Date)
	assertAmount(t, "100", groups[0].Income)
	assertAmount(t, "0", groups[0].Expense)
	assertAmount(t, "30", groups[1].Expense)

	require.Len(t, groups[1].Records, 2)
	assert.Equal(t, records[0].ID, groups[1].Records[0].ID, "records keep input order within a day")
	assert.Equal(t, records[1].ID, groups[1].Records[1].ID)
}

func TestGroupByDate_IgnoresOtherPeriods(t *testing.T) {
	records := testutil.NewRecords().
		Expense("10", "food", "2024-04-03").
		Expense("10", "food", "2025-05-03").
		Build()

	assert.Empty(t, GroupByDate(records, may2024))
}

func TestCategoryBreakdown(t *testing.T) {
	records := testutil.NewRecords().
		Expense("10", "transport", "2024-05-01").
		Expense("30", "food", "2024-05-02").
		Expense("10", "shopping", "2024-05-03").
		Expense("10", "food", "2024-05-04").
		Income("500", "salary", "2024-05-04").
		Expense("80", "food", "2024-06-01").
		Build()

	got := CategoryBreakdown(records, may2024, model.RecordTypeExpense)
	require.Len(t, got, 3)

	assert.Equal(t, "food", got[0].CategoryID)
	assertAmount(t, "40", got[0].Amount)
	assertAmount(t, "66.7", got[0].Percent)

	// transport and shopping tie; transport was seen first.
	assert.Equal(t, "transport", got[1].CategoryID)
	assert.Equal(t, "shopping", got[2].CategoryID)
	assertAmount(t, "16.7", got[1].Percent)

	income := CategoryBreakdown(records, may2024, model.RecordTypeIncome)
	require.Len(t, income, 1)
	assertAmount(t, "100", income[0].Percent)
}

func TestRangeBreakdown(t *testing.T) {
	records := testutil.NewRecords().
		Expense("30", "food", "2024-04-30").
		Expense("10", "food", "2024-05-01").
		Expense("60", "travel", "2024-05-02").
		Expense("999", "travel", "2024-06-01").
		Build()

	dates, err := model.NewDateRange("2024-04-30", "2024-05-31")
	require.NoError(t, err)

	got := RangeBreakdown(records, dates, model.RecordTypeExpense)
	require.Len(t, got, 2)
	assert.Equal(t, "travel", got[0].CategoryID)
	assertAmount(t, "60", got[0].Percent)
	assertAmount(t, "40", got[1].Amount)

	all := RangeBreakdown(records, model.AllTime, model.RecordTypeExpense)
	assertAmount(t, "1059", all[0].Amount)
}

func TestTopCategories(t *testing.T) {
	b := testutil.NewRecords()
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for i, id := range ids {
		b.Expense(decimal.NewFromInt(int64(i+1)).String(), id, "2024-05-01")
	}
	records := b.Build()

	tests := []struct {
		name  string
		limit int
		want  int
		first string
	}{
		{name: "default limit", limit: 0, want: DefaultTopCategories, first: "j"},
		{name: "negative uses default", limit: -3, want: DefaultTopCategories, first: "j"},
		{name: "explicit limit", limit: 3, want: 3, first: "j"},
		{name: "limit above count", limit: 50, want: len(ids), first: "j"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopCategories(records, may2024, model.RecordTypeExpense, tt.limit)
			require.Len(t, got, tt.want)
			assert.Equal(t, tt.first, got[0].CategoryID)
		})
	}
}

func TestDailySeries(t *testing.T) {
	records := testutil.NewRecords().
		Expense("5", "food", "2024-02-01").
		Expense("7.25", "food", "2024-02-01").
		Expense("3", "food", "2024-02-29").
		Income("100", "salary", "2024-02-15").
		Expense("9", "food", "2024-03-01").
		Build()

	feb := model.Period{Year: 2024, Month: time.February}
	series := DailySeries(records, feb, model.RecordTypeExpense)

	require.Len(t, series, 29)
	assertAmount(t, "12.25", series[0])
	assertAmount(t, "3", series[28])
	assertAmount(t, "0", series[14])

	total := decimal.Zero
	for _, v := range series {
		total = total.Add(v)
	}
	assert.True(t, total.Equal(PeriodTotals(records, feb).Expense), "series sums to the period expense")
}

func TestDailySeries_LooseDates(t *testing.T) {
	records := testutil.NewRecords().
		Expense("10", "food", "2024-05-03T10:00:00").
		Expense("5", "food", "2024-05-4").
		Build()

	series := DailySeries(records, may2024, model.RecordTypeExpense)
	assertAmount(t, "10", series[2])
	assertAmount(t, "5", series[3])

	total := decimal.Zero
	for _, v := range series {
		total = total.Add(v)
	}
	assertAmount(t, "15", total)
	assert.True(t, total.Equal(PeriodTotals(records, may2024).Expense), "series sums to the period expense")
}

func TestDailySeries_EmptyMonthHasEveryDay(t *testing.T) {
	for _, p := range []model.Period{
		{Year: 2023, Month: time.February},
		{Year: 2024, Month: time.April},
		{Year: 2024, Month: time.July},
	} {
		series := DailySeries(nil, p, model.RecordTypeIncome)
		assert.Len(t, series, p.DaysInMonth(), p.String())
		for _, v := range series {
			assert.True(t, v.IsZero())
		}
	}
}

func TestBudgetStatus(t *testing.T) {
	budget := model.Budget{Amount: decimal.NewFromInt(500)}

	b := testutil.NewRecords().Expense("200", "food", "2024-05-03")
	status, ok := BudgetStatus(budget, b.Build(), may2024)
	require.True(t, ok)
	assertAmount(t, "200", status.Spent)
	assertAmount(t, "300", status.Remaining)
	assertAmount(t, "40", status.PercentUsed)
	assert.False(t, status.IsOverBudget)

	b.Expense("400", "shopping", "2024-05-04")
	status, ok = BudgetStatus(budget, b.Build(), may2024)
	require.True(t, ok)
	assertAmount(t, "600", status.Spent)
	assertAmount(t, "-100", status.Remaining)
	assertAmount(t, "120", status.PercentUsed)
	assert.True(t, status.IsOverBudget)
}

func TestBudgetStatus_ExactlyAtBudgetIsNotOver(t *testing.T) {
	budget := model.Budget{Amount: decimal.NewFromInt(100)}
	records := testutil.NewRecords().Expense("100", "food", "2024-05-03").Build()

	status, ok := BudgetStatus(budget, records, may2024)
	require.True(t, ok)
	assert.False(t, status.IsOverBudget)
	assertAmount(t, "0", status.Remaining)
}

func TestBudgetStatus_NoBudget(t *testing.T) {
	records := testutil.NewRecords().Expense("100", "food", "2024-05-03").Build()

	_, ok := BudgetStatus(model.Budget{}, records, may2024)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	records := testutil.NewRecords().
		Expense("30", "food", "2024-05-02").
		Expense("12", "deleted-category", "2024-05-02").
		Income("100", "salary", "2024-05-01").
		Build()
	categories := []model.Category{
		{ID: "food", Name: "Food", Icon: "🍜", Type: model.RecordTypeExpense},
		{ID: "salary", Name: "Salary", Icon: "💰", Type: model.RecordTypeIncome},
	}

	summary := Summarize(records, categories, model.Budget{Amount: decimal.NewFromInt(50)}, may2024, 0)

	assert.Equal(t, may2024, summary.Period)
	assertAmount(t, "58", summary.Totals.Balance)
	require.Len(t, summary.Days, 2)
	require.Len(t, summary.TopExpense, 2)
	assert.Equal(t, "Food", summary.TopExpense[0].Category.Name)
	assert.Equal(t, model.UnknownCategory.Name, summary.TopExpense[1].Category.Name)
	assert.Equal(t, "deleted-category", summary.TopExpense[1].CategoryID)
	require.Len(t, summary.TopIncome, 1)
	assert.Len(t, summary.ExpenseDaily, 31)
	require.NotNil(t, summary.Budget)
	assert.False(t, summary.Budget.IsOverBudget)

	noBudget := Summarize(records, categories, model.Budget{}, may2024, 0)
	assert.Nil(t, noBudget.Budget)
}
