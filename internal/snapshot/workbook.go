package snapshot

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Sheet names in the exported workbook.
const (
	SheetRecords    = "Records"
	SheetCategories = "Categories"
)

var recordHeaders = []string{"Date", "Type", "Category", "Account", "Amount", "Note"}

// WriteWorkbook renders doc as an xlsx spreadsheet. When period is non-nil
// only that month's records are included.
func WriteWorkbook(w io.Writer, doc *Document, period *model.Period) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	records := doc.Records
	if period != nil {
		records = filterPeriod(records, *period)
	}
	sorted := make([]model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SheetRecords); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeRecordsSheet(f, styles, sorted, doc); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetCategories); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeCategoriesSheet(f, styles, sorted, doc.Categories); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type workbookStyles struct {
	header int
	amount int
	total  int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "D9D9D9", Style: 1},
		{Type: "top", Color: "D9D9D9", Style: 1},
		{Type: "right", Color: "D9D9D9", Style: 1},
		{Type: "bottom", Color: "D9D9D9", Style: 1},
	}
	amountFormat := "#,##0.00"

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return workbookStyles{}, fmt.Errorf("failed to create header style: %w", err)
	}

	amount, err := f.NewStyle(&excelize.Style{
		Border:       border,
		CustomNumFmt: &amountFormat,
	})
	if err != nil {
		return workbookStyles{}, fmt.Errorf("failed to create amount style: %w", err)
	}

	total, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border:       border,
		CustomNumFmt: &amountFormat,
	})
	if err != nil {
		return workbookStyles{}, fmt.Errorf("failed to create total style: %w", err)
	}

	return workbookStyles{header: header, amount: amount, total: total}, nil
}

func writeRecordsSheet(f *excelize.File, styles workbookStyles, records []model.Record, doc *Document) error {
	sheet := SheetRecords
	if err := writeHeader(f, sheet, recordHeaders, styles.header); err != nil {
		return err
	}
	widths := map[string]float64{"A": 12, "B": 10, "C": 18, "D": 14, "E": 12, "F": 36}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, rec := range records {
		row := i + 2
		cell := fmt.Sprintf("A%d", row)
		values := []any{
			string(rec.Date),
			string(rec.Type),
			model.CategoryOrUnknown(doc.Categories, rec.CategoryID).Name,
			model.AccountOrUnknown(doc.Accounts, rec.AccountID).Name,
			rec.Amount.InexactFloat64(),
			rec.Note,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styles.amount); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}

	totals := aggregate.RangeTotals(records, model.AllTime)
	row := len(records) + 3
	summary := [][]any{
		{"Income", "", "", "", totals.Income.InexactFloat64(), fmt.Sprintf("%d records", len(records))},
		{"Expense", "", "", "", totals.Expense.InexactFloat64(), ""},
		{"Balance", "", "", "", totals.Balance.InexactFloat64(), ""},
	}
	for i, values := range summary {
		r := row + i
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", r), &values); err != nil {
			return fmt.Errorf("failed to write totals: %w", err)
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", r), fmt.Sprintf("F%d", r), styles.total); err != nil {
			return fmt.Errorf("failed to style totals: %w", err)
		}
	}
	return nil
}

func writeCategoriesSheet(f *excelize.File, styles workbookStyles, records []model.Record, categories []model.Category) error {
	sheet := SheetCategories
	if err := writeHeader(f, sheet, []string{"Type", "Category", "Amount", "Percent"}, styles.header); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "D", 16); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	row := 2
	for _, t := range []model.RecordType{model.RecordTypeExpense, model.RecordTypeIncome} {
		for _, amt := range aggregate.RangeBreakdown(records, model.AllTime, t) {
			values := []any{
				string(t),
				model.CategoryOrUnknown(categories, amt.CategoryID).Name,
				amt.Amount.InexactFloat64(),
				amt.Percent.InexactFloat64(),
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return fmt.Errorf("failed to write category row: %w", err)
			}
			if err := f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), styles.amount); err != nil {
				return fmt.Errorf("failed to style category row: %w", err)
			}
			row++
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func filterPeriod(records []model.Record, period model.Period) []model.Record {
	var out []model.Record
	for _, rec := range records {
		if period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}
