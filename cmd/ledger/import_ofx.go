package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/ofx"
)

func importOFXCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Add records from OFX/QFX bank statements",
		Long: `Add the transactions of OFX or QFX statements exported from your bank as
records. Debits become expenses and credits become income, filed under the
configured import categories. Lines already in the ledger are skipped.

Examples:
  ledger import-ofx ~/Downloads/checking_2024-05.qfx
  ledger import-ofx ~/Downloads/*.ofx --account credit --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "show what would be added without saving")
	cmd.Flags().String("account", "", "account id for imported records (default: import.account)")
	cmd.Flags().String("expense-category", "", "category id for debits (default: import.expense_category)")
	cmd.Flags().String("income-category", "", "category id for credits (default: import.income_category)")
	return cmd
}

func expandFiles(patterns []string) []string {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			slog.Warn("Invalid file pattern", "pattern", pattern, "error", err)
			continue
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files
}

func (a *app) importMapping(cmd *cobra.Command) ofx.Mapping {
	mapping := ofx.Mapping{
		ExpenseCategory: a.settings.Import.ExpenseCategory,
		IncomeCategory:  a.settings.Import.IncomeCategory,
		AccountID:       a.settings.Import.Account,
	}
	if v, _ := cmd.Flags().GetString("account"); v != "" {
		mapping.AccountID = v
	}
	if v, _ := cmd.Flags().GetString("expense-category"); v != "" {
		mapping.ExpenseCategory = v
	}
	if v, _ := cmd.Flags().GetString("income-category"); v != "" {
		mapping.IncomeCategory = v
	}
	return mapping
}

// entryKey identifies a statement line already present as a record.
func entryKey(t model.RecordType, date, amount, note string) string {
	return string(t) + "|" + date + "|" + amount + "|" + note
}

func (a *app) runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	files := expandFiles(args)
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	handler := cli.NewInterruptHandler(out, "Records saved so far are kept; run the import again to add the rest.")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	parser := ofx.NewParser(a.importMapping(cmd))
	var entries []ofx.Entry
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}
		fileEntries, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}
		fmt.Fprintf(out, "  - %s: %d transactions\n", filepath.Base(path), len(fileEntries))
		entries = append(entries, fileEntries...)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No transactions found."))
		return nil
	}

	repo, closeLedger, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger()

	existing, err := repo.ListRecords(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, rec := range existing {
		known[entryKey(rec.Type, rec.Date.String(), rec.Amount.StringFixed(2), rec.Note)] = true
	}

	var pending []ledger.RecordInput
	for _, entry := range entries {
		in := entry.Input
		key := entryKey(in.Type, in.Date, in.Amount.StringFixed(2), in.Note)
		if known[key] {
			continue
		}
		known[key] = true
		pending = append(pending, in)
	}

	skipped := len(entries) - len(pending)
	if dryRun {
		for _, in := range pending {
			fmt.Fprintf(out, "  %s  %s  %s\n", in.Date, cli.FormatSigned(a.settings.Currency, in.Type, in.Amount), in.Note)
		}
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d would be added, %d already in the ledger", len(pending), skipped)))
		return nil
	}

	bar := progressbar.NewOptions(len(pending),
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Saving records...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
	)

	saved, rejected := 0, 0
	for _, in := range pending {
		if ctx.Err() != nil {
			break
		}
		if _, err := repo.UpsertRecord(ctx, in, ""); err != nil {
			rejected++
			slog.Warn("Statement line not saved", "date", in.Date, "note", in.Note, "error", err)
		} else {
			saved++
		}
		if err := bar.Add(1); err != nil {
			slog.Debug("Failed to update progress bar", "error", err)
		}
	}

	if handler.WasInterrupted() {
		return fmt.Errorf("import interrupted after %d records: %w", saved, ctx.Err())
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %d records (%d already present, %d rejected)", saved, skipped, rejected)))
	return nil
}
