package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/snapshot"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole ledger as a backup document",
		Long: `Write every record, category, account and the budget to one JSON document
that 'ledger import' can read back. With --xlsx a spreadsheet report is written
instead; it cannot be imported.

Examples:
  ledger export                      # ledger-backup_YYYY-MM-DD.json
  ledger export --out - | jq .budget
  ledger export --xlsx --month 2024-05`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			outPath, _ := cmd.Flags().GetString("out")
			asWorkbook, _ := cmd.Flags().GetBool("xlsx")

			var period *model.Period
			if cmd.Flags().Changed("month") {
				p, err := a.period(cmd)
				if err != nil {
					return err
				}
				period = &p
			}

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			now := a.clock.Now()
			doc, err := snapshot.Export(ctx, repo, now)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = snapshot.FileName(now)
				if asWorkbook {
					outPath = strings.TrimSuffix(outPath, ".json") + ".xlsx"
				}
			}

			write := func(w io.Writer) error {
				if asWorkbook {
					return snapshot.WriteWorkbook(w, doc, period)
				}
				return snapshot.Encode(w, doc)
			}

			if outPath == "-" {
				return write(cmd.OutOrStdout())
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := write(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}

			slog.Debug("Exported ledger", "path", outPath, "records", len(doc.Records))
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d records to %s", len(doc.Records), outPath)))
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "output file, - for stdout (default: ledger-backup_<date>.json)")
	cmd.Flags().Bool("xlsx", false, "write an Excel report instead of a JSON backup")
	cmd.Flags().StringP("month", "m", "", "limit the Excel records sheet to one month (YYYY-MM)")
	return cmd
}
