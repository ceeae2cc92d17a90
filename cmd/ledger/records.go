package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func recordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records", "r"},
		Short:   "Add, edit, delete and list income and expense records",
	}

	cmd.AddCommand(addRecordCmd(a))
	cmd.AddCommand(editRecordCmd(a))
	cmd.AddCommand(deleteRecordCmd(a))
	cmd.AddCommand(listRecordsCmd(a))

	return cmd
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, common.NewValidationError("amount", "must be a number")
	}
	return d, nil
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", string(model.RecordTypeExpense), "record type (expense, income)")
	cmd.Flags().StringP("category", "c", "", "category id")
	cmd.Flags().StringP("account", "a", "", "account id")
	cmd.Flags().StringP("note", "n", "", "free-text note")
	cmd.Flags().StringP("date", "d", "", "date as YYYY-MM-DD (default: today)")
}

func addRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add a record",
		Long: `Add an expense or income record.

Examples:
  ledger record add 32.5 -c food -a wechat -n lunch
  ledger record add 8000 -t income -c salary -a bank -d 2024-05-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			input := ledger.RecordInput{Amount: amount}
			recordType, _ := cmd.Flags().GetString("type")
			input.Type = model.RecordType(recordType)
			input.CategoryID, _ = cmd.Flags().GetString("category")
			input.AccountID, _ = cmd.Flags().GetString("account")
			input.Note, _ = cmd.Flags().GetString("note")
			input.Date, _ = cmd.Flags().GetString("date")

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			rec, err := repo.UpsertRecord(ctx, input, "")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved %s %s on %s (id %s)",
				rec.Type, cli.FormatAmount(a.settings.Currency, rec.Amount), rec.Date, rec.ID)))
			return nil
		},
	}

	addRecordFlags(cmd)
	return cmd
}

func editRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a record",
		Long:  `Change any field of an existing record. Fields whose flags are not given keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			existing, ok, err := repo.GetRecord(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return common.NewUserError(fmt.Sprintf("record %s not found", id), nil)
			}

			input := ledger.RecordInput{
				Amount:     existing.Amount,
				Type:       existing.Type,
				CategoryID: existing.CategoryID,
				AccountID:  existing.AccountID,
				Note:       existing.Note,
				Date:       existing.Date.String(),
			}

			flags := cmd.Flags()
			if flags.Changed("amount") {
				raw, _ := flags.GetString("amount")
				if input.Amount, err = parseAmount(raw); err != nil {
					return err
				}
			}
			if flags.Changed("type") {
				recordType, _ := flags.GetString("type")
				input.Type = model.RecordType(recordType)
			}
			if flags.Changed("category") {
				input.CategoryID, _ = flags.GetString("category")
			}
			if flags.Changed("account") {
				input.AccountID, _ = flags.GetString("account")
			}
			if flags.Changed("note") {
				input.Note, _ = flags.GetString("note")
			}
			if flags.Changed("date") {
				input.Date, _ = flags.GetString("date")
			}

			rec, err := repo.UpsertRecord(ctx, input, id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated record %s", rec.ID)))
			return nil
		},
	}

	addRecordFlags(cmd)
	cmd.Flags().String("amount", "", "new amount")
	return cmd
}

func deleteRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			rec, ok, err := repo.GetRecord(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("No record %s, nothing to delete", id)))
				return nil
			}

			question := fmt.Sprintf("Delete %s %s from %s?", rec.Type, cli.FormatAmount(a.settings.Currency, rec.Amount), rec.Date)
			if err := confirm(cmd, question); err != nil {
				return err
			}

			if _, err := repo.DeleteRecord(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted record %s", id)))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "delete without asking")
	return cmd
}

func listRecordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List a month's records grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period, err := a.period(cmd)
			if err != nil {
				return err
			}

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			snap, err := repo.Snapshot(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Records for " + period.String()))

			days := aggregate.GroupByDate(snap.Records, period)
			if len(days) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No records this month. Use 'ledger record add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, day := range days {
				fmt.Fprintf(w, "%s\t\t\t%s\t%s\n",
					cli.BoldStyle.Render(day.Date.String()),
					cli.IncomeStyle.Render("+"+cli.FormatAmount(a.settings.Currency, day.Income)),
					cli.ExpenseStyle.Render("-"+cli.FormatAmount(a.settings.Currency, day.Expense)))
				for _, rec := range day.Records {
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
						cli.SubtleStyle.Render(rec.ID),
						categoryLabel(snap.Categories, rec.CategoryID),
						accountLabel(snap.Accounts, rec.AccountID),
						a.signed(rec),
						rec.Note)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: current month)")
	return cmd
}
