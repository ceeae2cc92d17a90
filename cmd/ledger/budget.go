package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/cli"
)

const barWidth = 24

func budgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show or set the monthly spending budget",
	}

	cmd.AddCommand(showBudgetCmd(a))
	cmd.AddCommand(setBudgetCmd(a))

	return cmd
}

func showBudgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the budget and how much of it a month has used",
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
			status, ok := aggregate.BudgetStatus(snap.Budget, snap.Records, period)
			if !ok {
				fmt.Fprintln(out, cli.FormatInfo("No budget set. Use 'ledger budget set <amount>'."))
				return nil
			}

			fmt.Fprintln(out, renderBudget(a.settings.Currency, snap.Budget.Amount, status, period.String()))
			return nil
		},
	}

	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func renderBudget(currency string, budget decimal.Decimal, status aggregate.Status, period string) string {
	bar := cli.Bar(status.PercentUsed, barWidth)
	line := fmt.Sprintf("%s %s  %s %s%%", cli.BudgetIcon, period, bar, status.PercentUsed.StringFixed(1))
	detail := fmt.Sprintf("spent %s of %s, ", cli.FormatAmount(currency, status.Spent), cli.FormatAmount(currency, budget))
	if status.IsOverBudget {
		return line + "\n" + cli.ErrorStyle.Render(detail+"over by "+cli.FormatAmount(currency, status.Remaining.Neg()))
	}
	return line + "\n" + cli.SuccessStyle.Render(detail+cli.FormatAmount(currency, status.Remaining)+" left")
}

func setBudgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the monthly budget",
		Long:  `Set the monthly budget. 0 clears it; text that is not a number, or a negative amount, also clears it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			budget, err := repo.SetBudget(ctx, args[0])
			if err != nil {
				return err
			}

			if !budget.IsSet() {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Budget cleared"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Budget set to "+cli.FormatAmount(a.settings.Currency, budget.Amount)))
			return nil
		},
	}
}
