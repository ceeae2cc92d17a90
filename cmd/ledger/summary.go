package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/cli"
)

func summaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a month at a glance",
		Long:  `Totals, budget use, the top categories and a day-by-day trend for one month.`,
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

			summary := aggregate.Summarize(snap.Records, snap.Categories, snap.Budget, period, a.settings.TopCategories)
			fmt.Fprintln(cmd.OutOrStdout(), a.renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func (a *app) renderSummary(s aggregate.MonthSummary) string {
	currency := a.settings.Currency

	var b strings.Builder
	fmt.Fprintf(&b, "Income   %s\n", cli.IncomeStyle.Render(cli.FormatAmount(currency, s.Totals.Income)))
	fmt.Fprintf(&b, "Expense  %s\n", cli.ExpenseStyle.Render(cli.FormatAmount(currency, s.Totals.Expense)))
	fmt.Fprintf(&b, "Balance  %s\n", cli.BoldStyle.Render(cli.FormatAmount(currency, s.Totals.Balance)))

	if s.Budget != nil {
		b.WriteString("\n")
		b.WriteString(renderBudget(currency, s.Budget.Spent.Add(s.Budget.Remaining), *s.Budget, s.Period.String()))
		b.WriteString("\n")
	}

	writeShares(&b, currency, "Top expenses", s.TopExpense)
	writeShares(&b, currency, "Top income", s.TopIncome)

	if s.Totals.Expense.IsPositive() || s.Totals.Income.IsPositive() {
		b.WriteString("\n" + cli.BoldStyle.Render("Daily trend") + "\n")
		fmt.Fprintf(&b, "  expense |%s|\n", cli.ExpenseStyle.Render(cli.Sparkline(s.ExpenseDaily)))
		fmt.Fprintf(&b, "  income  |%s|\n", cli.IncomeStyle.Render(cli.Sparkline(s.IncomeDaily)))
	}

	return cli.RenderBox(fmt.Sprintf("%s %s", cli.ChartIcon, s.Period), strings.TrimRight(b.String(), "\n"))
}

func writeShares(b *strings.Builder, currency, title string, shares []aggregate.CategoryShare) {
	if len(shares) == 0 {
		return
	}
	b.WriteString("\n" + cli.BoldStyle.Render(title) + "\n")
	for _, share := range shares {
		fmt.Fprintf(b, "  %s %-12s %s %5s%%  %s\n",
			share.Category.Icon,
			share.Category.Name,
			cli.Bar(share.Percent, barWidth/2),
			share.Percent.StringFixed(1),
			cli.FormatAmount(currency, share.Amount))
	}
}
