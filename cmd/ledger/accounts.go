package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
)

func accountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "Show the accounts records can be attached to",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			accounts, err := repo.ListAccounts(ctx)
			if err != nil {
				return err
			}

			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No accounts. Import a ledger document that carries some."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, acc := range accounts {
				fmt.Fprintf(w, "%s\t%s %s\n", acc.ID, acc.Icon, acc.Name)
			}
			return w.Flush()
		},
	})

	return cmd
}
