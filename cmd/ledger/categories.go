package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func categoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "c"},
		Short:   "Manage expense and income categories",
	}

	cmd.AddCommand(listCategoriesCmd(a))
	cmd.AddCommand(addCategoryCmd(a))
	cmd.AddCommand(deleteCategoryCmd(a))

	return cmd
}

func typeFilter(cmd *cobra.Command) (*model.RecordType, error) {
	raw, _ := cmd.Flags().GetString("type")
	if raw == "" {
		return nil, nil
	}
	t := model.RecordType(raw)
	if !t.Valid() {
		return nil, fmt.Errorf("invalid --type %q, expected expense or income", raw)
	}
	return &t, nil
}

func listCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter, err := typeFilter(cmd)
			if err != nil {
				return err
			}

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			categories, err := repo.ListCategories(ctx, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No categories found. Use 'ledger category add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Type"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 14),
				strings.Repeat("-", 20),
				strings.Repeat("-", 7))
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s %s\t%s\n", cat.ID, cat.Icon, cat.Name, cat.Type)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringP("type", "t", "", "only show expense or income categories")
	return cmd
}

func addCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a category. Names must be unique per type; the same name may exist
once as an expense category and once as an income category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			recordType, _ := cmd.Flags().GetString("type")
			icon, _ := cmd.Flags().GetString("icon")

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			cat, err := repo.CreateCategory(ctx, args[0], model.RecordType(recordType), icon)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created %s category %s %s (id %s)",
				cat.Type, cat.Icon, cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", string(model.RecordTypeExpense), "category type (expense, income)")
	cmd.Flags().StringP("icon", "i", "", "icon shown next to the name")
	return cmd
}

func deleteCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Long: `Delete a category. Records filed under it are kept and shown under
"Unknown" until they are edited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			repo, closeLedger, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			snap, err := repo.Snapshot(ctx)
			if err != nil {
				return err
			}

			cat, ok := model.LookupCategory(snap.Categories, id)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("No category %s, nothing to delete", id)))
				return nil
			}

			inUse := 0
			for _, rec := range snap.Records {
				if rec.CategoryID == id {
					inUse++
				}
			}
			if inUse > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf(
					"%d records use %s and will show as %s", inUse, cat.Name, model.UnknownCategory.Name)))
			}

			if err := confirm(cmd, fmt.Sprintf("Delete category %s %s?", cat.Icon, cat.Name)); err != nil {
				return err
			}

			if _, err := repo.DeleteCategory(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted category %s", cat.Name)))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "delete without asking")
	return cmd
}
