package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/snapshot"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a backup document written by 'ledger export'",
		Long: `Import a ledger document. Each collection present in the file (records,
categories, accounts, budget) replaces the current one entirely; collections the
file does not carry are left untouched. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if force, _ := cmd.Flags().GetBool("force"); args[0] == "-" && !force {
				return errors.New("reading the document from stdin leaves no way to confirm; pass --force")
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			parsed, err := snapshot.Parse(data)
			if err != nil {
				return err
			}

			for _, skipped := range parsed.Skipped {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipping %s: %s", skipped.Key, skipped.Reason)))
			}
			if parsed.Empty() {
				fmt.Fprintln(out, cli.FormatInfo("Nothing to import."))
				return nil
			}

			if parsed.ExportTime != "" {
				fmt.Fprintln(out, cli.FormatInfo("Backup exported at "+parsed.ExportTime))
			}
			fmt.Fprintln(out, cli.FormatTitle("This will replace:"))
			for _, line := range describeParsed(parsed) {
				fmt.Fprintln(out, "  • "+line)
			}
			if err := confirm(cmd, "Replace these collections?"); err != nil {
				return err
			}

			store, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if noCheckpoint, _ := cmd.Flags().GetBool("no-checkpoint"); !noCheckpoint {
				if err := saveCheckpoint(cmd, store); err != nil {
					return err
				}
			}

			repo, err := a.repository(ctx, store)
			if err != nil {
				return err
			}

			result, applyErr := snapshot.Apply(ctx, repo, parsed)
			for _, applied := range result.Applied {
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %s (%d)", applied.Key, applied.Count)))
			}

			failed := make([]string, 0, len(result.Failed))
			for key := range result.Failed {
				failed = append(failed, key)
			}
			sort.Strings(failed)
			for _, key := range failed {
				fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("Could not save %s", key)))
			}

			return applyErr
		},
	}

	cmd.Flags().BoolP("force", "f", false, "replace without asking")
	cmd.Flags().Bool("no-checkpoint", false, "skip the database copy taken before replacing")
	return cmd
}

// saveCheckpoint copies the database aside so a bad import can be undone by
// hand.
func saveCheckpoint(cmd *cobra.Command, store *storage.SQLiteStore) error {
	cm, err := storage.NewCheckpointManager(store)
	if errors.Is(err, storage.ErrCheckpointUnsupported) {
		return nil
	}
	if err != nil {
		return err
	}

	info, err := cm.AutoCheckpoint(cmd.Context(), "import")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Saved a copy of the ledger to "+info.Path))
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func describeParsed(p *snapshot.Parsed) []string {
	var lines []string
	if p.Has(snapshot.FieldRecords) {
		lines = append(lines, fmt.Sprintf("records with %d entries", len(p.Records)))
	}
	if p.Has(snapshot.FieldCategories) {
		lines = append(lines, fmt.Sprintf("categories with %d entries", len(p.Categories)))
	}
	if p.Has(snapshot.FieldAccounts) {
		lines = append(lines, fmt.Sprintf("accounts with %d entries", len(p.Accounts)))
	}
	if p.Has(snapshot.FieldBudget) {
		lines = append(lines, "budget of "+p.Budget.Amount.StringFixed(2))
	}
	return lines
}
