package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// openStore opens the configured database and brings its schema up to date.
// Callers must run the returned close func.
func (a *app) openStore(ctx context.Context) (*storage.SQLiteStore, func(), error) {
	store, err := storage.NewSQLiteStore(a.settings.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}

	if err := store.Migrate(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, closeStore, nil
}

// repository wraps store in a ledger, seeding defaults on first use.
func (a *app) repository(ctx context.Context, store *storage.SQLiteStore) (*ledger.Repository, error) {
	repo := ledger.New(storage.NewAdapter(store), ledger.WithClock(a.clock))
	if err := repo.Init(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// openLedger is openStore followed by repository.
func (a *app) openLedger(ctx context.Context) (*ledger.Repository, func(), error) {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	repo, err := a.repository(ctx, store)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return repo, closeStore, nil
}

// period reads --month, defaulting to the current month.
func (a *app) period(cmd *cobra.Command) (model.Period, error) {
	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		return model.PeriodOf(a.clock.Now()), nil
	}
	period, err := model.ParsePeriod(month)
	if err != nil {
		return model.Period{}, fmt.Errorf("invalid --month %q, expected YYYY-MM: %w", month, err)
	}
	return period, nil
}

// confirm asks before a destructive command unless --force was given.
func confirm(cmd *cobra.Command, question string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}

	ok, err := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(cmd.Context(), question)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Cancelled, nothing was changed."))
		return cli.ErrNotConfirmed
	}
	return nil
}

func (a *app) signed(rec model.Record) string {
	return cli.StyleSigned(a.settings.Currency, rec.Type, rec.Amount)
}

func categoryLabel(categories []model.Category, id string) string {
	cat := model.CategoryOrUnknown(categories, id)
	return cat.Icon + " " + cat.Name
}

func accountLabel(accounts []model.Account, id string) string {
	if id == "" {
		return ""
	}
	acc := model.AccountOrUnknown(accounts, id)
	return acc.Icon + " " + acc.Name
}
