// Package ledger owns the four persisted collections (records, categories,
// accounts and the budget) and every rule about mutating them.
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/pocket-ledger/internal/ident"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// Repository is the single entry point for reading and changing ledger state.
// It keeps no cache: every call reads the collection it needs from the store,
// so a failed write leaves both the store and the next read unchanged.
type Repository struct {
	adapter *storage.Adapter
	clock   service.Clock
	ids     ident.Generator
	mu      sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used for timestamps and default dates.
func WithClock(clock service.Clock) Option {
	return func(r *Repository) {
		r.clock = clock
	}
}

// WithIDGenerator sets the generator used for new record and category ids.
func WithIDGenerator(gen ident.Generator) Option {
	return func(r *Repository) {
		r.ids = gen
	}
}

// New creates a Repository persisting through adapter.
func New(adapter *storage.Adapter, opts ...Option) *Repository {
	r := &Repository{
		adapter: adapter,
		clock:   service.SystemClock,
		ids:     ident.UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init seeds the default categories and accounts on first run. Keys that
// already exist are left alone, even if they hold an empty list.
func (r *Repository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seeds := []struct {
		value any
		key   string
	}{
		{key: storage.KeyCategories, value: DefaultCategories()},
		{key: storage.KeyAccounts, value: DefaultAccounts()},
	}

	for _, seed := range seeds {
		has, err := r.adapter.Has(ctx, seed.key)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if err := r.adapter.Save(ctx, seed.key, seed.value); err != nil {
			return err
		}
		slog.Info("Seeded defaults", "key", seed.key)
	}
	return nil
}

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Records    []model.Record
	Categories []model.Category
	Accounts   []model.Account
	Budget     model.Budget
}

// Snapshot reads all four collections under one lock.
func (r *Repository) Snapshot(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		Records:    r.loadRecords(ctx),
		Categories: r.loadCategories(ctx),
		Accounts:   r.loadAccounts(ctx),
		Budget:     r.loadBudget(ctx),
	}, nil
}

// load reads key, degrading to fallback on any read failure.
func load[T any](ctx context.Context, a *storage.Adapter, key string, fallback T) T {
	value, _, err := storage.Load(ctx, a, key, fallback)
	if err != nil {
		slog.Warn("Using default after failed read", "key", key, "error", err)
	}
	return value
}

func (r *Repository) loadRecords(ctx context.Context) []model.Record {
	records := load(ctx, r.adapter, storage.KeyRecords, []model.Record{})
	if records == nil {
		return []model.Record{}
	}
	return records
}

func (r *Repository) loadCategories(ctx context.Context) []model.Category {
	categories := load(ctx, r.adapter, storage.KeyCategories, DefaultCategories())
	if categories == nil {
		return []model.Category{}
	}
	return categories
}

func (r *Repository) loadAccounts(ctx context.Context) []model.Account {
	accounts := load(ctx, r.adapter, storage.KeyAccounts, DefaultAccounts())
	if accounts == nil {
		return []model.Account{}
	}
	return accounts
}

func (r *Repository) loadBudget(ctx context.Context) model.Budget {
	return load(ctx, r.adapter, storage.KeyBudget, model.Budget{})
}
