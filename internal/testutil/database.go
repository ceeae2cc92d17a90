// Package testutil provides fixtures for ledger tests: an in-memory store,
// a controllable clock, deterministic ids and a fluent record builder.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ident"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// DefaultNow is the instant fixture clocks start at.
var DefaultNow = time.Date(2024, time.May, 15, 9, 30, 0, 0, time.UTC)

// Clock is a settable service.Clock.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

// NewClock returns a clock fixed at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fixture time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestLedger bundles a repository with the pieces tests poke at directly.
type TestLedger struct {
	Repo    *ledger.Repository
	Store   *storage.SQLiteStore
	Adapter *storage.Adapter
	Clock   *Clock
	IDs     *ident.SequenceGenerator
	t       *testing.T
}

// Options configures SetupTestLedgerWithOptions.
type Options struct {
	// WrapStore lets a test interpose on the store, e.g. with a FailingStore.
	WrapStore func(service.KeyValueStore) service.KeyValueStore
	Now       time.Time
	SkipInit  bool
}

// SetupTestLedger creates a seeded ledger over a fresh in-memory database.
//
// Example:
//
//	tl := testutil.SetupTestLedger(t)
//	rec := tl.MustAddRecord(testutil.Expense("12.50", "food", "2024-05-10"))
func SetupTestLedger(t *testing.T) *TestLedger {
	t.Helper()
	return SetupTestLedgerWithOptions(t, Options{})
}

// SetupTestLedgerWithOptions creates a ledger with custom options.
func SetupTestLedgerWithOptions(t *testing.T, opts Options) *TestLedger {
	t.Helper()

	store, err := storage.NewSQLiteStore(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	var kv service.KeyValueStore = store
	if opts.WrapStore != nil {
		kv = opts.WrapStore(store)
	}

	now := opts.Now
	if now.IsZero() {
		now = DefaultNow
	}

	adapter := storage.NewAdapter(kv, storage.WithRetry(common.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
	}))
	clock := NewClock(now)
	ids := ident.NewSequence("id")
	repo := ledger.New(adapter, ledger.WithClock(clock), ledger.WithIDGenerator(ids))

	if !opts.SkipInit {
		if err := repo.Init(ctx); err != nil {
			t.Fatalf("failed to seed ledger: %v", err)
		}
	}

	return &TestLedger{
		Repo:    repo,
		Store:   store,
		Adapter: adapter,
		Clock:   clock,
		IDs:     ids,
		t:       t,
	}
}

// MustAddRecord creates a record or fails the test.
func (l *TestLedger) MustAddRecord(input ledger.RecordInput) model.Record {
	l.t.Helper()
	rec, err := l.Repo.UpsertRecord(context.Background(), input, "")
	if err != nil {
		l.t.Fatalf("failed to add record: %v", err)
	}
	return rec
}

// MustRecords lists records or fails the test.
func (l *TestLedger) MustRecords() []model.Record {
	l.t.Helper()
	records, err := l.Repo.ListRecords(context.Background())
	if err != nil {
		l.t.Fatalf("failed to list records: %v", err)
	}
	return records
}
