package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/service"
)

// Keys the ledger persists its collections under.
const (
	KeyRecords    = "expense_records"
	KeyCategories = "expense_categories"
	KeyAccounts   = "expense_accounts"
	KeyBudget     = "expense_budget"
)

// Adapter gives a KeyValueStore typed JSON semantics. Parse and serialize
// failures never escape as panics or raw decoder errors; they come back as
// *common.StorageError.
type Adapter struct {
	store service.KeyValueStore
	retry common.RetryOptions
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithRetry overrides the retry policy used for writes.
func WithRetry(opts common.RetryOptions) AdapterOption {
	return func(a *Adapter) {
		a.retry = opts
	}
}

// NewAdapter wraps store.
func NewAdapter(store service.KeyValueStore, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		store: store,
		retry: common.DefaultStoreRetry,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store exposes the underlying store.
func (a *Adapter) Store() service.KeyValueStore {
	return a.store
}

// Load decodes the value under key. A missing key yields fallback with
// found=false. A read or decode failure also yields fallback, together with
// a *common.StorageError so the caller can log it and carry on.
func Load[T any](ctx context.Context, a *Adapter, key string, fallback T) (value T, found bool, err error) {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return fallback, false, &common.StorageError{Op: "read", Key: key, Err: err}
	}
	if !ok {
		return fallback, false, nil
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return fallback, true, &common.StorageError{
			Op:  "read",
			Key: key,
			Err: fmt.Errorf("stored value is not valid JSON: %w", err),
		}
	}
	return decoded, true, nil
}

// Save serializes value and writes it under key. Other keys are untouched.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &common.StorageError{Op: "write", Key: key, Err: fmt.Errorf("failed to serialize: %w", err)}
	}

	err = common.WithRetry(ctx, func() error {
		return a.store.Set(ctx, key, string(data))
	}, a.retry)
	if err != nil {
		return &common.StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

// Has reports whether key has ever been written.
func (a *Adapter) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return false, &common.StorageError{Op: "read", Key: key, Err: err}
	}
	return ok, nil
}
