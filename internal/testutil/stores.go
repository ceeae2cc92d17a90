package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/pocket-ledger/internal/service"
)

// ErrInjected is returned by FailingStore for keys marked as failing.
var ErrInjected = errors.New("injected storage failure")

// FailingStore wraps a store and rejects writes (or reads) for chosen keys.
type FailingStore struct {
	service.KeyValueStore
	failWrites map[string]bool
	failReads  map[string]bool
	mu         sync.Mutex
}

// NewFailingStore wraps inner with no failures configured.
func NewFailingStore(inner service.KeyValueStore) *FailingStore {
	return &FailingStore{
		KeyValueStore: inner,
		failWrites:    make(map[string]bool),
		failReads:     make(map[string]bool),
	}
}

// FailWrites makes every Set on the given keys fail.
func (f *FailingStore) FailWrites(keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		f.failWrites[k] = true
	}
}

// FailReads makes every Get on the given keys fail.
func (f *FailingStore) FailReads(keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		f.failReads[k] = true
	}
}

// Reset clears all configured failures.
func (f *FailingStore) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = make(map[string]bool)
	f.failReads = make(map[string]bool)
}

// Get fails for keys marked with FailReads.
func (f *FailingStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failReads[key]
	f.mu.Unlock()
	if fail {
		return "", false, ErrInjected
	}
	return f.KeyValueStore.Get(ctx, key)
}

// Set fails for keys marked with FailWrites.
func (f *FailingStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failWrites[key]
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KeyValueStore.Set(ctx, key, value)
}
