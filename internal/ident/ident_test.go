package ident

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Unique(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequence("rec")
	assert.Equal(t, "rec-1", gen.NewID())
	assert.Equal(t, "rec-2", gen.NewID())
}

func TestSequenceGenerator_Concurrent(t *testing.T) {
	gen := NewSequence("id")
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{})
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.NewID()
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 50)
}
