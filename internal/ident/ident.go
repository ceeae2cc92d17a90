// Package ident generates collection-unique identifiers for ledger entities.
package ident

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces identifiers that are unique within a collection.
type Generator interface {
	NewID() string
}

// UUIDGenerator returns random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID returns a fresh random id.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator returns prefix-1, prefix-2, ... and is meant for tests
// that need stable ids.
type SequenceGenerator struct {
	Prefix string
	mu     sync.Mutex
	n      int
}

// NewSequence creates a SequenceGenerator with the given prefix.
func NewSequence(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.Prefix, g.n)
}
