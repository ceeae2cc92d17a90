// Package snapshot exports the whole ledger as one JSON document and imports
// such documents back, collection by collection.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Document keys. A document may carry any subset of them.
const (
	FieldRecords    = "records"
	FieldCategories = "categories"
	FieldAccounts   = "accounts"
	FieldBudget     = "budget"
	FieldExportTime = "exportTime"
)

// ExportTimeLayout renders export times in UTC with milliseconds.
const ExportTimeLayout = "2006-01-02T15:04:05.000Z"

// Document is the complete exported state of a ledger.
type Document struct {
	Records    []model.Record   `json:"records"`
	Categories []model.Category `json:"categories"`
	Accounts   []model.Account  `json:"accounts"`
	Budget     model.Budget     `json:"budget"`
	ExportTime string           `json:"exportTime"`
}

// Source is the read side of a ledger.
type Source interface {
	Snapshot(ctx context.Context) (ledger.Snapshot, error)
}

// Target is the write side a document is applied to.
type Target interface {
	ReplaceRecords(ctx context.Context, records []model.Record) error
	ReplaceCategories(ctx context.Context, categories []model.Category) error
	ReplaceAccounts(ctx context.Context, accounts []model.Account) error
	ReplaceBudget(ctx context.Context, budget model.Budget) error
}

// Export captures every collection of src as of now.
func Export(ctx context.Context, src Source, now time.Time) (*Document, error) {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	return &Document{
		Records:    nonNil(snap.Records),
		Categories: nonNil(snap.Categories),
		Accounts:   nonNil(snap.Accounts),
		Budget:     snap.Budget,
		ExportTime: now.UTC().Format(ExportTimeLayout),
	}, nil
}

// Encode writes doc as JSON indented by two spaces.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// FileName is the suggested name for a document exported at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("ledger-backup_%s.json", now.UTC().Format(model.DateLayout))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
