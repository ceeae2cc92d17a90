package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Skipped names a document key that was present but could not be used.
type Skipped struct {
	Key    string
	Reason string
}

// Parsed is a decoded document, not yet applied to any ledger. Only keys
// that were present, non-null and decodable are set.
type Parsed struct {
	Budget     *model.Budget
	Records    []model.Record
	Categories []model.Category
	Accounts   []model.Account
	Skipped    []Skipped
	ExportTime string
	present    map[string]bool
}

// Has reports whether key decoded successfully and will be applied.
func (p *Parsed) Has(key string) bool {
	return p.present[key]
}

// Empty reports whether there is nothing to apply.
func (p *Parsed) Empty() bool {
	return len(p.present) == 0
}

// utf8BOM is written by some editors ahead of the opening brace.
var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes data without touching any ledger. It fails with a
// *common.FormatError only when data is not a JSON object at all; a key whose
// value is malformed is listed in Skipped and the rest are still decoded.
// Entries inside a collection are taken as written.
func Parse(data []byte) (*Parsed, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(data), utf8BOM))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &common.FormatError{Err: errors.New("document must be a JSON object")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, &common.FormatError{Err: err}
	}

	p := &Parsed{present: make(map[string]bool)}

	decodeField(p, fields, FieldRecords, &p.Records)
	decodeField(p, fields, FieldCategories, &p.Categories)
	decodeField(p, fields, FieldAccounts, &p.Accounts)

	var budget model.Budget
	if decodeField(p, fields, FieldBudget, &budget) {
		p.Budget = &budget
	}

	// exportTime is informational and never applied.
	if raw, ok := fields[FieldExportTime]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &p.ExportTime); err != nil {
			p.Skipped = append(p.Skipped, Skipped{Key: FieldExportTime, Reason: err.Error()})
		}
	}

	return p, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeField decodes fields[key] into dst and reports whether it is usable.
func decodeField[T any](p *Parsed, fields map[string]json.RawMessage, key string, dst *T) bool {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		p.Skipped = append(p.Skipped, Skipped{Key: key, Reason: err.Error()})
		return false
	}

	*dst = value
	p.present[key] = true
	return true
}

// Applied counts the entries written for one key.
type Applied struct {
	Key   string
	Count int
}

// ImportResult describes what an import changed.
type ImportResult struct {
	Applied []Applied
	Skipped []Skipped
	Failed  map[string]error
}

// Apply replaces each collection present in p, wholesale. Collections absent
// from the document are left as they are. A storage failure on one key does
// not stop the others; all failures are joined into the returned error.
func Apply(ctx context.Context, dst Target, p *Parsed) (ImportResult, error) {
	result := ImportResult{
		Skipped: append([]Skipped(nil), p.Skipped...),
		Failed:  make(map[string]error),
	}

	steps := []struct {
		write func() error
		key   string
		count int
	}{
		{key: FieldRecords, count: len(p.Records), write: func() error { return dst.ReplaceRecords(ctx, p.Records) }},
		{key: FieldCategories, count: len(p.Categories), write: func() error { return dst.ReplaceCategories(ctx, p.Categories) }},
		{key: FieldAccounts, count: len(p.Accounts), write: func() error { return dst.ReplaceAccounts(ctx, p.Accounts) }},
		{key: FieldBudget, count: 1, write: func() error { return dst.ReplaceBudget(ctx, *p.Budget) }},
	}

	var errs []error
	for _, step := range steps {
		if !p.Has(step.key) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := step.write(); err != nil {
			result.Failed[step.key] = err
			errs = append(errs, fmt.Errorf("%s: %w", step.key, err))
			slog.Warn("Import key failed", "key", step.key, "error", err)
			continue
		}
		result.Applied = append(result.Applied, Applied{Key: step.key, Count: step.count})
		slog.Debug("Imported key", "key", step.key, "count", step.count)
	}

	return result, errors.Join(errs...)
}

// Import parses data and applies it to dst.
func Import(ctx context.Context, dst Target, data []byte) (ImportResult, error) {
	p, err := Parse(data)
	if err != nil {
		return ImportResult{}, err
	}
	return Apply(ctx, dst, p)
}
