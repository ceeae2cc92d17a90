package ledger

import (
	"context"
	"log/slog"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// ListRecords returns every record in storage order.
func (r *Repository) ListRecords(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadRecords(ctx), nil
}

// GetRecord looks up a single record.
func (r *Repository) GetRecord(ctx context.Context, id string) (model.Record, bool, error) {
	records, err := r.ListRecords(ctx)
	if err != nil {
		return model.Record{}, false, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, true, nil
		}
	}
	return model.Record{}, false, nil
}

// UpsertRecord validates input and either updates the record named by
// editingID in place or appends a new one. An editingID that matches nothing
// creates a new record rather than failing. On error nothing is persisted.
func (r *Repository) UpsertRecord(ctx context.Context, input RecordInput, editingID string) (model.Record, error) {
	if err := ctx.Err(); err != nil {
		return model.Record{}, err
	}

	input = input.normalize()
	if err := input.Validate(); err != nil {
		return model.Record{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	date := model.Date(input.Date)
	if date == "" {
		date = model.NewDate(now)
	}

	records := r.loadRecords(ctx)
	rec := model.Record{
		Type:       input.Type,
		Amount:     input.Amount,
		CategoryID: input.CategoryID,
		AccountID:  input.AccountID,
		Note:       input.Note,
		Date:       date,
		UpdatedAt:  model.Millis(now),
	}

	updated := false
	if editingID != "" {
		for i := range records {
			if records[i].ID != editingID {
				continue
			}
			rec.ID = records[i].ID
			rec.CreatedAt = records[i].CreatedAt
			records[i] = rec
			updated = true
			break
		}
	}
	if !updated {
		rec.ID = r.ids.NewID()
		rec.CreatedAt = rec.UpdatedAt
		records = append(records, rec)
	}

	if err := r.adapter.Save(ctx, storage.KeyRecords, records); err != nil {
		return model.Record{}, err
	}

	slog.Debug("Saved record", "id", rec.ID, "updated", updated, "type", rec.Type)
	return rec, nil
}

// DeleteRecord removes the record with id. Deleting a missing id is a no-op
// and reports false.
func (r *Repository) DeleteRecord(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.loadRecords(ctx)
	kept := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}

	if err := r.adapter.Save(ctx, storage.KeyRecords, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceRecords overwrites the whole records collection.
func (r *Repository) ReplaceRecords(ctx context.Context, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.adapter.Save(ctx, storage.KeyRecords, records)
}
