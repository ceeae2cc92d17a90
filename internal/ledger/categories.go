package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// ListCategories returns categories, optionally only those of one type.
func (r *Repository) ListCategories(ctx context.Context, recordType *model.RecordType) ([]model.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	categories := r.loadCategories(ctx)
	r.mu.Unlock()

	if recordType == nil {
		return categories, nil
	}

	filtered := make([]model.Category, 0, len(categories))
	for _, cat := range categories {
		if cat.Type == *recordType {
			filtered = append(filtered, cat)
		}
	}
	return filtered, nil
}

// CreateCategory adds a user category. Names must be unique per type.
func (r *Repository) CreateCategory(ctx context.Context, name string, recordType model.RecordType, icon string) (model.Category, error) {
	if err := ctx.Err(); err != nil {
		return model.Category{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, common.NewValidationError("name", "is required")
	}
	if !recordType.Valid() {
		return model.Category{}, common.NewValidationError("type", "must be one of: expense income")
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = model.DefaultIcon
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	categories := r.loadCategories(ctx)
	for _, cat := range categories {
		if cat.Type == recordType && cat.Name == name {
			return model.Category{}, common.NewValidationError("name", fmt.Sprintf("%q already exists for %s", name, recordType))
		}
	}

	cat := model.Category{
		ID:   r.ids.NewID(),
		Name: name,
		Icon: icon,
		Type: recordType,
	}
	categories = append(categories, cat)

	if err := r.adapter.Save(ctx, storage.KeyCategories, categories); err != nil {
		return model.Category{}, err
	}
	return cat, nil
}

// DeleteCategory removes a category. Records referencing it keep the id and
// render with the unknown placeholder.
func (r *Repository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	categories := r.loadCategories(ctx)
	kept := make([]model.Category, 0, len(categories))
	for _, cat := range categories {
		if cat.ID != id {
			kept = append(kept, cat)
		}
	}
	if len(kept) == len(categories) {
		return false, nil
	}

	if err := r.adapter.Save(ctx, storage.KeyCategories, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceCategories overwrites the whole categories collection.
func (r *Repository) ReplaceCategories(ctx context.Context, categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.adapter.Save(ctx, storage.KeyCategories, categories)
}
