package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
)

// HistoryRepository persists the analysis history as a single JSON document
// under one key, newest entry first.
type HistoryRepository struct {
	kv     KV
	key    string
	logger *zap.Logger
}

// NewHistoryRepository creates a history repository. key is the storage key
// the whole history lives under.
func NewHistoryRepository(kv KV, key string, logger *zap.Logger) *HistoryRepository {
	if key == "" {
		key = "analysisHistory"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryRepository{kv: kv, key: key, logger: logger}
}

// Load returns the stored history, newest first. A missing key or a corrupt
// document yields an empty history rather than an error; corruption is
// logged and the bad document is left in place until the next write.
func (r *HistoryRepository) Load(ctx context.Context) ([]entities.HistoryItem, error) {
	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, apperrors.ErrHistoryFailed("load", err)
	}
	if !found || raw == "" {
		return []entities.HistoryItem{}, nil
	}

	var items []entities.HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.logger.Warn("history document is corrupt, starting fresh", zap.Error(err))
		return []entities.HistoryItem{}, nil
	}

	return items, nil
}

// Find returns the stored item with the given id
func (r *HistoryRepository) Find(ctx context.Context, id int64) (*entities.HistoryItem, error) {
	items, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperrors.ErrNotFound("item do histórico")
}

// Append prepends a new item so the history stays newest-first
func (r *HistoryRepository) Append(ctx context.Context, item entities.HistoryItem) error {
	items, err := r.Load(ctx)
	if err != nil {
		return err
	}

	items = append([]entities.HistoryItem{item}, items...)

	return r.save(ctx, items)
}

// Delete removes a single item by id. Deleting a missing id is a no-op.
func (r *HistoryRepository) Delete(ctx context.Context, id int64) error {
	items, err := r.Load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}

	return r.save(ctx, kept)
}

// Clear removes the whole history
func (r *HistoryRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, r.key); err != nil {
		return apperrors.ErrHistoryFailed("clear", err)
	}
	return nil
}

func (r *HistoryRepository) save(ctx context.Context, items []entities.HistoryItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return apperrors.ErrHistoryFailed("encode", err)
	}
	if err := r.kv.Set(ctx, r.key, string(b)); err != nil {
		return apperrors.ErrHistoryFailed("save", err)
	}
	return nil
}
