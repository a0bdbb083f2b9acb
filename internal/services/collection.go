package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/kv"
)

// collection is the in-memory snapshot of one persisted list. Every
// successful mutation writes the whole list back under the same key.
type collection[T any] struct {
	store  kv.Store
	userID string
	name   string
	log    *zap.SugaredLogger
	idOf   func(T) string
	seed   func() []T

	items  []T
	loaded bool
}

// load reads the list once. A missing key is seeded and persisted; a corrupt
// value is logged and treated as empty without seeding, so the broken
// document stays in place until the next successful write.
func (c *collection[T]) load(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	var items []T
	err := kv.GetJSON(ctx, c.store, c.userID, c.name, &items)

	var decodeErr *kv.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, kv.ErrNotFound):
		items = c.seed()
		if err := kv.PutJSON(ctx, c.store, c.userID, c.name, items); err != nil {
			c.log.Errorw("Failed to persist seed data", "key", kv.Key(c.userID, c.name), "error", err)
		}
	case errors.As(err, &decodeErr):
		c.log.Errorw("Stored data is corrupt, starting empty", "key", decodeErr.Key, "error", decodeErr.Err)
		items = nil
	default:
		c.log.Errorw("Failed to load data", "key", kv.Key(c.userID, c.name), "error", err)
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if items == nil {
		items = []T{}
	}
	c.items = items
	c.loaded = true
	return nil
}

// snapshot returns a copy of the current items.
func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// find returns the index of id, or -1.
func (c *collection[T]) find(id string) int {
	for i, item := range c.items {
		if c.idOf(item) == id {
			return i
		}
	}
	return -1
}

// commit persists next and adopts it. On failure the current snapshot is
// kept.
func (c *collection[T]) commit(ctx context.Context, next []T) error {
	if err := kv.PutJSON(ctx, c.store, c.userID, c.name, next); err != nil {
		c.log.Errorw("Failed to save data", "key", kv.Key(c.userID, c.name), "error", err)
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	c.items = next
	return nil
}

func (c *collection[T]) add(ctx context.Context, item T) error {
	next := make([]T, 0, len(c.items)+1)
	next = append(next, c.items...)
	next = append(next, item)
	return c.commit(ctx, next)
}

// update applies fn to a copy of the item with id. It reports false when id
// is unknown, in which case nothing is written.
func (c *collection[T]) update(ctx context.Context, id string, fn func(*T)) (bool, error) {
	i := c.find(id)
	if i < 0 {
		return false, nil
	}
	next := c.snapshot()
	fn(&next[i])
	return true, c.commit(ctx, next)
}

// remove deletes the item with id. Unknown ids write nothing.
func (c *collection[T]) remove(ctx context.Context, id string) error {
	i := c.find(id)
	if i < 0 {
		return nil
	}
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return c.commit(ctx, next)
}
