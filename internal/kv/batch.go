package kv

import "context"

// Batcher is implemented by stores that can write several collections of
// one user in a single step. Import relies on it so a failed write does not
// leave half a backup behind.
type Batcher interface {
	PutMany(ctx context.Context, userID string, values map[string][]byte) error
}

// PutAll writes every collection in values. It uses PutMany when the store
// supports it and falls back to sequential Puts otherwise.
func PutAll(ctx context.Context, s Store, userID string, values map[string][]byte) error {
	if b, ok := s.(Batcher); ok {
		return b.PutMany(ctx, userID, values)
	}
	for collection, value := range values {
		if err := s.Put(ctx, userID, collection, value); err != nil {
			return err
		}
	}
	return nil
}
