// Package kv is the persistence boundary of the data layer. Every collection
// of a user is one key holding one JSON document, and every write replaces
// the whole document.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names. Users and Session are global; the rest are namespaced
// by user id.
const (
	CollectionUsers      = "users"
	CollectionSession    = "user"
	CollectionExpenses   = "expenses"
	CollectionCategories = "categories"
	CollectionSettings   = "settings"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a key-value backend. A blank userID addresses a global key.
type Store interface {
	Get(ctx context.Context, userID, collection string) ([]byte, error)
	Put(ctx context.Context, userID, collection string, value []byte) error
	Delete(ctx context.Context, userID, collection string) error
}

// Key is the persisted key name, e.g. "expenses-0190c3...".
func Key(userID, collection string) string {
	if userID == "" {
		return collection
	}
	return collection + "-" + userID
}

// GetJSON decodes the document under the key into v. It returns ErrNotFound
// untouched so callers can seed, and wraps decode failures.
func GetJSON(ctx context.Context, s Store, userID, collection string, v any) error {
	raw, err := s.Get(ctx, userID, collection)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &DecodeError{Key: Key(userID, collection), Err: err}
	}
	return nil
}

// PutJSON encodes v and stores it under the key.
func PutJSON(ctx context.Context, s Store, userID, collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", Key(userID, collection), err)
	}
	return s.Put(ctx, userID, collection, raw)
}

// DecodeError reports a stored document that is not valid JSON for its type.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("kv: corrupt value under %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
