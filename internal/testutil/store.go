package testutil

import (
	"context"
	"errors"
	"sync"

	"expensetracker/internal/kv"
)

// ErrInjected is returned by a FlakyStore operation that was told to fail.
var ErrInjected = errors.New("testutil: injected storage failure")

// FlakyStore wraps a store and fails reads or writes on demand.
type FlakyStore struct {
	kv.Store

	mu        sync.Mutex
	failGet   bool
	failPut   bool
	putCalls  int
	failAfter int
}

// NewFlakyStore wraps inner.
func NewFlakyStore(inner kv.Store) *FlakyStore {
	return &FlakyStore{Store: inner, failAfter: -1}
}

// FailGets makes every Get fail.
func (f *FlakyStore) FailGets(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet = fail
}

// FailPuts makes every Put fail.
func (f *FlakyStore) FailPuts(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPut = fail
}

// FailPutsAfter lets n more Puts succeed and fails the rest.
func (f *FlakyStore) FailPutsAfter(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls = 0
	f.failAfter = n
}

func (f *FlakyStore) Get(ctx context.Context, userID, collection string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return f.Store.Get(ctx, userID, collection)
}

func (f *FlakyStore) Put(ctx context.Context, userID, collection string, value []byte) error {
	f.mu.Lock()
	fail := f.failPut || (f.failAfter >= 0 && f.putCalls >= f.failAfter)
	f.putCalls++
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.Store.Put(ctx, userID, collection, value)
}
