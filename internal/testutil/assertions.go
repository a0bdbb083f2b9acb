package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/kv"
)

// AssertAppError fails unless err wraps an *AppError carrying code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected %s error, got nil", code)
	case !errors.As(err, &appErr):
		t.Fatalf("expected %s error, got %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("expected %s error, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAmount compares by value, so "120.5" matches 120.50.
func AssertAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected amount %s, got %s", want, got)
	}
}

// AssertCollectionUnchanged fails when the raw value of a user's collection
// differs from before, the value read earlier with GetRaw.
func AssertCollectionUnchanged(t *testing.T, store kv.Store, userID, collection, before string) {
	t.Helper()

	if after := GetRaw(t, store, userID, collection); after != before {
		t.Errorf("%s changed:\nbefore: %s\nafter:  %s", kv.Key(userID, collection), before, after)
	}
}
