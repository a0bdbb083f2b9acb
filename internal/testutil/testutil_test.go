package testutil_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/kv"
	"expensetracker/internal/models"
	"expensetracker/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	if err := db.Table("kv_entries").Count(&count).Error; err != nil {
		t.Errorf("table kv_entries should exist after migration: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty kv_entries, got %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	store := testutil.SetupMemoryStore(t)

	id := testutil.CreateTestUser(t, store)
	if !id.Valid() {
		t.Fatal("identity should carry a user id")
	}

	var users []models.StoredUser
	if err := kv.GetJSON(context.Background(), store, "", kv.CollectionUsers, &users); err != nil {
		t.Fatalf("failed to read users: %v", err)
	}
	if len(users) != 1 || users[0].Email != id.Email {
		t.Errorf("expected one stored user %s, got %+v", id.Email, users)
	}

	exp := testutil.NewTestExpense("Lunch", 250, "food", time.Now())
	testutil.SeedExpenses(t, store, id, exp)
	if raw := testutil.GetRaw(t, store, id.UserID, kv.CollectionExpenses); raw == "" {
		t.Error("expected seeded expenses")
	}
}

func TestFlakyStore(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFlakyStore(kv.NewMemory())

	store.FailPutsAfter(1)
	if err := store.Put(ctx, "u", "a", []byte("1")); err != nil {
		t.Fatalf("first put should succeed: %v", err)
	}
	if err := store.Put(ctx, "u", "b", []byte("2")); !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("second put should fail, got %v", err)
	}

	store.FailGets(true)
	if _, err := store.Get(ctx, "u", "a"); !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("get should fail, got %v", err)
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, apperrors.ErrStorage, "STORAGE_ERROR")
	testutil.AssertAppError(t, apperrors.WithMessage(apperrors.ErrInvalidInput, "bad"), "INVALID_INPUT")
}

func TestAssertAmount(t *testing.T) {
	testutil.AssertAmount(t, decimal.RequireFromString("120.50"), "120.5")
}

func TestAssertCollectionUnchanged(t *testing.T) {
	store := testutil.SetupMemoryStore(t)
	id := testutil.NewIdentity()
	testutil.SeedExpenses(t, store, id, testutil.NewTestExpense("Lunch", 300, "food", time.Now()))

	before := testutil.GetRaw(t, store, id.UserID, kv.CollectionExpenses)
	testutil.AssertCollectionUnchanged(t, store, id.UserID, kv.CollectionExpenses, before)
}
