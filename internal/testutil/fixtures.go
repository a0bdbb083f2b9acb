package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"expensetracker/internal/kv"
	"expensetracker/internal/models"
	"expensetracker/internal/session"
)

// TestPassword is the password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewIdentity returns a session identity with a unique user id.
func NewIdentity() session.Identity {
	n := nextID()
	return session.Identity{
		UserID: fmt.Sprintf("user-%d", n),
		Name:   fmt.Sprintf("User %d", n),
		Email:  fmt.Sprintf("user%d@test.com", n),
	}
}

// CreateTestUser stores a registered user with a hashed TestPassword and
// returns its identity.
func CreateTestUser(t *testing.T, store kv.Store) session.Identity {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	id := NewIdentity()
	AppendStoredUser(t, store, models.StoredUser{
		ID:       id.UserID,
		Name:     id.Name,
		Email:    id.Email,
		Password: string(hash),
	})
	return id
}

// AppendStoredUser adds u to the global users list as is, so tests can
// place legacy plaintext accounts.
func AppendStoredUser(t *testing.T, store kv.Store, u models.StoredUser) {
	t.Helper()

	ctx := context.Background()
	var users []models.StoredUser
	if err := kv.GetJSON(ctx, store, "", kv.CollectionUsers, &users); err != nil && !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("failed to read users: %v", err)
	}
	users = append(users, u)
	if err := kv.PutJSON(ctx, store, "", kv.CollectionUsers, users); err != nil {
		t.Fatalf("failed to save users: %v", err)
	}
}

// NewTestExpense builds an expense with a unique id.
func NewTestExpense(description string, amount int64, category string, date time.Time) models.Expense {
	return models.Expense{
		ID:          fmt.Sprintf("exp-%d", nextID()),
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Date:        date,
	}
}

// SeedExpenses stores expenses as the user's whole expense list, replacing
// the sample set a new user would get.
func SeedExpenses(t *testing.T, store kv.Store, id session.Identity, expenses ...models.Expense) {
	t.Helper()
	if expenses == nil {
		expenses = []models.Expense{}
	}
	if err := kv.PutJSON(context.Background(), store, id.UserID, kv.CollectionExpenses, expenses); err != nil {
		t.Fatalf("failed to seed expenses: %v", err)
	}
}

// SeedCategories stores categories as the user's whole category set.
func SeedCategories(t *testing.T, store kv.Store, id session.Identity, categories ...models.Category) {
	t.Helper()
	if categories == nil {
		categories = []models.Category{}
	}
	if err := kv.PutJSON(context.Background(), store, id.UserID, kv.CollectionCategories, categories); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}
}

// PutRaw stores value under the user's collection without encoding.
func PutRaw(t *testing.T, store kv.Store, userID, collection, value string) {
	t.Helper()
	if err := store.Put(context.Background(), userID, collection, []byte(value)); err != nil {
		t.Fatalf("failed to put %s: %v", kv.Key(userID, collection), err)
	}
}

// GetRaw returns the stored bytes under the user's collection, failing the
// test when the key is unset.
func GetRaw(t *testing.T, store kv.Store, userID, collection string) string {
	t.Helper()
	raw, err := store.Get(context.Background(), userID, collection)
	if err != nil {
		t.Fatalf("failed to get %s: %v", kv.Key(userID, collection), err)
	}
	return string(raw)
}
