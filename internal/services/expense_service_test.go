package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/kv"
	"expensetracker/internal/models"
	"expensetracker/internal/session"
	"expensetracker/internal/testutil"
)

func newExpenseSvc(t *testing.T, store kv.Store, id session.Identity) ExpenseServicer {
	t.Helper()
	svc, err := NewExpenseService(store, id, testOptions()...)
	testutil.AssertNoError(t, err)
	return svc
}

func storedExpenses(t *testing.T, store kv.Store, id session.Identity) []models.Expense {
	t.Helper()
	var out []models.Expense
	if err := json.Unmarshal([]byte(testutil.GetRaw(t, store, id.UserID, kv.CollectionExpenses)), &out); err != nil {
		t.Fatalf("stored expenses are not valid JSON: %v", err)
	}
	return out
}

func TestNewExpenseService(t *testing.T) {
	_, err := NewExpenseService(kv.NewMemory(), session.Identity{}, testOptions()...)
	testutil.AssertAppError(t, err, "UNAUTHORIZED")
}

func TestExpenseLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds_sample_data", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		svc := newExpenseSvc(t, store, id)

		if !svc.IsLoading() {
			t.Error("expected store to be loading before Load")
		}
		testutil.AssertNoError(t, svc.Load(ctx))
		if svc.IsLoading() {
			t.Error("expected store to be loaded after Load")
		}

		list, err := svc.List(ctx)
		testutil.AssertNoError(t, err)
		if len(list) != 8 {
			t.Fatalf("expected 8 sample expenses, got %d", len(list))
		}

		total := decimal.Zero
		for _, e := range list {
			total = total.Add(e.Amount)
		}
		if !total.Equal(decimal.NewFromInt(12373)) {
			t.Errorf("expected sample total 12373, got %s", total)
		}
		if list[2].Description != "Movie tickets" || !list[2].Date.Equal(fixedNow) {
			t.Errorf("expected movie tickets dated today, got %+v", list[2])
		}
		if want := fixedNow.AddDate(0, -1, 0); !list[7].Date.Equal(want) {
			t.Errorf("expected clothes shopping dated %v, got %v", want, list[7].Date)
		}

		if got := storedExpenses(t, store, id); len(got) != 8 {
			t.Errorf("expected seed data to be persisted, got %d records", len(got))
		}
	})

	t.Run("existing_data_not_reseeded", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		testutil.SeedExpenses(t, store, id)
		svc := newExpenseSvc(t, store, id)

		list, err := svc.List(ctx)
		testutil.AssertNoError(t, err)
		if len(list) != 0 {
			t.Errorf("expected empty list, got %d", len(list))
		}
	})

	t.Run("corrupt_data_falls_back_to_empty", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		testutil.PutRaw(t, store, id.UserID, kv.CollectionExpenses, "{not json")
		svc := newExpenseSvc(t, store, id)

		testutil.AssertNoError(t, svc.Load(ctx))
		list, _ := svc.List(ctx)
		if len(list) != 0 {
			t.Errorf("expected empty list, got %d", len(list))
		}
		if raw := testutil.GetRaw(t, store, id.UserID, kv.CollectionExpenses); raw != "{not json" {
			t.Errorf("corrupt value should be left in place, got %q", raw)
		}
	})

	t.Run("read_failure", func(t *testing.T) {
		store := testutil.NewFlakyStore(kv.NewMemory())
		store.FailGets(true)
		svc := newExpenseSvc(t, store, testutil.NewIdentity())

		testutil.AssertAppError(t, svc.Load(ctx), "STORAGE_ERROR")
		if !svc.IsLoading() {
			t.Error("store should stay loading after a failed read")
		}
	})

	t.Run("users_are_isolated", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		alice, bob := testutil.NewIdentity(), testutil.NewIdentity()
		testutil.SeedExpenses(t, store, alice, testutil.NewTestExpense("Rent", 100, "utilities", fixedNow))
		testutil.SeedExpenses(t, store, bob)

		list, err := newExpenseSvc(t, store, bob).List(ctx)
		testutil.AssertNoError(t, err)
		if len(list) != 0 {
			t.Errorf("bob should not see alice's expenses, got %d", len(list))
		}
	})
}

func TestAddExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		testutil.SeedExpenses(t, store, id)
		svc := newExpenseSvc(t, store, id)

		exp, err := svc.Add(ctx, models.NewExpense{
			Description: "  Coffee ",
			Amount:      decimal.RequireFromString("120.50"),
			Category:    "food",
			Date:        fixedNow,
		})
		testutil.AssertNoError(t, err)

		if exp.ID == "" {
			t.Fatal("expected an assigned ID")
		}
		if exp.Description != "Coffee" {
			t.Errorf("expected trimmed description, got %q", exp.Description)
		}

		list, _ := svc.List(ctx)
		if len(list) != 1 || list[0].ID != exp.ID {
			t.Fatalf("expected list to contain the new expense, got %+v", list)
		}

		stored := storedExpenses(t, store, id)
		if len(stored) != 1 {
			t.Fatalf("expected 1 stored expense, got %d", len(stored))
		}
		testutil.AssertAmount(t, stored[0].Amount, "120.5")
	})

	t.Run("unique_ids", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		testutil.SeedExpenses(t, store, id)
		svc := newExpenseSvc(t, store, id)

		input := models.NewExpense{Description: "Tea", Amount: decimal.NewFromInt(20), Category: "food", Date: fixedNow}
		a, err := svc.Add(ctx, input)
		testutil.AssertNoError(t, err)
		b, err := svc.Add(ctx, input)
		testutil.AssertNoError(t, err)
		if a.ID == b.ID {
			t.Errorf("expected distinct IDs, both were %s", a.ID)
		}
	})

	invalid := []struct {
		name  string
		input models.NewExpense
	}{
		{"empty_description", models.NewExpense{Description: " ", Amount: decimal.NewFromInt(1), Category: "food", Date: fixedNow}},
		{"zero_amount", models.NewExpense{Description: "x", Amount: decimal.Zero, Category: "food", Date: fixedNow}},
		{"negative_amount", models.NewExpense{Description: "x", Amount: decimal.NewFromInt(-5), Category: "food", Date: fixedNow}},
		{"no_category", models.NewExpense{Description: "x", Amount: decimal.NewFromInt(1), Date: fixedNow}},
		{"no_date", models.NewExpense{Description: "x", Amount: decimal.NewFromInt(1), Category: "food"}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			store := testutil.SetupMemoryStore(t)
			id := testutil.NewIdentity()
			testutil.SeedExpenses(t, store, id)
			svc := newExpenseSvc(t, store, id)

			_, err := svc.Add(ctx, tc.input)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
			if got := storedExpenses(t, store, id); len(got) != 0 {
				t.Errorf("invalid expense should not be stored, got %d", len(got))
			}
		})
	}

	t.Run("write_failure_keeps_snapshot", func(t *testing.T) {
		store := testutil.NewFlakyStore(kv.NewMemory())
		id := testutil.NewIdentity()
		testutil.SeedExpenses(t, store, id, testutil.NewTestExpense("Rent", 100, "utilities", fixedNow))
		svc := newExpenseSvc(t, store, id)
		testutil.AssertNoError(t, svc.Load(ctx))

		store.FailPuts(true)
		_, err := svc.Add(ctx, models.NewExpense{Description: "x", Amount: decimal.NewFromInt(1), Category: "food", Date: fixedNow})
		testutil.AssertAppError(t, err, "STORAGE_ERROR")

		list, _ := svc.List(ctx)
		if len(list) != 1 {
			t.Errorf("expected snapshot unchanged, got %d items", len(list))
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC)

	t.Run("merges_fields", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		original := testutil.NewTestExpense("Groceries", 500, "food", date)
		original.Notes = "weekly"
		testutil.SeedExpenses(t, store, id, original)
		svc := newExpenseSvc(t, store, id)

		amount := decimal.NewFromInt(650)
		testutil.AssertNoError(t, svc.Update(ctx, original.ID, models.ExpensePatch{Amount: &amount}))

		got, err := svc.Get(ctx, original.ID)
		testutil.AssertNoError(t, err)
		if !got.Amount.Equal(amount) {
			t.Errorf("expected amount 650, got %s", got.Amount)
		}
		if got.Description != "Groceries" || got.Category != "food" || got.Notes != "weekly" || !got.Date.Equal(date) {
			t.Errorf("untouched fields changed: %+v", got)
		}
		testutil.AssertAmount(t, storedExpenses(t, store, id)[0].Amount, "650")
	})

	t.Run("unknown_id_is_noop", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		testutil.SeedExpenses(t, store, id, testutil.NewTestExpense("Groceries", 500, "food", date))
		before := testutil.GetRaw(t, store, id.UserID, kv.CollectionExpenses)
		svc := newExpenseSvc(t, store, id)

		desc := "changed"
		testutil.AssertNoError(t, svc.Update(ctx, "missing", models.ExpensePatch{Description: &desc}))
		testutil.AssertCollectionUnchanged(t, store, id.UserID, kv.CollectionExpenses, before)
	})

	t.Run("invalid_amount", func(t *testing.T) {
		store := testutil.SetupMemoryStore(t)
		id := testutil.NewIdentity()
		original := testutil.NewTestExpense("Groceries", 500, "food", date)
		testutil.SeedExpenses(t, store, id, original)
		svc := newExpenseSvc(t, store, id)

		zero := decimal.Zero
		testutil.AssertAppError(t, svc.Update(ctx, original.ID, models.ExpensePatch{Amount: &zero}), "INVALID_INPUT")
	})
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupMemoryStore(t)
	id := testutil.NewIdentity()
	keep := testutil.NewTestExpense("Keep", 10, "food", fixedNow)
	drop := testutil.NewTestExpense("Drop", 20, "food", fixedNow)
	testutil.SeedExpenses(t, store, id, keep, drop)
	svc := newExpenseSvc(t, store, id)

	testutil.AssertNoError(t, svc.Delete(ctx, drop.ID))
	testutil.AssertNoError(t, svc.Delete(ctx, drop.ID))

	list, _ := svc.List(ctx)
	if len(list) != 1 || list[0].ID != keep.ID {
		t.Fatalf("expected only %s to remain, got %+v", keep.ID, list)
	}

	_, err := svc.Get(ctx, drop.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}

func TestExpenseServiceOnGorm(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupGormStore(t)
	id := testutil.NewIdentity()
	svc := newExpenseSvc(t, store, id)

	list, err := svc.List(ctx)
	testutil.AssertNoError(t, err)
	if len(list) != 8 {
		t.Fatalf("expected seeded sample set, got %d", len(list))
	}

	testutil.AssertNoError(t, svc.Delete(ctx, list[0].ID))

	reloaded, err := newExpenseSvc(t, store, id).List(ctx)
	testutil.AssertNoError(t, err)
	if len(reloaded) != 7 {
		t.Errorf("expected 7 expenses after reload, got %d", len(reloaded))
	}
}
