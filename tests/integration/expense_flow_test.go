package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"expensetracker/internal/kv"
	"expensetracker/internal/testutil"
)

func TestExpenseFlow_SeedAddUpdateDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Asha", "flow@test.com", "password123")

	// Step 1: A new user starts with the sample data
	expenses := app.listExpenses(t, token, "")
	if len(expenses) != 8 {
		t.Fatalf("expected 8 sample expenses, got %d", len(expenses))
	}
	rec := app.request("GET", "/api/v1/categories", "", token)
	if categories := parseJSON(t, rec)["categories"].([]interface{}); len(categories) != 8 {
		t.Fatalf("expected 8 default categories, got %d", len(categories))
	}

	// Step 2: Add an expense
	rec = app.request("POST", "/api/v1/expenses",
		`{"description":"  Coffee  ","amount":150.25,"category":"food","date":"2023-06-15T08:00:00Z"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)["expense"].(map[string]interface{})
	expenseID := created["id"].(string)
	if created["description"] != "Coffee" {
		t.Errorf("expected trimmed description, got %q", created["description"])
	}
	if len(app.listExpenses(t, token, "")) != 9 {
		t.Fatal("expected 9 expenses after add")
	}

	// Step 3: Search finds it
	if found := app.listExpenses(t, token, "&q=coffee"); len(found) != 1 {
		t.Fatalf("expected search to find 1 expense, got %d", len(found))
	}

	// Step 4: Update only the amount
	rec = app.request("PUT", "/api/v1/expenses/"+expenseID, `{"amount":175}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["expense"].(map[string]interface{})
	if updated["amount"] != float64(175) || updated["description"] != "Coffee" {
		t.Errorf("unexpected update result: %v", updated)
	}

	// Updating an unknown id is a 404
	rec = app.request("PUT", "/api/v1/expenses/does-not-exist", `{"amount":1}`, token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", rec.Code)
	}

	// Step 5: Delete it, twice
	for i := 0; i < 2; i++ {
		rec = app.request("DELETE", "/api/v1/expenses/"+expenseID, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete %d failed: %d %s", i, rec.Code, rec.Body.String())
		}
	}
	if len(app.listExpenses(t, token, "")) != 8 {
		t.Fatal("expected 8 expenses after delete")
	}
}

func TestExpenseFlow_DeletedCategoryLeavesExpenses(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Asha", "cat@test.com", "password123")

	rec := app.request("DELETE", "/api/v1/categories/food", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete category failed: %d %s", rec.Code, rec.Body.String())
	}

	// The food expenses stay and report as Uncategorized
	if food := app.listExpenses(t, token, "&category=food"); len(food) != 2 {
		t.Fatalf("expected 2 food expenses kept, got %d", len(food))
	}
	rec = app.request("GET", "/api/v1/reports/chart?lookback=calendar-year", "", token)
	data := parseJSON(t, rec)["data"].([]interface{})
	var uncategorized bool
	for _, d := range data {
		row := d.(map[string]interface{})
		if row["id"] == "food" {
			uncategorized = row["name"] == "Uncategorized"
		}
	}
	if !uncategorized {
		t.Errorf("expected food to display as Uncategorized, got %v", data)
	}
}

func TestExpenseFlow_UsersAreIsolated(t *testing.T) {
	app := setupApp(t)
	tokenA, userA := app.registerUser(t, "Asha", "a@test.com", "password123")
	tokenB, userB := app.registerUser(t, "Ravi", "b@test.com", "password123")

	rec := app.request("POST", "/api/v1/expenses",
		`{"description":"Only mine","amount":10,"category":"food","date":"2023-06-15T08:00:00Z"}`, tokenA)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	if len(app.listExpenses(t, tokenA, "")) != 9 {
		t.Error("expected user A to have 9 expenses")
	}
	if len(app.listExpenses(t, tokenB, "")) != 8 {
		t.Error("expected user B to keep the 8 samples")
	}

	// Storage keys carry the user id
	if raw := testutil.GetRaw(t, app.Store, userA, kv.CollectionExpenses); !strings.Contains(raw, "Only mine") {
		t.Errorf("expected %s to hold the new expense", kv.Key(userA, kv.CollectionExpenses))
	}
	if raw := testutil.GetRaw(t, app.Store, userB, kv.CollectionExpenses); strings.Contains(raw, "Only mine") {
		t.Errorf("expected %s not to hold user A's expense", kv.Key(userB, kv.CollectionExpenses))
	}
}

func TestSettingsFlow_ExportImportRoundTrip(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := app.registerUser(t, "Asha", "export@test.com", "password123")
	tokenB, _ := app.registerUser(t, "Ravi", "import@test.com", "password123")

	rec := app.request("PUT", "/api/v1/settings", `{"currency":"$","monthlyBudget":5000}`, tokenA)
	if rec.Code != http.StatusOK {
		t.Fatalf("settings update failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 1: Export user A, with the samples loaded
	if len(app.listExpenses(t, tokenA, "")) != 8 {
		t.Fatal("expected user A to start with the samples")
	}
	rec = app.request("GET", "/api/v1/settings/export", "", tokenA)
	if rec.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", rec.Code, rec.Body.String())
	}
	wantName := fmt.Sprintf("expense-tracker-backup-%s.json", fixedNow.Format("2006-01-02"))
	if disposition := rec.Header().Get("Content-Disposition"); !strings.Contains(disposition, wantName) {
		t.Errorf("expected %s in Content-Disposition, got %q", wantName, disposition)
	}
	backup := rec.Body.String()

	// Step 2: An invalid document changes nothing
	rec = app.request("POST", "/api/v1/settings/import", `{"expenses":[]}`, tokenB)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for partial backup, got %d", rec.Code)
	}
	if len(app.listExpenses(t, tokenB, "")) != 8 {
		t.Fatal("failed import must not change data")
	}

	// Step 3: Import A's backup into B
	rec = app.request("POST", "/api/v1/settings/import", backup, tokenB)
	if rec.Code != http.StatusOK {
		t.Fatalf("import failed: %d %s", rec.Code, rec.Body.String())
	}

	if len(app.listExpenses(t, tokenB, "")) != 8 {
		t.Error("expected user B to hold A's 8 expenses")
	}
	rec = app.request("GET", "/api/v1/settings", "", tokenB)
	settings := parseJSON(t, rec)["settings"].(map[string]interface{})
	if settings["currency"] != "$" || settings["monthlyBudget"] != float64(5000) {
		t.Errorf("expected imported settings, got %v", settings)
	}

	// Step 4: Exporting B now yields the same document
	rec = app.request("GET", "/api/v1/settings/export", "", tokenB)
	if rec.Body.String() != backup {
		t.Errorf("expected identical export after import\nA: %s\nB: %s", backup, rec.Body.String())
	}
}

func TestReportFlow_Dashboard(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "Asha", "dash@test.com", "password123")

	rec := app.request("GET", "/api/v1/reports/dashboard", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	summary := result["summary"].(map[string]interface{})

	// Samples: 12373 in total, 8174 of it in June (today, yesterday and a week ago).
	if summary["totalSpent"] != float64(12373) {
		t.Errorf("expected total 12373, got %v", summary["totalSpent"])
	}
	if summary["monthlySpent"] != float64(8174) {
		t.Errorf("expected monthly 8174, got %v", summary["monthlySpent"])
	}
	if summary["weeklySpent"] != float64(8174) {
		t.Errorf("expected weekly 8174, got %v", summary["weeklySpent"])
	}
	formatted := result["formatted"].(map[string]interface{})
	if formatted["totalSpent"] != "₹12,373" {
		t.Errorf("expected ₹12,373, got %v", formatted["totalSpent"])
	}
	if recent := result["recent"].([]interface{}); len(recent) != 5 {
		t.Errorf("expected 5 recent expenses, got %d", len(recent))
	}
}
