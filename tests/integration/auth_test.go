package integration

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"expensetracker/internal/kv"
	"expensetracker/internal/testutil"
)

func TestAuthFlow_RegisterLoginProfileLogout(t *testing.T) {
	app := setupApp(t)

	// Step 1: Register
	token, userID := app.registerUser(t, "Asha", "auth@test.com", "password123")
	if token == "" || userID == "" {
		t.Fatal("expected token and user id from registration")
	}

	// The password is stored hashed and the session pointer is set.
	users := testutil.GetRaw(t, app.Store, "", kv.CollectionUsers)
	if strings.Contains(users, `"password":"password123"`) {
		t.Error("password must not be stored in plaintext")
	}
	if session := testutil.GetRaw(t, app.Store, "", kv.CollectionSession); !strings.Contains(session, userID) {
		t.Errorf("expected session pointer for %s, got %s", userID, session)
	}

	// Step 2: Login with same credentials, email case does not matter
	loginToken := app.loginUser(t, "AUTH@test.com", "password123")

	// Step 3: Access profile with login token
	rec := app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["email"] != "auth@test.com" {
		t.Errorf("expected email auth@test.com, got %v", user["email"])
	}

	// Step 4: Logout clears the session pointer
	rec = app.request("POST", "/api/v1/auth/logout", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout failed: %d %s", rec.Code, rec.Body.String())
	}
	if _, err := app.Store.Get(t.Context(), "", kv.CollectionSession); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expected session pointer removed, got %v", err)
	}
}

func TestAuthFlow_RegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "Asha", "dup@test.com", "password123")

	// Try to register again with same email
	rec := app.request("POST", "/api/v1/auth/register",
		`{"name":"Other","email":"dup@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %v", errObj["code"])
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "Asha", "wrong@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/login", `{"email":"wrong@test.com","password":"nope"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", errObj["code"])
	}
}

func TestAuthFlow_ProtectedRoutesNeedToken(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/api/v1/profile", "/api/v1/expenses", "/api/v1/settings", "/api/v1/reports/dashboard"} {
		rec := app.request("GET", path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}

	rec := app.request("GET", "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}
}
