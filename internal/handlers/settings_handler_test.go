package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// --- mock service ---

type mockSettingsService struct {
	getFn        func() (models.Settings, error)
	updateFn     func(patch models.SettingsPatch) (models.Settings, error)
	exportJSONFn func(w io.Writer) (string, error)
	importErrFn  func(data []byte) error
}

func (m *mockSettingsService) Get(_ context.Context) (models.Settings, error) {
	if m.getFn != nil {
		return m.getFn()
	}
	return models.DefaultSettings(), nil
}

func (m *mockSettingsService) Update(_ context.Context, patch models.SettingsPatch) (models.Settings, error) {
	if m.updateFn != nil {
		return m.updateFn(patch)
	}
	s := models.DefaultSettings()
	patch.Apply(&s)
	return s, nil
}

func (m *mockSettingsService) FormatCurrency(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

func (m *mockSettingsService) FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func (m *mockSettingsService) Export(_ context.Context) (*models.Backup, error) {
	return &models.Backup{Settings: models.DefaultSettings()}, nil
}

func (m *mockSettingsService) ExportJSON(_ context.Context, w io.Writer) (string, error) {
	if m.exportJSONFn != nil {
		return m.exportJSONFn(w)
	}
	_, err := io.WriteString(w, `{"expenses":[],"categories":[],"settings":{}}`)
	return "expense-tracker-backup-2023-06-15.json", err
}

func (m *mockSettingsService) Import(ctx context.Context, data []byte) bool {
	return m.ImportErr(ctx, data) == nil
}

func (m *mockSettingsService) ImportErr(_ context.Context, data []byte) error {
	if m.importErrFn != nil {
		return m.importErrFn(data)
	}
	return nil
}

// --- helpers ---

func setupSettingsRouter(handler *SettingsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectIdentity(testIdentity))
	auth.GET("/settings", handler.GetSettings)
	auth.PUT("/settings", handler.UpdateSettings)
	auth.GET("/settings/export", handler.ExportData)
	auth.POST("/settings/import", handler.ImportData)
	return r
}

// --- tests ---

func TestSettingsHandler_GetSettings(t *testing.T) {
	r := setupSettingsRouter(NewSettingsHandler(&mockStores{}))

	rec := doRequest(r, "GET", "/settings", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	settings := parseJSON(t, rec)["settings"].(map[string]interface{})
	if settings["currency"] != "₹" {
		t.Errorf("expected default currency, got %v", settings["currency"])
	}
	if settings["monthlyBudget"] != float64(20000) {
		t.Errorf("expected budget 20000, got %v", settings["monthlyBudget"])
	}
	if settings["dateFormat"] != "DD/MM/YYYY" {
		t.Errorf("expected DD/MM/YYYY, got %v", settings["dateFormat"])
	}
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	t.Run("merges the given fields", func(t *testing.T) {
		r := setupSettingsRouter(NewSettingsHandler(&mockStores{}))

		rec := doRequest(r, "PUT", "/settings", `{"currency":"$","darkMode":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		settings := parseJSON(t, rec)["settings"].(map[string]interface{})
		if settings["currency"] != "$" || settings["darkMode"] != true {
			t.Errorf("patch not applied: %v", settings)
		}
		if settings["language"] != "en" {
			t.Errorf("expected language kept, got %v", settings["language"])
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown date format", body: `{"dateFormat":"YYYY/DD/MM"}`},
		{name: "unknown language", body: `{"language":"xx"}`},
		{name: "zero budget", body: `{"monthlyBudget":0}`},
		{name: "empty currency", body: `{"currency":""}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupSettingsRouter(NewSettingsHandler(&mockStores{}))

			rec := doRequest(r, "PUT", "/settings", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}
}

func TestSettingsHandler_ExportData(t *testing.T) {
	t.Run("returns an attachment", func(t *testing.T) {
		r := setupSettingsRouter(NewSettingsHandler(&mockStores{}))

		rec := doRequest(r, "GET", "/settings/export", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		disposition := rec.Header().Get("Content-Disposition")
		if disposition != "attachment; filename=expense-tracker-backup-2023-06-15.json" {
			t.Errorf("unexpected Content-Disposition %q", disposition)
		}
		if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
			t.Errorf("unexpected Content-Type %q", rec.Header().Get("Content-Type"))
		}
		result := parseJSON(t, rec)
		for _, key := range []string{"expenses", "categories", "settings"} {
			if _, ok := result[key]; !ok {
				t.Errorf("expected %s in backup", key)
			}
		}
	})

	t.Run("returns 500 when a collection cannot be read", func(t *testing.T) {
		stores := &mockStores{settings: &mockSettingsService{
			exportJSONFn: func(_ io.Writer) (string, error) { return "", apperrors.ErrStorage },
		}}
		r := setupSettingsRouter(NewSettingsHandler(stores))

		rec := doRequest(r, "GET", "/settings/export", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if rec.Header().Get("Content-Disposition") != "" {
			t.Error("failed export must not be an attachment")
		}
	})
}

func TestSettingsHandler_ImportData(t *testing.T) {
	t.Run("passes the raw document through", func(t *testing.T) {
		var got string
		stores := &mockStores{settings: &mockSettingsService{
			importErrFn: func(data []byte) error {
				got = string(data)
				return nil
			},
		}}
		r := setupSettingsRouter(NewSettingsHandler(stores))

		body := `{"expenses":[],"categories":[],"settings":{"currency":"$"}}`
		rec := doRequest(r, "POST", "/settings/import", body)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != body {
			t.Errorf("expected body passed unchanged, got %q", got)
		}
	})

	t.Run("returns 400 on an invalid backup", func(t *testing.T) {
		stores := &mockStores{settings: &mockSettingsService{
			importErrFn: func(_ []byte) error {
				return apperrors.WithMessage(apperrors.ErrInvalidBackup, "backup is missing settings")
			},
		}}
		r := setupSettingsRouter(NewSettingsHandler(stores))

		rec := doRequest(r, "POST", "/settings/import", `{"expenses":[],"categories":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INVALID_BACKUP")
		if msg := result["error"].(map[string]interface{})["message"]; msg != "backup is missing settings" {
			t.Errorf("unexpected message %v", msg)
		}
	})
}
