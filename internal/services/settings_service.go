package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/kv"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/session"
)

// settingsService handles the settings record and backups of one user.
type settingsService struct {
	store  kv.Store
	userID string
	opts   options
	log    *zap.SugaredLogger

	settings models.Settings
	loaded   bool
}

// NewSettingsService creates a new SettingsServicer for id.
func NewSettingsService(store kv.Store, id session.Identity, opts ...Option) (SettingsServicer, error) {
	if !id.Valid() {
		return nil, apperrors.ErrUnauthorized
	}
	return &settingsService{
		store:    store,
		userID:   id.UserID,
		opts:     buildOptions(opts),
		log:      logger.ForUser("settings", id.UserID),
		settings: models.DefaultSettings(),
	}, nil
}

func (s *settingsService) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	stored := models.DefaultSettings()
	err := kv.GetJSON(ctx, s.store, s.userID, kv.CollectionSettings, &stored)

	var decodeErr *kv.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, kv.ErrNotFound):
		if err := kv.PutJSON(ctx, s.store, s.userID, kv.CollectionSettings, stored); err != nil {
			s.log.Errorw("Failed to persist default settings", "error", err)
		}
	case errors.As(err, &decodeErr):
		s.log.Errorw("Stored settings are corrupt, using defaults", "key", decodeErr.Key, "error", decodeErr.Err)
		stored = models.DefaultSettings()
	default:
		s.log.Errorw("Failed to load settings", "error", err)
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	s.settings = stored
	s.loaded = true
	return nil
}

// Get returns the user's settings, creating the defaults on first access.
func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	if err := s.load(ctx); err != nil {
		return models.Settings{}, err
	}
	return s.settings, nil
}

// Update merges the patch into the stored settings.
func (s *settingsService) Update(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	if err := validateSettingsPatch(&patch); err != nil {
		return models.Settings{}, err
	}
	if err := s.load(ctx); err != nil {
		return models.Settings{}, err
	}

	next := s.settings
	patch.Apply(&next)
	if err := kv.PutJSON(ctx, s.store, s.userID, kv.CollectionSettings, next); err != nil {
		s.log.Errorw("Failed to save settings", "error", err)
		return models.Settings{}, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	s.settings = next
	return next, nil
}

func validateSettingsPatch(patch *models.SettingsPatch) error {
	if patch.Currency != nil {
		trimmed := strings.TrimSpace(*patch.Currency)
		if trimmed == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "currency is required")
		}
		patch.Currency = &trimmed
	}
	if patch.MonthlyBudget != nil && !patch.MonthlyBudget.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly budget must be greater than zero")
	}
	if patch.DateFormat != nil && !patch.DateFormat.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown date format")
	}
	if patch.Language != nil && !patch.Language.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported language")
	}
	return nil
}

// FormatCurrency renders amount with the user's currency symbol. Before the
// settings are loaded the default symbol is used.
func (s *settingsService) FormatCurrency(amount decimal.Decimal) string {
	return FormatCurrency(s.settings.Currency, amount, s.opts.locale)
}

// FormatDate renders t in the user's date format, in the clock's location.
func (s *settingsService) FormatDate(t time.Time) string {
	return FormatDate(t.In(s.opts.clock().Location()), s.settings.DateFormat)
}

// Export bundles the user's expenses, categories and settings. Collections
// that were never written export as empty lists.
func (s *settingsService) Export(ctx context.Context) (*models.Backup, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	backup := &models.Backup{
		Expenses:   []models.Expense{},
		Categories: []models.Category{},
		Settings:   settings,
	}
	if err := s.readCollection(ctx, kv.CollectionExpenses, &backup.Expenses); err != nil {
		return nil, err
	}
	if err := s.readCollection(ctx, kv.CollectionCategories, &backup.Categories); err != nil {
		return nil, err
	}
	if backup.Expenses == nil {
		backup.Expenses = []models.Expense{}
	}
	if backup.Categories == nil {
		backup.Categories = []models.Category{}
	}
	return backup, nil
}

func (s *settingsService) readCollection(ctx context.Context, collection string, v any) error {
	err := kv.GetJSON(ctx, s.store, s.userID, collection, v)
	if err == nil || errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	s.log.Errorw("Failed to read collection for export", "key", kv.Key(s.userID, collection), "error", err)
	return apperrors.Wrap(apperrors.ErrStorage, err)
}

// ExportJSON writes the backup document to w and returns its file name.
func (s *settingsService) ExportJSON(ctx context.Context, w io.Writer) (string, error) {
	backup, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	if err := json.NewEncoder(w).Encode(backup); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return BackupFileName(s.opts.clock()), nil
}

// Import replaces the user's data with a backup document and reports
// whether it was accepted.
func (s *settingsService) Import(ctx context.Context, data []byte) bool {
	if err := s.ImportErr(ctx, data); err != nil {
		s.log.Warnw("Backup import rejected", "error", err)
		return false
	}
	return true
}

// ImportErr is Import with the rejection reason. The whole document is
// decoded before anything is written; a document missing any of expenses,
// categories or settings is rejected without changes.
func (s *settingsService) ImportErr(ctx context.Context, data []byte) error {
	var doc struct {
		Expenses   json.RawMessage `json:"expenses"`
		Categories json.RawMessage `json:"categories"`
		Settings   json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}
	sections := []struct {
		name string
		raw  json.RawMessage
	}{
		{"expenses", doc.Expenses},
		{"categories", doc.Categories},
		{"settings", doc.Settings},
	}
	for _, section := range sections {
		if isAbsent(section.raw) {
			return apperrors.WithMessage(apperrors.ErrInvalidBackup, "backup is missing "+section.name)
		}
	}

	var expenses []models.Expense
	if err := json.Unmarshal(doc.Expenses, &expenses); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}
	var categories []models.Category
	if err := json.Unmarshal(doc.Categories, &categories); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}
	settings := models.DefaultSettings()
	if err := json.Unmarshal(doc.Settings, &settings); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}

	values := make(map[string][]byte, 3)
	for collection, v := range map[string]any{
		kv.CollectionExpenses:   expenses,
		kv.CollectionCategories: categories,
		kv.CollectionSettings:   settings,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidBackup, err)
		}
		values[collection] = raw
	}

	if err := kv.PutAll(ctx, s.store, s.userID, values); err != nil {
		s.log.Errorw("Failed to write imported backup", "error", err)
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	s.settings = settings
	s.loaded = true
	return nil
}

// isAbsent matches a key that was missing or explicitly null.
func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
