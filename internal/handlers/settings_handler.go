package handlers

import (
	"bytes"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// maxBackupSize bounds an import request body.
const maxBackupSize = 10 << 20

// SettingsHandler handles settings and backup requests
type SettingsHandler struct {
	stores StoreProvider
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(stores StoreProvider) *SettingsHandler {
	return &SettingsHandler{stores: stores}
}

// UpdateSettingsRequest carries the settings to change; omitted fields are kept.
type UpdateSettingsRequest struct {
	Currency             *string            `json:"currency" binding:"omitempty,min=1,max=8"`
	DateFormat           *models.DateFormat `json:"dateFormat" binding:"omitempty,date_format"`
	MonthlyBudget        *decimal.Decimal   `json:"monthlyBudget" binding:"omitempty,positive_decimal" swaggertype:"number"`
	NotificationsEnabled *bool              `json:"notificationsEnabled"`
	DarkMode             *bool              `json:"darkMode"`
	Language             *models.Language   `json:"language" binding:"omitempty,language"`
}

// SettingsResponse wraps the settings record
type SettingsResponse struct {
	Settings models.Settings `json:"settings"`
}

// GetSettings returns the caller's settings
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SettingsResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	store, err := h.stores.Settings(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	settings, err := store.Get(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Settings: settings})
}

// UpdateSettings merges the given fields into the caller's settings
// @Summary     Update settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateSettingsRequest true "Fields to change"
// @Success     200 {object} SettingsResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	store, err := h.stores.Settings(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	settings, err := store.Update(c.Request.Context(), models.SettingsPatch{
		Currency:             req.Currency,
		DateFormat:           req.DateFormat,
		MonthlyBudget:        req.MonthlyBudget,
		NotificationsEnabled: req.NotificationsEnabled,
		DarkMode:             req.DarkMode,
		Language:             req.Language,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Settings: settings})
}

// ExportData downloads the caller's data set as a backup file
// @Summary     Export a backup
// @Description Returns expenses, categories and settings as a JSON attachment
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Backup
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/export [get]
func (h *SettingsHandler) ExportData(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	store, err := h.stores.Settings(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	filename, err := store.ExportJSON(c.Request.Context(), &buf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// ImportData replaces the caller's data set with a backup file
// @Summary     Import a backup
// @Description The document must contain expenses, categories and settings. Nothing is written when it does not.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body models.Backup true "Backup document"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid backup"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/import [post]
func (h *SettingsHandler) ImportData(c *gin.Context) {
	id, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize+1))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Could not read request body"))
		return
	}
	if len(body) > maxBackupSize {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidBackup, "backup is too large"))
		return
	}

	store, err := h.stores.Settings(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := store.ImportErr(c.Request.Context(), body); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Backup imported successfully"})
}
