package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
	"expensetracker/internal/session"
)

// StoreProvider builds the per-user stores a request works on.
// *services.Factory is the production implementation.
type StoreProvider interface {
	Expenses(id session.Identity) (services.ExpenseServicer, error)
	Categories(id session.Identity) (services.CategoryServicer, error)
	Settings(id session.Identity) (services.SettingsServicer, error)
}

var _ StoreProvider = (*services.Factory)(nil)

// getIdentity extracts the authenticated identity from the Gin context.
// Returns ErrUnauthorized if not present.
func getIdentity(c *gin.Context) (session.Identity, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return session.Identity{}, apperrors.ErrUnauthorized
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// bindError reports a request body or query that failed binding.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return v, nil
}

// Clock returns the reference time for reports.
type Clock func() time.Time
