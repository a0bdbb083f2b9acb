package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

// AuthServicer registers local accounts and tracks the active session
// pointer. It is a local credential check, not a security boundary.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ExpenseServicer is the expense store of one user.
//
// IsLoading is true until Load (or the first call that needs data)
// completes; Update and Delete on an unknown id are silent no-ops.
type ExpenseServicer interface {
	Load(ctx context.Context) error
	IsLoading() bool
	List(ctx context.Context) ([]models.Expense, error)
	Get(ctx context.Context, id string) (*models.Expense, error)
	Add(ctx context.Context, expense models.NewExpense) (*models.Expense, error)
	Update(ctx context.Context, id string, patch models.ExpensePatch) error
	Delete(ctx context.Context, id string) error
}

// CategoryServicer is the category store of one user. Deleting a category
// does not touch expenses that reference it.
type CategoryServicer interface {
	Load(ctx context.Context) error
	IsLoading() bool
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Add(ctx context.Context, category models.NewCategory) (*models.Category, error)
	Update(ctx context.Context, id string, patch models.CategoryPatch) error
	Delete(ctx context.Context, id string) error
}

// SettingsServicer holds one user's settings, formats values with them, and
// moves the user's whole data set in and out as a backup document.
type SettingsServicer interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, patch models.SettingsPatch) (models.Settings, error)
	FormatCurrency(amount decimal.Decimal) string
	FormatDate(t time.Time) string
	Export(ctx context.Context) (*models.Backup, error)
	ExportJSON(ctx context.Context, w io.Writer) (filename string, err error)
	Import(ctx context.Context, data []byte) bool
	ImportErr(ctx context.Context, data []byte) error
}
