package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	"expensetracker/internal/kv"
	"expensetracker/internal/session"
)

// options are shared by every store constructor.
type options struct {
	clock      func() time.Time
	locale     language.Tag
	bcryptCost int
}

// Option customizes a store.
type Option func(*options)

// WithClock replaces time.Now. Seed data dates and backup file names are
// derived from it.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithLocale sets the locale used for thousands grouping.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:      time.Now,
		locale:     language.MustParse("en-IN"),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Factory builds per-user stores over one key-value backend. The HTTP layer
// creates stores per request from the caller's identity.
type Factory struct {
	store kv.Store
	opts  []Option
}

// NewFactory creates a Factory; opts apply to every store it builds.
func NewFactory(store kv.Store, opts ...Option) *Factory {
	return &Factory{store: store, opts: opts}
}

// Auth returns the account service.
func (f *Factory) Auth() AuthServicer {
	return NewAuthService(f.store, f.opts...)
}

// Expenses returns the expense store of id.
func (f *Factory) Expenses(id session.Identity) (ExpenseServicer, error) {
	return NewExpenseService(f.store, id, f.opts...)
}

// Categories returns the category store of id.
func (f *Factory) Categories(id session.Identity) (CategoryServicer, error) {
	return NewCategoryService(f.store, id, f.opts...)
}

// Settings returns the settings store of id.
func (f *Factory) Settings(id session.Identity) (SettingsServicer, error) {
	return NewSettingsService(f.store, id, f.opts...)
}
