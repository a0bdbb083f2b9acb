// Package session carries the identity of the logged-in user into the
// stores. Stores receive it explicitly at construction instead of reading a
// process-wide "current user".
package session

import (
	"context"

	"expensetracker/internal/models"
)

// Identity is the logged-in user a store acts for.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// FromUser builds an identity from a public user record.
func FromUser(u models.User) Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
}

// User returns the public user record.
func (i Identity) User() models.User {
	return models.User{ID: i.UserID, Name: i.Name, Email: i.Email}
}

// Valid reports whether the identity names a user.
func (i Identity) Valid() bool {
	return i.UserID != ""
}

type ctxKey struct{}

// WithIdentity attaches id to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok && id.Valid()
}
