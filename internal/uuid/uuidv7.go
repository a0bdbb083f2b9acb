// Package uuid generates identifiers for stored records.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 string. Expenses, categories and users
// all get their ids here, so ids sort roughly by creation time.
//
// If the random source fails a random UUIDv4 is returned instead.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// Parse validates a UUID string and returns it in canonical form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a UUID. Seed category ids such as "food" are
// not, which is how callers tell user-created categories from defaults.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
