package database

import (
	"fmt"

	"expensetracker/internal/config"
	"expensetracker/internal/kv"
)

// OpenStore opens the key-value backend selected by STORAGE_DRIVER and
// applies pending migrations for SQL backends. The returned close function
// releases the connection pool.
func OpenStore(app *config.Config) (kv.Store, func() error, error) {
	if app.StorageDriver == config.DriverMemory {
		return kv.NewMemory(), func() error { return nil }, nil
	}

	manager, err := NewManager(NewConfig(app))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := manager.Migrate(); err != nil {
		_ = manager.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return kv.NewGorm(manager.DB()), manager.Close, nil
}
