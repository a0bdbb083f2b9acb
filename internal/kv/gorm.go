package kv

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"expensetracker/internal/models"
)

// Gorm stores keys as rows of kv_entries through GORM, so the same code runs
// against SQLite and PostgreSQL.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an open database. The kv_entries table must exist; the
// database manager's migrations create it.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, userID, collection string) ([]byte, error) {
	var entry models.Entry
	err := g.db.WithContext(ctx).Where("entry_key = ?", Key(userID, collection)).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kv get %s: %w", Key(userID, collection), err)
	}
	return []byte(entry.Value), nil
}

func (g *Gorm) Put(ctx context.Context, userID, collection string, value []byte) error {
	entry := models.Entry{Key: Key(userID, collection), Value: string(value)}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("kv put %s: %w", entry.Key, err)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, userID, collection string) error {
	err := g.db.WithContext(ctx).Where("entry_key = ?", Key(userID, collection)).Delete(&models.Entry{}).Error
	if err != nil {
		return fmt.Errorf("kv delete %s: %w", Key(userID, collection), err)
	}
	return nil
}

// PutMany upserts all values inside one database transaction.
func (g *Gorm) PutMany(ctx context.Context, userID string, values map[string][]byte) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := &Gorm{db: tx}
		for collection, value := range values {
			if err := scoped.Put(ctx, userID, collection, value); err != nil {
				return err
			}
		}
		return nil
	})
}
