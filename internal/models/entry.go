package models

import "time"

// Entry is one key of the SQL-backed key-value store. Value holds the JSON
// document for the key, e.g. the full expense array of one user.
type Entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name used by the SQL migrations.
func (Entry) TableName() string {
	return "kv_entries"
}
