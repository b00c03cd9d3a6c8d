package models

import "time"

// Timestamps are the creation and modification columns shared by most tables.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
