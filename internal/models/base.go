package models

import "time"

// BaseModel is the common primary key + timestamp set shared by all rows.
// Deletes are hard deletes: a soft-deleted row would keep occupying the
// per-owner unique name indexes on categories and tags.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
