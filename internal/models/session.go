package models

import "time"

// Session is the server-side record behind an issued token. A token only
// resolves while its row exists, so deleting the row revokes the token
// regardless of its embedded expiry.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
