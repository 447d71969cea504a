package models

// Category names are unique per owner, enforced by the composite index so
// that two concurrent creates cannot both succeed.
type Category struct {
	BaseModel

	Name   string `gorm:"not null;uniqueIndex:idx_categories_owner_name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_categories_owner_name"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Posts []Post `gorm:"many2many:post_categories"`
}
