package models

type Tag struct {
	BaseModel

	Name   string `gorm:"not null;uniqueIndex:idx_tags_owner_name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_owner_name"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Posts []Post `gorm:"many2many:post_tags"`
}
