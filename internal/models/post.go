package models

type Post struct {
	BaseModel

	Title   string `gorm:"not null"`
	Content string `gorm:"type:text;not null"` // serialized rich text, opaque to the backend
	UserID  uint   `gorm:"not null;index"`

	// Relationships
	User       User       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Categories []Category `gorm:"many2many:post_categories"`
	Tags       []Tag      `gorm:"many2many:post_tags"`
}
