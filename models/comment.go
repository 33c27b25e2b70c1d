package models

// Comment is a reply attached to exactly one post. Comments are never
// edited or deleted through any route; they only disappear when their
// parent post is deleted.
type Comment struct {
	ID     uint   `gorm:"primaryKey"`
	PostID uint   `gorm:"index;not null"`
	UserID uint   `gorm:"index;not null"`
	Text   string `gorm:"type:text;not null"`
	User   User
}
