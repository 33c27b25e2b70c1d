package models

// DateLayout is the display format stamped on a post when it is created.
// The value is stored as a string and never changes afterwards, not even
// when the post is edited.
const DateLayout = "2006.01.02."

// Post is a blog entry written by the admin.
type Post struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"index;not null"`
	Title    string `gorm:"size:250;uniqueIndex;not null"`
	Subtitle string `gorm:"size:250;not null"`
	Date     string `gorm:"size:250;not null"`
	Body     string `gorm:"type:text;not null"`
	ImgURL   string `gorm:"size:250;not null"`
	User     User
	Comments []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
