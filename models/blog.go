package models

import (
	"time"
	"unicode/utf8"
)

// maxExcerptLen is the column width of blogs.excerpt.
const maxExcerptLen = 300

// Blog represents a post with its publication state and engagement counters.
// Comments, likes and tag associations are removed with the blog.
type Blog struct {
	ID          uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" db:"title" gorm:"type:text;not null;index"`
	Body        string `json:"body" db:"body" gorm:"type:text;not null"`
	Excerpt     string `json:"excerpt" db:"excerpt" gorm:"type:varchar(300)"`
	IsPublished bool   `json:"is_published" db:"is_published" gorm:"not null;default:false"`
	IsFeatured  bool   `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	ViewCount   int    `json:"view_count" db:"view_count" gorm:"not null;default:0"`

	UserID     uint  `json:"user_id" db:"user_id" gorm:"not null;index"`
	CategoryID *uint `json:"category_id" db:"category_id" gorm:"index"`

	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at" gorm:"not null"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`

	Creator  *User     `json:"creator,omitempty" gorm:"foreignKey:UserID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags     []Tag     `json:"tags" gorm:"many2many:blog_tags"`
	Comments []Comment `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	Likes    []Like    `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
}

// DeriveExcerpt returns the stored excerpt, or builds one from the body:
// bodies longer than the excerpt column are truncated to 297 characters plus
// an ellipsis.
func DeriveExcerpt(excerpt, body string) string {
	if excerpt != "" {
		return excerpt
	}
	if utf8.RuneCountInString(body) <= maxExcerptLen {
		return body
	}
	// slice on rune boundaries so multi-byte text is never cut mid-character
	return string([]rune(body)[:maxExcerptLen-3]) + "..."
}
