package models

import "time"

// Like marks that a user liked a blog. The composite unique index makes the
// at-most-one-like-per-(blog,user) invariant a database guarantee, so a
// concurrent double toggle cannot insert duplicates.
type Like struct {
	ID     uint `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	BlogID uint `json:"blog_id" db:"blog_id" gorm:"not null;uniqueIndex:idx_like_blog_user"`
	UserID uint `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_like_blog_user"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
}
