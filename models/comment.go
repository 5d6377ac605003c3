package models

import "time"

// Comment belongs to one blog and one user. ParentID points at another
// comment on the same blog for replies; top-level comments have a nil parent.
type Comment struct {
	ID         uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Content    string `json:"content" db:"content" gorm:"type:text;not null"`
	IsApproved bool   `json:"is_approved" db:"is_approved" gorm:"not null"`

	BlogID   uint  `json:"blog_id" db:"blog_id" gorm:"not null;index"`
	UserID   uint  `json:"user_id" db:"user_id" gorm:"not null;index"`
	ParentID *uint `json:"parent_id" db:"parent_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`

	Author *User    `json:"author,omitempty" gorm:"foreignKey:UserID"`
	Blog   *Blog    `json:"-" gorm:"foreignKey:BlogID"`
	Parent *Comment `json:"-" gorm:"foreignKey:ParentID"`
}
