package models

import (
	"time"
)

// User represents a registered account. The password column holds a bcrypt
// hash and is never serialized.
type User struct {
	ID       uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" db:"name" gorm:"type:text;not null"`
	Email    string `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Password string `json:"-" db:"password" gorm:"type:text;not null"`
	IsActive bool   `json:"is_active" db:"is_active" gorm:"not null"`
	IsAdmin  bool   `json:"is_admin" db:"is_admin" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`

	Blogs    []Blog    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Likes    []Like    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
