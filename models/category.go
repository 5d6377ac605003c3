package models

import "time"

// Category groups blogs under an optional foreign key. Categories are never
// cascade-deleted with their blogs.
type Category struct {
	ID          uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Description string `json:"description" db:"description" gorm:"type:text"`
	IsActive    bool   `json:"is_active" db:"is_active" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}
