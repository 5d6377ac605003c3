package models

import (
	"strings"
	"time"
)

// Tag is a label attached to blogs through the blog_tags join table. Names
// are trimmed and lowercased before they reach the database, so the unique
// index is effectively case-insensitive.
type Tag struct {
	ID    uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Color string `json:"color" db:"color" gorm:"type:text;not null;default:'#007bff'"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`

	Blogs []Blog `json:"-" gorm:"many2many:blog_tags"`
}

// NormalizeTagNames trims and lowercases tag names, dropping empties and
// duplicates while preserving the order of first appearance.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	return normalized
}

// BlogTag is the join row between blogs and tags. It exists as a named model
// so the association keeps its own creation timestamp.
type BlogTag struct {
	BlogID    uint      `json:"blog_id" db:"blog_id" gorm:"primaryKey"`
	TagID     uint      `json:"tag_id" db:"tag_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
}
