package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// Popular returns up to limit tags ranked by how many published blogs carry
// them. Unused tags rank last; ties break on whatever order the database
// returns.
func (r *TagRepo) Popular(limit int) ([]models.Tag, error) {
	if limit < 1 {
		limit = 20
	}

	var tags []models.Tag
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, COUNT(blogs.id) AS usage_count").
		Joins("LEFT JOIN blog_tags ON blog_tags.tag_id = tags.id").
		Joins("LEFT JOIN blogs ON blogs.id = blog_tags.blog_id AND blogs.is_published = ?", true).
		Group("tags.id").
		Order("usage_count DESC").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

// FindAll returns every tag.
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Find(&tags).Error
	return tags, err
}
