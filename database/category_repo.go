package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// CategoryWithStats pairs a category with its published-blog count.
type CategoryWithStats struct {
	models.Category
	BlogCount int64 `json:"blog_count"`
}

// FindByID returns a category by ID, or nil when none exists.
func (r *CategoryRepo) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName returns a category by exact name, or nil when none exists.
func (r *CategoryRepo) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAllActive returns active categories, each with its published-blog count.
func (r *CategoryRepo) FindAllActive() ([]CategoryWithStats, error) {
	var categories []models.Category
	if err := r.db.Where("is_active = ?", true).Find(&categories).Error; err != nil {
		return nil, err
	}

	result := make([]CategoryWithStats, 0, len(categories))
	for _, category := range categories {
		entry := CategoryWithStats{Category: category}
		err := r.db.Model(&models.Blog{}).
			Where("category_id = ? AND is_published = ?", category.ID, true).
			Count(&entry.BlogCount).Error
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

// Add inserts a new category.
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}
