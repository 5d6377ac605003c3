package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by ID, or nil when none exists.
func (r *CommentRepo) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// TopLevelForBlog returns the approved top-level comments of a blog, newest
// first, with authors loaded.
func (r *CommentRepo) TopLevelForBlog(blogID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("blog_id = ? AND is_approved = ? AND parent_id IS NULL", blogID, true).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// RepliesTo returns the approved direct replies of a comment, oldest first.
func (r *CommentRepo) RepliesTo(parentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.Preload("Author").
		Where("parent_id = ? AND is_approved = ?", parentID, true).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// Add inserts a new comment.
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListByUser pages through a user's approved comments on published blogs,
// newest first, with the blog and its creator loaded for the response shape.
func (r *CommentRepo) ListByUser(userID uint, page, perPage int) ([]models.Comment, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	var comments []models.Comment
	err := r.db.Preload("Blog").Preload("Blog.Creator").
		Joins("JOIN blogs ON blogs.id = comments.blog_id").
		Where("comments.user_id = ? AND blogs.is_published = ? AND comments.is_approved = ?", userID, true, true).
		Order("comments.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error
	return comments, err
}
