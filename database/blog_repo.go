package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// BlogFilter narrows a listing. Nil pointer fields mean "no constraint".
type BlogFilter struct {
	CategoryID  *uint
	TagNames    []string // any-of match
	IsPublished *bool
	IsFeatured  *bool
	AuthorID    *uint
	Search      string // case-insensitive substring over title and body

	// RestrictDrafts hides unpublished blogs from everyone but their author.
	RestrictDrafts bool
}

// ListParams bundles filter, sort and pagination for the blog listing.
type ListParams struct {
	Filter    BlogFilter
	SortBy    string // created_at, title or view_count; anything else falls back to created_at
	SortOrder string // asc or desc, default desc
	Page      int    // 1-based
	PerPage   int    // 1..100, default 10
}

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// sortColumns is the allow-list of sortable fields. Unrecognized keys fall
// back to created_at rather than erroring.
var sortColumns = map[string]string{
	"created_at": "blogs.created_at",
	"title":      "blogs.title",
	"view_count": "blogs.view_count",
}

// BlogWithStats decorates a blog with its derived engagement counters.
type BlogWithStats struct {
	models.Blog
	CommentCount int64 `json:"comment_count"`
	LikeCount    int64 `json:"like_count"`
	IsLiked      bool  `json:"is_liked"`
}

// normalize clamps pagination and resolves the sort clause.
func (p *ListParams) normalize() (orderClause string) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}

	column, ok := sortColumns[p.SortBy]
	if !ok {
		column = sortColumns["created_at"]
	}
	direction := "DESC"
	if strings.EqualFold(p.SortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

// filtered applies the filter predicate to a blogs query. The same predicate
// backs both the page slice and the total count so the two stay consistent.
func (r *BlogRepo) filtered(f BlogFilter, viewerID *uint) *gorm.DB {
	query := r.db.Model(&models.Blog{})

	if f.CategoryID != nil {
		query = query.Where("blogs.category_id = ?", *f.CategoryID)
	}
	if f.IsPublished != nil {
		query = query.Where("blogs.is_published = ?", *f.IsPublished)
	}
	if f.IsFeatured != nil {
		query = query.Where("blogs.is_featured = ?", *f.IsFeatured)
	}
	if f.AuthorID != nil {
		query = query.Where("blogs.user_id = ?", *f.AuthorID)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			r.db.Where("LOWER(blogs.title) LIKE ?", pattern).Or("LOWER(blogs.body) LIKE ?", pattern),
		)
	}
	if f.RestrictDrafts {
		if viewerID != nil {
			query = query.Where(
				r.db.Where("blogs.is_published = ?", true).Or("blogs.user_id = ?", *viewerID),
			)
		} else {
			query = query.Where("blogs.is_published = ?", true)
		}
	}
	if len(f.TagNames) > 0 {
		// subquery instead of a join so a blog matching several tags still
		// yields one row and the count stays exact
		tagged := r.db.Model(&models.BlogTag{}).
			Select("blog_tags.blog_id").
			Joins("JOIN tags ON tags.id = blog_tags.tag_id").
			Where("tags.name IN ?", models.NormalizeTagNames(f.TagNames))
		query = query.Where("blogs.id IN (?)", tagged)
	}
	return query
}

// List returns one page of blogs with stats plus the total number of rows
// matching the filter. viewerID, when non-nil, drives the is_liked flag.
func (r *BlogRepo) List(params ListParams, viewerID *uint) ([]BlogWithStats, int64, error) {
	orderClause := params.normalize()

	var total int64
	if err := r.filtered(params.Filter, viewerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []models.Blog
	err := r.filtered(params.Filter, viewerID).
		Preload("Creator").
		Preload("Category").
		Preload("Tags").
		Order(orderClause).
		Offset((params.Page - 1) * params.PerPage).
		Limit(params.PerPage).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}

	withStats, err := r.WithStats(blogs, viewerID)
	return withStats, total, err
}

// WithStats attaches comment/like counters and the viewer's like state.
func (r *BlogRepo) WithStats(blogs []models.Blog, viewerID *uint) ([]BlogWithStats, error) {
	result := make([]BlogWithStats, 0, len(blogs))
	for _, blog := range blogs {
		entry := BlogWithStats{Blog: blog}

		err := r.db.Model(&models.Comment{}).
			Where("blog_id = ? AND is_approved = ?", blog.ID, true).
			Count(&entry.CommentCount).Error
		if err != nil {
			return nil, err
		}

		if err := r.db.Model(&models.Like{}).Where("blog_id = ?", blog.ID).Count(&entry.LikeCount).Error; err != nil {
			return nil, err
		}

		if viewerID != nil {
			var liked int64
			err := r.db.Model(&models.Like{}).
				Where("blog_id = ? AND user_id = ?", blog.ID, *viewerID).
				Count(&liked).Error
			if err != nil {
				return nil, err
			}
			entry.IsLiked = liked > 0
		}

		result = append(result, entry)
	}
	return result, nil
}

// FindByID returns a blog with creator, category and tags loaded, or nil
// when none exists.
func (r *BlogRepo) FindByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("Creator").Preload("Category").Preload("Tags").First(&blog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindByIDWithStats loads a single blog and its counters for the given viewer.
func (r *BlogRepo) FindByIDWithStats(id uint, viewerID *uint) (*BlogWithStats, error) {
	blog, err := r.FindByID(id)
	if err != nil || blog == nil {
		return nil, err
	}
	decorated, err := r.WithStats([]models.Blog{*blog}, viewerID)
	if err != nil {
		return nil, err
	}
	return &decorated[0], nil
}

// IncrementViewCount bumps the view counter by one as a single atomic UPDATE,
// so concurrent fetches never clobber each other's increment.
func (r *BlogRepo) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Add inserts a blog and associates its tags in one transaction. Tag names
// are normalized, upserted by name, and linked in input order.
func (r *BlogRepo) Add(blog *models.Blog, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return err
		}
		return attachTags(tx, blog, tagNames)
	})
}

// Update saves a blog and, when tagNames is non-nil, replaces the whole tag
// set (clear then re-add), all inside one transaction.
func (r *BlogRepo) Update(blog *models.Blog, tagNames *[]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Creator", "Category").Save(blog).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		if err := tx.Model(blog).Association("Tags").Clear(); err != nil {
			return err
		}
		return attachTags(tx, blog, *tagNames)
	})
}

func attachTags(tx *gorm.DB, blog *models.Blog, tagNames []string) error {
	for _, name := range models.NormalizeTagNames(tagNames) {
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
		if err := tx.Model(blog).Association("Tags").Append(&tag); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a blog and cascades to its comments, likes and tag
// associations inside one transaction. The cascade is explicit so it holds on
// drivers that do not enforce foreign keys.
func (r *BlogRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Blog{}, id).Error
	})
}

// ListByAuthor pages through one author's blogs. publishedOnly narrows to
// published rows when non-nil; orderClause is created_at or updated_at desc
// depending on the caller.
func (r *BlogRepo) ListByAuthor(userID uint, publishedOnly *bool, orderClause string, page, perPage int) ([]models.Blog, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	query := r.db.Preload("Creator").Preload("Category").Preload("Tags").
		Where("user_id = ?", userID)
	if publishedOnly != nil {
		query = query.Where("is_published = ?", *publishedOnly)
	}

	var blogs []models.Blog
	err := query.Order(orderClause).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&blogs).Error
	return blogs, err
}

// ListLikedBy returns the published blogs a user has liked, most recently
// updated first.
func (r *BlogRepo) ListLikedBy(userID uint, page, perPage int) ([]models.Blog, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	var blogs []models.Blog
	err := r.db.Preload("Creator").Preload("Category").Preload("Tags").
		Joins("JOIN likes ON likes.blog_id = blogs.id").
		Where("likes.user_id = ? AND blogs.is_published = ?", userID, true).
		Order("blogs.updated_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&blogs).Error
	return blogs, err
}
