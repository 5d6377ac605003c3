package database

import (
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByEmail returns the user with the given email, or nil when none exists.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by its ID, or nil when none exists.
func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns every user.
func (r *UserRepo) FindAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Find(&users).Error
	return users, err
}

// Add inserts a new user.
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ProfileStats holds the counters shown on a user profile.
type ProfileStats struct {
	BlogCount    int64 `json:"blog_count"`
	CommentCount int64 `json:"comment_count"`
	LikeCount    int64 `json:"like_count"`
}

// ProfileStats counts the user's blogs, the comments they wrote and the likes
// received on their blogs. With publishedOnly set, only published blogs and
// approved comments are counted (the public-profile view).
func (r *UserRepo) ProfileStats(userID uint, publishedOnly bool) (ProfileStats, error) {
	var stats ProfileStats

	blogs := r.db.Model(&models.Blog{}).Where("user_id = ?", userID)
	comments := r.db.Model(&models.Comment{}).Where("comments.user_id = ?", userID)
	likes := r.db.Model(&models.Like{}).
		Joins("JOIN blogs ON blogs.id = likes.blog_id").
		Where("blogs.user_id = ?", userID)

	if publishedOnly {
		blogs = blogs.Where("is_published = ?", true)
		comments = comments.
			Joins("JOIN blogs ON blogs.id = comments.blog_id").
			Where("blogs.is_published = ? AND comments.is_approved = ?", true, true)
		likes = likes.Where("blogs.is_published = ?", true)
	}

	if err := blogs.Count(&stats.BlogCount).Error; err != nil {
		return stats, err
	}
	if err := comments.Count(&stats.CommentCount).Error; err != nil {
		return stats, err
	}
	if err := likes.Count(&stats.LikeCount).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// BlogStats summarizes a user's authored blogs.
type BlogStats struct {
	TotalBlogs     int64 `json:"total_blogs"`
	PublishedBlogs int64 `json:"published_blogs"`
	DraftBlogs     int64 `json:"draft_blogs"`
	FeaturedBlogs  int64 `json:"featured_blogs"`
}

// EngagementStats summarizes the reactions a user's blogs received.
type EngagementStats struct {
	TotalViews            int64 `json:"total_views"`
	TotalLikes            int64 `json:"total_likes"`
	TotalCommentsReceived int64 `json:"total_comments_received"`
	TotalCommentsMade     int64 `json:"total_comments_made"`
}

// BlogSummary identifies a single blog inside a stats payload.
type BlogSummary struct {
	ID        *uint   `json:"id"`
	Title     *string `json:"title"`
	ViewCount int     `json:"view_count"`
}

// DetailedStats is the full per-user statistics payload.
type DetailedStats struct {
	BlogStats       BlogStats       `json:"blog_stats"`
	EngagementStats EngagementStats `json:"engagement_stats"`
	MostPopularBlog BlogSummary     `json:"most_popular_blog"`
}

// DetailedStats gathers the counters behind /user/my/stats. The count queries
// are independent, so they run concurrently; the gorm connection pool handles
// the parallel reads.
func (r *UserRepo) DetailedStats(userID uint) (DetailedStats, error) {
	var stats DetailedStats
	var g errgroup.Group

	g.Go(func() error {
		return r.db.Model(&models.Blog{}).
			Where("user_id = ?", userID).
			Count(&stats.BlogStats.TotalBlogs).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Blog{}).
			Where("user_id = ? AND is_published = ?", userID, true).
			Count(&stats.BlogStats.PublishedBlogs).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Blog{}).
			Where("user_id = ? AND is_featured = ?", userID, true).
			Count(&stats.BlogStats.FeaturedBlogs).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Blog{}).
			Where("user_id = ?", userID).
			Select("COALESCE(SUM(view_count), 0)").
			Scan(&stats.EngagementStats.TotalViews).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Like{}).
			Joins("JOIN blogs ON blogs.id = likes.blog_id").
			Where("blogs.user_id = ?", userID).
			Count(&stats.EngagementStats.TotalLikes).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Comment{}).
			Joins("JOIN blogs ON blogs.id = comments.blog_id").
			Where("blogs.user_id = ? AND comments.is_approved = ?", userID, true).
			Count(&stats.EngagementStats.TotalCommentsReceived).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Comment{}).
			Where("user_id = ?", userID).
			Count(&stats.EngagementStats.TotalCommentsMade).Error
	})

	var mostPopular models.Blog
	var found bool
	g.Go(func() error {
		err := r.db.Where("user_id = ? AND is_published = ?", userID, true).
			Order("view_count DESC").
			First(&mostPopular).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err == nil {
			found = true
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	stats.BlogStats.DraftBlogs = stats.BlogStats.TotalBlogs - stats.BlogStats.PublishedBlogs
	if found {
		stats.MostPopularBlog = BlogSummary{
			ID:        &mostPopular.ID,
			Title:     &mostPopular.Title,
			ViewCount: mostPopular.ViewCount,
		}
	}
	return stats, nil
}
