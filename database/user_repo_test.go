package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/blog-platform-backend/models"
)

func TestUserFindByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	seeded := seedUser(t, db, "alice@example.com")

	user, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, seeded.ID, user.ID)

	user, err = repo.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestProfileStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	author := seedUser(t, db, "author@example.com")
	reader := seedUser(t, db, "reader@example.com")

	published := seedBlog(t, db, author.ID, "published", true)
	seedBlog(t, db, author.ID, "draft", false)

	require.NoError(t, db.Create(&models.Comment{Content: "by author", IsApproved: true, BlogID: published.ID, UserID: author.ID}).Error)
	require.NoError(t, db.Create(&models.Like{BlogID: published.ID, UserID: reader.ID}).Error)

	stats, err := repo.ProfileStats(author.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.BlogCount)
	assert.Equal(t, int64(1), stats.CommentCount)
	assert.Equal(t, int64(1), stats.LikeCount)

	publicStats, err := repo.ProfileStats(author.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), publicStats.BlogCount, "drafts stay out of the public view")
}

func TestDetailedStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	author := seedUser(t, db, "author@example.com")
	reader := seedUser(t, db, "reader@example.com")

	popular := seedBlog(t, db, author.ID, "popular", true)
	require.NoError(t, db.Model(popular).UpdateColumn("view_count", 40).Error)
	quiet := seedBlog(t, db, author.ID, "quiet", true)
	require.NoError(t, db.Model(quiet).UpdateColumn("view_count", 2).Error)
	seedBlog(t, db, author.ID, "draft", false)

	require.NoError(t, db.Create(&models.Like{BlogID: popular.ID, UserID: reader.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "received", IsApproved: true, BlogID: popular.ID, UserID: reader.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "made", IsApproved: true, BlogID: popular.ID, UserID: author.ID}).Error)

	stats, err := repo.DetailedStats(author.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.BlogStats.TotalBlogs)
	assert.Equal(t, int64(2), stats.BlogStats.PublishedBlogs)
	assert.Equal(t, int64(1), stats.BlogStats.DraftBlogs)
	assert.Equal(t, int64(42), stats.EngagementStats.TotalViews)
	assert.Equal(t, int64(1), stats.EngagementStats.TotalLikes)
	assert.Equal(t, int64(2), stats.EngagementStats.TotalCommentsReceived)
	assert.Equal(t, int64(1), stats.EngagementStats.TotalCommentsMade)

	require.NotNil(t, stats.MostPopularBlog.ID)
	assert.Equal(t, popular.ID, *stats.MostPopularBlog.ID)
	assert.Equal(t, 40, stats.MostPopularBlog.ViewCount)
}

func TestDetailedStatsEmptyUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	user := seedUser(t, db, "new@example.com")

	stats, err := repo.DetailedStats(user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.BlogStats.TotalBlogs)
	assert.Nil(t, stats.MostPopularBlog.ID)
	assert.Nil(t, stats.MostPopularBlog.Title)
}
