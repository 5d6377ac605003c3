package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/blog-platform-backend/models"
)

func TestCommentThreading(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	author := seedUser(t, db, "author@example.com")
	reader := seedUser(t, db, "reader@example.com")
	blog := seedBlog(t, db, author.ID, "post", true)

	first := &models.Comment{Content: "first", IsApproved: true, BlogID: blog.ID, UserID: reader.ID}
	require.NoError(t, repo.Add(first))
	second := &models.Comment{Content: "second", IsApproved: true, BlogID: blog.ID, UserID: reader.ID}
	require.NoError(t, repo.Add(second))
	hidden := &models.Comment{Content: "spam", IsApproved: false, BlogID: blog.ID, UserID: reader.ID}
	require.NoError(t, repo.Add(hidden))

	reply := &models.Comment{Content: "reply", IsApproved: true, BlogID: blog.ID, UserID: author.ID, ParentID: &first.ID}
	require.NoError(t, repo.Add(reply))
	hiddenReply := &models.Comment{Content: "hidden reply", IsApproved: false, BlogID: blog.ID, UserID: author.ID, ParentID: &first.ID}
	require.NoError(t, repo.Add(hiddenReply))

	topLevel, err := repo.TopLevelForBlog(blog.ID)
	require.NoError(t, err)
	require.Len(t, topLevel, 2, "replies and unapproved comments excluded")
	assert.Equal(t, "second", topLevel[0].Content, "newest first")
	assert.Equal(t, "first", topLevel[1].Content)
	require.NotNil(t, topLevel[0].Author)
	assert.Equal(t, reader.ID, topLevel[0].Author.ID)

	replies, err := repo.RepliesTo(first.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "reply", replies[0].Content)
}

func TestCommentListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	author := seedUser(t, db, "author@example.com")
	commenter := seedUser(t, db, "commenter@example.com")

	published := seedBlog(t, db, author.ID, "published", true)
	draft := seedBlog(t, db, author.ID, "draft", false)

	require.NoError(t, repo.Add(&models.Comment{Content: "on published", IsApproved: true, BlogID: published.ID, UserID: commenter.ID}))
	require.NoError(t, repo.Add(&models.Comment{Content: "on draft", IsApproved: true, BlogID: draft.ID, UserID: commenter.ID}))
	require.NoError(t, repo.Add(&models.Comment{Content: "unapproved", IsApproved: false, BlogID: published.ID, UserID: commenter.ID}))

	comments, err := repo.ListByUser(commenter.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "on published", comments[0].Content)
	require.NotNil(t, comments[0].Blog)
	assert.Equal(t, published.ID, comments[0].Blog.ID)
}
