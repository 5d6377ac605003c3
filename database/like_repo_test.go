package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggle(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepo(db)
	user := seedUser(t, db, "reader@example.com")
	author := seedUser(t, db, "author@example.com")
	blog := seedBlog(t, db, author.ID, "post", true)

	liked, err := repo.Toggle(blog.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	exists, err := repo.Exists(blog.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	liked, err = repo.Toggle(blog.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	exists, err = repo.Exists(blog.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	liked, err = repo.Toggle(blog.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountForBlog(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeCountPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepo(db)
	author := seedUser(t, db, "author@example.com")
	blog := seedBlog(t, db, author.ID, "post", true)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		user := seedUser(t, db, email)
		liked, err := repo.Toggle(blog.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, liked)
	}

	count, err := repo.CountForBlog(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
