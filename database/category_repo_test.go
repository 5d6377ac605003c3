package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/blog-platform-backend/models"
)

func TestCategoryQueries(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)
	author := seedUser(t, db, "author@example.com")

	tech := &models.Category{Name: "tech", IsActive: true}
	require.NoError(t, repo.Add(tech))
	retired := &models.Category{Name: "retired", IsActive: false}
	require.NoError(t, repo.Add(retired))

	publishedInTech := seedBlog(t, db, author.ID, "published", true)
	require.NoError(t, db.Model(publishedInTech).UpdateColumn("category_id", tech.ID).Error)
	draftInTech := seedBlog(t, db, author.ID, "draft", false)
	require.NoError(t, db.Model(draftInTech).UpdateColumn("category_id", tech.ID).Error)

	found, err := repo.FindByName("tech")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, tech.ID, found.ID)

	missing, err := repo.FindByName("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	active, err := repo.FindAllActive()
	require.NoError(t, err)
	require.Len(t, active, 1, "inactive categories hidden")
	assert.Equal(t, "tech", active[0].Name)
	assert.Equal(t, int64(1), active[0].BlogCount, "draft blogs not counted")
}

func TestTagPopularity(t *testing.T) {
	db := newTestDB(t)
	blogRepo := NewBlogRepo(db)
	tagRepo := NewTagRepo(db)
	author := seedUser(t, db, "author@example.com")

	for i := 0; i < 3; i++ {
		blog := &models.Blog{Title: "go post", Body: "body", UserID: author.ID, IsPublished: true}
		require.NoError(t, blogRepo.Add(blog, []string{"go"}))
	}
	rustBlog := &models.Blog{Title: "rust post", Body: "body", UserID: author.ID, IsPublished: true}
	require.NoError(t, blogRepo.Add(rustBlog, []string{"rust"}))
	draft := &models.Blog{Title: "draft", Body: "body", UserID: author.ID, IsPublished: false}
	require.NoError(t, blogRepo.Add(draft, []string{"hidden"}))

	tags, err := tagRepo.Popular(10)
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	assert.Equal(t, "go", tags[0].Name, "most used tag ranks first")

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.Contains(t, names, "rust")

	limited, err := tagRepo.Popular(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "go", limited[0].Name)
}
