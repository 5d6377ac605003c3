package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "author@example.com", false)

	// anonymous create rejected
	rec := env.request(t, http.MethodPost, "/blog/", "", validBlogRequest("A Valid Title"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// short title
	req := validBlogRequest("abc")
	rec = env.request(t, http.MethodPost, "/blog/", token, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// short body
	req = validBlogRequest("A Valid Title")
	req.Body = "too short"
	rec = env.request(t, http.MethodPost, "/blog/", token, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown category
	req = validBlogRequest("A Valid Title")
	badCategory := uint(999)
	req.CategoryID = &badCategory
	rec = env.request(t, http.MethodPost, "/blog/", token, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/blog/", token, validBlogRequest("A Valid Title"))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	blog := decodeBody[BlogResponse](t, rec)
	assert.Equal(t, "A Valid Title", blog.Title)
	assert.NotEmpty(t, blog.Excerpt, "excerpt derived from body")
	assert.NotNil(t, blog.PublishedAt)
	require.NotNil(t, blog.Creator)
	assert.Equal(t, "author@example.com", blog.Creator.Email)
}

func TestBlogPublishTransitions(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "author@example.com", false)

	req := validBlogRequest("Publish Me Later")
	req.IsPublished = false
	blog := env.createBlog(t, token, req)
	require.Nil(t, blog.PublishedAt, "drafts carry no publication time")

	// draft to published sets the timestamp
	rec := env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"is_published": true})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	updated := decodeBody[BlogResponse](t, rec)
	require.NotNil(t, updated.PublishedAt)
	firstPublished := *updated.PublishedAt

	// publishing again is a no-op for the timestamp
	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"is_published": true})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decodeBody[BlogResponse](t, rec)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(firstPublished))

	// unrelated updates leave it alone too
	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"title": "Publish Me Now"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decodeBody[BlogResponse](t, rec)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(firstPublished))

	// unpublish clears it
	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"is_published": false})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decodeBody[BlogResponse](t, rec)
	assert.Nil(t, updated.PublishedAt)
}

func TestBlogOwnership(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.createUser(t, "owner@example.com", false)
	_, strangerToken := env.createUser(t, "stranger@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	blog := env.createBlog(t, ownerToken, validBlogRequest("Owned Post"))

	rec := env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), strangerToken, map[string]any{"title": "Stolen Post"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodDelete, urlPath("/blog/%d", blog.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), adminToken, map[string]any{"title": "Moderated Post"})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec = env.request(t, http.MethodDelete, urlPath("/blog/%d", blog.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, urlPath("/blog/%d", blog.ID), ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnonymousBlogFetch(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "author@example.com", false)
	blog := env.createBlog(t, token, validBlogRequest("Public Post"))
	require.Zero(t, blog.ViewCount)

	rec := env.request(t, http.MethodGet, urlPath("/blog/%d", blog.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[BlogResponse](t, rec)
	assert.Equal(t, 1, fetched.ViewCount, "each fetch counts exactly one view")
	assert.False(t, fetched.IsLiked, "anonymous viewers never see is_liked true")

	rec = env.request(t, http.MethodGet, urlPath("/blog/%d", blog.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeBody[BlogResponse](t, rec).ViewCount)
}

func TestDraftVisibility(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.createUser(t, "owner@example.com", false)
	_, strangerToken := env.createUser(t, "stranger@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	req := validBlogRequest("Secret Draft")
	req.IsPublished = false
	draft := env.createBlog(t, ownerToken, req)

	rec := env.request(t, http.MethodGet, urlPath("/blog/%d", draft.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodGet, urlPath("/blog/%d", draft.ID), strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodGet, urlPath("/blog/%d", draft.ID), ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, urlPath("/blog/%d", draft.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBlogListEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "author@example.com", false)

	for i := 0; i < 12; i++ {
		env.createBlog(t, token, validBlogRequest(urlPath("Numbered Post %02d", i)))
	}
	draftReq := validBlogRequest("Hidden Draft Post")
	draftReq.IsPublished = false
	env.createBlog(t, token, draftReq)

	rec := env.request(t, http.MethodGet, "/blog/?is_published=true&per_page=5&page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decodeBody[BlogListResponse](t, rec)
	assert.Len(t, listing.Blogs, 5)
	assert.Equal(t, int64(12), listing.Pagination.Total)
	assert.Equal(t, 3, listing.Pagination.Pages)
	assert.True(t, listing.Pagination.HasNext)
	assert.False(t, listing.Pagination.HasPrev)

	rec = env.request(t, http.MethodGet, "/blog/?is_published=true&per_page=5&page=3", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing = decodeBody[BlogListResponse](t, rec)
	assert.Len(t, listing.Blogs, 2)
	assert.False(t, listing.Pagination.HasNext)
	assert.True(t, listing.Pagination.HasPrev)

	rec = env.request(t, http.MethodGet, "/blog/?search=numbered+post+03", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing = decodeBody[BlogListResponse](t, rec)
	require.Len(t, listing.Blogs, 1)
	assert.Equal(t, "Numbered Post 03", listing.Blogs[0].Title)

	rec = env.request(t, http.MethodGet, "/blog/?page=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLikeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, authorToken := env.createUser(t, "author@example.com", false)
	_, readerToken := env.createUser(t, "reader@example.com", false)
	blog := env.createBlog(t, authorToken, validBlogRequest("Likeable Post"))

	rec := env.request(t, http.MethodPost, urlPath("/blog/%d/like", blog.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodPost, urlPath("/blog/%d/like", blog.ID), readerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog liked", decodeBody[BaseResponse](t, rec).Message)

	rec = env.request(t, http.MethodGet, urlPath("/blog/%d", blog.ID), readerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[BlogResponse](t, rec)
	assert.True(t, fetched.IsLiked)
	assert.Equal(t, int64(1), fetched.LikeCount)

	rec = env.request(t, http.MethodPost, urlPath("/blog/%d/like", blog.ID), readerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Like removed", decodeBody[BaseResponse](t, rec).Message)

	rec = env.request(t, http.MethodPost, "/blog/99999/like", readerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagsOnCreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "author@example.com", false)

	req := validBlogRequest("Tagged Post")
	req.TagNames = []string{"Go", " go ", "Web"}
	blog := env.createBlog(t, token, req)

	names := make([]string, 0, len(blog.Tags))
	for _, tag := range blog.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"go", "web"}, names)

	rec := env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"tag_names": []string{"Rust"}})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	updated := decodeBody[BlogResponse](t, rec)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "rust", updated.Tags[0].Name)
}

func TestUpdateKeepsExcerpt(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "author@example.com", false)

	req := validBlogRequest("Summarized Post")
	req.Excerpt = "hand-written summary"
	blog := env.createBlog(t, token, req)
	require.Equal(t, "hand-written summary", blog.Excerpt)

	// a body-only update leaves the excerpt alone
	newBody := strings.Repeat("fresh body text for the revised post. ", 5)
	rec := env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"body": newBody})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	updated := decodeBody[BlogResponse](t, rec)
	assert.Equal(t, newBody, updated.Body)
	assert.Equal(t, "hand-written summary", updated.Excerpt)

	// an explicit excerpt still replaces it
	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"excerpt": "new summary"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = decodeBody[BlogResponse](t, rec)
	assert.Equal(t, "new summary", updated.Excerpt)
}

func TestCategoryChangeOnUpdate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "author@example.com", false)

	rec := env.request(t, http.MethodPost, "/blog/categories/", token, CategoryCreateRequest{Name: "Engineering"})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	category := decodeBody[CategoryResponse](t, rec)

	req := validBlogRequest("Categorized Post")
	req.CategoryID = &category.ID
	blog := env.createBlog(t, token, req)
	require.NotNil(t, blog.Category)

	// leaving category_id out keeps the category
	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"title": "Still Categorized"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[BlogResponse](t, rec)
	require.NotNil(t, updated.Category)
	assert.Equal(t, category.ID, updated.Category.ID)

	// an explicit null clears it
	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"category_id": nil})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	updated = decodeBody[BlogResponse](t, rec)
	assert.Nil(t, updated.Category)

	// unknown categories are still rejected
	rec = env.request(t, http.MethodPut, urlPath("/blog/%d", blog.ID), token, map[string]any{"category_id": 99999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftListingVisibility(t *testing.T) {
	env := newTestEnv(t)
	_, authorToken := env.createUser(t, "author@example.com", false)
	_, strangerToken := env.createUser(t, "stranger@example.com", false)
	_, adminToken := env.createUser(t, "admin@example.com", true)

	env.createBlog(t, authorToken, validBlogRequest("Visible Post"))
	draftReq := validBlogRequest("Secret Draft Post")
	draftReq.IsPublished = false
	env.createBlog(t, authorToken, draftReq)

	total := func(token string) int64 {
		rec := env.request(t, http.MethodGet, "/blog/", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		return decodeBody[BlogListResponse](t, rec).Pagination.Total
	}

	assert.Equal(t, int64(1), total(""), "anonymous listing hides drafts")
	assert.Equal(t, int64(1), total(strangerToken), "drafts stay private to their author")
	assert.Equal(t, int64(2), total(authorToken))
	assert.Equal(t, int64(2), total(adminToken))
}
