package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

type blogHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogRepo     *database.BlogRepo
	categoryRepo *database.CategoryRepo
	likeRepo     *database.LikeRepo
}

func newBlogHandler(blogRepo *database.BlogRepo, categoryRepo *database.CategoryRepo, likeRepo *database.LikeRepo) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogRepo:     blogRepo,
		categoryRepo: categoryRepo,
		likeRepo:     likeRepo,
	}
}

// viewerID returns the optional caller's ID for is_liked decoration.
func viewerID(r *http.Request) *uint {
	if user := ctxGetUser(r.Context()); user != nil {
		return &user.ID
	}
	return nil
}

// listBlogs returns a filtered, sorted, paginated blog listing
// @Summary List blogs
// @Tags Blogs
// @Produce json
// @Param category_id query int false "Category filter"
// @Param tag_names query string false "Comma-separated tag filter, any-of"
// @Param is_published query bool false "Published filter"
// @Param is_featured query bool false "Featured filter"
// @Param author_id query int false "Author filter"
// @Param search query string false "Case-insensitive substring over title and body"
// @Param sort_by query string false "created_at, title or view_count"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page, 1-based"
// @Param per_page query int false "Page size, 1..100"
// @Success 200 {object} BlogListResponse "Blogs with pagination"
// @Router /blog/ [get]
func (h blogHandler) listBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseListParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// drafts stay private to their author; admins see everything
		if viewer := ctxGetUser(r.Context()); viewer == nil || !viewer.IsAdmin {
			params.Filter.RestrictDrafts = true
		}

		blogs, total, err := h.blogRepo.List(params, viewerID(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list blogs", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newBlogListResponse(blogs, total, params.Page, params.PerPage))
	}
}

func parseListParams(r *http.Request) (database.ListParams, error) {
	q := r.URL.Query()

	categoryID, err := queryUint(q.Get("category_id"), "category_id")
	if err != nil {
		return database.ListParams{}, err
	}
	authorID, err := queryUint(q.Get("author_id"), "author_id")
	if err != nil {
		return database.ListParams{}, err
	}
	isPublished, err := queryBool(q.Get("is_published"), "is_published")
	if err != nil {
		return database.ListParams{}, err
	}
	isFeatured, err := queryBool(q.Get("is_featured"), "is_featured")
	if err != nil {
		return database.ListParams{}, err
	}
	page, err := queryInt(q.Get("page"), "page", 1)
	if err != nil {
		return database.ListParams{}, err
	}
	if page < 1 {
		page = 1
	}
	perPage, err := queryInt(q.Get("per_page"), "per_page", 10)
	if err != nil {
		return database.ListParams{}, err
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	var tagNames []string
	if raw := q.Get("tag_names"); raw != "" {
		tagNames = models.NormalizeTagNames(strings.Split(raw, ","))
	}

	return database.ListParams{
		Filter: database.BlogFilter{
			CategoryID:  categoryID,
			TagNames:    tagNames,
			IsPublished: isPublished,
			IsFeatured:  isFeatured,
			AuthorID:    authorID,
			Search:      q.Get("search"),
		},
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Page:      page,
		PerPage:   perPage,
	}, nil
}

// getBlog returns one blog with stats and counts the view
// @Summary Get blog
// @Tags Blogs
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} BlogResponse "Blog with stats"
// @Failure 404 {object} BaseResponse "Unknown blog or draft of another user"
// @Router /blog/{blogID} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseUintParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		bws, err := h.blogRepo.FindByIDWithStats(blogID, viewerID(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if bws == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		// Drafts stay invisible to everyone but their owner and admins.
		if !bws.IsPublished {
			user := ctxGetUser(r.Context())
			if user == nil || (user.ID != bws.UserID && !user.IsAdmin) {
				h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
				return
			}
		}

		if err := h.blogRepo.IncrementViewCount(blogID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment view count", "blog", err))
			return
		}
		bws.ViewCount++

		h.responder.WriteJSON(w, http.StatusOK, newBlogResponse(*bws))
	}
}

// createBlog creates a blog for the authenticated user
// @Summary Create blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Success 201 {object} BlogResponse "Created blog"
// @Failure 400 {object} BaseResponse "Invalid payload or unknown category"
// @Router /blog/ [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		var req BlogCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.verifyCategory(req.CategoryID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog := models.Blog{
			Title:       req.Title,
			Body:        req.Body,
			Excerpt:     models.DeriveExcerpt(req.Excerpt, req.Body),
			IsPublished: req.IsPublished,
			IsFeatured:  req.IsFeatured,
			UserID:      user.ID,
			CategoryID:  req.CategoryID,
		}
		if req.IsPublished {
			now := time.Now()
			blog.PublishedAt = &now
		}

		if err := h.blogRepo.Add(&blog, req.TagNames); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog", "blog", err))
			return
		}

		created, err := h.blogRepo.FindByIDWithStats(blog.ID, &user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created blog", "blog", err))
			return
		}

		h.logger.Info().Uint("blogID", blog.ID).Uint("userID", user.ID).Msg("Blog created")
		h.responder.WriteJSON(w, http.StatusCreated, newBlogResponse(*created))
	}
}

func (h blogHandler) verifyCategory(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	category, err := h.categoryRepo.FindByID(*categoryID)
	if err != nil {
		return wrapDatabaseError("find category", "category", err)
	}
	if category == nil {
		return errs.NewBadRequestError("category not found")
	}
	return nil
}

// updateBlog applies a partial update, owner or admin only
// @Summary Update blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} BlogResponse "Updated blog"
// @Failure 403 {object} BaseResponse "Not the owner"
// @Failure 404 {object} BaseResponse "Unknown blog"
// @Router /blog/{blogID} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		blogID, err := parseUintParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}
		if err := requireSelfOrAdmin(user, blog.UserID, "update this blog"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req BlogUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.CategoryID.Present {
			if req.CategoryID.Value != nil {
				if err := h.verifyCategory(req.CategoryID.Value); err != nil {
					h.responder.WriteError(w, err)
					return
				}
			}
			blog.CategoryID = req.CategoryID.Value
		}

		if req.Title != nil {
			blog.Title = *req.Title
		}
		if req.Body != nil {
			blog.Body = *req.Body
		}
		if req.Excerpt != nil {
			blog.Excerpt = models.DeriveExcerpt(*req.Excerpt, blog.Body)
		}
		if req.IsFeatured != nil {
			blog.IsFeatured = *req.IsFeatured
		}
		if req.IsPublished != nil {
			// PublishedAt records the most recent draft-to-published
			// transition and survives no-op updates.
			if *req.IsPublished && !blog.IsPublished {
				now := time.Now()
				blog.PublishedAt = &now
			}
			if !*req.IsPublished && blog.IsPublished {
				blog.PublishedAt = nil
			}
			blog.IsPublished = *req.IsPublished
		}

		if err := h.blogRepo.Update(blog, req.TagNames); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog", "blog", err))
			return
		}

		updated, err := h.blogRepo.FindByIDWithStats(blogID, &user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated blog", "blog", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newBlogResponse(*updated))
	}
}

// deleteBlog removes a blog and everything hanging off it
// @Summary Delete blog
// @Tags Blogs
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} BaseResponse "Deleted"
// @Failure 403 {object} BaseResponse "Not the owner"
// @Failure 404 {object} BaseResponse "Unknown blog"
// @Router /blog/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		blogID, err := parseUintParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}
		if err := requireSelfOrAdmin(user, blog.UserID, "delete this blog"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogRepo.Delete(blogID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog", "blog", err))
			return
		}

		h.logger.Info().Uint("blogID", blogID).Uint("userID", user.ID).Msg("Blog deleted")
		h.responder.WriteMessage(w, http.StatusOK, "Blog deleted successfully")
	}
}

// likeBlog toggles the caller's like on a blog
// @Summary Toggle like
// @Tags Blogs
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} BaseResponse "Like state flipped"
// @Failure 404 {object} BaseResponse "Unknown blog"
// @Router /blog/{blogID}/like [post]
func (h blogHandler) likeBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		blogID, err := parseUintParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		liked, err := h.likeRepo.Toggle(blogID, user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("toggle like", "like", err))
			return
		}

		message := "Like removed"
		if liked {
			message = "Blog liked"
		}
		h.responder.WriteMessage(w, http.StatusOK, message)
	}
}
