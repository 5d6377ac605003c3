package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
)

type userHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	blogRepo    *database.BlogRepo
	commentRepo *database.CommentRepo
}

func newUserHandler(userRepo *database.UserRepo, blogRepo *database.BlogRepo, commentRepo *database.CommentRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
	}
}

type ProfileResponse struct {
	UserResponse
	database.ProfileStats
}

// getProfile returns the caller's own profile with activity counters
// @Summary Own profile
// @Tags Users
// @Produce json
// @Success 200 {object} ProfileResponse "Profile with counters"
// @Router /user/profile [get]
func (h userHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		stats, err := h.userRepo.ProfileStats(user.ID, false)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count user activity", "user", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, ProfileResponse{
			UserResponse: newUserResponse(*user),
			ProfileStats: stats,
		})
	}
}

// updateProfile applies a partial name/email update
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} UserResponse "Updated profile"
// @Failure 400 {object} BaseResponse "Email already taken"
// @Router /user/profile [put]
func (h userHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		var req UserUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Email != nil && *req.Email != user.Email {
			existing, err := h.userRepo.FindByEmail(*req.Email)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
				return
			}
			if existing != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("email already registered"))
				return
			}
			user.Email = *req.Email
		}
		if req.Name != nil {
			user.Name = *req.Name
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newUserResponse(*user))
	}
}

// getPublicProfile returns an active user's public profile
// @Summary Public profile
// @Tags Users
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} ProfileResponse "Profile with published-only counters"
// @Failure 404 {object} BaseResponse "Unknown or deactivated user"
// @Router /user/{userID} [get]
func (h userHandler) getPublicProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !user.IsActive {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		stats, err := h.userRepo.ProfileStats(userID, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count user activity", "user", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, ProfileResponse{
			UserResponse: newUserResponse(*user),
			ProfileStats: stats,
		})
	}
}

// myBlogs returns the caller's own blogs, drafts included
// @Summary Own blogs
// @Tags Users
// @Produce json
// @Param is_published query bool false "Published filter"
// @Success 200 {array} BlogResponse "Own blogs, most recently updated first"
// @Router /user/my/blogs [get]
func (h userHandler) myBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		q := r.URL.Query()

		isPublished, err := queryBool(q.Get("is_published"), "is_published")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		page, perPage, err := queryPageParams(q)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogs, err := h.blogRepo.ListByAuthor(user.ID, isPublished, "updated_at DESC", page, perPage)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blogs", "blogs", err))
			return
		}

		decorated, err := h.blogRepo.WithStats(blogs, &user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count blog stats", "blogs", err))
			return
		}

		out := make([]BlogResponse, 0, len(decorated))
		for _, b := range decorated {
			out = append(out, newBlogResponse(b))
		}
		h.responder.WriteJSON(w, http.StatusOK, out)
	}
}

// userBlogs returns another user's blogs. Drafts show up only when the
// caller is that user or an admin.
// @Summary Blogs by user
// @Tags Users
// @Produce json
// @Param userID path int true "User ID"
// @Param published_only query bool false "Restrict to published blogs"
// @Success 200 {array} BlogResponse "Blogs, newest first"
// @Failure 404 {object} BaseResponse "Unknown user"
// @Router /user/{userID}/blogs [get]
func (h userHandler) userBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetUser(r.Context())
		q := r.URL.Query()

		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		owner, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if owner == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		publishedOnly, err := queryBool(q.Get("published_only"), "published_only")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		page, perPage, err := queryPageParams(q)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ownView := viewer != nil && (viewer.ID == userID || viewer.IsAdmin)
		if !ownView {
			published := true
			publishedOnly = &published
		}

		blogs, err := h.blogRepo.ListByAuthor(userID, publishedOnly, "created_at DESC", page, perPage)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blogs", "blogs", err))
			return
		}

		decorated, err := h.blogRepo.WithStats(blogs, viewerID(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count blog stats", "blogs", err))
			return
		}

		out := make([]BlogResponse, 0, len(decorated))
		for _, b := range decorated {
			out = append(out, newBlogResponse(b))
		}
		h.responder.WriteJSON(w, http.StatusOK, out)
	}
}

// myStats returns the caller's detailed statistics
// @Summary Own statistics
// @Tags Users
// @Produce json
// @Success 200 {object} database.DetailedStats "Blog and engagement counters"
// @Router /user/my/stats [get]
func (h userHandler) myStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		stats, err := h.userRepo.DetailedStats(user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("gather user stats", "user", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, stats)
	}
}

// deleteMyBlog deletes one of the caller's own blogs. Blogs owned by
// someone else are reported as not found, not forbidden.
// @Summary Delete own blog
// @Tags Users
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {object} BaseResponse "Deleted"
// @Failure 404 {object} BaseResponse "Unknown blog or not the owner"
// @Router /user/my/blogs/{blogID} [delete]
func (h userHandler) deleteMyBlog() http.HandlerFunc {
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
		if blog == nil || blog.UserID != user.ID {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		if err := h.blogRepo.Delete(blogID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog", "blog", err))
			return
		}

		h.logger.Info().Uint("blogID", blogID).Uint("userID", user.ID).Msg("Blog deleted by owner")
		h.responder.WriteMessage(w, http.StatusOK, "Blog deleted successfully")
	}
}

// myLikedBlogs returns the published blogs the caller has liked
// @Summary Liked blogs
// @Tags Users
// @Produce json
// @Success 200 {array} BlogResponse "Liked blogs"
// @Router /user/my/liked-blogs [get]
func (h userHandler) myLikedBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		page, perPage, err := queryPageParams(r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogs, err := h.blogRepo.ListLikedBy(user.ID, page, perPage)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find liked blogs", "blogs", err))
			return
		}

		decorated, err := h.blogRepo.WithStats(blogs, &user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count blog stats", "blogs", err))
			return
		}

		out := make([]BlogResponse, 0, len(decorated))
		for _, b := range decorated {
			out = append(out, newBlogResponse(b))
		}
		h.responder.WriteJSON(w, http.StatusOK, out)
	}
}

type BlogSummaryResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// myComments returns the caller's approved comments on published blogs
// @Summary Own comments
// @Tags Users
// @Produce json
// @Success 200 {array} CommentResponse "Own comments with blog summaries"
// @Router /user/my/comments [get]
func (h userHandler) myComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		page, perPage, err := queryPageParams(r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comments, err := h.commentRepo.ListByUser(user.ID, page, perPage)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		type ownComment struct {
			CommentResponse
			Blog BlogSummaryResponse `json:"blog"`
		}
		out := make([]ownComment, 0, len(comments))
		for _, comment := range comments {
			entry := ownComment{CommentResponse: newCommentResponse(comment, nil)}
			if comment.Blog != nil {
				entry.Blog = BlogSummaryResponse{ID: comment.Blog.ID, Title: comment.Blog.Title}
			}
			out = append(out, entry)
		}
		h.responder.WriteJSON(w, http.StatusOK, out)
	}
}

// adminUpdateUser lets an admin patch any account
// @Summary Admin user update
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} UserResponse "Updated user"
// @Failure 404 {object} BaseResponse "Unknown user"
// @Router /user/{userID}/update [patch]
func (h userHandler) adminUpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		var req AdminUserUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Email != nil && *req.Email != user.Email {
			existing, err := h.userRepo.FindByEmail(*req.Email)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
				return
			}
			if existing != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("email already registered"))
				return
			}
			user.Email = *req.Email
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.logger.Info().Uint("userID", user.ID).Msg("User updated by admin")
		h.responder.WriteJSON(w, http.StatusOK, newUserResponse(*user))
	}
}
