package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	blogRepo    *database.BlogRepo
}

func newCommentHandler(commentRepo *database.CommentRepo, blogRepo *database.BlogRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
	}
}

// listComments returns approved top-level comments with their replies
// @Summary List comments
// @Tags Comments
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 200 {array} CommentResponse "Top-level comments, newest first"
// @Failure 404 {object} BaseResponse "Unknown blog"
// @Router /blog/{blogID}/comments [get]
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		comments, err := h.commentRepo.TopLevelForBlog(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		out := make([]CommentResponse, 0, len(comments))
		for _, comment := range comments {
			replies, err := h.commentRepo.RepliesTo(comment.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find replies", "comments", err))
				return
			}
			out = append(out, newCommentResponse(comment, replies))
		}

		h.responder.WriteJSON(w, http.StatusOK, out)
	}
}

// createComment adds a comment or a reply to a blog
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param blogID path int true "Blog ID"
// @Success 201 {object} CommentResponse "Created comment"
// @Failure 400 {object} BaseResponse "Parent missing or on a different blog"
// @Failure 404 {object} BaseResponse "Unknown blog"
// @Router /blog/{blogID}/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
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

		var req CommentCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.ParentID != nil {
			parent, err := h.commentRepo.FindByID(*req.ParentID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find parent comment", "comment", err))
				return
			}
			if parent == nil {
				h.responder.WriteError(w, errs.NewBadRequestError("parent comment not found"))
				return
			}
			if parent.BlogID != blogID {
				h.responder.WriteError(w, errs.NewBadRequestError("parent comment belongs to a different blog"))
				return
			}
		}

		comment := models.Comment{
			Content:    req.Content,
			IsApproved: true,
			BlogID:     blogID,
			UserID:     user.ID,
			ParentID:   req.ParentID,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		comment.Author = user
		h.logger.Info().Uint("commentID", comment.ID).Uint("blogID", blogID).Msg("Comment created")
		h.responder.WriteJSON(w, http.StatusCreated, newCommentResponse(comment, nil))
	}
}
