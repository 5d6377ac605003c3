package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// popularTags returns tags ranked by usage on published blogs
// @Summary Popular tags
// @Tags Tags
// @Produce json
// @Param limit query int false "Maximum number of tags, default 20"
// @Success 200 {array} TagResponse "Tags, most used first"
// @Router /blog/tags/ [get]
func (h tagHandler) popularTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r.URL.Query().Get("limit"), "limit", 20)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit < 1 {
			limit = 20
		}

		tags, err := h.tagRepo.Popular(limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newTagResponses(tags))
	}
}
