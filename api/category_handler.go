package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
	}
}

type CategoryWithCountResponse struct {
	CategoryResponse
	BlogCount int64 `json:"blog_count"`
}

// listCategories returns active categories with published-blog counts
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} CategoryWithCountResponse "Active categories"
// @Router /blog/categories/ [get]
func (h categoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAllActive()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}

		out := make([]CategoryWithCountResponse, 0, len(categories))
		for _, c := range categories {
			out = append(out, CategoryWithCountResponse{
				CategoryResponse: newCategoryResponse(c.Category),
				BlogCount:        c.BlogCount,
			})
		}
		h.responder.WriteJSON(w, http.StatusOK, out)
	}
}

// createCategory adds a category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Success 201 {object} CategoryResponse "Created category"
// @Failure 400 {object} BaseResponse "Duplicate name"
// @Router /blog/categories/ [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.categoryRepo.FindByName(req.Name)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("category already exists"))
			return
		}

		category := models.Category{
			Name:        req.Name,
			Description: req.Description,
			IsActive:    true,
		}
		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create category", "category", err))
			return
		}

		h.logger.Info().Uint("categoryID", category.ID).Str("name", category.Name).Msg("Category created")
		h.responder.WriteJSON(w, http.StatusCreated, newCategoryResponse(category))
	}
}
