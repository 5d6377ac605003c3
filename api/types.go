package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type BaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Request payloads

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type UserUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// AdminUserUpdateRequest is the superset admins may patch on any account.
type AdminUserUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

type BlogCreateRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=200"`
	Body        string   `json:"body" validate:"required,min=50"`
	Excerpt     string   `json:"excerpt" validate:"omitempty,max=300"`
	CategoryID  *uint    `json:"category_id"`
	TagNames    []string `json:"tag_names"`
	IsPublished bool     `json:"is_published"`
	IsFeatured  bool     `json:"is_featured"`
}

// BlogUpdateRequest uses pointers so absent fields leave the blog untouched.
// optionalID tells an absent JSON field apart from an explicit null, so a
// foreign key can be cleared without a dedicated endpoint.
type optionalID struct {
	Present bool
	Value   *uint
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type BlogUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=5,max=200"`
	Body        *string    `json:"body" validate:"omitempty,min=50"`
	Excerpt     *string    `json:"excerpt" validate:"omitempty,max=300"`
	CategoryID  optionalID `json:"category_id" validate:"-"`
	TagNames    *[]string  `json:"tag_names"`
	IsPublished *bool      `json:"is_published"`
	IsFeatured  *bool      `json:"is_featured"`
}

type CommentCreateRequest struct {
	Content  string `json:"content" validate:"required,min=3,max=1000"`
	ParentID *uint  `json:"parent_id"`
}

type CategoryCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation.
// The first failing field is reported back as a 422.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewBadRequestError("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errs.NewValidationError(strings.ToLower(fe.Field()), validationReason(fe))
		}
		return errs.NewBadRequestError("invalid request body")
	}
	return nil
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// Response payloads

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

func newCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func newTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return out
}

type BlogResponse struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Excerpt      string            `json:"excerpt"`
	IsPublished  bool              `json:"is_published"`
	IsFeatured   bool              `json:"is_featured"`
	ViewCount    int               `json:"view_count"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	PublishedAt  *time.Time        `json:"published_at"`
	Creator      *UserResponse     `json:"creator,omitempty"`
	Category     *CategoryResponse `json:"category"`
	Tags         []TagResponse     `json:"tags"`
	CommentCount int64             `json:"comment_count"`
	LikeCount    int64             `json:"like_count"`
	IsLiked      bool              `json:"is_liked"`
}

func newBlogResponse(bws database.BlogWithStats) BlogResponse {
	resp := BlogResponse{
		ID:           bws.ID,
		Title:        bws.Title,
		Body:         bws.Body,
		Excerpt:      bws.Excerpt,
		IsPublished:  bws.IsPublished,
		IsFeatured:   bws.IsFeatured,
		ViewCount:    bws.ViewCount,
		CreatedAt:    bws.CreatedAt,
		UpdatedAt:    bws.UpdatedAt,
		PublishedAt:  bws.PublishedAt,
		Tags:         newTagResponses(bws.Tags),
		CommentCount: bws.CommentCount,
		LikeCount:    bws.LikeCount,
		IsLiked:      bws.IsLiked,
	}
	if bws.Creator != nil {
		creator := newUserResponse(*bws.Creator)
		resp.Creator = &creator
	}
	if bws.Category != nil {
		category := newCategoryResponse(*bws.Category)
		resp.Category = &category
	}
	return resp
}

type PaginationResponse struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

func newPagination(total int64, page, perPage int) PaginationResponse {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return PaginationResponse{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

type BlogListResponse struct {
	Blogs      []BlogResponse     `json:"blogs"`
	Pagination PaginationResponse `json:"pagination"`
}

func newBlogListResponse(blogs []database.BlogWithStats, total int64, page, perPage int) BlogListResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, newBlogResponse(b))
	}
	return BlogListResponse{Blogs: out, Pagination: newPagination(total, page, perPage)}
}

type CommentResponse struct {
	ID        uint              `json:"id"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	Author    *UserResponse     `json:"author,omitempty"`
	ParentID  *uint             `json:"parent_id"`
	Replies   []CommentResponse `json:"replies"`
}

func newCommentResponse(c models.Comment, replies []models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		ParentID:  c.ParentID,
		Replies:   make([]CommentResponse, 0, len(replies)),
	}
	if c.Author != nil {
		author := newUserResponse(*c.Author)
		resp.Author = &author
	}
	for _, reply := range replies {
		resp.Replies = append(resp.Replies, newCommentResponse(reply, nil))
	}
	return resp
}
