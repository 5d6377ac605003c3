package api

import (
	"net/url"
	"strconv"

	"github.com/rpupo63/blog-platform-backend/auth"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
)

type routeHandlers struct {
	auth     authMiddleware
	authH    authHandler
	blog     blogHandler
	comment  commentHandler
	category categoryHandler
	tag      tagHandler
	user     userHandler
}

func initializeHandlers(tokens auth.TokenService, db database.Database) routeHandlers {
	return routeHandlers{
		auth:     newAuthMiddleware(tokens, db.UserRepo()),
		authH:    newAuthHandler(tokens, db.UserRepo()),
		blog:     newBlogHandler(db.BlogRepo(), db.CategoryRepo(), db.LikeRepo()),
		comment:  newCommentHandler(db.CommentRepo(), db.BlogRepo()),
		category: newCategoryHandler(db.CategoryRepo()),
		tag:      newTagHandler(db.TagRepo()),
		user:     newUserHandler(db.UserRepo(), db.BlogRepo(), db.CommentRepo()),
	}
}

func parseUint(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryUint parses an optional numeric query parameter. Empty means absent.
func queryUint(raw, name string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseUint(raw)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid " + name)
	}
	return &id, nil
}

// queryBool parses an optional boolean query parameter. Empty means absent.
func queryBool(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid " + name)
	}
	return &value, nil
}

func queryInt(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return value, nil
}

// queryPageParams reads page and per_page with the listing defaults.
func queryPageParams(q url.Values) (page, perPage int, err error) {
	page, err = queryInt(q.Get("page"), "page", 1)
	if err != nil {
		return 0, 0, err
	}
	perPage, err = queryInt(q.Get("per_page"), "per_page", 10)
	if err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}
