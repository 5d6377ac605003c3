package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/config"
)

func setupRoutes(router *chi.Mux, settings config.Settings, h routeHandlers) {
	router.Get("/", welcome(settings.AppName))
	router.Get("/health", health())

	router.Route("/auth", func(r chi.Router) {
		// Credential endpoints are the brute-force surface, so they get
		// a per-IP rate limit the rest of the API does not.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/register", h.authH.register())
			r.Post("/login", h.authH.login())
			r.Post("/login-email", h.authH.loginEmail())
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth.authenticate)
			r.Get("/me", h.authH.me())
			r.Post("/logout", h.authH.logout())
			r.Post("/change-password", h.authH.changePassword())
			r.Post("/refresh-token", h.authH.refreshToken())
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth.requireAdmin)
			r.Get("/users", h.authH.listUsers())
			r.Patch("/users/{userID}/toggle-status", h.authH.toggleUserStatus())
		})
	})

	router.Route("/blog", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.auth.optional)
			r.Get("/", h.blog.listBlogs())
			r.Get("/{blogID}", h.blog.getBlog())
		})
		r.Get("/{blogID}/comments", h.comment.listComments())
		r.Get("/categories/", h.category.listCategories())
		r.Get("/tags/", h.tag.popularTags())

		r.Group(func(r chi.Router) {
			r.Use(h.auth.authenticate)
			r.Post("/", h.blog.createBlog())
			r.Put("/{blogID}", h.blog.updateBlog())
			r.Delete("/{blogID}", h.blog.deleteBlog())
			r.Post("/{blogID}/like", h.blog.likeBlog())
			r.Post("/{blogID}/comments", h.comment.createComment())
			r.Post("/categories/", h.category.createCategory())
		})
	})

	router.Route("/user", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.auth.authenticate)
			r.Get("/profile", h.user.getProfile())
			r.Put("/profile", h.user.updateProfile())
			r.Get("/my/blogs", h.user.myBlogs())
			r.Get("/my/stats", h.user.myStats())
			r.Delete("/my/blogs/{blogID}", h.user.deleteMyBlog())
			r.Get("/my/liked-blogs", h.user.myLikedBlogs())
			r.Get("/my/comments", h.user.myComments())
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth.optional)
			r.Get("/{userID}", h.user.getPublicProfile())
			r.Get("/{userID}/blogs", h.user.userBlogs())
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth.requireAdmin)
			r.Patch("/{userID}/update", h.user.adminUpdateUser())
		})
	})
}

func welcome(appName string) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "rootHandler").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Welcome to " + appName,
		})
	}
}

func health() http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthHandler").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
