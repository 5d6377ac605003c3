package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/auth"
	"github.com/rpupo63/blog-platform-backend/config"
	"github.com/rpupo63/blog-platform-backend/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(settings config.Settings, db database.Database) Server {
	address := fmt.Sprintf("0.0.0.0:%s", settings.Port)
	startupTime := time.Now()

	router := NewRouter(settings, db)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return Server{server, startupTime}
}

// NewRouter assembles the full route tree. Exported separately from NewServer
// so tests can mount it on an httptest server.
func NewRouter(settings config.Settings, db database.Database) *chi.Mux {
	tokens := auth.NewTokenService(settings.SecretKey, settings.TokenTTL)
	handlers := initializeHandlers(tokens, db)

	router := chi.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(LogInternalServerErrors)
	router.Use(ColoredHTTPLoggingMiddleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   settings.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	setupRoutes(router, settings, handlers)

	return router
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
