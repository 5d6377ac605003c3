package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/auth"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

// authMiddleware resolves bearer tokens into users. Tokens are stateless, so
// the account is re-queried on every request; a deactivated account stops
// working immediately even though its token is still formally valid.
type authMiddleware struct {
	responder Responder
	tokens    auth.TokenService
	users     *database.UserRepo
}

func newAuthMiddleware(tokens auth.TokenService, users *database.UserRepo) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		tokens:    tokens,
		users:     users,
	}
}

// bearerToken extracts the token from the Authorization header, or "".
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// resolve turns the request's bearer token into an active user.
func (m authMiddleware) resolve(r *http.Request) (*models.User, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	email, err := m.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.FindByEmail(email)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to resolve user", err)
	}
	if user == nil {
		return nil, errs.NewInvalidTokenError()
	}
	if !user.IsActive {
		return nil, errs.NewAccountDeactivatedError()
	}
	return user, nil
}

// authenticate requires a valid token for an active account.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithUser(r.Context(), user)))
	})
}

// requireAdmin is authenticate plus an admin check.
func (m authMiddleware) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}
		if !user.IsAdmin {
			m.responder.WriteError(w, errs.NewAdminRequiredError())
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithUser(r.Context(), user)))
	})
}

// optional resolves the user when a usable token is present and treats every
// failure as anonymous. Listing and detail endpoints use it to answer
// "did I like this" without requiring login.
func (m authMiddleware) optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithUser(r.Context(), user)))
	})
}

// requireSelfOrAdmin enforces the owner-or-admin rule for mutations.
func requireSelfOrAdmin(user *models.User, ownerID uint, action string) error {
	if user.ID != ownerID && !user.IsAdmin {
		return errs.NewForbiddenError("not authorized to " + action)
	}
	return nil
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// RequestIDMiddleware tags every request with a UUID carried in the context
// and echoed in the X-Request-ID header.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctxWithRequestID(r.Context(), requestID)))
	})
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("requestID", ctxGetRequestID(r.Context())).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("requestID", ctxGetRequestID(r.Context())).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("requestID", ctxGetRequestID(r.Context())).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
