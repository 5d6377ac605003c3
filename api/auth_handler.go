package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/auth"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	tokens    auth.TokenService
	userRepo  *database.UserRepo
}

func newAuthHandler(tokens auth.TokenService, userRepo *database.UserRepo) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tokens:    tokens,
		userRepo:  userRepo,
	}
}

// tokenEnvelope issues a fresh access token for the user.
func (h authHandler) tokenEnvelope(user models.User) (TokenResponse, error) {
	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		return TokenResponse{}, errs.NewInternalErrorWithCause("failed to issue token", err)
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
		User:        newUserResponse(user),
	}, nil
}

// register creates a new user account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} BaseResponse "Account created"
// @Failure 400 {object} BaseResponse "Duplicate email or weak password"
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := auth.ValidatePassword(req.Password); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("email already registered"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user := models.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: hash,
			IsActive: true,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.logger.Info().Uint("userID", user.ID).Msg("User registered")
		h.responder.WriteMessage(w, http.StatusCreated, "User registered successfully")
	}
}

// authenticateCredentials resolves an email/password pair to an active user.
func (h authHandler) authenticateCredentials(email, password string) (*models.User, error) {
	user, err := h.userRepo.FindByEmail(email)
	if err != nil {
		return nil, wrapDatabaseError("find user", "user", err)
	}
	if user == nil || !auth.CheckPassword(password, user.Password) {
		return nil, errs.NewUnauthorizedError("incorrect email or password")
	}
	if !user.IsActive {
		return nil, errs.NewAccountDeactivatedError()
	}
	return user, nil
}

// login authenticates with form credentials (username is the email)
// @Summary Login
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} TokenResponse "Access token"
// @Failure 401 {object} BaseResponse "Bad credentials or inactive account"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid form body"))
			return
		}
		email := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("username and password are required"))
			return
		}

		user, err := h.authenticateCredentials(email, password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		envelope, err := h.tokenEnvelope(*user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, envelope)
	}
}

// loginEmail authenticates with a JSON email/password body
// @Summary Login with JSON body
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} TokenResponse "Access token"
// @Failure 401 {object} BaseResponse "Bad credentials or inactive account"
// @Router /auth/login-email [post]
func (h authHandler) loginEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.authenticateCredentials(req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		envelope, err := h.tokenEnvelope(*user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, envelope)
	}
}

// me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} UserResponse "Authenticated user"
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		h.responder.WriteJSON(w, http.StatusOK, newUserResponse(*user))
	}
}

// logout acknowledges a client-side token drop. Tokens are stateless so
// there is nothing to revoke server-side.
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} BaseResponse "Logged out"
// @Router /auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteMessage(w, http.StatusOK, "Successfully logged out")
	}
}

// changePassword verifies the old password and stores a new hash
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} BaseResponse "Password changed"
// @Failure 400 {object} BaseResponse "Wrong old password, weak or reused new password"
// @Router /auth/change-password [post]
func (h authHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		var req ChangePasswordRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !auth.CheckPassword(req.OldPassword, user.Password) {
			h.responder.WriteError(w, errs.NewBadRequestError("incorrect password"))
			return
		}
		if req.NewPassword == req.OldPassword {
			h.responder.WriteError(w, errs.NewBadRequestError("new password must differ from the old password"))
			return
		}
		if err := auth.ValidatePassword(req.NewPassword); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user.Password = hash
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.logger.Info().Uint("userID", user.ID).Msg("Password changed")
		h.responder.WriteMessage(w, http.StatusOK, "Password changed successfully")
	}
}

// refreshToken issues a fresh token for the authenticated user
// @Summary Refresh token
// @Tags Auth
// @Produce json
// @Success 200 {object} TokenResponse "Fresh access token"
// @Router /auth/refresh-token [post]
func (h authHandler) refreshToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		envelope, err := h.tokenEnvelope(*user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, envelope)
	}
}

// listUsers returns every account, admin only
// @Summary List users
// @Tags Auth
// @Produce json
// @Success 200 {array} UserResponse "All users"
// @Router /auth/users [get]
func (h authHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find users", "users", err))
			return
		}

		out := make([]UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, newUserResponse(*u))
		}
		h.responder.WriteJSON(w, http.StatusOK, out)
	}
}

// toggleUserStatus flips IsActive on another account, admin only
// @Summary Toggle user status
// @Tags Auth
// @Produce json
// @Success 200 {object} BaseResponse "Status flipped"
// @Failure 400 {object} BaseResponse "Admin targeting own account"
// @Failure 404 {object} BaseResponse "Unknown user"
// @Router /auth/users/{userID}/toggle-status [patch]
func (h authHandler) toggleUserStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin := ctxGetUser(r.Context())

		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if admin.ID == userID {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot change your own account status"))
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

		user.IsActive = !user.IsActive
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		message := "User deactivated successfully"
		if user.IsActive {
			message = "User activated successfully"
		}
		h.logger.Info().Uint("userID", user.ID).Bool("isActive", user.IsActive).Msg("User status toggled")
		h.responder.WriteMessage(w, http.StatusOK, message)
	}
}

func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + name)
	}
	id, err := parseUint(raw)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
