package errs

import (
	"errors"
	"net/http"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	// ErrInvalidToken covers tampered, malformed and expired tokens alike;
	// callers cannot tell the cases apart.
	ErrInvalidToken       = errors.New("invalid access token")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrAdminRequired      = errors.New("admin privileges required")
)

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing access token",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Could not validate credentials",
		Field:      "authorization",
	}
}

func NewAccountDeactivatedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrAccountDeactivated,
		Field:      "authorization",
	}
}

func NewAdminRequiredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrAdminRequired,
		Field:      "authorization",
	}
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsAccountDeactivatedError(err error) bool {
	return errors.Is(err, ErrAccountDeactivated)
}
