package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/blog-platform-backend/errs"
)

const passwordSpecials = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash. A
// malformed hash is a verification failure, never an error.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// an uppercase letter, a lowercase letter, a digit and a special character.
func ValidatePassword(plain string) error {
	if len(plain) < 8 {
		return errs.NewValidationError("password", "Password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range plain {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return errs.NewValidationError("password", "Password must contain at least one uppercase letter")
	case !hasLower:
		return errs.NewValidationError("password", "Password must contain at least one lowercase letter")
	case !hasDigit:
		return errs.NewValidationError("password", "Password must contain at least one digit")
	case !strings.ContainsAny(plain, passwordSpecials):
		return errs.NewValidationError("password", "Password must contain at least one special character")
	}

	return nil
}
