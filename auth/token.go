package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rpupo63/blog-platform-backend/errs"
)

// DefaultTokenTTL is how long an access token stays valid when the
// configuration does not override it.
const DefaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies stateless HS256 bearer tokens. The expiry
// is embedded in the token; there is no server-side session table and no
// revocation list, which is why the auth middleware re-checks the account on
// every request.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying subject, valid for the service TTL.
func (s TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the signature and expiry of token and returns its subject.
// Tampered, malformed and expired tokens all surface the same
// errs.ErrInvalidToken condition.
func (s TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errs.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errs.NewInvalidTokenError()
	}

	return claims.Subject, nil
}
