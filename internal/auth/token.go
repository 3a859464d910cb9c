package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"photoshare/internal/model"
)

// Claims is the decoded payload of a session token. Role reflects the
// identity's role at issuance time: a later role change does not touch
// tokens already in flight, so a demoted admin keeps admin claims until
// expiry (the stale-privilege window).
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
}

// TokenService issues and verifies HMAC-signed session tokens. The
// signing secret and token lifetime are fixed at construction; the
// service holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token embedding the identity id and role, expiring one
// TTL from now.
func (s *TokenService) Issue(userID int64, role string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Role:   role,
	})

	return token.SignedString(s.secret)
}

// Verify checks signature integrity and expiry. Failures stay
// distinguishable as model.ErrTokenMalformed, ErrTokenSignatureInvalid
// and ErrTokenExpired; the HTTP boundary collapses them into a single
// unauthenticated response.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, model.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, model.ErrTokenSignatureInvalid
		default:
			return nil, model.ErrTokenMalformed
		}
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, model.ErrTokenMalformed
	}

	return claims, nil
}
