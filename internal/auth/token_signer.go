package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is what gets baked into an access token. The wizard only
// ever needs the opaque user id out of this.
type AccessClaims struct {
	UserID string
	Email  string
}

// TokenSigner signs and verifies access tokens.
type TokenSigner interface {
	SignAccessToken(ctx context.Context, claims AccessClaims) (string, time.Duration, error)
	VerifyAccessToken(ctx context.Context, token string) (AccessClaims, error)
}

type jwtSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTSigner builds an HMAC token signer. ttl <= 0 defaults to 1h.
func NewJWTSigner(secret string, ttl time.Duration) TokenSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &jwtSigner{secret: []byte(secret), ttl: ttl}
}

type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *jwtSigner) SignAccessToken(ctx context.Context, claims AccessClaims) (string, time.Duration, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, s.ttl, nil
}

func (s *jwtSigner) VerifyAccessToken(ctx context.Context, tokenStr string) (AccessClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return AccessClaims{}, ErrInvalidToken
	}
	return AccessClaims{UserID: claims.Subject, Email: claims.Email}, nil
}
