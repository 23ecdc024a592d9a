package auth

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pointage/internal/config"
	"pointage/internal/errors"
	"pointage/models"
)

// Claims is the JWT payload issued at login
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies bearer tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer from config
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL}
}

// Issue signs a token for a user
func (i *TokenIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify parses a bearer token and returns the user ID it was issued for
func (i *TokenIssuer) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(errors.CodeInvalidToken, "unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, errors.New(errors.CodeTokenExpired, "token expired")
		}
		return uuid.Nil, errors.New(errors.CodeInvalidToken, "invalid token")
	}
	if !token.Valid {
		return uuid.Nil, errors.New(errors.CodeInvalidToken, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New(errors.CodeInvalidToken, "invalid token subject")
	}
	return userID, nil
}
