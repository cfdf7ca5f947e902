package auth

import (
	"errors"
	"fmt"
	"time"

	"ride-hailing/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "ride-hailing"

// TokenIssuer signs and verifies the HS256 credentials handed out at login and registration.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed credential for the given account.
func (t *TokenIssuer) Issue(subjectID, email, role string) (string, error) {
	now := t.now()
	claims := &models.JwtCustomClaims{
		UserID: subjectID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Issue: failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and subject, returning the embedded claims.
func (t *TokenIssuer) Parse(tokenString string) (*models.JwtCustomClaims, error) {
	claims := new(models.JwtCustomClaims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, errors.Join(models.ErrInvalidToken, err)
	}
	return claims, nil
}
