package auth

import (
	"errors"
	"testing"
	"time"

	"ride-hailing/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, err := issuer.Issue("user-1", "a@x.com", models.RoleRider)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Subject != "user-1" {
		t.Errorf("subject = %q/%q, want user-1", claims.UserID, claims.Subject)
	}
	if claims.Email != "a@x.com" || claims.Role != models.RoleRider {
		t.Errorf("claims = %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("lifetime = %v, want 1h", got)
	}
}

func TestParseRejects(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	expired := NewTokenIssuer(testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Issue("user-1", "", models.RoleRider)

	otherKey, _ := NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour).Issue("user-1", "", models.RoleRider)

	noSubject, _ := issuer.Issue("", "", models.RoleRider)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expiredToken},
		{"wrong signature", otherKey},
		{"missing subject", noSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(tt.token)
			if !errors.Is(err, models.ErrInvalidToken) {
				t.Fatalf("Parse err = %v, want ErrInvalidToken", err)
			}
		})
	}

	t.Run("expired wraps jwt error", func(t *testing.T) {
		_, err := issuer.Parse(expiredToken)
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("err = %v, want jwt.ErrTokenExpired", err)
		}
	})
}
