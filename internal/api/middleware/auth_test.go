package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ride-hailing/internal/auth"
	"ride-hailing/internal/models"

	"github.com/labstack/echo/v4"
)

const secret = "0123456789abcdef0123456789abcdef"

func newTestServer(t *testing.T, reached *bool) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		*reached = true
		return c.JSON(http.StatusOK, map[string]any{
			"id":   c.Get(ContextUserID),
			"role": c.Get(ContextUserRole),
		})
	}, JWTAuth(secret))
	e.GET("/driver-only", func(c echo.Context) error {
		*reached = true
		return c.NoContent(http.StatusNoContent)
	}, JWTAuth(secret), RequireRole(models.RoleDriver))
	return e
}

func TestJWTAuthRejects(t *testing.T) {
	good := auth.NewTokenIssuer(secret, time.Hour)
	otherKey := auth.NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour)

	wrongKeyToken, err := otherKey.Issue("u1", "a@example.com", models.RoleRider)
	if err != nil {
		t.Fatal(err)
	}
	validToken, err := good.Issue("u1", "a@example.com", models.RoleRider)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{"missing", "", "Authentication required"},
		{"wrong scheme", "Basic " + validToken, "Authentication required"},
		{"malformed", "Bearer not-a-jwt", "Token is malformed"},
		{"wrong key", "Bearer " + wrongKeyToken, "Invalid token signature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			e := newTestServer(t, &reached)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("code = %d, want 401", rec.Code)
			}
			if reached {
				t.Fatal("handler ran for a rejected credential")
			}
			var body models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Status != models.StatusError || body.Message != tt.wantMessage {
				t.Errorf("body = %+v, want message %q", body, tt.wantMessage)
			}
		})
	}
}

func TestJWTAuthAccepts(t *testing.T) {
	token, err := auth.NewTokenIssuer(secret, time.Hour).Issue("u1", "a@example.com", models.RoleRider)
	if err != nil {
		t.Fatal(err)
	}

	for _, target := range []string{"/me", "/me?token=" + token} {
		var reached bool
		e := newTestServer(t, &reached)
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if target == "/me" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !reached {
			t.Fatalf("%s: code = %d reached = %v", target, rec.Code, reached)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["id"] != "u1" || body["role"] != models.RoleRider {
			t.Errorf("%s: body = %v", target, body)
		}
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenIssuer(secret, time.Hour)
	riderToken, _ := tokens.Issue("u1", "", models.RoleRider)
	driverToken, _ := tokens.Issue("d1", "", models.RoleDriver)

	tests := []struct {
		token    string
		wantCode int
	}{
		{riderToken, http.StatusForbidden},
		{driverToken, http.StatusNoContent},
	}
	for _, tt := range tests {
		var reached bool
		e := newTestServer(t, &reached)
		req := httptest.NewRequest(http.MethodGet, "/driver-only", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != tt.wantCode {
			t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
		}
		if reached != (tt.wantCode == http.StatusNoContent) {
			t.Errorf("reached = %v for code %d", reached, rec.Code)
		}
	}
}
