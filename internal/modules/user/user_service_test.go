package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ride-hailing/internal/auth"
	"ride-hailing/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*models.User)}
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, models.ErrConflict
		}
	}
	cp := *user
	cp.ID = uuid.NewString()
	cp.RideHistory = []string{}
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memUsers) Update(_ context.Context, id string, data models.UserUpdateData) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if data.Name != nil {
		u.Name = *data.Name
	}
	if data.Email != nil {
		u.Email = *data.Email
	}
	if data.PhoneNumber != nil {
		u.PhoneNumber = *data.PhoneNumber
	}
	if data.ProfileImage != nil {
		u.ProfileImage = *data.ProfileImage
	}
	cp := *u
	return &cp, nil
}

func newTestService(repo RepositoryInterface) (ServiceInterface, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer(testSecret, time.Hour)
	return NewService(repo, nil, nil, tokens, "http://localhost:5173", nil, log.New("test")), tokens
}

func TestRegisterThenLogin(t *testing.T) {
	svc, tokens := newTestService(newMemUsers())
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterUserRequest{Name: "Asha", Email: "  Asha@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	user := reg.User.(*models.User)
	if user.Email != "asha@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", user.Email)
	}
	claims, err := tokens.Parse(reg.Token)
	if err != nil {
		t.Fatalf("registration token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleRider {
		t.Errorf("claims = %+v, want subject %s with rider role", claims, user.ID)
	}

	login, err := svc.Login(ctx, models.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.(*models.User).ID != user.ID {
		t.Errorf("login returned a different user")
	}

	body, err := json.Marshal(login.User)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), "$2a$") || strings.Contains(strings.ToLower(string(body)), "password") {
		t.Errorf("profile leaks the password hash: %s", body)
	}
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(newMemUsers())
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterUserRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, models.RegisterUserRequest{Name: "Other", Email: "ASHA@EXAMPLE.COM", Password: "secret2"})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestLoginFailures(t *testing.T) {
	repo := newMemUsers()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterUserRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create(ctx, &models.User{Name: "G", Email: "g@example.com", AuthProvider: "google"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr error
	}{
		{"unknown email", models.LoginRequest{Email: "nobody@example.com", Password: "secret1"}, models.ErrNotFound},
		{"wrong password", models.LoginRequest{Email: "asha@example.com", Password: "nope"}, models.ErrInvalidCredentials},
		{"google account has no password", models.LoginRequest{Email: "g@example.com", Password: ""}, models.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemUsers()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	a, _ := svc.Register(ctx, models.RegisterUserRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	b, _ := svc.Register(ctx, models.RegisterUserRequest{Name: "Ben", Email: "ben@example.com", Password: "secret1"})
	aID := a.User.(*models.User).ID

	taken := "BEN@example.com"
	if _, err := svc.UpdateUserProfile(ctx, aID, models.UserUpdateData{Email: &taken}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	own := "Asha@Example.com"
	name := "Asha K"
	updated, err := svc.UpdateUserProfile(ctx, aID, models.UserUpdateData{Email: &own, Name: &name})
	if err != nil {
		t.Fatalf("re-saving own email: %v", err)
	}
	if updated.Email != "asha@example.com" || updated.Name != "Asha K" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.GetUserProfile(ctx, b.User.(*models.User).ID); err != nil {
		t.Errorf("GetUserProfile: %v", err)
	}
	if _, err := svc.GetUserProfile(ctx, uuid.NewString()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestGoogleLoginDisabled(t *testing.T) {
	svc, _ := newTestService(newMemUsers())
	if _, _, err := svc.HandleGoogleLogin(); !errors.Is(err, models.ErrFeatureDisabled) {
		t.Fatalf("err = %v, want ErrFeatureDisabled", err)
	}
	if _, err := svc.HandleGoogleCallback(context.Background(), "code"); !errors.Is(err, models.ErrFeatureDisabled) {
		t.Fatalf("err = %v, want ErrFeatureDisabled", err)
	}
}
