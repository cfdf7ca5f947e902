package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ride-hailing/internal/auth"
	"ride-hailing/internal/models"

	"github.com/google/uuid"
)

type memDrivers struct {
	mu      sync.Mutex
	drivers map[string]models.Driver
}

func newMemDrivers() *memDrivers {
	return &memDrivers{drivers: make(map[string]models.Driver)}
}

func (m *memDrivers) Create(_ context.Context, d *models.Driver) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.drivers {
		if existing.LicenseNumber == d.LicenseNumber || (d.Email != "" && existing.Email == d.Email) {
			return nil, models.ErrConflict
		}
	}
	cp := *d
	cp.ID = uuid.NewString()
	cp.AvailabilityStatus = true
	cp.CreatedAt = time.Now()
	m.drivers[cp.ID] = cp
	return &cp, nil
}

func (m *memDrivers) FindByID(_ context.Context, id string) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &d, nil
}

func (m *memDrivers) FindByEmail(_ context.Context, email string) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.drivers {
		if d.Email != "" && d.Email == email {
			return &d, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memDrivers) SetAvailability(_ context.Context, id string, available bool) (*models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	d.AvailabilityStatus = available
	m.drivers[id] = d
	return &d, nil
}

func TestRegisterDriver(t *testing.T) {
	svc := NewService(newMemDrivers(), auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour))
	ctx := context.Background()

	d, err := svc.Register(ctx, models.RegisterDriverRequest{Name: "Ravi", VehicleDetails: "White Swift", LicenseNumber: "KA01-1234"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if d.Rating != 0 || !d.AvailabilityStatus {
		t.Errorf("defaults: rating=%v available=%v, want 0 and true", d.Rating, d.AvailabilityStatus)
	}

	_, err = svc.Register(ctx, models.RegisterDriverRequest{Name: "Other", VehicleDetails: "Blue Auto", LicenseNumber: "KA01-1234"})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("duplicate license: err = %v, want ErrConflict", err)
	}
}

func TestDriverLogin(t *testing.T) {
	tokens := auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	svc := NewService(newMemDrivers(), tokens)
	ctx := context.Background()

	d, err := svc.Register(ctx, models.RegisterDriverRequest{
		Name: "Ravi", VehicleDetails: "White Swift", LicenseNumber: "KA01-1234",
		Email: "Ravi@Example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.PasswordHash != "" {
		t.Error("Register returned the password hash")
	}
	if _, err := svc.Register(ctx, models.RegisterDriverRequest{Name: "Nope", VehicleDetails: "x", LicenseNumber: "KA02-0000", Email: "ravi@example.com", Password: "secret2"}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("duplicate email: err = %v, want ErrConflict", err)
	}
	if _, err := svc.Register(ctx, models.RegisterDriverRequest{Name: "NoLogin", VehicleDetails: "x", LicenseNumber: "KA03-0000"}); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := tokens.Parse(resp.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != models.RoleDriver || claims.UserID != d.ID {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "wrong"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "secret1"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown email: err = %v", err)
	}
}

func TestSetAvailability(t *testing.T) {
	svc := NewService(newMemDrivers(), auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour))
	ctx := context.Background()

	d, _ := svc.Register(ctx, models.RegisterDriverRequest{Name: "Ravi", VehicleDetails: "Swift", LicenseNumber: "KA01-1234"})
	updated, err := svc.SetAvailability(ctx, d.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if updated.AvailabilityStatus {
		t.Error("availability not cleared")
	}
	profile, err := svc.GetProfile(ctx, d.ID)
	if err != nil || profile.AvailabilityStatus {
		t.Errorf("GetProfile = %+v, %v", profile, err)
	}
	if _, err := svc.SetAvailability(ctx, uuid.NewString(), true); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown driver: err = %v", err)
	}
}
