package riderequest

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"ride-hailing/internal/models"

	"github.com/google/uuid"
)

// memRepository is an in-memory RepositoryInterface with the same compare-and-set
// semantics as the Postgres one.
type memRepository struct {
	mu       sync.Mutex
	requests map[string]models.RideRequest

	// CreateFunc, when set, replaces Create (used to inject failures).
	CreateFunc func(ctx context.Context, r *models.RideRequest) (*models.RideRequest, error)
}

func newMemRepository() *memRepository {
	return &memRepository{requests: make(map[string]models.RideRequest)}
}

func (m *memRepository) Create(ctx context.Context, r *models.RideRequest) (*models.RideRequest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *r
	stored.ID = uuid.NewString()
	m.requests[stored.ID] = stored
	return &stored, nil
}

func (m *memRepository) FindByID(_ context.Context, id string) (*models.RideRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (m *memRepository) Transition(_ context.Context, id string, from []models.RideRequestStatus, patch models.RideRequestPatch) (*models.RideRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || !slices.Contains(from, r.Status) {
		return nil, models.ErrInvalidTransition
	}
	applyPatch(&r, patch, time.Now())
	m.requests[id] = r
	return &r, nil
}

func (m *memRepository) MarkPaid(_ context.Context, id, method string) (*models.RideRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.Status != models.RideRequestCompleted || r.PaymentStatus != models.PaymentPending {
		return nil, models.ErrNotPayable
	}
	r.PaymentStatus = models.PaymentCompleted
	r.PaymentMethod = method
	r.UpdatedAt = time.Now()
	m.requests[id] = r
	return &r, nil
}

func (m *memRepository) ListByUser(_ context.Context, userID string, statuses []models.RideRequestStatus, limit int) ([]models.RideRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.RideRequest{}
	for _, r := range m.requests {
		if r.UserID == userID && slices.Contains(statuses, r.Status) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// put stores r as-is, for seeding history.
func (m *memRepository) put(r models.RideRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.requests[r.ID] = r
}

// recordingPublisher collects published routing keys.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// applyPatch copies the non-nil patch fields onto r.
func applyPatch(r *models.RideRequest, p models.RideRequestPatch, now time.Time) {
	if p.Status != "" {
		r.Status = p.Status
	}
	if p.DriverID != nil {
		r.DriverID = *p.DriverID
	}
	if p.ActualPickupTime != nil {
		t := *p.ActualPickupTime
		r.ActualPickupTime = &t
	}
	if p.ActualDropoffTime != nil {
		t := *p.ActualDropoffTime
		r.ActualDropoffTime = &t
	}
	if p.PaymentStatus != nil {
		r.PaymentStatus = *p.PaymentStatus
	}
	if p.PaymentMethod != nil {
		r.PaymentMethod = *p.PaymentMethod
	}
	r.UpdatedAt = now
}
