package ride

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ride-hailing/internal/models"

	"github.com/labstack/echo/v4"
)

type fakeRepo struct {
	created   []models.Ride
	createErr error
	gotLimit  int
	gotOffset int
}

func (f *fakeRepo) Create(_ context.Context, r *models.Ride) (*models.Ride, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *r
	cp.ID = "ride-1"
	cp.CreatedAt = time.Now()
	f.created = append(f.created, cp)
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, limit, offset int) ([]models.Ride, int, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.created, len(f.created), nil
}

func TestCreateRide(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createErr  error
		wantCode   int
		wantStatus string
	}{
		{
			name:       "defaults status to Pending",
			body:       `{"user":"u1","driver":"d1","pickupLocation":"A","dropoffLocation":"B","fare":120}`,
			wantCode:   http.StatusCreated,
			wantStatus: models.RideStatusPending,
		},
		{
			name:       "explicit status",
			body:       `{"user":"u1","driver":"d1","pickupLocation":"A","dropoffLocation":"B","fare":120,"status":"In Progress"}`,
			wantCode:   http.StatusCreated,
			wantStatus: models.RideStatusInProgress,
		},
		{
			name:     "missing pickup",
			body:     `{"user":"u1","driver":"d1","dropoffLocation":"B","fare":120}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown status",
			body:     `{"user":"u1","driver":"d1","pickupLocation":"A","dropoffLocation":"B","fare":1,"status":"Lost"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "store failure",
			body:      `{"user":"u1","driver":"d1","pickupLocation":"A","dropoffLocation":"B","fare":120}`,
			createErr: errors.New("connection refused"),
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{createErr: tt.createErr}
			h := NewHandler(NewService(repo))

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/rides/create", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			if err := h.Create(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantStatus != "" && repo.created[0].Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", repo.created[0].Status, tt.wantStatus)
			}
		})
	}
}

func TestListRidesPaging(t *testing.T) {
	repo := &fakeRepo{created: []models.Ride{{ID: "a"}, {ID: "b"}}}
	h := NewHandler(NewService(repo))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/rides?page=3&limit=10", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if repo.gotLimit != 10 || repo.gotOffset != 20 {
		t.Errorf("limit/offset = %d/%d, want 10/20", repo.gotLimit, repo.gotOffset)
	}

	var body struct {
		Status string                  `json:"status"`
		Data   models.RideListResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != models.StatusSuccess || body.Data.Total != 2 || body.Data.Page != 3 {
		t.Errorf("body = %+v", body)
	}
}
