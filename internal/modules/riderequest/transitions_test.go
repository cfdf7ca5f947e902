package riderequest

import (
	"reflect"
	"testing"

	"ride-hailing/internal/models"
)

func TestCanTransition(t *testing.T) {
	all := []models.RideRequestStatus{
		models.RideRequestPending,
		models.RideRequestAccepted,
		models.RideRequestRejected,
		models.RideRequestCancelled,
		models.RideRequestInProgress,
		models.RideRequestCompleted,
	}
	legal := map[[2]models.RideRequestStatus]bool{
		{models.RideRequestPending, models.RideRequestAccepted}:     true,
		{models.RideRequestPending, models.RideRequestRejected}:     true,
		{models.RideRequestPending, models.RideRequestCancelled}:    true,
		{models.RideRequestAccepted, models.RideRequestInProgress}:  true,
		{models.RideRequestAccepted, models.RideRequestCompleted}:   true,
		{models.RideRequestAccepted, models.RideRequestCancelled}:   true,
		{models.RideRequestInProgress, models.RideRequestCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[[2]models.RideRequestStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestNothingReturnsToPending(t *testing.T) {
	if from := SourcesOf(models.RideRequestPending); len(from) != 0 {
		t.Errorf("SourcesOf(PENDING) = %v, want none", from)
	}
}

func TestSourcesOf(t *testing.T) {
	tests := []struct {
		to   models.RideRequestStatus
		want []models.RideRequestStatus
	}{
		{models.RideRequestAccepted, []models.RideRequestStatus{models.RideRequestPending}},
		{models.RideRequestCancelled, []models.RideRequestStatus{models.RideRequestPending, models.RideRequestAccepted}},
		{models.RideRequestCompleted, []models.RideRequestStatus{models.RideRequestAccepted, models.RideRequestInProgress}},
		{models.RideRequestInProgress, []models.RideRequestStatus{models.RideRequestAccepted}},
	}
	for _, tt := range tests {
		if got := SourcesOf(tt.to); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SourcesOf(%s) = %v, want %v", tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for s, want := range map[models.RideRequestStatus]bool{
		models.RideRequestPending:    false,
		models.RideRequestAccepted:   false,
		models.RideRequestInProgress: false,
		models.RideRequestRejected:   true,
		models.RideRequestCancelled:  true,
		models.RideRequestCompleted:  true,
	} {
		if got := IsTerminal(s); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, got, want)
		}
	}
}
