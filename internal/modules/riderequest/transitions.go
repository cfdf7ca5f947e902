package riderequest

import "ride-hailing/internal/models"

// allowed lists, per status, the statuses a ride request may move to next.
// REJECTED, CANCELLED and COMPLETED are terminal.
var allowed = map[models.RideRequestStatus][]models.RideRequestStatus{
	models.RideRequestPending:    {models.RideRequestAccepted, models.RideRequestRejected, models.RideRequestCancelled},
	models.RideRequestAccepted:   {models.RideRequestInProgress, models.RideRequestCompleted, models.RideRequestCancelled},
	models.RideRequestInProgress: {models.RideRequestCompleted},
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to models.RideRequestStatus) bool {
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SourcesOf returns every status that may move to `to`, in a stable order.
func SourcesOf(to models.RideRequestStatus) []models.RideRequestStatus {
	var from []models.RideRequestStatus
	for _, s := range []models.RideRequestStatus{
		models.RideRequestPending,
		models.RideRequestAccepted,
		models.RideRequestInProgress,
	} {
		if CanTransition(s, to) {
			from = append(from, s)
		}
	}
	return from
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s models.RideRequestStatus) bool {
	return len(allowed[s]) == 0
}
