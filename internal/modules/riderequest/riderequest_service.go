package riderequest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/internal/modules/fixtures"
	"ride-hailing/pkg/email"
	"ride-hailing/pkg/events"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const (
	// HistoryLimit caps the number of past rides returned by History.
	HistoryLimit = 50

	DefaultAssignmentDelay = 5 * time.Second

	backgroundTimeout = 10 * time.Second
)

// RiderLookup resolves a rider account, used to address receipt emails.
type RiderLookup interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// ServiceInterface defines the ride request lifecycle.
type ServiceInterface interface {
	Create(ctx context.Context, riderID string, req models.CreateRideRequestRequest) (*models.CreateRideRequestResponse, error)
	Get(ctx context.Context, id, riderID string) (*models.RideRequestView, error)
	Cancel(ctx context.Context, id, riderID string) (*models.RideRequestView, error)
	Start(ctx context.Context, id, riderID string) (*models.RideRequestView, error)
	Complete(ctx context.Context, id, riderID string) (*models.RideRequestView, error)
	Pay(ctx context.Context, id, riderID, method string) (*models.RideRequestView, error)
	History(ctx context.Context, riderID string) ([]models.RideRequestView, error)
	// Watch returns the current state plus a stream of later updates. The returned
	// function must be called to release the subscription.
	Watch(ctx context.Context, id, riderID string) (*models.RideRequestView, <-chan models.RideRequestView, func(), error)
}

// Options carries the optional collaborators of the service. Zero values get
// no-op defaults.
type Options struct {
	AssignmentDelay time.Duration
	Publisher       events.Publisher
	Riders          RiderLookup
	Emailer         email.ServiceInterface
	Templates       *email.TemplateManager
	Logger          echo.Logger
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	repo      RepositoryInterface
	directory *fixtures.Directory
	scheduler *Scheduler
	notifier  *Notifier

	delay     time.Duration
	publisher events.Publisher
	riders    RiderLookup
	emailer   email.ServiceInterface
	templates *email.TemplateManager
	log       echo.Logger
	now       func() time.Time

	// background tracks event publishing and receipt emails still in flight.
	background sync.WaitGroup
}

func NewService(repo RepositoryInterface, directory *fixtures.Directory, scheduler *Scheduler, notifier *Notifier, opts Options) *Service {
	s := &Service{
		repo:      repo,
		directory: directory,
		scheduler: scheduler,
		notifier:  notifier,
		delay:     opts.AssignmentDelay,
		publisher: opts.Publisher,
		riders:    opts.Riders,
		emailer:   opts.Emailer,
		templates: opts.Templates,
		log:       opts.Logger,
		now:       time.Now,
	}
	if s.delay <= 0 {
		s.delay = DefaultAssignmentDelay
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	if s.log == nil {
		s.log = log.New("ride-request")
	}
	return s
}

func (s *Service) Create(ctx context.Context, riderID string, req models.CreateRideRequestRequest) (*models.CreateRideRequestResponse, error) {
	now := s.now()
	rideRequest := &models.RideRequest{
		UserID:            riderID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		VehicleType:       req.VehicleType,
		Fare:              req.Fare,
		Status:            models.RideRequestPending,
		RequestedAt:       now,
		EstimatedDistance: req.EstimatedDistance,
		EstimatedDuration: req.EstimatedDuration,
		PaymentStatus:     models.PaymentPending,
		PaymentMethod:     req.PaymentMethod,
		UpdatedAt:         now,
	}

	created, err := s.repo.Create(ctx, rideRequest)
	if err != nil {
		return nil, fmt.Errorf("service.CreateRideRequest: %w", err)
	}

	id, vehicleType := created.ID, created.VehicleType
	s.scheduler.Schedule(id, s.delay, func() { s.assignDriver(id, vehicleType) })
	s.broadcast(s.view(created), eventType(created.Status))

	return &models.CreateRideRequestResponse{
		RideRequest:      created,
		AvailableDrivers: len(s.directory.FilterByVehicleType(created.VehicleType)),
	}, nil
}

// assignDriver is the deferred assignment: the first fixture driver of the requested
// vehicle type is attached, but only while the request is still PENDING. With no
// matching driver the request simply stays PENDING.
func (s *Service) assignDriver(id, vehicleType string) {
	driver, ok := s.directory.FindByVehicleType(vehicleType)
	if !ok {
		s.log.Infof("no %q driver available for ride request %s, leaving it pending", vehicleType, id)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
	defer cancel()

	driverID := driver.ID
	updated, err := s.repo.Transition(ctx, id, []models.RideRequestStatus{models.RideRequestPending}, models.RideRequestPatch{
		Status:   models.RideRequestAccepted,
		DriverID: &driverID,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			s.log.Infof("ride request %s is no longer pending, skipping driver assignment", id)
			return
		}
		s.log.Errorf("assign driver to ride request %s: %v", id, err)
		return
	}

	s.log.Infof("ride request %s accepted by %s (%s)", id, driver.Name, driver.VehicleDetails)
	s.broadcast(s.view(updated), eventType(updated.Status))
}

func (s *Service) Get(ctx context.Context, id, riderID string) (*models.RideRequestView, error) {
	rideRequest, err := s.owned(ctx, id, riderID)
	if err != nil {
		return nil, fmt.Errorf("service.GetRideRequest: %w", err)
	}
	view := s.view(rideRequest)
	return &view, nil
}

// Cancel moves a PENDING or ACCEPTED request to CANCELLED and drops any assignment
// that has not fired yet.
func (s *Service) Cancel(ctx context.Context, id, riderID string) (*models.RideRequestView, error) {
	view, err := s.transition(ctx, id, riderID, models.RideRequestCancelled, nil)
	if err != nil {
		return nil, fmt.Errorf("service.CancelRideRequest: %w", err)
	}
	if s.scheduler.Cancel(id) {
		s.log.Debugf("dropped pending driver assignment for ride request %s", id)
	}
	return view, nil
}

func (s *Service) Start(ctx context.Context, id, riderID string) (*models.RideRequestView, error) {
	view, err := s.transition(ctx, id, riderID, models.RideRequestInProgress, func(_ *models.RideRequest, now time.Time, patch *models.RideRequestPatch) {
		patch.ActualPickupTime = &now
	})
	if err != nil {
		return nil, fmt.Errorf("service.StartRideRequest: %w", err)
	}
	return view, nil
}

func (s *Service) Complete(ctx context.Context, id, riderID string) (*models.RideRequestView, error) {
	view, err := s.transition(ctx, id, riderID, models.RideRequestCompleted, func(current *models.RideRequest, now time.Time, patch *models.RideRequestPatch) {
		patch.ActualDropoffTime = &now
		if current.ActualPickupTime == nil {
			patch.ActualPickupTime = &now
		}
	})
	if err != nil {
		return nil, fmt.Errorf("service.CompleteRideRequest: %w", err)
	}

	s.sendReceipt(*view)
	return view, nil
}

// Pay records the payment method of a completed ride. No money is captured.
func (s *Service) Pay(ctx context.Context, id, riderID, method string) (*models.RideRequestView, error) {
	current, err := s.owned(ctx, id, riderID)
	if err != nil {
		return nil, fmt.Errorf("service.PayRideRequest: %w", err)
	}
	if current.Status != models.RideRequestCompleted || current.PaymentStatus != models.PaymentPending {
		return nil, fmt.Errorf("service.PayRideRequest: %w", models.ErrNotPayable)
	}

	updated, err := s.repo.MarkPaid(ctx, id, method)
	if err != nil {
		return nil, fmt.Errorf("service.PayRideRequest: %w", err)
	}

	view := s.view(updated)
	s.broadcast(view, "ride_request.paid")
	return &view, nil
}

// History returns the rider's COMPLETED and CANCELLED requests, newest first.
func (s *Service) History(ctx context.Context, riderID string) ([]models.RideRequestView, error) {
	requests, err := s.repo.ListByUser(ctx, riderID,
		[]models.RideRequestStatus{models.RideRequestCompleted, models.RideRequestCancelled},
		HistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("service.RideHistory: %w", err)
	}

	views := make([]models.RideRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, s.view(&requests[i]))
	}
	return views, nil
}

func (s *Service) Watch(ctx context.Context, id, riderID string) (*models.RideRequestView, <-chan models.RideRequestView, func(), error) {
	// Subscribe first so an update racing the snapshot read is not lost.
	updates, unsubscribe := s.notifier.Subscribe(id)

	view, err := s.Get(ctx, id, riderID)
	if err != nil {
		unsubscribe()
		return nil, nil, nil, err
	}
	return view, updates, unsubscribe, nil
}

// transition loads the rider's request, checks the move against the transition table
// and stores it with a compare-and-set on the status.
func (s *Service) transition(
	ctx context.Context,
	id, riderID string,
	to models.RideRequestStatus,
	fill func(current *models.RideRequest, now time.Time, patch *models.RideRequestPatch),
) (*models.RideRequestView, error) {
	current, err := s.owned(ctx, id, riderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, to) {
		return nil, fmt.Errorf("%w: %s to %s", models.ErrInvalidTransition, current.Status, to)
	}

	patch := models.RideRequestPatch{Status: to}
	if fill != nil {
		fill(current, s.now(), &patch)
	}

	updated, err := s.repo.Transition(ctx, id, SourcesOf(to), patch)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: status changed while moving to %s", err, to)
		}
		return nil, err
	}

	view := s.view(updated)
	s.broadcast(view, eventType(updated.Status))
	return &view, nil
}

// owned fetches a request and hides it from everyone but its rider.
func (s *Service) owned(ctx context.Context, id, riderID string) (*models.RideRequest, error) {
	rideRequest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rideRequest.UserID != riderID {
		return nil, models.ErrNotFound
	}
	return rideRequest, nil
}

// view attaches the driver to requests that have one. The stored driver id is tried
// first; fixture ids change on every restart, so the vehicle type match is the fallback.
func (s *Service) view(r *models.RideRequest) models.RideRequestView {
	v := models.RideRequestView{RideRequest: *r}
	switch r.Status {
	case models.RideRequestAccepted, models.RideRequestInProgress, models.RideRequestCompleted:
		if d, ok := s.directory.FindByID(r.DriverID); ok {
			v.Driver = &d
		} else if d, ok := s.directory.FindByVehicleType(r.VehicleType); ok {
			v.Driver = &d
		}
	}
	return v
}

func eventType(status models.RideRequestStatus) string {
	return "ride_request." + strings.ToLower(string(status))
}

func (s *Service) broadcast(view models.RideRequestView, routingKey string) {
	s.notifier.Publish(view)

	event := models.RideRequestEvent{Type: routingKey, RideRequest: view, OccurredAt: s.now()}
	s.goBackground(func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
			s.log.Errorf("publish %s for ride request %s: %v", routingKey, view.ID, err)
		}
	})
}

func (s *Service) sendReceipt(view models.RideRequestView) {
	if s.riders == nil || s.emailer == nil || s.templates == nil {
		return
	}

	s.goBackground(func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		rider, err := s.riders.FindByID(ctx, view.UserID)
		if err != nil {
			s.log.Errorf("receipt for ride request %s: load rider: %v", view.ID, err)
			return
		}
		if rider.Email == "" {
			return
		}

		data := email.ReceiptData{
			Name:        rider.Name,
			Origin:      view.Origin.Description,
			Destination: view.Destination.Description,
			VehicleType: view.VehicleType,
			Fare:        view.Fare,
		}
		if view.Driver != nil {
			data.DriverName = view.Driver.Name
		}
		if view.ActualDropoffTime != nil {
			data.CompletedAt = view.ActualDropoffTime.Format("02 Jan 2006 15:04")
		}

		html, err := s.templates.GenerateReceiptEmailHTML(data)
		if err != nil {
			s.log.Errorf("receipt for ride request %s: render: %v", view.ID, err)
			return
		}
		text := fmt.Sprintf("Your %s ride from %s to %s is complete. Fare: %.2f", view.VehicleType, data.Origin, data.Destination, view.Fare)
		if err := s.emailer.SendEmail(ctx, rider.Email, "Your ride receipt", text, html); err != nil {
			s.log.Errorf("receipt for ride request %s: send to %s: %v", view.ID, rider.Email, err)
		}
	})
}

func (s *Service) goBackground(fn func()) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		fn()
	}()
}

// Wait blocks until every event publish and receipt email started so far has
// finished. Call it after the scheduler is stopped and before closing the publisher.
func (s *Service) Wait() {
	s.background.Wait()
}
