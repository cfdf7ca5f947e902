package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/pkg/client"

	"github.com/spf13/cobra"
)

type simulateOptions struct {
	server        string
	name          string
	email         string
	password      string
	vehicleType   string
	origin        string
	destination   string
	distance      float64
	duration      float64
	paymentMethod string
	complete      bool
	pollInterval  time.Duration
	searchTimeout time.Duration
}

// simulateCmd plays a rider against a running server: book, wait for a driver,
// optionally ride to completion and pay.
func simulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Book a ride against a running server and follow it like the rider app",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.server, "server", "http://localhost:8080", "API base URL")
	f.StringVar(&opts.name, "name", "Sim Rider", "rider name used when registering")
	f.StringVar(&opts.email, "email", "sim.rider@example.com", "rider email")
	f.StringVar(&opts.password, "password", "simulate123", "rider password")
	f.StringVar(&opts.vehicleType, "vehicle-type", "Auto", "vehicle type to book")
	f.StringVar(&opts.origin, "origin", "MG Road Metro Station", "pickup description")
	f.StringVar(&opts.destination, "destination", "Indiranagar 100ft Road", "drop-off description")
	f.Float64Var(&opts.distance, "distance", 5200, "estimated distance in metres")
	f.Float64Var(&opts.duration, "duration", 1080, "estimated duration in seconds")
	f.StringVar(&opts.paymentMethod, "payment-method", "Cash", "payment method used after completion")
	f.BoolVar(&opts.complete, "complete", false, "start, complete and pay the ride once a driver accepts")
	f.DurationVar(&opts.pollInterval, "poll-interval", client.DefaultPollInterval, "status polling interval")
	f.DurationVar(&opts.searchTimeout, "search-timeout", client.DefaultSearchTimeout, "give up waiting for a driver after this long")
	return cmd
}

func runSimulate(ctx context.Context, out io.Writer, opts simulateOptions) error {
	c := client.New(opts.server)

	rider, err := c.Login(ctx, opts.email, opts.password)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		rider, err = c.Register(ctx, opts.name, opts.email, opts.password)
	}
	if err != nil {
		return fmt.Errorf("signing in: %w", err)
	}
	fmt.Fprintf(out, "signed in as %s (%s)\n", rider.Name, rider.Email)

	quotes, err := c.FareEstimate(ctx, opts.distance, opts.duration)
	if err != nil {
		return fmt.Errorf("fare estimate: %w", err)
	}
	var fare float64
	for _, q := range quotes {
		if strings.EqualFold(q.VehicleType, opts.vehicleType) {
			fare = q.Fare
		}
	}
	if fare == 0 {
		return fmt.Errorf("no fare quote for vehicle type %q", opts.vehicleType)
	}
	fmt.Fprintf(out, "%s fare: %.2f\n", opts.vehicleType, fare)

	created, err := c.CreateRideRequest(ctx, models.CreateRideRequestRequest{
		Origin:            models.Place{Description: opts.origin},
		Destination:       models.Place{Description: opts.destination},
		VehicleType:       opts.vehicleType,
		Fare:              fare,
		EstimatedDistance: opts.distance,
		EstimatedDuration: opts.duration,
		PaymentMethod:     opts.paymentMethod,
	})
	if err != nil {
		return fmt.Errorf("requesting ride: %w", err)
	}
	id := created.RideRequest.ID
	fmt.Fprintf(out, "ride request %s created, %d driver(s) nearby\n", id, created.AvailableDrivers)

	w := &client.Watcher{
		Source:        c,
		PollInterval:  opts.pollInterval,
		SearchTimeout: opts.searchTimeout,
		OnUpdate: func(u client.Update) {
			fmt.Fprintf(out, "  %s\n", u.State)
		},
	}
	result := w.Run(ctx, id)
	if result.Err != nil {
		return fmt.Errorf("following ride request: %w", result.Err)
	}

	switch result.State {
	case client.StateAccepted:
		if d := result.RideRequest.Driver; d != nil {
			fmt.Fprintf(out, "driver %s (%.1f) is on the way: %s\n", d.Name, d.Rating, d.VehicleDetails)
		}
	case client.StateNoDrivers:
		if _, err := c.CancelRideRequest(ctx, id); err != nil {
			return fmt.Errorf("cancelling unmatched request: %w", err)
		}
		fmt.Fprintln(out, "no drivers available, request cancelled")
		return nil
	default:
		return nil
	}

	if opts.complete {
		if _, err := c.StartRideRequest(ctx, id); err != nil {
			return fmt.Errorf("starting ride: %w", err)
		}
		if _, err := c.CompleteRideRequest(ctx, id); err != nil {
			return fmt.Errorf("completing ride: %w", err)
		}
		paid, err := c.PayRideRequest(ctx, id, opts.paymentMethod)
		if err != nil {
			return fmt.Errorf("paying: %w", err)
		}
		fmt.Fprintf(out, "ride completed, payment %s via %s\n", paid.PaymentStatus, paid.PaymentMethod)
	}

	history, err := c.History(ctx)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	fmt.Fprintf(out, "%d past ride(s)\n", len(history))
	for _, r := range history {
		fmt.Fprintf(out, "  %s  %-10s %-9s %8.2f  %s -> %s\n",
			r.RequestedAt.Format(time.DateTime), r.VehicleType, r.Status, r.Fare, r.Origin.Description, r.Destination.Description)
	}
	return nil
}
