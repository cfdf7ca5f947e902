package main

import (
	"context"
	"fmt"

	"ride-hailing/internal/config"
	"ride-hailing/internal/modules/driver"
	"ride-hailing/internal/modules/ride"
	"ride-hailing/internal/modules/riderequest"
	"ride-hailing/internal/modules/user"
	"ride-hailing/internal/store/mongostore"
	"ride-hailing/internal/store/postgres"

	"github.com/labstack/echo/v4"
)

// repositories is the record store picked by the DATABASE_URL scheme.
type repositories struct {
	users        user.RepositoryInterface
	drivers      driver.RepositoryInterface
	rides        ride.RepositoryInterface
	rideRequests riderequest.RepositoryInterface

	migrate func(ctx context.Context) error
	close   func()
}

func openStore(ctx context.Context, cfg *config.Config, log echo.Logger) (*repositories, error) {
	switch cfg.StoreDriver() {
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info("Successfully connected to PostgreSQL")
		return &repositories{
			users:        user.NewRepository(pool),
			drivers:      driver.NewRepository(pool),
			rides:        ride.NewRepository(pool),
			rideRequests: riderequest.NewRepository(pool),
			migrate:      func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
			close:        pool.Close,
		}, nil

	case "mongo":
		store, err := mongostore.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		log.Infof("Successfully connected to MongoDB database %q", cfg.DatabaseName)
		return &repositories{
			users:        store.Users(),
			drivers:      store.Drivers(),
			rides:        store.Rides(),
			rideRequests: store.RideRequests(),
			migrate:      store.EnsureIndexes,
			close: func() {
				if err := store.Close(context.Background()); err != nil {
					log.Errorf("closing MongoDB client: %v", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported DATABASE_URL scheme")
}
