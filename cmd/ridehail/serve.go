package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ride-hailing/internal/api"
	"ride-hailing/internal/auth"
	"ride-hailing/internal/config"
	"ride-hailing/internal/modules/driver"
	"ride-hailing/internal/modules/fare"
	"ride-hailing/internal/modules/fixtures"
	"ride-hailing/internal/modules/ride"
	"ride-hailing/internal/modules/riderequest"
	"ride-hailing/internal/modules/user"
	"ride-hailing/pkg/email"
	"ride-hailing/pkg/events"
	"ride-hailing/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "apply the schema / indexes before serving")
	return cmd
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	}
	return log.INFO
}

func runServe(ctx context.Context, autoMigrate bool) error {
	// 1. --- Configuration ---
	// Startup aborts on any missing or invalid value.
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLevel(cfg.LogLevel))
	e.Validator = utils.GetValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler(cfg.IsProduction())

	// 2. --- Middleware ---
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				c.Logger().Errorf("%s %s %d %s id=%s err=%v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			c.Logger().Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(cfg.ClientOrigin, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Record store ---
	repos, err := openStore(ctx, cfg, e.Logger)
	if err != nil {
		return err
	}
	defer repos.close()
	if autoMigrate {
		if err := repos.migrate(ctx); err != nil {
			return err
		}
	}

	// 4. --- Integrations ---
	var emailer email.ServiceInterface = email.NewNoopSender(e.Logger)
	if cfg.EmailEnabled() {
		sender, err := email.NewSESV2Sender(ctx, cfg.AWSRegion, cfg.EmailFrom, e.Logger)
		if err != nil {
			return err
		}
		emailer = sender
	}
	templates, err := email.NewTemplateManager()
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(ctx, cfg.AMQPURL, events.RideExchange, e.Logger)
		if err != nil {
			return err
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	var googleOAuth *oauth2.Config
	if cfg.GoogleLoginEnabled() {
		googleOAuth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	// 5. --- Dependency Injection (Wiring everything up) ---
	userService := user.NewService(repos.users, emailer, templates, tokens, cfg.ClientOrigin, googleOAuth, e.Logger)
	userHandler := user.NewHandler(userService, cfg.UploadDir)

	driverHandler := driver.NewHandler(driver.NewService(repos.drivers, tokens))
	rideHandler := ride.NewHandler(ride.NewService(repos.rides))
	fareHandler := fare.NewHandler(fare.NewService(fare.DefaultTariffs))

	directory := fixtures.NewDirectory()
	fixturesHandler := fixtures.NewHandler(directory)

	scheduler := riderequest.NewScheduler()
	rideRequestService := riderequest.NewService(repos.rideRequests, directory, scheduler, riderequest.NewNotifier(), riderequest.Options{
		AssignmentDelay: cfg.AssignmentDelay,
		Publisher:       publisher,
		Riders:          repos.users,
		Emailer:         emailer,
		Templates:       templates,
		Logger:          e.Logger,
	})
	rideRequestHandler := riderequest.NewHandler(rideRequestService)
	// Runs before publisher.Close: pending assignments stop, then in-flight events drain.
	defer func() {
		scheduler.Stop()
		rideRequestService.Wait()
	}()

	// 6. --- Routes ---
	api.SetupRoutes(e,
		userHandler,
		driverHandler,
		rideHandler,
		rideRequestHandler,
		fareHandler,
		fixturesHandler,
		cfg.JWTSecret,
		cfg.UploadDir,
	)

	// 7. --- Start Server with graceful shutdown logic ---
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	e.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	e.Logger.Info("Server exiting")
	return nil
}
