package api

import (
	"net/http"

	"ride-hailing/internal/api/middleware"
	"ride-hailing/internal/models"
	"ride-hailing/internal/modules/driver"
	"ride-hailing/internal/modules/fare"
	"ride-hailing/internal/modules/fixtures"
	"ride-hailing/internal/modules/ride"
	"ride-hailing/internal/modules/riderequest"
	"ride-hailing/internal/modules/user"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	userHandler *user.Handler,
	driverHandler *driver.Handler,
	rideHandler *ride.Handler,
	rideRequestHandler *riderequest.Handler,
	fareHandler *fare.Handler,
	fixturesHandler *fixtures.Handler,
	jwtSecret string,
	uploadDir string,
) {
	// Initialize the JWT authentication middleware
	authMiddleware := middleware.JWTAuth(jwtSecret)
	driverOnly := middleware.RequireRole(models.RoleDriver)
	riderOnly := middleware.RequireRole(models.RoleRider)

	// --- Public Routes ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.Static("/uploads", uploadDir)

	api := e.Group("/api")

	// --- Rider Routes ---
	userGroup := api.Group("/users")
	{
		userGroup.POST("/register", userHandler.Register)
		userGroup.POST("/login", userHandler.Login)
		userGroup.GET("/auth/google", userHandler.GoogleLogin)
		userGroup.GET("/auth/google/callback", userHandler.GoogleCallback)

		userGroup.GET("/profile", userHandler.GetProfile, authMiddleware, riderOnly)
		userGroup.PUT("/profile", userHandler.UpdateProfile, authMiddleware, riderOnly)
	}

	// --- Driver Routes ---
	driverGroup := api.Group("/drivers")
	{
		driverGroup.POST("/register", driverHandler.Register)
		driverGroup.POST("/login", driverHandler.Login)
		driverGroup.GET("/fixtures", fixturesHandler.List)

		driverGroup.GET("/profile", driverHandler.GetProfile, authMiddleware, driverOnly)
		driverGroup.PUT("/availability", driverHandler.SetAvailability, authMiddleware, driverOnly)
	}

	// --- Ride Routes ---
	rideGroup := api.Group("/rides", authMiddleware)
	{
		rideGroup.POST("/create", rideHandler.Create)
		rideGroup.GET("", rideHandler.List)
		rideGroup.GET("/fare-estimate", fareHandler.Estimate)
	}

	// Ride requests belong to rider accounts; driver credentials are refused here.
	requestGroup := rideGroup.Group("/ride-requests", riderOnly)
	{
		requestGroup.GET("/history", rideRequestHandler.History)
		requestGroup.POST("", rideRequestHandler.Create)
		requestGroup.GET("/:id", rideRequestHandler.Get)
		requestGroup.POST("/:id/cancel", rideRequestHandler.Cancel)
		requestGroup.POST("/:id/start", rideRequestHandler.Start)
		requestGroup.POST("/:id/complete", rideRequestHandler.Complete)
		requestGroup.POST("/:id/pay", rideRequestHandler.Pay)
		requestGroup.GET("/:id/ws", rideRequestHandler.Stream)
	}
}
