package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-lot-api/config"
	"parking-lot-api/internal/clock"
	"parking-lot-api/internal/database"
	"parking-lot-api/internal/handlers"
	"parking-lot-api/internal/jobs"
	"parking-lot-api/internal/logging"
	"parking-lot-api/internal/middleware"
	"parking-lot-api/internal/services"
	"parking-lot-api/internal/telemetry"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.IsDevelopment())

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	if err := middleware.InitMetrics(); err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize metrics")
	}

	if err := database.Connect(cfg.DatabaseURL, cfg.IsDevelopment()); err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to run database migrations")
	}

	redisAddr := parseRedisAddr(cfg.RedisURL)
	jobClient, err := jobs.NewClient(redisAddr)
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to create job client")
	}
	defer jobClient.Close()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiresIn)
	typeService := services.NewVehicleTypeService()
	vehicleService := services.NewVehicleService()
	slotService := services.NewSlotService()
	ticketService := services.NewTicketService(clock.NewSystem(), cfg.RatePerHour, cfg.MinimumBillableHours)

	healthHandler := handlers.NewHealthHandler(redisAddr)
	authHandler := handlers.NewAuthHandler(authService)
	typeHandler := handlers.NewVehicleTypeHandler(typeService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	slotHandler := handlers.NewSlotHandler(slotService)
	ticketHandler := handlers.NewTicketHandler(ticketService, jobClient)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(otelecho.Middleware(cfg.OTelServiceName, otelecho.WithSkipper(func(c echo.Context) bool {
		return c.Path() == "/api/health"
	})))
	e.Use(middleware.Metrics())
	e.HTTPErrorHandler = middleware.ErrorHandler

	if cfg.IsDevelopment() {
		e.Use(echomiddleware.Logger())
	}

	api := e.Group("/api")

	api.GET("/health", healthHandler.Check)

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	auth := api.Group("")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/user", authHandler.GetCurrentUser)

	// Reads and the check-in/check-out flow stay open. The gate kiosks
	// carry no credentials; administrative mutations require a token.
	api.GET("/vehicle-types", typeHandler.List)
	api.GET("/vehicle-types/:id", typeHandler.Get)
	auth.POST("/vehicle-types", typeHandler.Create)
	auth.PUT("/vehicle-types/:id", typeHandler.Update)
	auth.DELETE("/vehicle-types/:id", typeHandler.Delete)

	api.GET("/vehicles", vehicleHandler.List)
	api.GET("/vehicles/:id", vehicleHandler.Get)
	auth.POST("/vehicles", vehicleHandler.Create)
	auth.PUT("/vehicles/:id", vehicleHandler.Update)
	auth.DELETE("/vehicles/:id", vehicleHandler.Delete)

	api.GET("/slots", slotHandler.List)
	api.GET("/slots/free", slotHandler.ListFree)
	api.GET("/slots/:id", slotHandler.Get)
	auth.POST("/slots", slotHandler.Create)
	auth.PUT("/slots/:id", slotHandler.Update)
	auth.DELETE("/slots/:id", slotHandler.Delete)

	api.GET("/tickets", ticketHandler.List)
	api.GET("/tickets/:id", ticketHandler.Get)
	api.POST("/tickets", ticketHandler.CheckIn)
	api.PUT("/tickets/:id", ticketHandler.CheckOut)
	api.POST("/tickets/checkout-by-plate", ticketHandler.CheckOutByPlate)
	auth.DELETE("/tickets/:id", ticketHandler.Delete)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logging.Logger().Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logging.Logger().Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Error().Err(err).Msg("failed to shutdown server")
	}
}

func parseRedisAddr(redisURL string) string {
	if len(redisURL) > 8 && redisURL[:8] == "redis://" {
		return redisURL[8:]
	}
	return redisURL
}
