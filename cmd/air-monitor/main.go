package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/airpi-labs/air-monitor/internal/api/http"
	"github.com/airpi-labs/air-monitor/internal/config"
	"github.com/airpi-labs/air-monitor/internal/history"
	"github.com/airpi-labs/air-monitor/internal/poller"
	"github.com/airpi-labs/air-monitor/internal/sensors"
	"github.com/airpi-labs/air-monitor/internal/sessionlog"
	"github.com/airpi-labs/air-monitor/internal/sysinfo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Sensor setup is the one place allowed to abort the process: a board
	// that cannot be opened is a misconfiguration, not a transient fault.
	var reader sensors.Reader
	switch cfg.SensorMode {
	case config.SensorModeSim:
		log.Printf("INFO: using simulated sensors")
		reader = sensors.NewSimulated(time.Now().UnixNano())
	default:
		board, err := sensors.OpenBoard(cfg.I2CBus)
		if err != nil {
			log.Fatalf("failed to open sensor board: %v", err)
		}
		defer board.Close()
		reader = board
	}

	// In-memory rolling window with the configured retention.
	store := history.NewStore(cfg.HistoryWindow)

	// Per-run CSV log keyed by process start.
	sessions, err := sessionlog.New(cfg.LogDir, time.Now())
	if err != nil {
		log.Fatalf("failed to set up session log: %v", err)
	}
	log.Printf("INFO: logging session to %s", sessions.Path())

	system := sysinfo.NewProvider(cfg.ProbeTimeout)

	// Poll loop that feeds the store and the session log.
	poll := poller.New(reader, store, sessions, cfg.ReadInterval)
	if err := poll.Start(); err != nil {
		log.Fatalf("failed to start poller: %v", err)
	}
	defer poll.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "air-monitor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "air-monitor",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Server{
		Store:         store,
		System:        system,
		ShutdownToken: cfg.ShutdownToken,
		ShutdownCmd:   cfg.ShutdownCmd,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
