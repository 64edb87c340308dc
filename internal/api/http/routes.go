package httpapi

import (
	"errors"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/airpi-labs/air-monitor/internal/history"
	"github.com/airpi-labs/air-monitor/internal/sysinfo"
)

var validate = validator.New()

// Server bundles the dependencies the handlers read from. Handlers are
// thin: snapshot the store, collect system info, serialize.
type Server struct {
	Store  *history.Store
	System *sysinfo.Provider

	// ShutdownToken gates the /shutdown endpoint; empty disables it.
	ShutdownToken string
	// ShutdownCmd is the host power-off command, split on whitespace.
	ShutdownCmd string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, srv Server) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.SendString(dashboardPage)
	})

	app.Get("/api/data", func(c *fiber.Ctx) error {
		r, err := srv.Store.Latest()
		if err != nil {
			if errors.Is(err, history.ErrNoData) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"ok":    false,
					"error": "No data yet",
				})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read latest data")
		}

		return c.JSON(fiber.Map{
			"ok":     true,
			"data":   r,
			"system": srv.System.Collect(c.UserContext()),
		})
	})

	app.Get("/api/history", func(c *fiber.Ctx) error {
		var q historyQuery
		q.Limit = c.QueryInt("limit")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points := srv.Store.History()
		if q.Limit > 0 && len(points) > q.Limit {
			points = points[len(points)-q.Limit:]
		}

		return c.JSON(fiber.Map{
			"ok":     true,
			"points": points,
		})
	})

	app.Get("/shutdown", func(c *fiber.Ctx) error {
		if srv.ShutdownToken == "" {
			return fiber.NewError(fiber.StatusForbidden, "shutdown disabled")
		}
		if c.Query("token") != srv.ShutdownToken {
			return fiber.NewError(fiber.StatusForbidden, "invalid shutdown token")
		}

		// Fire and forget: the response does not wait for, or confirm,
		// the actual power-off.
		parts := strings.Fields(srv.ShutdownCmd)
		if len(parts) == 0 {
			return fiber.NewError(fiber.StatusInternalServerError, "no shutdown command configured")
		}
		cmd := exec.Command(parts[0], parts[1:]...)
		if err := cmd.Start(); err != nil {
			log.Printf("ERROR: shutdown command failed to start: %v", err)
		} else {
			go func() {
				timer := time.AfterFunc(30*time.Second, func() {
					cmd.Process.Kill()
				})
				cmd.Wait()
				timer.Stop()
			}()
		}

		return c.SendString("Shutting down...")
	})
}

// historyQuery holds the optional query parameters for /api/history.
type historyQuery struct {
	// Limit caps the response to the newest N points.
	Limit int `validate:"omitempty,gte=1,lte=1000"`
}
