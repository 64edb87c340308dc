package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/airpi-labs/air-monitor/internal/airquality"
	"github.com/airpi-labs/air-monitor/internal/history"
	"github.com/airpi-labs/air-monitor/internal/sysinfo"
)

func newTestApp(srv Server) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	RegisterRoutes(app, srv)
	return app
}

func testServer() (Server, *history.Store) {
	store := history.NewStore(15 * time.Minute)
	return Server{
		Store:  store,
		System: sysinfo.NewProvider(time.Second),
	}, store
}

func TestDataBeforeFirstReading(t *testing.T) {
	srv, _ := testServer()
	app := newTestApp(srv)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/data", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}

	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.OK || body.Error != "No data yet" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestDataAfterReading(t *testing.T) {
	srv, store := testServer()
	app := newTestApp(srv)

	pm25 := 10
	store.Record(airquality.NewReading(time.Now(), 22.0, 45.0, nil, &pm25, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/data", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		OK   bool               `json:"ok"`
		Data airquality.Reading `json:"data"`
		Sys  sysinfo.Info       `json:"system"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.OK {
		t.Error("expected ok:true")
	}
	if body.Data.TempF != 71.6 {
		t.Errorf("temp_f: got %v, want 71.6", body.Data.TempF)
	}
	if body.Data.AQICategory != airquality.CategoryGood {
		t.Errorf("aqi_category: got %q, want Good", body.Data.AQICategory)
	}
}

func TestHistoryReturnsWindowInOrder(t *testing.T) {
	srv, store := testServer()
	app := newTestApp(srv)

	for i := 0; i < 3; i++ {
		store.Record(airquality.Reading{TS: float64(i)})
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		OK     bool                 `json:"ok"`
		Points []airquality.Reading `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(body.Points))
	}
	for i, p := range body.Points {
		if p.TS != float64(i) {
			t.Errorf("point %d: got ts=%v, want %d", i, p.TS, i)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	srv, store := testServer()
	app := newTestApp(srv)

	for i := 0; i < 5; i++ {
		store.Record(airquality.Reading{TS: float64(i)})
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history?limit=2", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Points []airquality.Reading `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(body.Points))
	}
	if body.Points[1].TS != 4 {
		t.Errorf("expected the newest points, got tail ts=%v", body.Points[1].TS)
	}
}

func TestHistoryLimitValidation(t *testing.T) {
	srv, _ := testServer()
	app := newTestApp(srv)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history?limit=5000", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestShutdownDisabledWithoutToken(t *testing.T) {
	srv, _ := testServer()
	app := newTestApp(srv)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/shutdown", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.StatusCode)
	}
}

func TestShutdownRejectsWrongToken(t *testing.T) {
	srv, _ := testServer()
	srv.ShutdownToken = "let-me-in"
	srv.ShutdownCmd = "true"
	app := newTestApp(srv)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/shutdown?token=wrong", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.StatusCode)
	}
}

func TestShutdownWithToken(t *testing.T) {
	srv, _ := testServer()
	srv.ShutdownToken = "let-me-in"
	srv.ShutdownCmd = "true" // harmless stand-in for the power-off command
	app := newTestApp(srv)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/shutdown?token=let-me-in", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestDashboardServed(t *testing.T) {
	srv, _ := testServer()
	app := newTestApp(srv)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
}
