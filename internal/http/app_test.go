package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"agripoultry/internal/http/handlers"
	"agripoultry/internal/metrics"
	"agripoultry/internal/notify"
	"agripoultry/internal/repos"
	"agripoultry/internal/services"
)

type testEnv struct {
	app     *fiber.App
	dash    *services.Dashboard
	store   *repos.StateRepo
	metrics *metrics.Registry
}

// newTestApp wires the routes on a seeded in-memory store, without CSRF.
func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	blobs := repos.NewSQLiteBlobs(db)
	t.Cleanup(func() { _ = blobs.Close() })
	store := repos.NewStateRepo(blobs)

	notes := notify.NewCenter(time.Hour)
	t.Cleanup(notes.Close)
	reg := metrics.NewRegistry()
	dash, err := services.NewDashboard(store, notes, reg)
	require.NoError(t, err)
	dash.Clock = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

	app := fiber.New(fiber.Config{Views: handlers.NewEngine(), ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	handlers.Register(app, handlers.NewDeps(dash, reg))
	return &testEnv{app: app, dash: dash, store: store, metrics: reg}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}
