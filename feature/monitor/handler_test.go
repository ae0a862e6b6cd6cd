package monitor

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"keys-monitor/core/logger"
	"keys-monitor/core/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *Monitor, *fakeSyncer, *logger.Buffer) {
	syncer := &fakeSyncer{}
	m, _ := newMonitor(t, syncer)
	buf := logger.NewBuffer(10)
	m.logger = zap.New(buf.Core(zap.InfoLevel))

	app := fiber.New()
	require.NoError(t, NewFeature(m, buf).Load(app))
	return app, m, syncer, buf
}

func postJSON(path string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleStart(t *testing.T) {
	app, m, syncer, _ := setupTestApp(t)
	path := writeFile(t, t.TempDir())

	resp, err := app.Test(postJSON("/monitor/start", StartRequest{FilePath: path}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var status Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.True(t, status.Active)
	assert.Equal(t, path, status.Path)
	assert.Equal(t, 1, syncer.calls())
	assert.True(t, m.Running())

	resp, err = app.Test(postJSON("/monitor/start", StartRequest{FilePath: path}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHandleStart_UsesSavedPath(t *testing.T) {
	app, m, _, _ := setupTestApp(t)
	path := writeFile(t, t.TempDir())
	require.NoError(t, m.settings.Save(settings.Settings{FilePath: path}))

	resp, err := app.Test(httptest.NewRequest("POST", "/monitor/start", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, path, m.Status().Path)
}

func TestHandleStart_Rejected(t *testing.T) {
	app, _, syncer, _ := setupTestApp(t)

	resp, err := app.Test(postJSON("/monitor/start", StartRequest{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(postJSON("/monitor/start", StartRequest{FilePath: "/nope/AstralKeys.lua"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest("POST", "/monitor/start", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, 0, syncer.calls())
}

func TestHandleStop(t *testing.T) {
	app, m, _, _ := setupTestApp(t)
	require.NoError(t, m.Start(t.Context(), writeFile(t, t.TempDir())))

	resp, err := app.Test(httptest.NewRequest("POST", "/monitor/stop", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["stopped"])
	assert.False(t, m.Running())
}

func TestHandleStatus(t *testing.T) {
	app, _, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/monitor/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var status Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.False(t, status.Active)
}

func TestHandleLogs(t *testing.T) {
	app, m, _, _ := setupTestApp(t)
	require.NoError(t, m.Start(t.Context(), writeFile(t, t.TempDir())))

	resp, err := app.Test(httptest.NewRequest("GET", "/monitor/logs?limit=1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entries []logger.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].Message)
}
