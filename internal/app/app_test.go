package app

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/studydesk/core/internal/config"
	"github.com/studydesk/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.AppConfig{
		Port:     3333,
		Env:      "production",
		Timezone: "Local",
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(dir, "db", "app.db"),
		},
		Storage: config.StorageConfig{
			Driver:    config.StorageLocal,
			StaticDir: filepath.Join(dir, "static"),
		},
	}
	a, err := New(zap.NewNop(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a
}

func authed(t *testing.T, a *App, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return testutil.Serve(a.Router(), req)
}

func TestAppEndToEnd(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, ":3333", a.Addr())

	w := testutil.DoJSON(t, a.Router(), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, a.Router(), http.MethodPost, "/api/register", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := testutil.DecodeJSON[struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}](t, w)
	token := registered.Token

	w = testutil.DoJSON(t, a.Router(), http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = authed(t, a, http.MethodPost, "/api/notes", token, map[string]interface{}{
		"title": "Week 1", "content": "<p>limits</p>", "tags": []string{"Math"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	today := time.Now().Format("2006-01-02")
	w = authed(t, a, http.MethodPost, "/api/timer_sessions_store", token, map[string]interface{}{
		"user_id": registered.User.ID, "date": today, "subject": "math", "duration": 1500,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = authed(t, a, http.MethodGet, "/api/stats/overview", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	overview := testutil.DecodeJSON[struct {
		Notes        int64 `json:"notes"`
		Tags         int64 `json:"tags"`
		TodaySeconds int64 `json:"today_seconds"`
	}](t, w)
	assert.Equal(t, int64(1), overview.Notes)
	assert.Equal(t, int64(1), overview.Tags)
	assert.Equal(t, int64(1500), overview.TodaySeconds)

	w = authed(t, a, http.MethodGet, "/api/health/cron", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "purge_sessions")

	w = testutil.DoJSON(t, a.Router(), http.MethodGet, "/api/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = testutil.DoJSON(t, a.Router(), http.MethodPatch, "/api/notes", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAppServesLocalUploads(t *testing.T) {
	a := newTestApp(t)

	w := testutil.DoJSON(t, a.Router(), http.MethodPost, "/api/register", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token := testutil.DecodeJSON[struct {
		Token string `json:"token"`
	}](t, w).Token

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "diagram.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w = testutil.Serve(a.Router(), req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	uploaded := testutil.DecodeJSON[struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}](t, w)
	require.NotEmpty(t, uploaded.Data.URL)

	w = testutil.Serve(a.Router(), httptest.NewRequest(http.MethodGet, uploaded.Data.URL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "\x89PNG-bytes", w.Body.String())
}
