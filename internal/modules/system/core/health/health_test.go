package health

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/studydesk/core/internal/pkg/cron"
	"github.com/studydesk/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	db := testutil.NewDB(t)
	sched := cron.New(nil)
	ran := false
	sched.Register(cron.Job{Name: "purge", Interval: time.Hour, Fn: func(context.Context) error {
		ran = true
		return nil
	}})
	r, api := testutil.NewRouter()
	RegisterRoutes(api, db, nil, sched, testutil.AuthAs("u"))

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":true}`, w.Body.String())

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/health/cron", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs := testutil.DecodeJSON[struct {
		Data []cron.ListItem `json:"data"`
	}](t, w)
	require.Len(t, jobs.Data, 1)
	assert.Equal(t, "purge", jobs.Data[0].Name)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/health/cron/run/purge", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ran)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/health/cron/run/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthDegraded(t *testing.T) {
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	r, api := testutil.NewRouter()
	RegisterRoutes(api, db, nil, cron.New(nil), testutil.AuthAs("u"))

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReportsCache(t *testing.T) {
	db := testutil.NewDB(t)
	cacheErr := error(nil)
	cache := pingFunc(func(context.Context) error { return cacheErr })

	r, api := testutil.NewRouter()
	RegisterRoutes(api, db, cache, cron.New(nil), testutil.AuthAs("u"))

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":true,"redis":true}`, w.Body.String())

	cacheErr = errors.New("connection refused")
	w = testutil.DoJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","database":true,"redis":false}`, w.Body.String())
}
