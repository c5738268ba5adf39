// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/config"
	"github.com/studydesk/core/internal/database"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/pkg/validate"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plaintext password of every user created by CreateUser.
const Password = "password123"

// NewDB returns a migrated sqlite database in a temp directory.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Open(cfg, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with Password as its password.
func CreateUser(t testing.TB, db *gorm.DB, name, email string) *models.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.UserModel{Name: name, Email: email, Password: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// AuthAs stands in for middleware.Auth and authenticates every request as userID.
func AuthAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Next()
	}
}

// NewRouter returns a gin engine in test mode with the /api group and the
// binding validator configured.
func NewRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	if err := validate.Setup(); err != nil {
		panic(err)
	}
	r := gin.New()
	return r, r.Group("/api")
}

// DoJSON performs a request against h. body is JSON-encoded unless it is nil
// or already a string.
func DoJSON(t testing.TB, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return Serve(h, NewJSONRequest(t, method, path, body))
}

// NewJSONRequest builds the request DoJSON sends, for callers that need to
// set headers first.
func NewJSONRequest(t testing.TB, method, path string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// Serve records h's response to req.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals a recorder body into a value of type T.
func DecodeJSON[T any](t testing.TB, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
