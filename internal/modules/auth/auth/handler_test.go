package auth

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/middleware"
	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/modules/auth/user"
	"github.com/studydesk/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type authBody struct {
	Token string           `json:"token"`
	User  models.UserModel `json:"user"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	r, api := testutil.NewRouter()
	authMW := middleware.Auth(db)
	NewHandler(NewService(db)).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db, nil)).RegisterRoutes(api, authMW)
	return r, db
}

func doAuthed(t *testing.T, h http.Handler, method, path, token string, body interface{}) int {
	t.Helper()
	req := testutil.NewJSONRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return testutil.Serve(h, req).Code
}

func TestHandlerRegisterLoginLogout(t *testing.T) {
	r, _ := newRouter(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/register", map[string]string{
		"name": "Ann", "email": "Ann@Example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/register", map[string]string{
		"name": "Ann", "email": "Ann@Example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := testutil.DecodeJSON[authBody](t, w)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "ann@example.com", registered.User.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/register", map[string]string{
		"name": "Ann Again", "email": "ann@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email": "ann@example.com", "password": "nope-nope",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", testutil.DecodeJSON[errorBody](t, w).Message)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email": "ann@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := testutil.DecodeJSON[authBody](t, w).Token

	assert.Equal(t, http.StatusOK, doAuthed(t, r, http.MethodGet, "/api/me", token, nil))
	assert.Equal(t, http.StatusNoContent, doAuthed(t, r, http.MethodDelete, "/api/logout", token, nil))
	assert.Equal(t, http.StatusUnauthorized, doAuthed(t, r, http.MethodGet, "/api/me", token, nil))

	// the registration token is a separate session and still works
	assert.Equal(t, http.StatusOK, doAuthed(t, r, http.MethodGet, "/api/me", registered.Token, nil))
}

func TestHandlerPasswordChangeRevokesOtherSessions(t *testing.T) {
	r, db := newRouter(t)
	testutil.CreateUser(t, db, "Ann", "ann@example.com")

	login := func() string {
		w := testutil.DoJSON(t, r, http.MethodPost, "/api/login", map[string]string{
			"email": "ann@example.com", "password": testutil.Password,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return testutil.DecodeJSON[authBody](t, w).Token
	}
	first, second := login(), login()

	assert.Equal(t, http.StatusBadRequest, doAuthed(t, r, http.MethodPut, "/api/password", first, map[string]string{
		"current_password": "wrong-password", "new_password": "new-password-1",
	}))
	assert.Equal(t, http.StatusOK, doAuthed(t, r, http.MethodPut, "/api/password", first, map[string]string{
		"current_password": testutil.Password, "new_password": "new-password-1",
	}))

	assert.Equal(t, http.StatusOK, doAuthed(t, r, http.MethodGet, "/api/me", first, nil))
	assert.Equal(t, http.StatusUnauthorized, doAuthed(t, r, http.MethodGet, "/api/me", second, nil))

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/login", map[string]string{
		"email": "ann@example.com", "password": "new-password-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	r, _ := newRouter(t)

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(t, r, http.MethodGet, "/api/sessions", "garbage", nil))
}
