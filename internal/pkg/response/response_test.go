package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return rec
}

func TestOK_WrapsSlices(t *testing.T) {
	rec := run(t, func(c *gin.Context) { OK(c, []string{"a"}) })

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":["a"]}`, rec.Body.String())
}

func TestOK_PassesObjectsThrough(t *testing.T) {
	rec := run(t, func(c *gin.Context) { OK(c, gin.H{"a": 1}) })

	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	rec := run(t, func(c *gin.Context) { BadRequest(c, "title is required") })

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["ok"])
	assert.Equal(t, float64(400), body["code"])
	assert.Equal(t, "title is required", body["message"])
}

func TestInternalError_HidesCause(t *testing.T) {
	var ctx *gin.Context
	rec := run(t, func(c *gin.Context) {
		ctx = c
		InternalError(c, errors.New("dial tcp: refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "refused")
	require.Len(t, ctx.Errors, 1)
	assert.EqualError(t, ctx.Errors[0].Err, "dial tcp: refused")
}
