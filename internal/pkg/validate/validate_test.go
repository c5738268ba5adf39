package validate

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDTO struct {
	Title string `json:"title" binding:"required,notblank"`
	Email string `json:"email" binding:"omitempty,email"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	require.NoError(t, Setup())
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var dto sampleDTO
	return c.ShouldBindJSON(&dto)
}

func TestMessage_UsesJSONNames(t *testing.T) {
	err := bind(t, `{"email":"nope"}`)
	require.Error(t, err)
	assert.Equal(t, "title is a required field; email must be a valid email address", Message(err))
}

func TestMessage_NotBlank(t *testing.T) {
	err := bind(t, `{"title":"   "}`)
	require.Error(t, err)
	assert.Equal(t, "title must not be blank", Message(err))
}

func TestMessage_MalformedBody(t *testing.T) {
	err := bind(t, `{"title":`)
	require.Error(t, err)
	assert.NotEmpty(t, Message(err))
}

func TestSetup_Idempotent(t *testing.T) {
	require.NoError(t, Setup())
	require.NoError(t, Setup())
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("ann@example.com"))
	assert.False(t, Email(""))
	assert.False(t, Email("ann"))
	assert.False(t, Email(" ann@example.com"))
}
