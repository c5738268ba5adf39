package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	token, err := SignWithOptions("user-1", time.Hour, SignOptions{SessionID: "sess-1"})
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestParse_Expired(t *testing.T) {
	token, err := Sign("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Sign("user-1", time.Hour)
	require.NoError(t, err)

	SetSecret("another-secret")
	t.Cleanup(func() { SetSecret(defaultSecret) })

	_, err = Parse(token)
	assert.Error(t, err)
}

func TestSign_RequiresUser(t *testing.T) {
	_, err := Sign("", time.Hour)
	assert.Error(t, err)
}
