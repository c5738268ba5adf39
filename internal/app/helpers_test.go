package app

import (
	"testing"
	"time"

	"github.com/studydesk/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezoneLocation(t *testing.T) {
	loc, err := parseTimezoneLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	loc, err = parseTimezoneLocation("+08:00")
	require.NoError(t, err)
	_, offset := time.Now().In(loc).Zone()
	assert.Equal(t, 8*3600, offset)

	loc, err = parseTimezoneLocation("-05:30")
	require.NoError(t, err)
	_, offset = time.Now().In(loc).Zone()
	assert.Equal(t, -(5*3600 + 30*60), offset)

	_, err = parseTimezoneLocation("Mars/Olympus")
	assert.Error(t, err)
	_, err = parseTimezoneLocation("+25:00")
	assert.Error(t, err)
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("app.example.com", extractOriginHost("https://app.example.com")))
	assert.True(t, matchOriginPattern("*.example.com", "api.example.com"))
	assert.False(t, matchOriginPattern("*.example.com", "example.org"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:5173"))
	assert.False(t, matchOriginPattern("localhost:*", "evil.com:5173"))
}

func TestCorsConfig(t *testing.T) {
	cfg := &config.AppConfig{Env: "production", AllowedOrigins: []string{"*.example.com"}}
	c := corsConfig(cfg)
	assert.True(t, c.AllowOriginFunc("https://app.example.com"))
	assert.False(t, c.AllowOriginFunc("https://evil.test"))
	assert.Contains(t, c.AllowHeaders, "Idempotency-Key")

	dev := corsConfig(&config.AppConfig{Env: "development", AllowedOrigins: []string{"*.example.com"}})
	assert.True(t, dev.AllowOriginFunc("https://evil.test"))
}
