package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNotesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "n-1", "title": "Algebra", "tags": []map[string]string{{"name": "math"}, {"name": "exam"}}},
				{"id": "n-2", "title": nil},
			},
		})
	}))
	defer srv.Close()

	out, err := runCommand(t, "--server", srv.URL, "--token", "tok", "notes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "n-1  Algebra     math,exam")
	assert.Contains(t, out, "n-2  (untitled)")
}

func TestLoginPrintsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "jwt-123",
			"user":  map[string]string{"id": "u-1"},
		})
	}))
	defer srv.Close()

	out, err := runCommand(t, "--server", srv.URL, "login", "--email", "a@b.co", "--password", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-123\n", out)
}

func TestCommandSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := runCommand(t, "--server", srv.URL, "overview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1500", 1500, false},
		{"25m", 1500, false},
		{"1h30m", 5400, false},
		{"-5", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSeconds(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
