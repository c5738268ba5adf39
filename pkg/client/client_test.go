package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_RegisterStoresSession(t *testing.T) {
	var gotAuth, gotUserID string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ann@example.com", body["email"])
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"token": "tok-1",
			"user":  map[string]string{"id": "u-1", "name": "Ann", "email": "ann@example.com"},
		})
	})
	mux.HandleFunc("/api/timer_sessions_store", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotUserID, _ = body["user_id"].(string)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id": "ts-1", "user_id": gotUserID, "date": body["date"], "duration": 90,
		})
	})
	c := newTestClient(t, mux)

	u, err := c.Register(context.Background(), "Ann", "ann@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "tok-1", c.Token())
	assert.Equal(t, "u-1", c.UserID())

	ts, err := c.AddStudyTime(context.Background(), "2024-05-01", nil, 90)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "u-1", gotUserID)
	assert.Equal(t, int64(90), ts.Duration)
}

func TestClient_AddStudyTimeFetchesUserID(t *testing.T) {
	var meCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		writeJSON(w, http.StatusOK, map[string]string{"id": "u-9"})
	})
	mux.HandleFunc("/api/timer_sessions_store", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u-9", body["user_id"])
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": "ts-1", "user_id": "u-9"})
	})
	c := newTestClient(t, mux)
	c.SetToken("tok")

	for i := 0; i < 2; i++ {
		_, err := c.AddStudyTime(context.Background(), "2024-05-01", nil, 10)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&meCalls))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{"not found", http.StatusNotFound, `{"message":"Note not found"}`, ErrNotFound, "Note not found"},
		{"conflict", http.StatusConflict, `{"message":"Email is already registered"}`, ErrConflict, "Email is already registered"},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthorized"}`, ErrUnauthorized, "Unauthorized"},
		{"forbidden", http.StatusForbidden, `{"message":"nope"}`, ErrForbidden, "nope"},
		{"bad request plain body", http.StatusBadRequest, "broken", ErrBadRequest, "broken"},
		{"rate limited", http.StatusTooManyRequests, "", ErrRateLimited, "Too Many Requests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			err := c.DeleteNote(context.Background(), "n-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_RetriesOnlyGETs(t *testing.T) {
	var notes, creates, pending int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&creates, 1)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
			return
		}
		if atomic.AddInt32(&notes, 1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "busy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": []map[string]string{{"id": "n-1"}}})
	})
	mux.HandleFunc("/api/reminders/pending", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pending, 1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})
	c := newTestClient(t, mux)

	list, err := c.Notes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&notes))

	_, err = c.CreateNote(context.Background(), NoteInput{Content: "x"})
	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, int32(1), atomic.LoadInt32(&creates))

	_, err = c.PendingReminders(context.Background())
	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, int32(1), atomic.LoadInt32(&pending))
}

func TestClient_UpdateNoteClearTitle(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/notes/n-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "n-1", "title": nil})
	}))

	tags := []string{"go"}
	n, err := c.UpdateNote(context.Background(), "n-1", NotePatch{ClearTitle: true, Tags: &tags})
	require.NoError(t, err)
	assert.Nil(t, n.Title)
	assert.JSONEq(t, "null", string(raw["title"]))
	assert.JSONEq(t, `["go"]`, string(raw["tags"]))
	_, hasContent := raw["content"]
	assert.False(t, hasContent)
}

func TestClient_ExportNote(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes/n-1/export", r.URL.Path)
		assert.Equal(t, "html", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "<h1>Title</h1>\n")
	}))

	out, err := c.ExportNote(context.Background(), "n-1", "html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", out)
}

func TestClient_UploadImage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, fh, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "a.png", fh.Filename)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"filename": "images/x.png", "url": "/static/images/x.png", "originalName": "a.png", "size": len(data)},
		})
	}))

	info, err := c.UploadImage(context.Background(), "a.png", strings.NewReader("pngdata"))
	require.NoError(t, err)
	assert.Equal(t, "images/x.png", info.Filename)
	assert.Equal(t, int64(7), info.Size)
}

func TestClient_Logout(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	c.SetToken("tok")

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
	assert.Empty(t, c.UserID())
}
