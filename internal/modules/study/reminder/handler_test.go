package reminder

import (
	"net/http"
	"testing"
	"time"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listBody struct {
	Data []models.ReminderModel `json:"data"`
}

func TestHandlerReminderFlow(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice", "alice@example.com")
	r, api := testutil.NewRouter()
	NewHandler(NewService(db)).RegisterRoutes(api, testutil.AuthAs(u.ID))

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/reminders", map[string]interface{}{"title": "no time"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/reminders", map[string]interface{}{
		"title":         "Quiz",
		"reminder_time": time.Now().Add(-time.Minute).Format(time.RFC3339),
		"is_notified":   true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutil.DecodeJSON[models.ReminderModel](t, w)
	assert.False(t, created.IsNotified)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/reminders/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.DecodeJSON[listBody](t, w).Data, 1)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/reminders/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, testutil.DecodeJSON[listBody](t, w).Data)

	w = testutil.DoJSON(t, r, http.MethodPut, "/api/reminders/"+created.ID, map[string]interface{}{"is_completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, testutil.DecodeJSON[models.ReminderModel](t, w).IsCompleted)

	w = testutil.DoJSON(t, r, http.MethodDelete, "/api/reminders/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = testutil.DoJSON(t, r, http.MethodGet, "/api/reminders/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
