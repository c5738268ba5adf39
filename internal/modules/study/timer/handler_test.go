package timer

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice", "alice@example.com")
	svc := NewService(db)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local) }
	r, api := testutil.NewRouter()
	NewHandler(svc).RegisterRoutes(api, testutil.AuthAs(u.ID))
	return r, u.ID
}

func TestHandlerCreateSession(t *testing.T) {
	r, uid := newTestRouter(t)

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/timer_sessions_store", map[string]interface{}{"user_id": uid})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/timer_sessions_store", map[string]interface{}{
		"user_id": "someone", "date": "2025-03-10", "duration": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/timer_sessions_store", map[string]interface{}{
		"user_id": uid, "date": "2025-03-10", "duration": 0, "subject": "物理",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ts := testutil.DecodeJSON[models.TimerSessionModel](t, w)

	w = testutil.DoJSON(t, r, http.MethodPut, "/api/timer_sessions/"+ts.ID, map[string]interface{}{"duration": 42})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 42, testutil.DecodeJSON[models.TimerSessionModel](t, w).Duration)

	w = testutil.DoJSON(t, r, http.MethodPut, "/api/timer_sessions/missing", map[string]interface{}{"duration": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/timer_session_show?user_id=other", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/timer_session_show?date=2025-03-10&subject="+url.QueryEscape("物理"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := testutil.DecodeJSON[struct {
		Data []models.TimerSessionModel `json:"data"`
	}](t, w)
	assert.Len(t, list.Data, 1)
}

func TestHandlerTaskSettings(t *testing.T) {
	r, uid := newTestRouter(t)

	body := map[string]interface{}{"user_id": uid, "subject": "物理", "visible": true}
	w := testutil.DoJSON(t, r, http.MethodPost, "/api/user_tasks_store", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = testutil.DoJSON(t, r, http.MethodPost, "/api/user_tasks_store", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/user_tasks_today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := testutil.DecodeJSON[struct {
		Data []models.TimerSessionModel `json:"data"`
	}](t, w)
	require.Len(t, tasks.Data, 1)
	assert.Equal(t, "2025-03-10", tasks.Data[0].Date)

	w = testutil.DoJSON(t, r, http.MethodPut, "/api/user_tasks_hide/"+url.PathEscape("物理"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.DoJSON(t, r, http.MethodPut, "/api/user_tasks_hide/none", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "找不到此科目的設定")

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/timer_sessions/summary?from=2025-03-09&to=2025-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := testutil.DecodeJSON[Summary](t, w)
	assert.Len(t, sum.Days, 2)
}
