package client

import (
	"context"
	"net/http"
	"net/url"
)

type SessionQuery struct {
	Date    string
	Subject string
}

func (c *Client) TimerSessions(ctx context.Context, q SessionQuery) ([]TimerSession, error) {
	params := map[string]string{}
	if q.Date != "" {
		params["date"] = q.Date
	}
	if q.Subject != "" {
		params["subject"] = q.Subject
	}
	var out listEnvelope[TimerSession]
	if err := c.get(ctx, "/timer_session_show", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AddStudyTime records seconds against subject on date. An existing
// session for the same day and subject is accumulated into.
func (c *Client) AddStudyTime(ctx context.Context, date string, subject *string, seconds int64) (*TimerSession, error) {
	uid, err := c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	body := map[string]interface{}{
		"user_id":  uid,
		"date":     date,
		"subject":  subject,
		"duration": seconds,
	}
	var ts TimerSession
	if err := c.send(ctx, http.MethodPost, "/timer_sessions_store", body, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

func (c *Client) UpdateTimerSession(ctx context.Context, id string, subject *string, seconds *int64) (*TimerSession, error) {
	body := map[string]interface{}{}
	if subject != nil {
		body["subject"] = *subject
	}
	if seconds != nil {
		body["duration"] = *seconds
	}
	var ts TimerSession
	if err := c.send(ctx, http.MethodPut, "/timer_sessions/"+url.PathEscape(id), body, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// StudySummary aggregates study time between from and to (YYYY-MM-DD).
// Empty bounds use the server's default window.
func (c *Client) StudySummary(ctx context.Context, from, to string) (*Summary, error) {
	params := map[string]string{}
	if from != "" {
		params["from"] = from
	}
	if to != "" {
		params["to"] = to
	}
	var out Summary
	if err := c.get(ctx, "/timer_sessions/summary", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TodayTasks(ctx context.Context) ([]TimerSession, error) {
	var out listEnvelope[TimerSession]
	if err := c.get(ctx, "/user_tasks_today", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) HideTask(ctx context.Context, subject string) (*TaskSetting, error) {
	var s TaskSetting
	if err := c.send(ctx, http.MethodPut, "/user_tasks_hide/"+url.PathEscape(subject), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SetTaskVisibility(ctx context.Context, subject string, visible bool) (*TaskSetting, error) {
	uid, err := c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	body := map[string]interface{}{"user_id": uid, "subject": subject, "visible": visible}
	var s TaskSetting
	if err := c.send(ctx, http.MethodPost, "/user_tasks_store", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
