package client

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Reminders(ctx context.Context) ([]Reminder, error) {
	return c.reminderList(ctx, "/reminders")
}

// PendingReminders returns due reminders that have not been notified yet
// and marks them notified on the server.
func (c *Client) PendingReminders(ctx context.Context) ([]Reminder, error) {
	return c.reminderList(ctx, "/reminders/pending")
}

func (c *Client) reminderList(ctx context.Context, path string) ([]Reminder, error) {
	var out listEnvelope[Reminder]
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Reminder(ctx context.Context, id string) (*Reminder, error) {
	var r Reminder
	if err := c.get(ctx, "/reminders/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CreateReminder(ctx context.Context, in ReminderInput) (*Reminder, error) {
	var r Reminder
	if err := c.send(ctx, http.MethodPost, "/reminders", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UpdateReminder(ctx context.Context, id string, p ReminderPatch) (*Reminder, error) {
	var r Reminder
	if err := c.send(ctx, http.MethodPut, "/reminders/"+url.PathEscape(id), p, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id), nil, nil)
}
