package reminder

import (
	"errors"
	"time"

	"github.com/studydesk/core/internal/pkg/nullable"
)

type CreateReminderDTO struct {
	Title        string     `json:"title"         binding:"required,notblank,max=255"`
	Description  *string    `json:"description"`
	ReminderTime *time.Time `json:"reminder_time" binding:"required"`
}

// UpdateReminderDTO merges the fields present in the request. A null
// description clears it.
type UpdateReminderDTO struct {
	Title        *string         `json:"title"         binding:"omitempty,notblank,max=255"`
	Description  nullable.String `json:"description"`
	ReminderTime *time.Time      `json:"reminder_time"`
	IsCompleted  *bool           `json:"is_completed"`
	IsNotified   *bool           `json:"is_notified"`
}

var errReminderNotFound = errors.New("Reminder not found")
