package models

import "time"

// TimerSessionModel accumulates study time for one subject on one day.
// Duration is in seconds.
type TimerSessionModel struct {
	Base
	UserID   string  `json:"user_id"  gorm:"type:char(36);not null;uniqueIndex:uniq_timer_user_date_subject,priority:1"`
	Date     string  `json:"date"     gorm:"size:10;not null;uniqueIndex:uniq_timer_user_date_subject,priority:2"`
	Subject  *string `json:"subject"  gorm:"size:191;uniqueIndex:uniq_timer_user_date_subject,priority:3"`
	Duration int64   `json:"duration" gorm:"not null"`
}

func (TimerSessionModel) TableName() string { return "timer_sessions" }

// UserTaskSettingModel controls whether a subject shows up in today's tasks.
type UserTaskSettingModel struct {
	Base
	UserID  string `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:uniq_task_user_subject,priority:1"`
	Subject string `json:"subject" gorm:"size:191;not null;uniqueIndex:uniq_task_user_subject,priority:2"`
	Visible bool   `json:"visible" gorm:"not null"`
}

func (UserTaskSettingModel) TableName() string { return "user_task_settings" }

// ReminderModel is a user-scheduled reminder.
type ReminderModel struct {
	Base
	UserID       string    `json:"user_id"       gorm:"type:char(36);not null;index:idx_reminder_user_time,priority:1"`
	Title        string    `json:"title"         gorm:"size:255;not null"`
	Description  *string   `json:"description"   gorm:"type:text"`
	ReminderTime time.Time `json:"reminder_time" gorm:"not null;index:idx_reminder_user_time,priority:2"`
	IsCompleted  bool      `json:"is_completed"  gorm:"not null;index:idx_reminder_state,priority:2"`
	IsNotified   bool      `json:"is_notified"   gorm:"not null;index:idx_reminder_state,priority:1"`
}

func (ReminderModel) TableName() string { return "reminders" }
