package client

import "time"

type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   *string   `json:"avatar"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type Session struct {
	ID        string    `json:"id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"ua"`
	Created   time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}

type Tag struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type Note struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Title    *string   `json:"title"`
	Content  string    `json:"content"`
	Tags     []Tag     `json:"tags"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type NoteInput struct {
	Title   *string  `json:"title,omitempty"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// NotePatch leaves nil fields untouched. ClearTitle sends an explicit null.
type NotePatch struct {
	Title      *string
	ClearTitle bool
	Content    *string
	Tags       *[]string
}

type ImportInput struct {
	Markdown string   `json:"markdown"`
	Title    *string  `json:"title,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

type NotePage struct {
	Data       []Note     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type TimerSession struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Date     string    `json:"date"`
	Subject  *string   `json:"subject"`
	Duration int64     `json:"duration"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type TaskSetting struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Subject string `json:"subject"`
	Visible bool   `json:"visible"`
}

type DailyTotal struct {
	Date    string `json:"date"`
	Seconds int64  `json:"seconds"`
}

type SubjectTotal struct {
	Subject string `json:"subject"`
	Seconds int64  `json:"seconds"`
}

type Summary struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Total    int64          `json:"total"`
	Days     []DailyTotal   `json:"days"`
	Subjects []SubjectTotal `json:"subjects"`
}

type Reminder struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	ReminderTime time.Time `json:"reminder_time"`
	IsCompleted  bool      `json:"is_completed"`
	IsNotified   bool      `json:"is_notified"`
	Created      time.Time `json:"created"`
	Modified     time.Time `json:"modified"`
}

type ReminderInput struct {
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	ReminderTime time.Time `json:"reminder_time"`
}

type ReminderPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
	IsCompleted  *bool      `json:"is_completed,omitempty"`
	IsNotified   *bool      `json:"is_notified,omitempty"`
}

type ImageInfo struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

type TagCount struct {
	Name  string `json:"name"`
	Notes int64  `json:"notes"`
}

type RecentNote struct {
	ID       string    `json:"id"`
	Title    *string   `json:"title"`
	Modified time.Time `json:"modified"`
}

type ReminderCounts struct {
	Pending  int64 `json:"pending"`
	Upcoming int64 `json:"upcoming"`
}

type Overview struct {
	Notes        int64          `json:"notes"`
	Tags         int64          `json:"tags"`
	TodaySeconds int64          `json:"today_seconds"`
	Activity     []DailyTotal   `json:"activity"`
	TagCounts    []TagCount     `json:"tag_distribution"`
	RecentNotes  []RecentNote   `json:"recent_notes"`
	Reminders    ReminderCounts `json:"reminders"`
}

// Health mirrors GET /health. Redis is nil when the server runs without it.
type Health struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Redis    *bool  `json:"redis"`
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}
