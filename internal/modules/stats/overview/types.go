package overview

import (
	"time"

	"github.com/studydesk/core/internal/modules/study/timer"
)

const (
	topTags     = 10
	recentNotes = 5
)

// Overview is the dashboard snapshot for one user.
type Overview struct {
	Notes        int64              `json:"notes"`
	Tags         int64              `json:"tags"`
	TodaySeconds int64              `json:"today_seconds"`
	Activity     []timer.DailyTotal `json:"activity"`
	TagCounts    []TagCount         `json:"tag_distribution"`
	RecentNotes  []RecentNote       `json:"recent_notes"`
	Reminders    ReminderCounts     `json:"reminders"`
}

type TagCount struct {
	Name  string `json:"name"`
	Notes int64  `json:"notes"`
}

type RecentNote struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	UpdatedAt time.Time `json:"modified"`
}

type ReminderCounts struct {
	Pending  int64 `json:"pending"`
	Upcoming int64 `json:"upcoming"`
}
