package timer

import "errors"

// CreateSessionDTO uses pointers so that a missing field can be told apart
// from a zero value.
type CreateSessionDTO struct {
	UserID   *string `json:"user_id"`
	Date     *string `json:"date"`
	Subject  *string `json:"subject"`
	Duration *int64  `json:"duration"`
}

type UpdateSessionDTO struct {
	Subject  *string `json:"subject"`
	Duration *int64  `json:"duration"`
}

type TaskSettingDTO struct {
	UserID  *string `json:"user_id"`
	Subject *string `json:"subject"`
	Visible *bool   `json:"visible"`
}

type SessionFilter struct {
	Date    string
	Subject string
}

type DailyTotal struct {
	Date    string `json:"date"`
	Seconds int64  `json:"seconds"`
}

type SubjectTotal struct {
	Subject string `json:"subject"`
	Seconds int64  `json:"seconds"`
}

// Summary aggregates study time over an inclusive date range. Days is
// zero-filled and ascending, Subjects is ordered by time spent.
type Summary struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Total    int64          `json:"total"`
	Days     []DailyTotal   `json:"days"`
	Subjects []SubjectTotal `json:"subjects"`
}

const (
	dateLayout      = "2006-01-02"
	maxSummaryDays  = 366
	defaultSpanDays = 7
)

var (
	errMissingFields        = errors.New("Missing required fields: user_id, date, duration")
	errMissingSettingFields = errors.New("Missing required fields: user_id, subject, visible")
	errUserMismatch         = errors.New("user_id does not match the signed-in user")
	errInvalidDate          = errors.New("date must be formatted as YYYY-MM-DD")
	errNegativeDuration     = errors.New("duration must not be negative")
	errInvalidRange         = errors.New("from must not be after to, and the range must not exceed 366 days")
	errDuplicateSubject     = errors.New("此科目名稱已存在，請使用其他名稱")
	errSessionNotFound      = errors.New("找不到計時記錄")
	errSettingNotFound      = errors.New("找不到此科目的設定")
)
