package timer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/pkg/dbutil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Today returns the current date in the server's local timezone.
func (s *Service) Today() string {
	return s.now().In(time.Local).Format(dateLayout)
}

func (s *Service) ListSessions(userID string, f SessionFilter) ([]models.TimerSessionModel, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	var sessions []models.TimerSessionModel
	return sessions, q.Order("date ASC, created_at ASC").Find(&sessions).Error
}

func (s *Service) CreateSession(authUserID string, dto *CreateSessionDTO) (*models.TimerSessionModel, error) {
	if dto.UserID == nil || strings.TrimSpace(*dto.UserID) == "" || dto.Date == nil || dto.Duration == nil {
		return nil, errMissingFields
	}
	if *dto.UserID != authUserID {
		return nil, errUserMismatch
	}
	d, err := parseDate(*dto.Date)
	if err != nil {
		return nil, err
	}
	if *dto.Duration < 0 {
		return nil, errNegativeDuration
	}

	ts := models.TimerSessionModel{
		UserID:   authUserID,
		Date:     d.Format(dateLayout),
		Subject:  normalizeSubject(dto.Subject),
		Duration: *dto.Duration,
	}
	if err := s.db.Create(&ts).Error; err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, errDuplicateSubject
		}
		return nil, err
	}
	return &ts, nil
}

// UpdateSession changes duration and/or subject. A subject rename carries
// the user's task setting along with it.
func (s *Service) UpdateSession(id, userID string, dto *UpdateSessionDTO) (*models.TimerSessionModel, error) {
	if dto.Duration != nil && *dto.Duration < 0 {
		return nil, errNegativeDuration
	}

	var ts models.TimerSessionModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&ts).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errSessionNotFound
			}
			return err
		}

		oldSubject := ts.Subject
		renamed := false
		if dto.Duration != nil {
			ts.Duration = *dto.Duration
		}
		if dto.Subject != nil {
			next := normalizeSubject(dto.Subject)
			if !sameSubject(oldSubject, next) {
				ts.Subject = next
				renamed = true
			}
		}

		err := tx.Model(&ts).Updates(map[string]interface{}{
			"duration": ts.Duration,
			"subject":  ts.Subject,
		}).Error
		if err != nil {
			if dbutil.IsDuplicateKey(err) {
				return errDuplicateSubject
			}
			return err
		}

		if renamed && ts.Subject != nil {
			return renameSetting(tx, userID, oldSubject, *ts.Subject)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func findSetting(tx *gorm.DB, userID, subject string) (*models.UserTaskSettingModel, error) {
	var setting models.UserTaskSettingModel
	err := tx.Where("user_id = ? AND subject = ?", userID, subject).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// renameSetting moves the visibility setting from oldSubject to newSubject.
// An existing target wins and is made visible. Without an old setting
// nothing changes.
func renameSetting(tx *gorm.DB, userID string, oldSubject *string, newSubject string) error {
	if oldSubject == nil {
		return nil
	}
	old, err := findSetting(tx, userID, *oldSubject)
	if err != nil || old == nil {
		return err
	}
	target, err := findSetting(tx, userID, newSubject)
	if err != nil {
		return err
	}
	if target == nil {
		return tx.Model(old).Update("subject", newSubject).Error
	}

	if err := tx.Model(target).Update("visible", true).Error; err != nil {
		return fmt.Errorf("show setting: %w", err)
	}
	return tx.Delete(old).Error
}

// TodayTasks returns today's session for every visible subject, creating
// zero-duration sessions for subjects that have none yet.
func (s *Service) TodayTasks(userID string) ([]models.TimerSessionModel, error) {
	today := s.Today()
	sessions := []models.TimerSessionModel{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var subjects []string
		if err := tx.Model(&models.UserTaskSettingModel{}).
			Where("user_id = ? AND visible = ?", userID, true).
			Pluck("subject", &subjects).Error; err != nil {
			return err
		}
		if len(subjects) == 0 {
			return nil
		}

		backfill := make([]models.TimerSessionModel, 0, len(subjects))
		for i := range subjects {
			backfill = append(backfill, models.TimerSessionModel{
				UserID:  userID,
				Date:    today,
				Subject: &subjects[i],
			})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&backfill).Error; err != nil {
			return fmt.Errorf("backfill sessions: %w", err)
		}

		return tx.Where("user_id = ? AND date = ? AND subject IN ?", userID, today, subjects).
			Find(&sessions).Error
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sessions, func(i, j int) bool {
		return *sessions[i].Subject < *sessions[j].Subject
	})
	return sessions, nil
}

func (s *Service) HideTask(userID, subject string) (*models.UserTaskSettingModel, error) {
	setting, err := findSetting(s.db, userID, subject)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, errSettingNotFound
	}
	if err := s.db.Model(setting).Update("visible", false).Error; err != nil {
		return nil, err
	}
	setting.Visible = false
	return setting, nil
}

// UpsertTaskSetting makes subject visible when a setting already exists and
// otherwise creates one with the requested visibility.
func (s *Service) UpsertTaskSetting(authUserID string, dto *TaskSettingDTO) (*models.UserTaskSettingModel, bool, error) {
	if dto.UserID == nil || dto.Subject == nil || dto.Visible == nil {
		return nil, false, errMissingSettingFields
	}
	subject := strings.TrimSpace(*dto.Subject)
	if strings.TrimSpace(*dto.UserID) == "" || subject == "" {
		return nil, false, errMissingSettingFields
	}
	if *dto.UserID != authUserID {
		return nil, false, errUserMismatch
	}

	var (
		setting *models.UserTaskSettingModel
		created bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findSetting(tx, authUserID, subject)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := tx.Model(existing).Update("visible", true).Error; err != nil {
				return err
			}
			existing.Visible = true
			setting = existing
			return nil
		}

		row := models.UserTaskSettingModel{UserID: authUserID, Subject: subject, Visible: *dto.Visible}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		setting, created = &row, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return setting, created, nil
}

// Summary totals durations per day and per subject between from and to,
// both inclusive. Empty bounds default to the last seven days.
func (s *Service) Summary(userID, from, to string) (*Summary, error) {
	end := s.now().In(time.Local)
	if to != "" {
		d, err := parseDate(to)
		if err != nil {
			return nil, err
		}
		end = d
	}
	start := end.AddDate(0, 0, -(defaultSpanDays - 1))
	if from != "" {
		d, err := parseDate(from)
		if err != nil {
			return nil, err
		}
		start = d
	}
	from, to = start.Format(dateLayout), end.Format(dateLayout)

	days := dayCount(start, end)
	if days < 1 || days > maxSummaryDays {
		return nil, errInvalidRange
	}

	scope := s.db.Model(&models.TimerSessionModel{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to)

	var perDay []DailyTotal
	if err := scope.Session(&gorm.Session{}).
		Select("date, SUM(duration) AS seconds").
		Group("date").
		Scan(&perDay).Error; err != nil {
		return nil, err
	}

	subjects := []SubjectTotal{}
	if err := scope.Session(&gorm.Session{}).
		Select("COALESCE(subject, '') AS subject, SUM(duration) AS seconds").
		Group("COALESCE(subject, '')").
		Order("seconds DESC, subject ASC").
		Scan(&subjects).Error; err != nil {
		return nil, err
	}

	byDate := make(map[string]int64, len(perDay))
	var total int64
	for _, d := range perDay {
		byDate[d.Date] = d.Seconds
		total += d.Seconds
	}
	out := &Summary{From: from, To: to, Total: total, Days: make([]DailyTotal, 0, days), Subjects: subjects}
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		out.Days = append(out.Days, DailyTotal{Date: date, Seconds: byDate[date]})
	}
	return out, nil
}

func dayCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
