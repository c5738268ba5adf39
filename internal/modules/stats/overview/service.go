package overview

import (
	"time"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/modules/study/timer"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	timer *timer.Service
	now   func() time.Time
}

func NewService(db *gorm.DB, timerSvc *timer.Service) *Service {
	return &Service{db: db, timer: timerSvc, now: time.Now}
}

func (s *Service) Get(userID string) (*Overview, error) {
	out := &Overview{}

	if err := s.db.Model(&models.NoteModel{}).Where("user_id = ?", userID).Count(&out.Notes).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.NoteTagModel{}).
		Joins("JOIN notes ON notes.id = note_tags.note_id").
		Where("notes.user_id = ?", userID).
		Distinct("note_tags.tag_id").
		Count(&out.Tags).Error; err != nil {
		return nil, err
	}

	activity, err := s.timer.Summary(userID, "", "")
	if err != nil {
		return nil, err
	}
	out.Activity = activity.Days
	if n := len(activity.Days); n > 0 {
		out.TodaySeconds = activity.Days[n-1].Seconds
	}

	out.TagCounts = []TagCount{}
	if err := s.db.Model(&models.NoteTagModel{}).
		Select("tags.name AS name, COUNT(*) AS notes").
		Joins("JOIN notes ON notes.id = note_tags.note_id").
		Joins("JOIN tags ON tags.id = note_tags.tag_id").
		Where("notes.user_id = ?", userID).
		Group("tags.name").
		Order("COUNT(*) DESC, tags.name ASC").
		Limit(topTags).
		Scan(&out.TagCounts).Error; err != nil {
		return nil, err
	}

	out.RecentNotes = []RecentNote{}
	if err := s.db.Model(&models.NoteModel{}).
		Select("id, title, updated_at").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(recentNotes).
		Scan(&out.RecentNotes).Error; err != nil {
		return nil, err
	}

	now := s.now().UTC()
	open := s.db.Model(&models.ReminderModel{}).Where("user_id = ? AND is_completed = ?", userID, false)
	if err := open.Session(&gorm.Session{}).
		Where("reminder_time <= ? AND is_notified = ?", now, false).
		Count(&out.Reminders.Pending).Error; err != nil {
		return nil, err
	}
	if err := open.Session(&gorm.Session{}).
		Where("reminder_time > ?", now).
		Count(&out.Reminders.Upcoming).Error; err != nil {
		return nil, err
	}
	return out, nil
}
