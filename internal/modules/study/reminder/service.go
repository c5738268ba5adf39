package reminder

import (
	"errors"
	"strings"
	"time"

	"github.com/studydesk/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reminder times are stored in UTC so that they compare correctly as text
// on sqlite.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func (s *Service) List(userID string) ([]models.ReminderModel, error) {
	var items []models.ReminderModel
	err := s.db.Where("user_id = ?", userID).
		Order("reminder_time ASC").
		Find(&items).Error
	return items, err
}

func (s *Service) Create(userID string, dto *CreateReminderDTO) (*models.ReminderModel, error) {
	r := models.ReminderModel{
		UserID:       userID,
		Title:        strings.TrimSpace(dto.Title),
		Description:  dto.Description,
		ReminderTime: dto.ReminderTime.UTC(),
		IsCompleted:  false,
		IsNotified:   false,
	}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) GetByID(id, userID string) (*models.ReminderModel, error) {
	return s.find(s.db, id, userID)
}

func (s *Service) find(db *gorm.DB, id, userID string) (*models.ReminderModel, error) {
	var r models.ReminderModel
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errReminderNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Service) Update(id, userID string, dto *UpdateReminderDTO) (*models.ReminderModel, error) {
	r, err := s.find(s.db, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Description.Set {
		updates["description"] = dto.Description.Value
	}
	if dto.ReminderTime != nil {
		updates["reminder_time"] = dto.ReminderTime.UTC()
	}
	if dto.IsCompleted != nil {
		updates["is_completed"] = *dto.IsCompleted
	}
	if dto.IsNotified != nil {
		updates["is_notified"] = *dto.IsNotified
	}
	if len(updates) == 0 {
		return r, nil
	}
	if err := s.db.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.find(s.db, id, userID)
}

func (s *Service) Delete(id, userID string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ReminderModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errReminderNotFound
	}
	return nil
}

// Pending returns the user's due reminders that are neither notified nor
// completed, and marks exactly those as notified. The result reflects the
// rows as they were before the mark, so a second call returns nothing new.
func (s *Service) Pending(userID string) ([]models.ReminderModel, error) {
	now := s.now().UTC()
	due := []models.ReminderModel{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ? AND reminder_time <= ? AND is_notified = ? AND is_completed = ?",
			userID, now, false, false).
			Order("reminder_time ASC")
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Find(&due).Error; err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]string, 0, len(due))
		for _, r := range due {
			ids = append(ids, r.ID)
		}
		return tx.Model(&models.ReminderModel{}).
			Where("id IN ?", ids).
			Update("is_notified", true).Error
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}
