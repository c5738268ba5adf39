package tag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/pkg/dbutil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Normalize is the canonical form every tag name is stored and looked up in.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveIDs finds or creates a tag for each name and returns their ids in
// input order. Blank names are skipped and duplicates collapse after
// normalization. tx may be a transaction.
func ResolveIDs(tx *gorm.DB, names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	ids := make([]string, 0, len(names))
	for _, raw := range names {
		name := Normalize(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		t, _, err := findOrCreate(tx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func findOrCreate(db *gorm.DB, name string) (*models.TagModel, bool, error) {
	var t models.TagModel
	err := db.Where("name = ?", name).First(&t).Error
	if err == nil {
		return &t, false, nil
	}
	if !dbutil.IsNotFound(err) {
		return nil, false, err
	}

	t = models.TagModel{Name: name}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&t)
	if res.Error != nil && !dbutil.IsDuplicateKey(res.Error) {
		return nil, false, res.Error
	}
	if res.Error == nil && res.RowsAffected == 1 {
		return &t, true, nil
	}

	// lost a race with a concurrent insert
	t = models.TagModel{}
	if err := db.Where("name = ?", name).First(&t).Error; err != nil {
		return nil, false, err
	}
	return &t, false, nil
}

// List returns every tag alphabetically.
func (s *Service) List() ([]models.TagModel, error) {
	var tags []models.TagModel
	return tags, s.db.Order("name ASC").Find(&tags).Error
}

// ListByUser returns the tags attached to at least one of the user's notes.
func (s *Service) ListByUser(userID string) ([]models.TagModel, error) {
	used := s.db.Table(models.NoteTagTable).
		Select("note_tags.tag_id").
		Joins("JOIN notes ON notes.id = note_tags.note_id").
		Where("notes.user_id = ?", userID)

	var tags []models.TagModel
	err := s.db.Where("id IN (?)", used).Order("name ASC").Find(&tags).Error
	return tags, err
}

// Create returns the tag named name, creating it if needed. created reports
// whether a new row was inserted.
func (s *Service) Create(name string) (tag *models.TagModel, created bool, err error) {
	name = Normalize(name)
	if name == "" {
		return nil, false, errTagNameRequired
	}
	return findOrCreate(s.db, name)
}

// Delete removes the tag and detaches it from every note.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var t models.TagModel
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTagNotFound
			}
			return err
		}
		if err := tx.Where("tag_id = ?", t.ID).Delete(&models.NoteTagModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
}
