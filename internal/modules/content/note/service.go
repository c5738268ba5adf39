package note

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/modules/content/tag"
	"github.com/studydesk/core/internal/pkg/dbutil"
	"github.com/studydesk/core/internal/pkg/pagination"
	"github.com/studydesk/core/internal/pkg/response"
	"github.com/studydesk/core/internal/pkg/richtext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("tags.name ASC")
	})
}

// syncTags replaces the note's tag set with the resolved names.
func syncTags(tx *gorm.DB, noteID string, names []string) error {
	ids, err := tag.ResolveIDs(tx, names)
	if err != nil {
		return err
	}
	if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteTagModel{}).Error; err != nil {
		return fmt.Errorf("detach tags: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	links := make([]models.NoteTagModel, 0, len(ids))
	for _, id := range ids {
		links = append(links, models.NoteTagModel{NoteID: noteID, TagID: id})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("attach tags: %w", err)
	}
	return nil
}

func checkTitle(title *string) error {
	if title != nil && utf8.RuneCountInString(*title) > maxTitleLength {
		return errTitleTooLong
	}
	return nil
}

func (s *Service) Create(userID string, dto *CreateNoteDTO) (*models.NoteModel, error) {
	if err := checkTitle(dto.Title); err != nil {
		return nil, err
	}
	n := models.NoteModel{UserID: userID, Title: dto.Title, Content: dto.Content}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&n).Error; err != nil {
			return err
		}
		return syncTags(tx, n.ID, dto.Tags)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(n.ID, userID)
}

func (s *Service) List(userID string) ([]models.NoteModel, error) {
	var notes []models.NoteModel
	err := preloadTags(s.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *Service) ListPage(userID string, q pagination.Query) ([]models.NoteModel, response.Pagination, error) {
	var notes []models.NoteModel
	tx := preloadTags(s.db.Model(&models.NoteModel{})).
		Where("user_id = ?", userID).
		Order("updated_at DESC")
	pag, err := pagination.Paginate(tx, q, &notes)
	return notes, pag, err
}

// Search matches q case-insensitively against title, the text of the
// content and tag names. A blank query matches nothing. The LIKE clause only
// narrows candidates, since stored content is a serialized document whose
// keys and node types must not produce hits.
func (s *Service) Search(userID, q string) ([]models.NoteModel, error) {
	if isBlank(q) {
		return []models.NoteModel{}, nil
	}
	pattern := dbutil.ContainsPattern(q)

	tagged := s.db.Table(models.NoteTagTable).
		Select("note_tags.note_id").
		Joins("JOIN tags ON tags.id = note_tags.tag_id").
		Where("LOWER(tags.name) LIKE ? ESCAPE '!'", pattern)

	var candidates []models.NoteModel
	err := preloadTags(s.db).
		Where("user_id = ?", userID).
		Where(s.db.Where("LOWER(title) LIKE ? ESCAPE '!'", pattern).
			Or("LOWER(content) LIKE ? ESCAPE '!'", pattern).
			Or("id IN (?)", tagged)).
		Order("updated_at DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	notes := make([]models.NoteModel, 0, min(len(candidates), searchLimit))
	for _, n := range candidates {
		if len(notes) == searchLimit {
			break
		}
		if matchesNote(&n, q) {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

// GetByID returns errNoteNotFound both for missing notes and for notes
// owned by someone else.
func (s *Service) GetByID(id, userID string) (*models.NoteModel, error) {
	var n models.NoteModel
	if err := preloadTags(s.db).Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoteNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *Service) Update(id, userID string, dto *UpdateNoteDTO) (*models.NoteModel, error) {
	if dto.Title.Set {
		if err := checkTitle(dto.Title.Value); err != nil {
			return nil, err
		}
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var n models.NoteModel
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoteNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if dto.Title.Set {
			updates["title"] = dto.Title.Value
		}
		if dto.Content != nil {
			updates["content"] = *dto.Content
		}
		if dto.Tags != nil {
			if err := syncTags(tx, n.ID, *dto.Tags); err != nil {
				return err
			}
		}
		if len(updates) == 0 && dto.Tags == nil {
			return nil
		}
		updates["updated_at"] = time.Now()
		return tx.Model(&n).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id, userID)
}

func (s *Service) Delete(id, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var n models.NoteModel
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoteNotFound
			}
			return err
		}
		if err := tx.Where("note_id = ?", n.ID).Delete(&models.NoteTagModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&n).Error
	})
}

// Export renders the note body as markdown or HTML.
func (s *Service) Export(id, userID, format string) (string, error) {
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatHTML {
		return "", errUnknownFormat
	}
	n, err := s.GetByID(id, userID)
	if err != nil {
		return "", err
	}
	doc := richtext.Parse(n.Content)
	if format == FormatHTML {
		return doc.HTML()
	}
	return doc.Markdown(), nil
}

// Import converts markdown into a stored document and creates a note. The
// first heading becomes the title unless one is given.
func (s *Service) Import(userID string, dto *ImportNoteDTO) (*models.NoteModel, error) {
	doc, heading := richtext.FromMarkdown(dto.Markdown)
	title := dto.Title
	if title == nil && heading != "" {
		if utf8.RuneCountInString(heading) > maxTitleLength {
			heading = string([]rune(heading)[:maxTitleLength])
		}
		title = &heading
	}
	return s.Create(userID, &CreateNoteDTO{Title: title, Content: doc.String(), Tags: dto.Tags})
}
