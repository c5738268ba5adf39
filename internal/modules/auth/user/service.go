package user

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/modules/storage/objectstore"
	"github.com/studydesk/core/internal/modules/storage/upload"
	"github.com/studydesk/core/internal/pkg/dbutil"
	sessionpkg "github.com/studydesk/core/internal/pkg/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	store  objectstore.Store
	logger *zap.Logger
}

// ServiceOption configures a user Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for the user service.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("UserService")
		}
	}
}

func NewService(db *gorm.DB, store objectstore.Store, opts ...ServiceOption) *Service {
	s := &Service{db: db, store: store, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) UpdateProfile(id string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		name, err := NormalizeName(*dto.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if dto.Email != nil {
		email, err := NormalizeEmail(*dto.Email)
		if err != nil {
			return nil, err
		}
		if email != u.Email {
			var count int64
			if err := s.db.Model(&models.UserModel{}).
				Where("email = ? AND id <> ?", email, id).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrEmailTaken
			}
			updates["email"] = email
		}
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.GetByID(id)
}

// ChangePassword replaces the password and revokes every session except
// keepSessionID.
func (s *Service) ChangePassword(id, keepSessionID string, dto *ChangePasswordDTO) error {
	var u models.UserModel
	if err := s.db.Select("id, password").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.CurrentPassword)); err != nil {
		return errWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&u).Update("password", string(hash)).Error; err != nil {
			return err
		}
		return sessionpkg.RevokeAllExcept(tx, id, keepSessionID)
	})
}

// UpdateAvatar stores the image under avatars/<id>.<ext>, saves its URL on
// the user and removes the previous avatar object if it had another key.
func (s *Service) UpdateAvatar(ctx context.Context, id string, fh *multipart.FileHeader) (string, error) {
	ext, contentType, err := upload.CheckImage(fh, MaxAvatarSize)
	if err != nil {
		return "", err
	}
	u, err := s.GetByID(id)
	if err != nil {
		return "", err
	}
	var previous string
	if u.Avatar != nil {
		previous = *u.Avatar
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()

	key := avatarKey(id, ext)
	if err := s.store.Put(ctx, key, f, fh.Size, contentType); err != nil {
		return "", err
	}
	url := s.store.PublicURL(key)
	if err := s.db.Model(u).Update("avatar", url).Error; err != nil {
		return "", err
	}

	if previous == "" {
		return url, nil
	}
	if old, ok := objectstore.KeyFromURL(s.store, previous); ok && old != key {
		if err := s.store.Delete(ctx, old); err != nil {
			s.logger.Warn("delete previous avatar failed", zap.String("key", old), zap.Error(err))
		}
	}
	return url, nil
}
