package auth

import (
	"errors"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/modules/auth/user"
	"github.com/studydesk/core/internal/pkg/dbutil"
	sessionpkg "github.com/studydesk/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Client identifies where a login came from; it is stored on the session.
type Client struct {
	IP string
	UA string
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Register(dto *RegisterDTO, client Client) (string, *models.UserModel, error) {
	name, err := user.NormalizeName(dto.Name)
	if err != nil {
		return "", nil, err
	}
	email, err := user.NormalizeEmail(dto.Email)
	if err != nil {
		return "", nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	var token string
	u := models.UserModel{Name: name, Email: email, Password: string(hash)}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return user.ErrEmailTaken
		}
		if err := tx.Create(&u).Error; err != nil {
			if dbutil.IsDuplicateKey(err) {
				return user.ErrEmailTaken
			}
			return err
		}
		token, _, err = sessionpkg.Issue(tx, u.ID, client.IP, client.UA, sessionpkg.DefaultTTL)
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

func (s *Service) Login(dto *LoginDTO, client Client) (string, *models.UserModel, error) {
	email, err := user.NormalizeEmail(dto.Email)
	if err != nil {
		return "", nil, errInvalidCredentials
	}
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)); err != nil {
		return "", nil, errInvalidCredentials
	}
	token, _, err := sessionpkg.Issue(s.db, u.ID, client.IP, client.UA, sessionpkg.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// Logout revokes the session behind the current token.
func (s *Service) Logout(userID, sessionID string) error {
	err := sessionpkg.Revoke(s.db, userID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errSessionNotFound
	}
	return err
}

func (s *Service) ListSessions(userID, currentID string) ([]sessionResponse, error) {
	sessions, err := sessionpkg.ListActive(s.db, userID)
	if err != nil {
		return nil, err
	}
	out := make([]sessionResponse, 0, len(sessions))
	for _, it := range sessions {
		out = append(out, sessionResponse{
			ID:        it.ID,
			IP:        it.IP,
			UA:        it.UA,
			CreatedAt: it.CreatedAt,
			LastSeen:  it.UpdatedAt,
			ExpiresAt: it.ExpiresAt,
			Current:   it.ID == currentID,
		})
	}
	return out, nil
}

func (s *Service) RevokeSession(userID, sessionID string) error {
	return s.Logout(userID, sessionID)
}
