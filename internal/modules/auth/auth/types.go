package auth

import (
	"errors"
	"time"

	"github.com/studydesk/core/internal/models"
)

type RegisterDTO struct {
	Name     string `json:"name"     binding:"required,notblank,max=30"`
	Email    string `json:"email"    binding:"required,notblank,max=191"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string            `json:"token"`
	User  *models.UserModel `json:"user"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	IP        string    `json:"ip"`
	UA        string    `json:"ua"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}

var (
	errInvalidCredentials = errors.New("Invalid credentials")
	errSessionNotFound    = errors.New("session not found")
)
