package user

import "errors"

const (
	MaxAvatarSize = 5 << 20
	avatarPrefix  = "avatars/"

	minNameLength = 2
	maxNameLength = 30
)

type UpdateProfileDTO struct {
	Name  *string `json:"name"  binding:"omitempty,notblank,max=30"`
	Email *string `json:"email" binding:"omitempty,notblank,max=191"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=8,max=72"`
}

type avatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("Email is already registered")
	ErrInvalidName  = errors.New("name must be between 2 and 30 characters")
	ErrInvalidEmail = errors.New("email must be a valid email address")

	errWrongPassword = errors.New("Current password is incorrect")
)
