package user

import (
	"strings"
	"unicode/utf8"

	"github.com/studydesk/core/internal/pkg/validate"
)

// NormalizeEmail trims and lowercases an address and checks its syntax.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validate.Email(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizeName trims a display name and checks its length in runes.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func avatarKey(userID, ext string) string {
	return avatarPrefix + userID + "." + ext
}
