package models

// UserModel is a registered account. Email is stored trimmed and lowercased.
type UserModel struct {
	Base
	Name     string  `json:"name"   gorm:"size:30;not null"`
	Email    string  `json:"email"  gorm:"size:191;uniqueIndex;not null"`
	Password string  `json:"-"      gorm:"not null"`
	Avatar   *string `json:"avatar" gorm:"size:512"`
}

func (UserModel) TableName() string { return "users" }
