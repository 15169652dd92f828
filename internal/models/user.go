package models

// UserModel is a registered account.
type UserModel struct {
	Base
	Name     string `json:"name"  gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"     gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }
