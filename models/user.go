package models

import (
	"strings"
	"time"

	"carwash-backend/utils"

	"gorm.io/gorm"
)

type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"full_name"`
	Role     string `gorm:"type:varchar(20);default:'staff'" json:"role"` // 'admin' or 'staff'

	LastLogin *time.Time `json:"last_login"`
}

// Hash the password before creating unless it is already a bcrypt hash
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.HasPrefix(u.Password, "$2") {
		return nil
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
