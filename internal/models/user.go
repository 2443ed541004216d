package models

import (
	"time"
)

// User is either a consultancy administrator or a client account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:256;not null" json:"-"` // bcrypt hash
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      Role      `gorm:"size:20;not null;default:client" json:"role"`
	Company   *string   `gorm:"size:100" json:"company"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// CompanyName returns the company or an empty string.
func (u *User) CompanyName() string {
	if u.Company == nil {
		return ""
	}
	return *u.Company
}
