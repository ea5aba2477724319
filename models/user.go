package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. Passwords are stored as bcrypt hashes only.
// The security stamp is rotated whenever credentials change.
type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Username      string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash  string    `gorm:"size:255" json:"-"`
	SecurityStamp string    `gorm:"size:36" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Roles         []Role    `gorm:"many2many:user_roles" json:"-"`
}

// BeforeCreate assigns the stable identifier when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
