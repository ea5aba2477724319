package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimTypePermission is the claim type attached to roles via add-claim.
const ClaimTypePermission = "Permission"

// Role groups users under a unique name and carries permission claims.
type Role struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	Name      string      `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Claims    []RoleClaim `gorm:"constraint:OnDelete:CASCADE;" json:"claims"`
	CreatedAt time.Time   `json:"created_at"`
}

// RoleClaim is a named attribute granted to every member of a role.
type RoleClaim struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoleID     string `gorm:"size:36;index;not null" json:"role_id"`
	ClaimType  string `gorm:"size:64;not null" json:"claim_type"`
	ClaimValue string `gorm:"size:255;not null" json:"claim_value"`
}

// BeforeCreate assigns the role identifier when the caller did not.
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
