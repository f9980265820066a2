// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RolePartner Role = "PARTNER"
	RoleBrady   Role = "BRADY"
	RoleAdmin   Role = "ADMIN"
)

// User is an account that can act on deals. PARTNER users belong to a
// partner organisation; BRADY and ADMIN users are internal reviewers.
type User struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username              string     `gorm:"type:citext;uniqueIndex;not null" json:"username"`
	Email                 string     `gorm:"type:citext" json:"email"`
	FirstName             string     `gorm:"type:text" json:"first_name"`
	LastName              string     `gorm:"type:text" json:"last_name"`
	PasswordHash          string     `gorm:"type:text;not null" json:"-"`
	Role                  Role       `gorm:"type:text;not null;default:'PARTNER';index" json:"role"`
	PartnerOrganisationID *uuid.UUID `gorm:"type:uuid;index" json:"partner_organisation_id,omitempty"`
	IsStaff               bool       `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	PartnerOrganisation *PartnerOrganisation `gorm:"foreignKey:PartnerOrganisationID" json:"-"`
}

// BeforeSave keeps the staff flag in step with the role on every persist,
// not just at creation: admins always get administrative access.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == RoleAdmin {
		u.IsStaff = true
	}
	return nil
}

func (u *User) IsPartner() bool {
	return u.Role == RolePartner
}

// IsReviewer reports whether the user is internal staff that may review deals.
func (u *User) IsReviewer() bool {
	return u.Role == RoleBrady || u.Role == RoleAdmin
}

// DisplayName returns the best human-readable identifier for notifications.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}
