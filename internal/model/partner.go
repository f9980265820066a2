// internal/model/partner.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type PartnerStatus string

const (
	PartnerActive   PartnerStatus = "ACTIVE"
	PartnerInactive PartnerStatus = "INACTIVE"
)

// PartnerOrganisation is an external reseller entity whose users submit deals.
type PartnerOrganisation struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string        `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Status    PartnerStatus `gorm:"type:text;not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Users []User `gorm:"foreignKey:PartnerOrganisationID" json:"-"`
	Deals []Deal `gorm:"foreignKey:PartnerID" json:"-"`
}

func (PartnerOrganisation) TableName() string {
	return "partner_organisations"
}
