// internal/model/deal.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DealStatus string

const (
	StatusDraft       DealStatus = "DRAFT"
	StatusSubmitted   DealStatus = "SUBMITTED"
	StatusUnderReview DealStatus = "UNDER_REVIEW"
	StatusApproved    DealStatus = "APPROVED"
	StatusRejected    DealStatus = "REJECTED"
	StatusExpired     DealStatus = "EXPIRED"
	StatusClosedWon   DealStatus = "CLOSED_WON"
	StatusClosedLost  DealStatus = "CLOSED_LOST"
)

type ProductCategory string

const (
	CategoryPrinters ProductCategory = "PRINTERS"
	CategoryLabels   ProductCategory = "LABELS"
	CategoryRFID     ProductCategory = "RFID"
	CategoryScanners ProductCategory = "SCANNERS"
	CategorySoftware ProductCategory = "SOFTWARE"
)

type DealType string

const (
	DealTypeNew         DealType = "NEW"
	DealTypeExpansion   DealType = "EXPANSION"
	DealTypeReplacement DealType = "REPLACEMENT"
)

// Deal is a tracked sales opportunity owned by one partner organisation,
// moving through the approval workflow. The partner never changes after
// creation, and status only changes through the workflow engine.
type Deal struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PartnerID         uuid.UUID       `gorm:"type:uuid;not null;index;index:idx_deals_partner_status" json:"partner_id"`
	EndCustomerName   string          `gorm:"type:text;not null;index" json:"end_customer_name"`
	ProjectName       string          `gorm:"type:text;index" json:"project_name"`
	Description       string          `gorm:"type:text" json:"description"`
	EstimatedValue    decimal.Decimal `gorm:"type:numeric(12,2);not null;index" json:"estimated_value"`
	ExpectedCloseDate *time.Time      `gorm:"type:date" json:"expected_close_date,omitempty"`
	ProductCategory   ProductCategory `gorm:"type:text;not null;index" json:"product_category"`
	Region            string          `gorm:"type:text" json:"region"`
	DealType          DealType        `gorm:"type:text;not null" json:"deal_type"`
	Status            DealStatus      `gorm:"type:text;not null;default:'DRAFT';index;index:idx_deals_partner_status" json:"status"`
	InternalOwnerID   *uuid.UUID      `gorm:"type:uuid;index" json:"internal_owner_id,omitempty"`
	ExpiryDate        *time.Time      `gorm:"type:date;index" json:"expiry_date,omitempty"`
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"index" json:"updated_at"`

	Partner       *PartnerOrganisation `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	InternalOwner *User                `gorm:"foreignKey:InternalOwnerID" json:"-"`
	AuditTrail    []DealAudit          `gorm:"foreignKey:DealID" json:"-"`
}

// Label returns the identifier used when referring to the deal in
// notifications and emails.
func (d *Deal) Label() string {
	if d.ProjectName != "" {
		return d.ProjectName
	}
	return d.EndCustomerName
}

// IsTerminal reports whether the workflow is over for a deal in this status.
// REJECTED deals may still be swept to EXPIRED, but no user-driven transition
// leaves any of these states.
func (s DealStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusExpired, StatusClosedWon, StatusClosedLost:
		return true
	}
	return false
}

// TransitionRule describes who may move a deal into a target status and from
// which current statuses.
type TransitionRule struct {
	From []DealStatus

	// Partner permits the owning partner's users, Reviewer permits
	// BRADY/ADMIN users, System permits actor-less scheduled transitions.
	Partner  bool
	Reviewer bool
	System   bool
}

func (r TransitionRule) allowsFrom(s DealStatus) bool {
	for _, f := range r.From {
		if f == s {
			return true
		}
	}
	return false
}

// transitionRules is the whole state machine, keyed by target status.
// DRAFT is the initial state and never a target. Approval is deliberately
// allowed straight from SUBMITTED: UNDER_REVIEW is advisory, not a gate.
var transitionRules = map[DealStatus]TransitionRule{
	StatusSubmitted:   {From: []DealStatus{StatusDraft}, Partner: true},
	StatusUnderReview: {From: []DealStatus{StatusSubmitted}, Reviewer: true},
	StatusApproved:    {From: []DealStatus{StatusSubmitted, StatusUnderReview}, Reviewer: true},
	StatusRejected:    {From: []DealStatus{StatusSubmitted, StatusUnderReview}, Reviewer: true},
	StatusClosedWon:   {From: []DealStatus{StatusApproved}, Partner: true, Reviewer: true},
	StatusClosedLost:  {From: []DealStatus{StatusApproved}, Partner: true, Reviewer: true},
	StatusExpired: {
		From:   []DealStatus{StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected},
		System: true,
	},
}

// RuleFor returns the transition rule for a target status. The second return
// is false when the status is never a valid transition target.
func RuleFor(target DealStatus) (TransitionRule, bool) {
	r, ok := transitionRules[target]
	return r, ok
}

// CanTransition reports whether the state machine permits moving from one
// status to another, regardless of actor.
func CanTransition(from, to DealStatus) bool {
	r, ok := transitionRules[to]
	return ok && r.allowsFrom(from)
}

// DealAudit is one immutable entry in a deal's audit trail, appended whenever
// the status changes. ChangedByID is nil for system-triggered transitions.
type DealAudit struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DealID      uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_deal_audits_deal_ts" json:"deal_id"`
	ChangedByID *uuid.UUID `gorm:"type:uuid;index" json:"changed_by_id,omitempty"`
	OldStatus   DealStatus `gorm:"type:text" json:"old_status"`
	NewStatus   DealStatus `gorm:"type:text;not null;index" json:"new_status"`
	Timestamp   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_deal_audits_deal_ts,sort:desc" json:"timestamp"`
	Note        string     `gorm:"type:text" json:"note"`

	Deal      *Deal `gorm:"foreignKey:DealID" json:"-"`
	ChangedBy *User `gorm:"foreignKey:ChangedByID" json:"-"`
}

func (DealAudit) TableName() string {
	return "deal_audits"
}
