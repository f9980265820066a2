// internal/service/deal.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bradyhq/dealdesk/internal/config"
	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/metrics"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/policy"
	"github.com/bradyhq/dealdesk/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealNotifier fans a committed audit event out to interested users. It is
// always called after the transition transaction commits and its failures
// never propagate back into the workflow.
type DealNotifier interface {
	FanOutDealStatus(ctx context.Context, deal *model.Deal, audit *model.DealAudit) error
}

// DealService is the workflow engine: every status mutation funnels through
// Transition, which validates the state machine, appends the audit entry in
// the same transaction, and triggers notification fan-out after commit.
type DealService struct {
	deals    repository.DealRepositoryIface
	notifier DealNotifier
	metrics  *metrics.Metrics
	config   *config.Config
	validate *validator.Validate
}

func NewDealService(
	deals repository.DealRepositoryIface,
	notifier DealNotifier,
	m *metrics.Metrics,
	cfg *config.Config,
) *DealService {
	return &DealService{
		deals:    deals,
		notifier: notifier,
		metrics:  m,
		config:   cfg,
		validate: validator.New(),
	}
}

type CreateDealInput struct {
	EndCustomerName   string                `json:"end_customer_name" validate:"required"`
	ProjectName       string                `json:"project_name"`
	Description       string                `json:"description"`
	EstimatedValue    decimal.Decimal       `json:"estimated_value"`
	ExpectedCloseDate *time.Time            `json:"expected_close_date"`
	ProductCategory   model.ProductCategory `json:"product_category" validate:"required,oneof=PRINTERS LABELS RFID SCANNERS SOFTWARE"`
	Region            string                `json:"region"`
	DealType          model.DealType        `json:"deal_type" validate:"required,oneof=NEW EXPANSION REPLACEMENT"`
}

// CreateDeal registers a new deal in DRAFT for the actor's organisation.
// Creation is not a transition: no audit entry and no fan-out.
func (s *DealService) CreateDeal(ctx context.Context, actor *model.User, input CreateDealInput) (*model.Deal, error) {
	if actor == nil || !actor.IsPartner() {
		return nil, domain.ErrUnauthorized
	}
	if actor.PartnerOrganisationID == nil {
		return nil, domain.ErrPartnerRequired
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.EstimatedValue.IsNegative() {
		return nil, domain.ErrNegativeValue
	}

	deal := &model.Deal{
		PartnerID:         *actor.PartnerOrganisationID,
		EndCustomerName:   input.EndCustomerName,
		ProjectName:       input.ProjectName,
		Description:       input.Description,
		EstimatedValue:    input.EstimatedValue,
		ExpectedCloseDate: input.ExpectedCloseDate,
		ProductCategory:   input.ProductCategory,
		Region:            input.Region,
		DealType:          input.DealType,
		Status:            model.StatusDraft,
	}

	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}

	return deal, nil
}

// GetDeal returns a deal the actor may see. A partner asking for another
// organisation's deal gets not-found, never unauthorized, so deal existence
// does not leak across organisations.
func (s *DealService) GetDeal(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Deal, error) {
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanRead(actor, deal) {
		return nil, domain.ErrDealNotFound
	}
	return deal, nil
}

// FilteredDeals lists deals for reporting surfaces. Partner actors are always
// scoped to their own organisation regardless of the requested filter.
func (s *DealService) FilteredDeals(ctx context.Context, actor *model.User, filter repository.DealFilter) ([]*model.Deal, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.IsPartner() {
		if actor.PartnerOrganisationID == nil {
			return nil, domain.ErrPartnerRequired
		}
		filter.PartnerID = actor.PartnerOrganisationID
	}
	return s.deals.FindFiltered(ctx, filter)
}

// AuditTrail returns a deal's audit entries, newest first, subject to the
// same visibility rule as GetDeal.
func (s *DealService) AuditTrail(ctx context.Context, actor *model.User, dealID uuid.UUID) ([]*model.DealAudit, error) {
	if _, err := s.GetDeal(ctx, actor, dealID); err != nil {
		return nil, err
	}
	return s.deals.AuditTrail(ctx, dealID)
}

type UpdateDealInput struct {
	EndCustomerName   string                `json:"end_customer_name" validate:"required"`
	ProjectName       string                `json:"project_name"`
	Description       string                `json:"description"`
	EstimatedValue    decimal.Decimal       `json:"estimated_value"`
	ExpectedCloseDate *time.Time            `json:"expected_close_date"`
	ProductCategory   model.ProductCategory `json:"product_category" validate:"required,oneof=PRINTERS LABELS RFID SCANNERS SOFTWARE"`
	Region            string                `json:"region"`
	DealType          model.DealType        `json:"deal_type" validate:"required,oneof=NEW EXPANSION REPLACEMENT"`
	InternalOwnerID   *uuid.UUID            `json:"internal_owner_id"`
}

// UpdateDeal edits a deal's fields without touching its status. Partners may
// edit only while the deal is in DRAFT or SUBMITTED; the owning organisation
// can never be changed. No audit entry is written because the status does
// not change.
func (s *DealService) UpdateDeal(ctx context.Context, actor *model.User, id uuid.UUID, input UpdateDealInput) (*model.Deal, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.EstimatedValue.IsNegative() {
		return nil, domain.ErrNegativeValue
	}

	deal, _, err := s.deals.Transition(ctx, id, func(deal *model.Deal) (*model.DealAudit, error) {
		if !policy.CanRead(actor, deal) {
			return nil, domain.ErrDealNotFound
		}
		if !policy.CanWrite(actor, deal) {
			return nil, domain.ErrUnauthorized
		}

		deal.EndCustomerName = input.EndCustomerName
		deal.ProjectName = input.ProjectName
		deal.Description = input.Description
		deal.EstimatedValue = input.EstimatedValue
		deal.ExpectedCloseDate = input.ExpectedCloseDate
		deal.ProductCategory = input.ProductCategory
		deal.Region = input.Region
		deal.DealType = input.DealType
		if actor.IsReviewer() {
			deal.InternalOwnerID = input.InternalOwnerID
		}

		// nil audit: field edits are not status transitions
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

// Transition moves a deal to the target status on behalf of an actor. A nil
// actor is the system (scheduled sweep) and may only apply system
// transitions. The status write and the audit entry commit together; fan-out
// runs afterwards and cannot undo them.
func (s *DealService) Transition(ctx context.Context, actor *model.User, dealID uuid.UUID, target model.DealStatus) (*model.Deal, error) {
	return s.transition(ctx, actor, dealID, target, nil)
}

func (s *DealService) transition(ctx context.Context, actor *model.User, dealID uuid.UUID, target model.DealStatus, guard func(*model.Deal) error) (*model.Deal, error) {
	rule, ok := model.RuleFor(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a transition target", domain.ErrInvalidTransition, target)
	}

	start := time.Now()

	deal, audit, err := s.deals.Transition(ctx, dealID, func(deal *model.Deal) (*model.DealAudit, error) {
		if actor != nil && !policy.CanRead(actor, deal) {
			return nil, domain.ErrDealNotFound
		}

		if !model.CanTransition(deal.Status, target) {
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, deal.Status, target)
		}

		if err := checkTransitionActor(actor, rule); err != nil {
			return nil, err
		}

		if guard != nil {
			if err := guard(deal); err != nil {
				return nil, err
			}
		}

		audit := &model.DealAudit{
			OldStatus: deal.Status,
			NewStatus: target,
			Timestamp: time.Now().UTC(),
		}
		if actor != nil {
			audit.ChangedByID = &actor.ID
		} else {
			audit.Note = "expired by scheduled sweep"
		}

		if target == model.StatusApproved {
			expiry := s.expiryDateFor(deal)
			deal.ExpiryDate = &expiry
		}
		deal.Status = target

		return audit, nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObserveTransition(string(target), start)
	}

	// Fan-out is best-effort: the transition is already committed and a
	// notification outage must not unwind it.
	if s.notifier != nil {
		if err := s.notifier.FanOutDealStatus(ctx, deal, audit); err != nil {
			slog.WarnContext(ctx, "notification fan-out failed",
				"deal_id", deal.ID,
				"new_status", audit.NewStatus,
				"error", err,
			)
		}
	}

	return deal, nil
}

// checkTransitionActor applies the role column of the transition table.
// Ownership for partner actors was already established by the visibility
// check, so only the role gate remains.
func checkTransitionActor(actor *model.User, rule model.TransitionRule) error {
	switch {
	case actor == nil:
		if !rule.System {
			return domain.ErrUnauthorized
		}
	case actor.IsReviewer():
		if !rule.Reviewer {
			return domain.ErrUnauthorized
		}
	case actor.IsPartner():
		if !rule.Partner {
			return domain.ErrUnauthorized
		}
	default:
		return domain.ErrUnauthorized
	}
	return nil
}

// expiryDateFor computes the expiry set on approval: the deal's last-modified
// date (creation date if never modified) plus the configured minimum number
// of days.
func (s *DealService) expiryDateFor(deal *model.Deal) time.Time {
	ref := deal.UpdatedAt
	if ref.IsZero() {
		ref = deal.CreatedAt
	}
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, s.minExpiryDays())
}

func (s *DealService) minExpiryDays() int {
	if s.config != nil && s.config.Deals.MinExpiryDays > 0 {
		return s.config.Deals.MinExpiryDays
	}
	return 90
}

// RunExpirySweep force-expires every overdue deal that is still open and
// returns how many were affected. Each deal goes through the same transition
// choke point with no actor, so every expiry leaves an audit entry. The sweep
// is idempotent: deals already swept or closed in a race are skipped.
func (s *DealService) RunExpirySweep(ctx context.Context, today time.Time) (int, error) {
	ids, err := s.deals.FindExpirable(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("listing expirable deals: %w", err)
	}

	count := 0
	for _, id := range ids {
		_, err := s.transition(ctx, nil, id, model.StatusExpired, func(deal *model.Deal) error {
			// Re-check under lock: a concurrent approval may have pushed the
			// expiry date out since the candidate list was built.
			if deal.ExpiryDate == nil || !deal.ExpiryDate.Before(today) {
				return domain.ErrInvalidTransition
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrDealNotFound) {
				continue
			}
			return count, fmt.Errorf("expiring deal %s: %w", id, err)
		}

		count++
		if s.metrics != nil {
			s.metrics.DealsExpired.Inc()
		}
	}

	return count, nil
}
