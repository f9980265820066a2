// internal/repository/deal.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DealFilter narrows deal listings. Zero values mean "no constraint".
type DealFilter struct {
	Status          model.DealStatus
	PartnerID       *uuid.UUID
	ProductCategory model.ProductCategory
	Region          string
}

// ApplyFunc validates and mutates a locked deal inside a transition
// transaction. It returns the audit entry to append, or an error to abort
// the whole transaction.
type ApplyFunc func(deal *model.Deal) (*model.DealAudit, error)

type DealRepositoryIface interface {
	Create(ctx context.Context, deal *model.Deal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Deal, error)
	FindFiltered(ctx context.Context, filter DealFilter) ([]*model.Deal, error)
	FindExpirable(ctx context.Context, today time.Time) ([]uuid.UUID, error)
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*model.Deal, error)
	Transition(ctx context.Context, id uuid.UUID, apply ApplyFunc) (*model.Deal, *model.DealAudit, error)
	AuditTrail(ctx context.Context, dealID uuid.UUID) ([]*model.DealAudit, error)
	AnonymizeEndCustomers(ctx context.Context) (int64, error)
}

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(ctx context.Context, deal *model.Deal) error {
	result := r.db.WithContext(ctx).Create(deal)
	if result.Error != nil {
		return fmt.Errorf("failed to create deal: %w", result.Error)
	}
	return nil
}

func (r *DealRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Deal, error) {
	var deal model.Deal
	result := r.db.WithContext(ctx).Preload("Partner").First(&deal, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to find deal: %w", result.Error)
	}
	return &deal, nil
}

// FindFiltered returns deals matching the filter, newest first.
func (r *DealRepository) FindFiltered(ctx context.Context, filter DealFilter) ([]*model.Deal, error) {
	q := r.db.WithContext(ctx).Model(&model.Deal{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PartnerID != nil {
		q = q.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.ProductCategory != "" {
		q = q.Where("product_category = ?", filter.ProductCategory)
	}
	if filter.Region != "" {
		q = q.Where("region ILIKE ?", "%"+filter.Region+"%")
	}

	var deals []*model.Deal
	result := q.Order("created_at DESC").Find(&deals)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find deals: %w", result.Error)
	}
	return deals, nil
}

// FindExpirable returns the IDs of deals whose expiry date has elapsed and
// which are not yet in a swept or closed status. Only IDs are returned; the
// sweep re-reads each deal under lock before acting on it.
func (r *DealRepository) FindExpirable(ctx context.Context, today time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).Model(&model.Deal{}).
		Where("expiry_date < ?", today).
		Where("status NOT IN ?", []model.DealStatus{model.StatusExpired, model.StatusClosedWon, model.StatusClosedLost}).
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find expirable deals: %w", result.Error)
	}
	return ids, nil
}

// FindExpiringBetween returns open deals whose expiry date falls inside the
// warning window, used for nearing-expiry alerts.
func (r *DealRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*model.Deal, error) {
	var deals []*model.Deal
	result := r.db.WithContext(ctx).Preload("Partner").
		Where("expiry_date BETWEEN ? AND ?", from, to).
		Where("status NOT IN ?", []model.DealStatus{model.StatusExpired, model.StatusClosedWon, model.StatusClosedLost}).
		Find(&deals)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find expiring deals: %w", result.Error)
	}
	return deals, nil
}

// Transition is the single choke point for status mutations. It locks the
// deal row for the duration of the transaction so concurrent transitions
// serialize, runs the apply step against the fresh row, and persists the
// updated deal together with the audit entry. Either both rows are written
// or neither is.
func (r *DealRepository) Transition(ctx context.Context, id uuid.UUID, apply ApplyFunc) (*model.Deal, *model.DealAudit, error) {
	var deal model.Deal
	var audit *model.DealAudit

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&deal, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDealNotFound
			}
			return fmt.Errorf("locking deal: %w", err)
		}

		var err error
		audit, err = apply(&deal)
		if err != nil {
			return err
		}

		if err := tx.Save(&deal).Error; err != nil {
			return fmt.Errorf("updating deal: %w", err)
		}

		if audit != nil {
			audit.DealID = deal.ID
			if err := tx.Create(audit).Error; err != nil {
				return fmt.Errorf("appending audit entry: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &deal, audit, nil
}

// AuditTrail returns a deal's audit entries, newest first.
func (r *DealRepository) AuditTrail(ctx context.Context, dealID uuid.UUID) ([]*model.DealAudit, error) {
	var entries []*model.DealAudit
	result := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("timestamp DESC").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find audit trail: %w", result.Error)
	}
	return entries, nil
}

// AnonymizeEndCustomers blanks end-customer names for data retention,
// skipping rows already anonymized.
func (r *DealRepository) AnonymizeEndCustomers(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Deal{}).
		Where("end_customer_name NOT LIKE ?", "ANON%").
		Update("end_customer_name", "ANONYMIZED")
	if result.Error != nil {
		return 0, fmt.Errorf("failed to anonymize deals: %w", result.Error)
	}
	return result.RowsAffected, nil
}
