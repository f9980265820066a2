// internal/repository/partner.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerRepositoryIface interface {
	Create(ctx context.Context, org *model.PartnerOrganisation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PartnerOrganisation, error)
	FindByName(ctx context.Context, name string) (*model.PartnerOrganisation, error)
	FindAll(ctx context.Context) ([]*model.PartnerOrganisation, error)
	Update(ctx context.Context, org *model.PartnerOrganisation) error
}

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, org *model.PartnerOrganisation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PartnerOrganisation{}).
			Where("name = ?", org.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("checking partner name: %w", err)
		}
		if count > 0 {
			return domain.ErrDuplicatePartner
		}

		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("creating partner organisation: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrDuplicatePartner) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PartnerOrganisation, error) {
	var org model.PartnerOrganisation
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("finding partner organisation: %w", err)
	}
	return &org, nil
}

func (r *PartnerRepository) FindByName(ctx context.Context, name string) (*model.PartnerOrganisation, error) {
	var org model.PartnerOrganisation
	if err := r.db.WithContext(ctx).First(&org, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("finding partner organisation by name: %w", err)
	}
	return &org, nil
}

// FindAll returns all partner organisations ordered by name.
func (r *PartnerRepository) FindAll(ctx context.Context) ([]*model.PartnerOrganisation, error) {
	var orgs []*model.PartnerOrganisation
	result := r.db.WithContext(ctx).Order("name").Find(&orgs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all partner organisations: %w", result.Error)
	}
	return orgs, nil
}

func (r *PartnerRepository) Update(ctx context.Context, org *model.PartnerOrganisation) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		return fmt.Errorf("updating partner organisation: %w", err)
	}
	return nil
}
