package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// GormTaxRepository implements TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// FindByID finds a tax by its ID
func (r *GormTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Tax, error) {
	var tax trade.Tax
	if err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tax, nil
}

// FindSaleTaxByRate finds an active sale tax with the exact rate, scoped
// to the company.
func (r *GormTaxRepository) FindSaleTaxByRate(ctx context.Context, companyID uuid.UUID, rate decimal.Decimal) (*trade.Tax, error) {
	var tax trade.Tax
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND use = ? AND active = ? AND rate = ?",
			companyID, trade.TaxUseSale, true, rate).
		First(&tax).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tax, nil
}

// Save creates or updates a tax
func (r *GormTaxRepository) Save(ctx context.Context, tax *trade.Tax) error {
	return r.db.WithContext(ctx).Save(tax).Error
}

// Ensure GormTaxRepository implements TaxRepository
var _ trade.TaxRepository = (*GormTaxRepository)(nil)
