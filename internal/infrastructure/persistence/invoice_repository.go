package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeaevo/loopjet-bridge/internal/domain/billing"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its lines by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all invoices for a company
func (r *GormInvoiceRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Preload("Lines").
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindRecentByCustomer finds the most recent non-cancelled invoices of a
// customer, newest first, capped at limit.
func (r *GormInvoiceRepository) FindRecentByCustomer(ctx context.Context, companyID, customerID uuid.UUID, limit int) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND customer_id = ? AND status <> ?", companyID, customerID, billing.InvoiceStatusCancelled).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice with its lines atomically
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(invoice).Error; err != nil {
			return err
		}

		// Drop lines removed from the aggregate
		if invoice.ID != uuid.Nil {
			lineIDs := make([]uuid.UUID, len(invoice.Lines))
			for i, line := range invoice.Lines {
				lineIDs[i] = line.ID
			}
			del := tx.Where("invoice_id = ?", invoice.ID)
			if len(lineIDs) > 0 {
				del = del.Where("id NOT IN ?", lineIDs)
			}
			if err := del.Delete(&billing.InvoiceLine{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts invoices for a company
func (r *GormInvoiceRepository) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
