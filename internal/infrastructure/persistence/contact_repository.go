package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeaevo/loopjet-bridge/internal/domain/partner"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	var contact partner.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByRemoteID finds a contact carrying the given Loopjet ID
func (r *GormContactRepository) FindByRemoteID(ctx context.Context, companyID uuid.UUID, remoteID string) (*partner.Contact, error) {
	if remoteID == "" {
		return nil, shared.ErrNotFound
	}
	var contact partner.Contact
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND remote_id = ?", companyID, remoteID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindCustomers finds all customer-ranked contacts for a company
func (r *GormContactRepository) FindCustomers(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Contact, error) {
	var contacts []partner.Contact
	query := r.db.WithContext(ctx).Model(&partner.Contact{}).
		Where("company_id = ? AND customer_rank > 0", companyID)
	query = applyFilter(query, filter, "name ASC")

	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindAll finds all contacts for a company
func (r *GormContactRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Contact, error) {
	var contacts []partner.Contact
	query := r.db.WithContext(ctx).Model(&partner.Contact{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, "name ASC")

	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// SaveBatch creates or updates multiple contacts
func (r *GormContactRepository) SaveBatch(ctx context.Context, contacts []*partner.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(contacts).Error
}

// Count counts contacts for a company
func (r *GormContactRepository) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Contact{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormContactRepository implements ContactRepository
var _ partner.ContactRepository = (*GormContactRepository)(nil)
