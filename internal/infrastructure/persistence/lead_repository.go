package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeaevo/loopjet-bridge/internal/domain/crm"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead with its tags by ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	var lead crm.Lead
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// FindAll finds all leads for a company
func (r *GormLeadRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]crm.Lead, error) {
	var leads []crm.Lead
	query := r.db.WithContext(ctx).Model(&crm.Lead{}).
		Preload("Tags").
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// FindActivities finds a lead's activities, latest deadline first, capped
// at limit. Activities without a deadline sort last.
func (r *GormLeadRepository) FindActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]crm.Activity, error) {
	var activities []crm.Activity
	query := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("deadline DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// FindMessages finds a lead's messages of the given kinds, newest first,
// capped at limit.
func (r *GormLeadRepository) FindMessages(ctx context.Context, leadID uuid.UUID, kinds []crm.MessageKind, limit int) ([]crm.Message, error) {
	var messages []crm.Message
	query := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("sent_at DESC")
	if len(kinds) > 0 {
		query = query.Where("kind IN ?", kinds)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

// SaveActivity persists an activity
func (r *GormLeadRepository) SaveActivity(ctx context.Context, activity *crm.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

// SaveMessage persists a message
func (r *GormLeadRepository) SaveMessage(ctx context.Context, message *crm.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

// Ensure GormLeadRepository implements LeadRepository
var _ crm.LeadRepository = (*GormLeadRepository)(nil)
