package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeaevo/loopjet-bridge/internal/domain/estimate"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID finds a session by its ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*estimate.Session, error) {
	var session estimate.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByLead finds sessions of a lead, newest first
func (r *GormSessionRepository) FindByLead(ctx context.Context, leadID uuid.UUID, filter shared.Filter) ([]estimate.Session, error) {
	var sessions []estimate.Session
	query := r.db.WithContext(ctx).Model(&estimate.Session{}).
		Where("lead_id = ?", leadID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// CountGeneratedByLead counts completed sessions of a lead
func (r *GormSessionRepository) CountGeneratedByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&estimate.Session{}).
		Where("lead_id = ? AND state = ?", leadID, estimate.SessionStateDone).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a session
func (r *GormSessionRepository) Save(ctx context.Context, session *estimate.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Ensure GormSessionRepository implements SessionRepository
var _ estimate.SessionRepository = (*GormSessionRepository)(nil)
