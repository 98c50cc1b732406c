package estimate

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	// FindByID finds a session by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// FindByLead finds sessions of a lead, newest first
	FindByLead(ctx context.Context, leadID uuid.UUID, filter shared.Filter) ([]Session, error)

	// CountGeneratedByLead counts completed sessions of a lead
	CountGeneratedByLead(ctx context.Context, leadID uuid.UUID) (int64, error)

	// Save creates or updates a session
	Save(ctx context.Context, session *Session) error
}
