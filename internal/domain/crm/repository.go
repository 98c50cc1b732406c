package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByID finds a lead with its tags by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)

	// FindAll finds all leads for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// FindActivities finds a lead's activities, latest deadline first,
	// capped at limit.
	FindActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]Activity, error)

	// FindMessages finds a lead's messages of the given kinds, newest
	// first, capped at limit.
	FindMessages(ctx context.Context, leadID uuid.UUID, kinds []MessageKind, limit int) ([]Message, error)

	// Save creates or updates a lead
	Save(ctx context.Context, lead *Lead) error

	// SaveActivity persists an activity
	SaveActivity(ctx context.Context, activity *Activity) error

	// SaveMessage persists a message
	SaveMessage(ctx context.Context, message *Message) error
}
