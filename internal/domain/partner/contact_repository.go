package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByRemoteID finds a contact carrying the given Loopjet ID
	FindByRemoteID(ctx context.Context, companyID uuid.UUID, remoteID string) (*Contact, error)

	// FindCustomers finds all customer-ranked contacts for a company
	FindCustomers(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Contact, error)

	// FindAll finds all contacts for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// SaveBatch creates or updates multiple contacts
	SaveBatch(ctx context.Context, contacts []*Contact) error

	// Count counts contacts for a company
	Count(ctx context.Context, companyID uuid.UUID) (int64, error)
}
