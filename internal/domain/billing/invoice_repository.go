package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice with its lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAll finds all invoices for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindRecentByCustomer finds the most recent non-cancelled invoices of
	// a customer, newest first, capped at limit.
	FindRecentByCustomer(ctx context.Context, companyID, customerID uuid.UUID, limit int) ([]Invoice, error)

	// Save creates or updates an invoice with its lines
	Save(ctx context.Context, invoice *Invoice) error

	// Count counts invoices for a company
	Count(ctx context.Context, companyID uuid.UUID) (int64, error)
}
