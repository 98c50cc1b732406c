package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds an order with its lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindAll finds all orders for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)

	// FindRecentByCustomer finds the most recent non-cancelled orders of a
	// customer, newest first, capped at limit.
	FindRecentByCustomer(ctx context.Context, companyID, customerID uuid.UUID, limit int) ([]SalesOrder, error)

	// Save creates or updates an order with its lines atomically
	Save(ctx context.Context, order *SalesOrder) error

	// NextNumber returns the next order number in sequence
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// Count counts orders for a company
	Count(ctx context.Context, companyID uuid.UUID) (int64, error)
}

// TaxRepository defines the interface for tax persistence
type TaxRepository interface {
	// FindByID finds a tax by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tax, error)

	// FindSaleTaxByRate finds an active sale tax with the exact rate,
	// scoped to the company. Returns shared.ErrNotFound when no tax
	// matches.
	FindSaleTaxByRate(ctx context.Context, companyID uuid.UUID, rate decimal.Decimal) (*Tax, error)

	// Save creates or updates a tax
	Save(ctx context.Context, tax *Tax) error
}
