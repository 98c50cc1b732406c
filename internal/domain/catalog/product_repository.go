package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByRemoteID finds a product carrying the given Loopjet ID
	FindByRemoteID(ctx context.Context, companyID uuid.UUID, remoteID string) (*Product, error)

	// FindByNameInsensitive finds a product by exact case-insensitive name
	FindByNameInsensitive(ctx context.Context, companyID uuid.UUID, name string) (*Product, error)

	// FindSellable finds all sellable products for a company
	FindSellable(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveBatch creates or updates multiple products
	SaveBatch(ctx context.Context, products []*Product) error

	// Count counts sellable products for a company
	Count(ctx context.Context, companyID uuid.UUID) (int64, error)
}
