package estimate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aeaevo/loopjet-bridge/internal/domain/catalog"
	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// ProductSyncer pushes one product to the remote catalog
type ProductSyncer interface {
	SyncProduct(ctx context.Context, productID uuid.UUID) error
}

// Reconciler turns a generation result into a local quotation: every
// proposed item is resolved to a catalog product (matching by remote ID,
// then by name, then creating a service product) and taxes are matched
// by exact rate.
type Reconciler struct {
	products catalog.ProductRepository
	orders   trade.SalesOrderRepository
	taxes    trade.TaxRepository
	syncer   ProductSyncer
	logger   *zap.Logger
}

// NewReconciler creates a reconciler. A non-nil syncer enables the
// auto-sync-on-write behavior: products created during reconciliation
// without a remote ID are pushed right away so the next generation can
// match them.
func NewReconciler(products catalog.ProductRepository, orders trade.SalesOrderRepository, taxes trade.TaxRepository, syncer ProductSyncer, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{products: products, orders: orders, taxes: taxes, syncer: syncer, logger: logger}
}

// CreateOrder builds and persists a quotation from the generation result.
// The order and its lines are saved in one call so a partial failure
// never leaves a half-built quotation behind.
func (r *Reconciler) CreateOrder(ctx context.Context, companyID, customerID, leadID uuid.UUID, result *loopjet.GenerationResult) (*trade.SalesOrder, error) {
	number, err := r.orders.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(companyID, customerID, number)
	if err != nil {
		return nil, err
	}
	order.AttachGeneration(result.Raw, result.Reasoning, result.Notes, &leadID)

	for _, item := range result.Items {
		product, err := r.resolveProduct(ctx, companyID, item)
		if err != nil {
			return nil, err
		}

		taxID, err := r.resolveTax(ctx, companyID, item.TaxRate)
		if err != nil {
			return nil, err
		}

		name := item.Description
		if name == "" {
			name = item.Name
		}
		discount := decimal.Zero
		if item.DiscountPercentage != nil {
			discount = *item.DiscountPercentage
		}

		productID := product.ID
		if err := order.AddLine(name, item.Quantity, item.UnitPrice, discount, &productID, taxID); err != nil {
			return nil, err
		}
	}

	if err := r.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	r.logger.Info("created generated quotation",
		zap.String("order", order.Number),
		zap.Int("lines", len(order.Lines)),
	)
	return order, nil
}

// resolveProduct maps a generated item to a catalog product: remote ID
// first, then case-insensitive name, then a new service product carrying
// the remote ID for future matches.
func (r *Reconciler) resolveProduct(ctx context.Context, companyID uuid.UUID, item loopjet.EstimateItem) (*catalog.Product, error) {
	if item.RemoteProductID != "" {
		product, err := r.products.FindByRemoteID(ctx, companyID, item.RemoteProductID)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if item.Name != "" {
		product, err := r.products.FindByNameInsensitive(ctx, companyID, item.Name)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(companyID, item.Name, catalog.ProductKindService, item.UnitPrice)
	if err != nil {
		return nil, err
	}
	product.Description = item.Description
	product.RemoteID = item.RemoteProductID
	if err := r.products.Save(ctx, product); err != nil {
		return nil, err
	}
	r.logger.Info("created product from generated item", zap.String("product", product.Name))

	if r.syncer != nil && product.RemoteID == "" {
		if err := r.syncer.SyncProduct(ctx, product.ID); err != nil {
			r.logger.Warn("auto sync of created product failed",
				zap.String("product", product.Name),
				zap.Error(err),
			)
		}
	}
	return product, nil
}

// resolveTax matches a proposed tax rate against the company's sale
// taxes. No rate or no match leaves the line untaxed.
func (r *Reconciler) resolveTax(ctx context.Context, companyID uuid.UUID, rate *decimal.Decimal) (*uuid.UUID, error) {
	if rate == nil || !rate.IsPositive() {
		return nil, nil
	}
	tax, err := r.taxes.FindSaleTaxByRate(ctx, companyID, *rate)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	taxID := tax.ID
	return &taxID, nil
}
