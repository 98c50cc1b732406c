package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aeaevo/loopjet-bridge/internal/domain/billing"
	"github.com/aeaevo/loopjet-bridge/internal/domain/catalog"
	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/partner"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// batchSyncLimit caps how many documents one batch sync submits
const batchSyncLimit = 100

// recentDocumentLimit caps the per-customer document sync that precedes
// estimate generation; only the latest history is relevant context.
const recentDocumentLimit = 10

// Service pushes local records to the Loopjet catalog, single records on
// change and full collections on demand.
type Service struct {
	products catalog.ProductRepository
	contacts partner.ContactRepository
	invoices billing.InvoiceRepository
	orders   trade.SalesOrderRepository
	gateway  loopjet.Gateway
	logger   *zap.Logger

	companyCurrency valueobject.Currency
	unitFallback    string
}

// NewService creates a sync service
func NewService(
	products catalog.ProductRepository,
	contacts partner.ContactRepository,
	invoices billing.InvoiceRepository,
	orders trade.SalesOrderRepository,
	gateway loopjet.Gateway,
	logger *zap.Logger,
	companyCurrency valueobject.Currency,
	unitFallback string,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if companyCurrency == "" {
		companyCurrency = valueobject.DefaultCurrency
	}
	if unitFallback == "" {
		unitFallback = "unit"
	}
	return &Service{
		products:        products,
		contacts:        contacts,
		invoices:        invoices,
		orders:          orders,
		gateway:         gateway,
		logger:          logger,
		companyCurrency: companyCurrency,
		unitFallback:    unitFallback,
	}
}

// ---------------------------------------------------------------------------
// Collection sync
// ---------------------------------------------------------------------------

// SyncAllProducts batch-upserts every sellable product. Batch calls do
// not return per-record IDs, so local sync metadata is left untouched.
func (s *Service) SyncAllProducts(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error) {
	products, err := s.products.FindSellable(ctx, companyID, shared.Filter{Limit: batchSyncLimit})
	if err != nil {
		return loopjet.BatchOutcome{}, err
	}

	remotes := make([]loopjet.RemoteProduct, 0, len(products))
	for i := range products {
		remotes = append(remotes, toRemoteProduct(&products[i], s.companyCurrency, s.unitFallback))
	}

	outcome, err := s.gateway.BatchProducts(ctx, remotes, true)
	s.logBatch("products", outcome, err)
	return outcome, err
}

// SyncAllContacts batch-upserts every customer- or supplier-ranked contact
func (s *Service) SyncAllContacts(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error) {
	contacts, err := s.contacts.FindAll(ctx, companyID, shared.Filter{Limit: batchSyncLimit})
	if err != nil {
		return loopjet.BatchOutcome{}, err
	}

	remotes := make([]loopjet.RemoteContact, 0, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		if !c.IsCustomer() && !c.IsSupplier() {
			continue
		}
		remotes = append(remotes, toRemoteContact(c))
	}

	outcome, err := s.gateway.BatchContacts(ctx, remotes, true)
	s.logBatch("contacts", outcome, err)
	return outcome, err
}

// SyncAllInvoices batch-syncs non-cancelled customer invoices
func (s *Service) SyncAllInvoices(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error) {
	invoices, err := s.invoices.FindAll(ctx, companyID, shared.Filter{Limit: batchSyncLimit, OrderBy: "created_at", OrderDir: "desc"})
	if err != nil {
		return loopjet.BatchOutcome{}, err
	}

	remotes := make([]loopjet.RemoteDocument, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status == billing.InvoiceStatusCancelled {
			continue
		}
		customer, err := s.contacts.FindByID(ctx, inv.CustomerID)
		if err != nil {
			customer = nil
		}
		remotes = append(remotes, toRemoteInvoice(inv, customer, s.companyCurrency, s.unitFallback))
	}

	outcome, err := s.gateway.BatchInvoices(ctx, remotes)
	s.logBatch("invoices", outcome, err)
	return outcome, err
}

// SyncAllQuotations batch-syncs draft and sent sales orders as estimates
func (s *Service) SyncAllQuotations(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error) {
	orders, err := s.orders.FindAll(ctx, companyID, shared.Filter{Limit: batchSyncLimit, OrderBy: "created_at", OrderDir: "desc"})
	if err != nil {
		return loopjet.BatchOutcome{}, err
	}

	remotes := make([]loopjet.RemoteDocument, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if o.Status != trade.OrderStatusDraft && o.Status != trade.OrderStatusSent {
			continue
		}
		customer, err := s.contacts.FindByID(ctx, o.CustomerID)
		if err != nil {
			customer = nil
		}
		remotes = append(remotes, toRemoteEstimate(o, customer, s.companyCurrency, s.unitFallback))
	}

	outcome, err := s.gateway.BatchEstimates(ctx, remotes)
	s.logBatch("estimates", outcome, err)
	return outcome, err
}

// SyncRecentCustomerDocuments pushes a customer's latest invoices and
// quotations so the generation model sees current pricing history. Used
// as a best-effort warm-up before estimate generation.
func (s *Service) SyncRecentCustomerDocuments(ctx context.Context, companyID, customerID uuid.UUID) error {
	customer, err := s.contacts.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	invoices, err := s.invoices.FindRecentByCustomer(ctx, companyID, customerID, recentDocumentLimit)
	if err != nil {
		return err
	}
	if len(invoices) > 0 {
		docs := make([]loopjet.RemoteDocument, 0, len(invoices))
		for i := range invoices {
			docs = append(docs, toRemoteInvoice(&invoices[i], customer, s.companyCurrency, s.unitFallback))
		}
		if _, err := s.gateway.BatchInvoices(ctx, docs); err != nil {
			return err
		}
	}

	orders, err := s.orders.FindRecentByCustomer(ctx, companyID, customerID, recentDocumentLimit)
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		docs := make([]loopjet.RemoteDocument, 0, len(orders))
		for i := range orders {
			docs = append(docs, toRemoteEstimate(&orders[i], customer, s.companyCurrency, s.unitFallback))
		}
		if _, err := s.gateway.BatchEstimates(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Single-record sync
// ---------------------------------------------------------------------------

// SyncProduct pushes one product, creating or updating depending on
// whether a remote ID is already assigned, and persists the sync result.
func (s *Service) SyncProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	remote := toRemoteProduct(product, s.companyCurrency, s.unitFallback)
	remoteID, err := s.push(ctx, remote.RemoteID,
		func() (string, error) { return s.gateway.CreateProduct(ctx, remote) },
		func() (string, error) { return s.gateway.UpdateProduct(ctx, remote) },
	)
	if err != nil {
		s.logger.Error("product sync failed", zap.String("product", product.Name), zap.Error(err))
		return err
	}

	product.MarkSynced(remoteID, time.Now())
	if err := s.products.Save(ctx, product); err != nil {
		return err
	}
	s.logger.Info("product synced", zap.String("product", product.Name), zap.String("remote_id", product.RemoteID))
	return nil
}

// SyncContact pushes one contact and persists the sync result
func (s *Service) SyncContact(ctx context.Context, contactID uuid.UUID) error {
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return err
	}

	remote := toRemoteContact(contact)
	remoteID, err := s.push(ctx, remote.RemoteID,
		func() (string, error) { return s.gateway.CreateContact(ctx, remote) },
		func() (string, error) { return s.gateway.UpdateContact(ctx, remote) },
	)
	if err != nil {
		s.logger.Error("contact sync failed", zap.String("contact", contact.Name), zap.Error(err))
		return err
	}

	contact.MarkSynced(remoteID, time.Now())
	if err := s.contacts.Save(ctx, contact); err != nil {
		return err
	}
	s.logger.Info("contact synced", zap.String("contact", contact.Name), zap.String("remote_id", contact.RemoteID))
	return nil
}

// SyncInvoice pushes one invoice and persists the sync result. Cancelled
// invoices never sync.
func (s *Service) SyncInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status == billing.InvoiceStatusCancelled {
		return shared.NewDomainError("INVOICE_CANCELLED", "Cancelled invoices are not synced")
	}

	customer, err := s.contacts.FindByID(ctx, invoice.CustomerID)
	if err != nil {
		customer = nil
	}

	remote := toRemoteInvoice(invoice, customer, s.companyCurrency, s.unitFallback)
	remoteID, err := s.push(ctx, remote.RemoteID,
		func() (string, error) { return s.gateway.CreateInvoice(ctx, remote) },
		func() (string, error) { return s.gateway.UpdateInvoice(ctx, remote) },
	)
	if err != nil {
		s.logger.Error("invoice sync failed", zap.String("invoice", invoice.Number), zap.Error(err))
		return err
	}

	invoice.MarkSynced(remoteID, time.Now())
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return err
	}
	s.logger.Info("invoice synced", zap.String("invoice", invoice.Number), zap.String("remote_id", invoice.RemoteID))
	return nil
}

// push routes a record to create or update based on prior sync state
func (s *Service) push(_ context.Context, remoteID string, create, update func() (string, error)) (string, error) {
	if remoteID == "" {
		return create()
	}
	return update()
}

func (s *Service) logBatch(kind string, outcome loopjet.BatchOutcome, err error) {
	if err != nil {
		s.logger.Error("batch sync failed",
			zap.String("kind", kind),
			zap.Int("failed", outcome.Failed),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("batch sync completed",
		zap.String("kind", kind),
		zap.Int("created", outcome.Created),
		zap.Int("updated", outcome.Updated),
		zap.Int("failed", outcome.Failed),
	)
}
