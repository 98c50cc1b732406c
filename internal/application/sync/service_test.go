package sync

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aeaevo/loopjet-bridge/internal/domain/billing"
	"github.com/aeaevo/loopjet-bridge/internal/domain/catalog"
	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/partner"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

type serviceFixture struct {
	products *MockProductRepository
	contacts *MockContactRepository
	invoices *MockInvoiceRepository
	orders   *MockSalesOrderRepository
	gateway  *MockGateway
	service  *Service
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		products: new(MockProductRepository),
		contacts: new(MockContactRepository),
		invoices: new(MockInvoiceRepository),
		orders:   new(MockSalesOrderRepository),
		gateway:  new(MockGateway),
	}
	f.service = NewService(f.products, f.contacts, f.invoices, f.orders, f.gateway, zap.NewNop(), valueobject.EUR, "unit")
	return f
}

func TestSyncAllProducts_UpsertsWithFallbacks(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()

	p1, err := catalog.NewProduct(companyID, "Widget", catalog.ProductKindGood, decimal.NewFromInt(10))
	require.NoError(t, err)
	p2, err := catalog.NewProduct(companyID, "Consulting", catalog.ProductKindService, decimal.NewFromInt(120))
	require.NoError(t, err)
	p2.Currency = valueobject.USD
	p2.Unit = "hour"

	f.products.On("FindSellable", mock.Anything, companyID, mock.Anything).Return([]catalog.Product{*p1, *p2}, nil)
	f.gateway.On("BatchProducts", mock.Anything, mock.MatchedBy(func(remotes []loopjet.RemoteProduct) bool {
		return len(remotes) == 2 &&
			remotes[0].Currency == "EUR" && remotes[0].Unit == "unit" && !remotes[0].IsService &&
			remotes[1].Currency == "USD" && remotes[1].Unit == "hour" && remotes[1].IsService
	}), true).Return(loopjet.BatchOutcome{Created: 2}, nil)

	outcome, err := f.service.SyncAllProducts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Created)
	f.gateway.AssertExpectations(t)
}

func TestSyncAllContacts_SkipsUnranked(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()

	ranked, err := partner.NewContact(companyID, "Acme GmbH")
	require.NoError(t, err)
	ranked.PromoteCustomer()

	unranked, err := partner.NewContact(companyID, "Nobody")
	require.NoError(t, err)

	f.contacts.On("FindAll", mock.Anything, companyID, mock.Anything).Return([]partner.Contact{*ranked, *unranked}, nil)
	f.gateway.On("BatchContacts", mock.Anything, mock.MatchedBy(func(remotes []loopjet.RemoteContact) bool {
		return len(remotes) == 1 && remotes[0].Name == "Acme GmbH" && remotes[0].Kind == loopjet.ContactKindCustomer
	}), true).Return(loopjet.BatchOutcome{Created: 1}, nil)

	outcome, err := f.service.SyncAllContacts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Created)
	f.gateway.AssertExpectations(t)
}

func TestSyncAllInvoices_SkipsCancelled(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()
	customerID := uuid.New()

	open, err := billing.NewInvoice(companyID, customerID, "INV/1")
	require.NoError(t, err)
	require.NoError(t, open.AddLine("Work", decimal.NewFromInt(1), decimal.NewFromInt(100), nil))
	require.NoError(t, open.Post())

	cancelled, err := billing.NewInvoice(companyID, customerID, "INV/2")
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel())

	customer, err := partner.NewContact(companyID, "Acme GmbH")
	require.NoError(t, err)

	f.invoices.On("FindAll", mock.Anything, companyID, mock.Anything).Return([]billing.Invoice{*open, *cancelled}, nil)
	f.contacts.On("FindByID", mock.Anything, customerID).Return(customer, nil)
	f.gateway.On("BatchInvoices", mock.Anything, mock.MatchedBy(func(docs []loopjet.RemoteDocument) bool {
		return len(docs) == 1 && docs[0].Number == "INV/1" && docs[0].Status == loopjet.DocumentStatusSent
	})).Return(loopjet.BatchOutcome{Created: 1}, nil)

	_, err = f.service.SyncAllInvoices(context.Background(), companyID)
	require.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestSyncAllQuotations_OnlyDraftAndSent(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()
	customerID := uuid.New()

	draft, err := trade.NewSalesOrder(companyID, customerID, "S001")
	require.NoError(t, err)
	require.NoError(t, draft.AddLine("Design", decimal.NewFromInt(2), decimal.NewFromInt(50), decimal.Zero, nil, nil))

	confirmed, err := trade.NewSalesOrder(companyID, customerID, "S002")
	require.NoError(t, err)
	require.NoError(t, confirmed.AddLine("Work", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, nil, nil))
	require.NoError(t, confirmed.Confirm())

	customer, err := partner.NewContact(companyID, "Acme GmbH")
	require.NoError(t, err)

	f.orders.On("FindAll", mock.Anything, companyID, mock.Anything).Return([]trade.SalesOrder{*draft, *confirmed}, nil)
	f.contacts.On("FindByID", mock.Anything, customerID).Return(customer, nil)
	f.gateway.On("BatchEstimates", mock.Anything, mock.MatchedBy(func(docs []loopjet.RemoteDocument) bool {
		// quotations are pre-tax: subtotal mirrors the total, tax stays zero
		return len(docs) == 1 && docs[0].Number == "S001" && docs[0].Status == loopjet.DocumentStatusDraft &&
			docs[0].Subtotal.Equal(docs[0].Total) &&
			docs[0].Total.Equal(decimal.NewFromInt(100)) &&
			docs[0].TotalTax.IsZero()
	})).Return(loopjet.BatchOutcome{Created: 1}, nil)

	_, err = f.service.SyncAllQuotations(context.Background(), companyID)
	require.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestSyncProduct_CreateThenUpdate(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()

	product, err := catalog.NewProduct(companyID, "Widget", catalog.ProductKindGood, decimal.NewFromInt(10))
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)
	f.gateway.On("CreateProduct", mock.Anything, mock.MatchedBy(func(r loopjet.RemoteProduct) bool {
		return r.RemoteID == ""
	})).Return("lj-p-1", nil).Once()

	require.NoError(t, f.service.SyncProduct(context.Background(), product.ID))
	assert.Equal(t, "lj-p-1", product.RemoteID)
	assert.True(t, product.Synced)

	// second sync goes through the update path with the assigned remote ID
	f.gateway.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(r loopjet.RemoteProduct) bool {
		return r.RemoteID == "lj-p-1"
	})).Return("lj-p-1", nil).Once()

	require.NoError(t, f.service.SyncProduct(context.Background(), product.ID))
	assert.Equal(t, "lj-p-1", product.RemoteID)
	f.gateway.AssertExpectations(t)
}

func TestSyncProduct_FailureKeepsLocalState(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()

	product, err := catalog.NewProduct(companyID, "Widget", catalog.ProductKindGood, decimal.NewFromInt(10))
	require.NoError(t, err)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.gateway.On("CreateProduct", mock.Anything, mock.Anything).Return("", loopjet.ErrServiceUnavailable)

	err = f.service.SyncProduct(context.Background(), product.ID)
	assert.ErrorIs(t, err, loopjet.ErrServiceUnavailable)
	assert.False(t, product.Synced)
	f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSyncContact_DropsBlankFields(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()

	contact, err := partner.NewContact(companyID, "Acme GmbH")
	require.NoError(t, err)
	contact.Email = "info@acme.example"
	contact.PromoteCustomer()

	f.contacts.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)
	f.contacts.On("Save", mock.Anything, contact).Return(nil)
	f.gateway.On("CreateContact", mock.Anything, mock.MatchedBy(func(r loopjet.RemoteContact) bool {
		return r.Email != nil && *r.Email == "info@acme.example" &&
			r.Phone == nil && r.Website == nil &&
			r.Kind == loopjet.ContactKindCustomer
	})).Return("lj-c-1", nil)

	require.NoError(t, f.service.SyncContact(context.Background(), contact.ID))
	assert.Equal(t, "lj-c-1", contact.RemoteID)
	f.gateway.AssertExpectations(t)
}

func TestSyncInvoice_RejectsCancelled(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()

	invoice, err := billing.NewInvoice(companyID, uuid.New(), "INV/1")
	require.NoError(t, err)
	require.NoError(t, invoice.Cancel())

	f.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)

	err = f.service.SyncInvoice(context.Background(), invoice.ID)
	assert.Error(t, err)
	f.gateway.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
}

func TestSyncRecentCustomerDocuments(t *testing.T) {
	f := newFixture()
	companyID := uuid.New()
	customerID := uuid.New()

	customer, err := partner.NewContact(companyID, "Acme GmbH")
	require.NoError(t, err)

	invoice, err := billing.NewInvoice(companyID, customerID, "INV/1")
	require.NoError(t, err)
	order, err := trade.NewSalesOrder(companyID, customerID, "S001")
	require.NoError(t, err)

	f.contacts.On("FindByID", mock.Anything, customerID).Return(customer, nil)
	f.invoices.On("FindRecentByCustomer", mock.Anything, companyID, customerID, recentDocumentLimit).Return([]billing.Invoice{*invoice}, nil)
	f.orders.On("FindRecentByCustomer", mock.Anything, companyID, customerID, recentDocumentLimit).Return([]trade.SalesOrder{*order}, nil)
	f.gateway.On("BatchInvoices", mock.Anything, mock.Anything).Return(loopjet.BatchOutcome{Created: 1}, nil)
	f.gateway.On("BatchEstimates", mock.Anything, mock.Anything).Return(loopjet.BatchOutcome{Created: 1}, nil)

	require.NoError(t, f.service.SyncRecentCustomerDocuments(context.Background(), companyID, customerID))
	f.gateway.AssertExpectations(t)
}
