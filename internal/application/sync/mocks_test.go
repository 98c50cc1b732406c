package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aeaevo/loopjet-bridge/internal/domain/billing"
	"github.com/aeaevo/loopjet-bridge/internal/domain/catalog"
	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/partner"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// MockGateway is a mock implementation of loopjet.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateProduct(ctx context.Context, p loopjet.RemoteProduct) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) UpdateProduct(ctx context.Context, p loopjet.RemoteProduct) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreateContact(ctx context.Context, c loopjet.RemoteContact) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) UpdateContact(ctx context.Context, c loopjet.RemoteContact) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreateInvoice(ctx context.Context, d loopjet.RemoteDocument) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) UpdateInvoice(ctx context.Context, d loopjet.RemoteDocument) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) BatchProducts(ctx context.Context, products []loopjet.RemoteProduct, upsert bool) (loopjet.BatchOutcome, error) {
	args := m.Called(ctx, products, upsert)
	return args.Get(0).(loopjet.BatchOutcome), args.Error(1)
}

func (m *MockGateway) BatchContacts(ctx context.Context, contacts []loopjet.RemoteContact, upsert bool) (loopjet.BatchOutcome, error) {
	args := m.Called(ctx, contacts, upsert)
	return args.Get(0).(loopjet.BatchOutcome), args.Error(1)
}

func (m *MockGateway) BatchInvoices(ctx context.Context, invoices []loopjet.RemoteDocument) (loopjet.BatchOutcome, error) {
	args := m.Called(ctx, invoices)
	return args.Get(0).(loopjet.BatchOutcome), args.Error(1)
}

func (m *MockGateway) BatchEstimates(ctx context.Context, estimates []loopjet.RemoteDocument) (loopjet.BatchOutcome, error) {
	args := m.Called(ctx, estimates)
	return args.Get(0).(loopjet.BatchOutcome), args.Error(1)
}

func (m *MockGateway) GenerateEstimate(ctx context.Context, req loopjet.GenerationRequest) (*loopjet.GenerationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loopjet.GenerationResult), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByRemoteID(ctx context.Context, companyID uuid.UUID, remoteID string) (*catalog.Product, error) {
	args := m.Called(ctx, companyID, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByNameInsensitive(ctx context.Context, companyID uuid.UUID, name string) (*catalog.Product, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindSellable(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockContactRepository is a mock implementation of partner.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByRemoteID(ctx context.Context, companyID uuid.UUID, remoteID string) (*partner.Contact, error) {
	args := m.Called(ctx, companyID, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindCustomers(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Contact, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Contact, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) SaveBatch(ctx context.Context, contacts []*partner.Contact) error {
	args := m.Called(ctx, contacts)
	return args.Error(0)
}

func (m *MockContactRepository) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindRecentByCustomer(ctx context.Context, companyID, customerID uuid.UUID, limit int) ([]billing.Invoice, error) {
	args := m.Called(ctx, companyID, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindRecentByCustomer(ctx context.Context, companyID, customerID uuid.UUID, limit int) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}
