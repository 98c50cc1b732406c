package estimate

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/aeaevo/loopjet-bridge/internal/domain/catalog"
	"github.com/aeaevo/loopjet-bridge/internal/domain/crm"
	domainestimate "github.com/aeaevo/loopjet-bridge/internal/domain/estimate"
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

// MockSessionRepository is a mock implementation of estimate.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainestimate.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainestimate.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByLead(ctx context.Context, leadID uuid.UUID, filter shared.Filter) ([]domainestimate.Session, error) {
	args := m.Called(ctx, leadID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainestimate.Session), args.Error(1)
}

func (m *MockSessionRepository) CountGeneratedByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domainestimate.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// MockLeadRepository is a mock implementation of crm.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]crm.Lead, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindActivities(ctx context.Context, leadID uuid.UUID, limit int) ([]crm.Activity, error) {
	args := m.Called(ctx, leadID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Activity), args.Error(1)
}

func (m *MockLeadRepository) FindMessages(ctx context.Context, leadID uuid.UUID, kinds []crm.MessageKind, limit int) ([]crm.Message, error) {
	args := m.Called(ctx, leadID, kinds, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Message), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) SaveActivity(ctx context.Context, activity *crm.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockLeadRepository) SaveMessage(ctx context.Context, message *crm.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
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

// MockTaxRepository is a mock implementation of trade.TaxRepository
type MockTaxRepository struct {
	mock.Mock
}

func (m *MockTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Tax, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindSaleTaxByRate(ctx context.Context, companyID uuid.UUID, rate decimal.Decimal) (*trade.Tax, error) {
	args := m.Called(ctx, companyID, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Tax), args.Error(1)
}

func (m *MockTaxRepository) Save(ctx context.Context, tax *trade.Tax) error {
	args := m.Called(ctx, tax)
	return args.Error(0)
}

// MockNotifier is a mock implementation of shared.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID uuid.UUID, n shared.Notification) {
	m.Called(ctx, userID, n)
}

// MockSyncer is a mock implementation of DocumentSyncer
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) SyncAllProducts(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(loopjet.BatchOutcome), args.Error(1)
}

func (m *MockSyncer) SyncContact(ctx context.Context, contactID uuid.UUID) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

func (m *MockSyncer) SyncRecentCustomerDocuments(ctx context.Context, companyID, customerID uuid.UUID) error {
	args := m.Called(ctx, companyID, customerID)
	return args.Error(0)
}

// MockProductSyncer is a mock implementation of ProductSyncer
type MockProductSyncer struct {
	mock.Mock
}

func (m *MockProductSyncer) SyncProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}
