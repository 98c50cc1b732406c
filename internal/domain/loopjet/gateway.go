package loopjet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Resource kinds
// ---------------------------------------------------------------------------

// ResourceKind identifies a remote collection addressable by the batch API
type ResourceKind string

const (
	ResourceProducts  ResourceKind = "products"
	ResourceContacts  ResourceKind = "contacts"
	ResourceInvoices  ResourceKind = "invoices"
	ResourceEstimates ResourceKind = "estimates"
)

// IsValid returns true if the resource kind is valid
func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceProducts, ResourceContacts, ResourceInvoices, ResourceEstimates:
		return true
	default:
		return false
	}
}

// String returns the string representation of ResourceKind
func (k ResourceKind) String() string {
	return string(k)
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// RemoteProduct is the wire shape of a catalog product. Prices travel as
// decimals so the JSON carries the exact value, never a binary-float artifact.
type RemoteProduct struct {
	// RemoteID is the Loopjet UUID, empty until the first sync assigns one
	RemoteID    string
	Name        string
	Description string
	IsService   bool
	Price       decimal.Decimal
	Currency    string
	Unit        string
}

// ContactKind distinguishes customers from vendors on the remote side
type ContactKind string

const (
	ContactKindCustomer ContactKind = "customer"
	ContactKindVendor   ContactKind = "vendor"
)

// RemoteContact is the wire shape of a contact. Optional fields are
// pointers: a nil field is omitted from the payload entirely so a sync
// never overwrites remote data with blanks.
type RemoteContact struct {
	RemoteID     string
	Name         string
	Email        *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
	Company      *string
	TaxID        *string
	Website      *string
	Notes        *string
	Kind         ContactKind
}

// DocumentStatus is the remote status of an invoice or estimate
type DocumentStatus string

const (
	DocumentStatusDraft DocumentStatus = "draft"
	DocumentStatusSent  DocumentStatus = "sent"
)

// DocumentItem is a line item on a remote invoice or estimate
type DocumentItem struct {
	Name        string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Unit        string
	Currency    string
}

// CustomerSnapshot is the minimal customer identity embedded in documents
type CustomerSnapshot struct {
	Name  string
	Email string
	Phone string
}

// RemoteDocument is the wire shape of an invoice or quotation header plus
// its ordered line items.
type RemoteDocument struct {
	RemoteID   string
	Number     string
	Customer   CustomerSnapshot
	IssueDate  *time.Time
	DueDate    *time.Time // invoices
	ValidUntil *time.Time // estimates
	Status     DocumentStatus
	Items      []DocumentItem
	Subtotal   decimal.Decimal
	TotalTax   decimal.Decimal
	Total      decimal.Decimal
	ExternalID string
}

// BatchOutcome aggregates per-item results of a collection batch call.
// A failed transport or non-success response marks the whole batch failed.
type BatchOutcome struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Succeeded returns the number of items accepted by the remote side
func (o BatchOutcome) Succeeded() int {
	return o.Created + o.Updated
}

// ---------------------------------------------------------------------------
// Generation request/response
// ---------------------------------------------------------------------------

// GenerationRequest is the input to the AI estimate-generation endpoint
type GenerationRequest struct {
	// UserInput is the extracted deal context, with any additional
	// instructions already appended by the orchestrator
	UserInput    string
	CustomerName string
	// CustomerContact is the customer snapshot sent alongside the text
	CustomerContact *RemoteContact
	// AllowNewItems permits the AI to invent items outside the synced catalog
	AllowNewItems bool
	// AutoSave would persist the estimate remotely; the local side owns
	// persistence, so the orchestrator always sends false
	AutoSave bool
}

// EstimateItem is one proposed line in a generation result
type EstimateItem struct {
	RemoteItemID       string           `json:"id,omitempty"`
	RemoteProductID    string           `json:"product_id,omitempty"`
	Name               string           `json:"name"`
	Description        string           `json:"description,omitempty"`
	Quantity           decimal.Decimal  `json:"quantity"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	TaxRate            *decimal.Decimal `json:"tax_rate,omitempty"`
}

// LineTotal returns quantity x unit price for preview rendering
func (i EstimateItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// GenerationResult is the parsed AI response
type GenerationResult struct {
	Reasoning string         `json:"reasoning"`
	Items     []EstimateItem `json:"items"`
	Notes     string         `json:"notes,omitempty"`
	// Raw preserves the exact response body for audit storage on the order
	Raw string `json:"-"`
}

// ---------------------------------------------------------------------------
// Gateway port
// ---------------------------------------------------------------------------

// Gateway is the port to the Loopjet service. The HTTP adapter in the
// infrastructure layer is the only implementation; tests substitute mocks.
type Gateway interface {
	// CreateProduct creates a product remotely and returns its remote ID
	CreateProduct(ctx context.Context, p RemoteProduct) (string, error)
	// UpdateProduct updates the product identified by p.RemoteID
	UpdateProduct(ctx context.Context, p RemoteProduct) (string, error)

	// CreateContact creates a contact remotely and returns its remote ID
	CreateContact(ctx context.Context, c RemoteContact) (string, error)
	// UpdateContact updates the contact identified by c.RemoteID
	UpdateContact(ctx context.Context, c RemoteContact) (string, error)

	// CreateInvoice creates an invoice remotely and returns its remote ID
	CreateInvoice(ctx context.Context, d RemoteDocument) (string, error)
	// UpdateInvoice updates the invoice identified by d.RemoteID
	UpdateInvoice(ctx context.Context, d RemoteDocument) (string, error)

	// BatchProducts upserts a product collection in one call
	BatchProducts(ctx context.Context, products []RemoteProduct, upsert bool) (BatchOutcome, error)
	// BatchContacts upserts a contact collection in one call
	BatchContacts(ctx context.Context, contacts []RemoteContact, upsert bool) (BatchOutcome, error)
	// BatchInvoices syncs an invoice collection in one call
	BatchInvoices(ctx context.Context, invoices []RemoteDocument) (BatchOutcome, error)
	// BatchEstimates syncs a quotation collection in one call
	BatchEstimates(ctx context.Context, estimates []RemoteDocument) (BatchOutcome, error)

	// GenerateEstimate runs the AI generation call. Model inference is slow;
	// the adapter applies its extended timeout to this call only.
	GenerateEstimate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}
