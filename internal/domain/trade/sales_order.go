package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid returns true if the status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// SalesOrder is a quotation or confirmed order and the aggregate root
// for its lines. AI-generated quotations additionally carry the raw
// generation response and the model's reasoning for audit.
type SalesOrder struct {
	shared.CompanyAggregateRoot
	Number      string               `gorm:"type:varchar(50);not null;index"`
	CustomerID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	OrderDate   *time.Time           `gorm:""`
	ValidUntil  *time.Time           `gorm:""`
	Status      OrderStatus          `gorm:"type:varchar(20);not null;default:'draft'"`
	Currency    valueobject.Currency `gorm:"type:varchar(3)"`
	AmountTotal decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Lines       []OrderLine          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	// AI generation audit trail. Generated marks the order as produced by
	// the estimate pipeline; RawResponse keeps the unmodified service
	// response so a reconciliation can always be re-derived.
	Generated   bool       `gorm:"not null;default:false"`
	RawResponse string     `gorm:"type:text"`
	Reasoning   string     `gorm:"type:text"`
	Notes       string     `gorm:"type:text"`
	LeadID      *uuid.UUID `gorm:"type:uuid;index"`

	RemoteID   string     `gorm:"type:varchar(64);index"`
	Synced     bool       `gorm:"not null;default:false"`
	LastSyncAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// OrderLine is one position on a sales order
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Name      string          `gorm:"type:varchar(500);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"` // percentage
	TaxID     *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Sequence  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "sales_order_lines"
}

// NewSalesOrder creates a draft quotation
func NewSalesOrder(companyID, customerID uuid.UUID, number string) (*SalesOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Order requires a customer")
	}
	now := time.Now()
	return &SalesOrder{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		CustomerID:           customerID,
		OrderDate:            &now,
		Status:               OrderStatusDraft,
	}, nil
}

// AddLine appends a position and refreshes the total. The subtotal
// applies the percentage discount to quantity x unit price.
func (o *SalesOrder) AddLine(name string, quantity, unitPrice, discount decimal.Decimal, productID, taxID *uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("ORDER_LOCKED", "Only draft orders can be modified")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100")
	}

	gross := quantity.Mul(unitPrice)
	subtotal := gross.Sub(gross.Mul(discount).Div(decimal.NewFromInt(100)))

	line := OrderLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Discount:   discount,
		TaxID:      taxID,
		Subtotal:   subtotal,
		Sequence:   len(o.Lines),
	}
	o.Lines = append(o.Lines, line)
	o.recalculate()
	return nil
}

// AttachGeneration records the AI provenance of the quotation
func (o *SalesOrder) AttachGeneration(rawResponse, reasoning, notes string, leadID *uuid.UUID) {
	o.Generated = true
	o.RawResponse = rawResponse
	o.Reasoning = reasoning
	o.Notes = notes
	o.LeadID = leadID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// MarkSent transitions the quotation to sent
func (o *SalesOrder) MarkSent() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be sent")
	}
	o.Status = OrderStatusSent
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Confirm turns the quotation into a confirmed order
func (o *SalesOrder) Confirm() error {
	if o.Status != OrderStatusDraft && o.Status != OrderStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only draft or sent orders can be confirmed")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without lines")
	}
	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Cancel voids the order
func (o *SalesOrder) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Order is already cancelled")
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// MarkSynced records a successful sync; an empty remoteID never clears
// an already-assigned one.
func (o *SalesOrder) MarkSynced(remoteID string, at time.Time) {
	if remoteID != "" {
		o.RemoteID = remoteID
	}
	o.Synced = true
	o.LastSyncAt = &at
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// EffectiveCurrency resolves the order currency with company fallback
func (o *SalesOrder) EffectiveCurrency(companyCurrency valueobject.Currency) valueobject.Currency {
	if o.Currency != "" {
		return o.Currency
	}
	if companyCurrency != "" {
		return companyCurrency
	}
	return valueobject.DefaultCurrency
}

func (o *SalesOrder) recalculate() {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal)
	}
	o.AmountTotal = total
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
