package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPosted    InvoiceStatus = "posted"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid returns true if the status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPosted, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}

// Invoice is a customer invoice and the aggregate root for its lines
type Invoice struct {
	shared.CompanyAggregateRoot
	Number        string               `gorm:"type:varchar(50);not null;index"`
	CustomerID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	InvoiceDate   *time.Time           `gorm:""`
	DueDate       *time.Time           `gorm:""`
	Status        InvoiceStatus        `gorm:"type:varchar(20);not null;default:'draft'"`
	Currency      valueobject.Currency `gorm:"type:varchar(3)"`
	AmountUntaxed decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTax     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTotal   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Lines         []InvoiceLine        `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	RemoteID   string     `gorm:"type:varchar(64);index"`
	Synced     bool       `gorm:"not null;default:false"`
	LastSyncAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLine is one billed position on an invoice
type InvoiceLine struct {
	shared.BaseEntity
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Name      string          `gorm:"type:varchar(500);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit      string          `gorm:"type:varchar(20)"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// NewInvoice creates a draft invoice
func NewInvoice(companyID, customerID uuid.UUID, number string) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Invoice requires a customer")
	}
	return &Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		CustomerID:           customerID,
		Status:               InvoiceStatusDraft,
	}, nil
}

// AddLine appends a billed position and refreshes the totals
func (inv *Invoice) AddLine(name string, quantity, unitPrice decimal.Decimal, productID *uuid.UUID) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVOICE_LOCKED", "Only draft invoices can be modified")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	line := InvoiceLine{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  inv.ID,
		ProductID:  productID,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   quantity.Mul(unitPrice),
	}
	inv.Lines = append(inv.Lines, line)
	inv.recalculate()
	return nil
}

// Post finalizes the invoice
func (inv *Invoice) Post() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be posted")
	}
	if len(inv.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Cannot post an invoice without lines")
	}
	inv.Status = InvoiceStatusPosted
	now := time.Now()
	if inv.InvoiceDate == nil {
		inv.InvoiceDate = &now
	}
	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// Cancel voids the invoice
func (inv *Invoice) Cancel() error {
	if inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Invoice is already cancelled")
	}
	inv.Status = InvoiceStatusCancelled
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// IsPosted returns true if the invoice is posted
func (inv *Invoice) IsPosted() bool {
	return inv.Status == InvoiceStatusPosted
}

// MarkSynced records a successful sync; an empty remoteID never clears
// an already-assigned one.
func (inv *Invoice) MarkSynced(remoteID string, at time.Time) {
	if remoteID != "" {
		inv.RemoteID = remoteID
	}
	inv.Synced = true
	inv.LastSyncAt = &at
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// EffectiveCurrency resolves the invoice currency with company fallback
func (inv *Invoice) EffectiveCurrency(companyCurrency valueobject.Currency) valueobject.Currency {
	if inv.Currency != "" {
		return inv.Currency
	}
	if companyCurrency != "" {
		return companyCurrency
	}
	return valueobject.DefaultCurrency
}

func (inv *Invoice) recalculate() {
	subtotal := decimal.Zero
	for _, l := range inv.Lines {
		subtotal = subtotal.Add(l.Subtotal)
	}
	inv.AmountUntaxed = subtotal
	inv.AmountTotal = subtotal.Add(inv.AmountTax)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}
