package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
)

// ProductKind distinguishes physical goods from services
type ProductKind string

const (
	ProductKindGood    ProductKind = "good"
	ProductKindService ProductKind = "service"
)

// IsValid returns true if the product kind is valid
func (k ProductKind) IsValid() bool {
	return k == ProductKindGood || k == ProductKindService
}

// Product is a sellable catalog item and the aggregate root for
// product-related operations. Sync metadata records its relationship
// to the remote Loopjet catalog.
type Product struct {
	shared.CompanyAggregateRoot
	Name        string               `gorm:"type:varchar(200);not null;index"`
	Description string               `gorm:"type:text"`
	Kind        ProductKind          `gorm:"type:varchar(20);not null;default:'good'"`
	ListPrice   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    valueobject.Currency `gorm:"type:varchar(3)"`
	Unit        string               `gorm:"type:varchar(20)"`
	Sellable    bool                 `gorm:"not null;default:true"`

	// RemoteID is the Loopjet-assigned identifier. Once set it is never
	// cleared, even when a later sync fails.
	RemoteID   string     `gorm:"type:varchar(64);index"`
	Synced     bool       `gorm:"not null;default:false"`
	LastSyncAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a sellable product
func NewProduct(companyID uuid.UUID, name string, kind ProductKind, listPrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Product kind must be good or service")
	}
	if listPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}

	return &Product{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Kind:                 kind,
		ListPrice:            listPrice,
		Sellable:             true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetListPrice sets the selling price
func (p *Product) SetListPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	p.ListPrice = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsService returns true if the product is a service
func (p *Product) IsService() bool {
	return p.Kind == ProductKindService
}

// MarkSynced records a successful sync. The remote ID, once assigned,
// sticks: passing an empty remoteID keeps the existing one.
func (p *Product) MarkSynced(remoteID string, at time.Time) {
	if remoteID != "" {
		p.RemoteID = remoteID
	}
	p.Synced = true
	p.LastSyncAt = &at
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// MarkSyncStale flags the product as needing a re-sync without touching
// the remote ID.
func (p *Product) MarkSyncStale() {
	p.Synced = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// EffectiveCurrency resolves the product's currency, falling back to the
// company currency and finally the system default.
func (p *Product) EffectiveCurrency(companyCurrency valueobject.Currency) valueobject.Currency {
	if p.Currency != "" {
		return p.Currency
	}
	if companyCurrency != "" {
		return companyCurrency
	}
	return valueobject.DefaultCurrency
}

// EffectiveUnit resolves the unit of measure, falling back to the
// configured default literal.
func (p *Product) EffectiveUnit(fallback string) string {
	if p.Unit != "" {
		return p.Unit
	}
	return fallback
}
