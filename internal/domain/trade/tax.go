package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// TaxUse scopes a tax to sale or purchase documents
type TaxUse string

const (
	TaxUseSale     TaxUse = "sale"
	TaxUsePurchase TaxUse = "purchase"
)

// Tax is a percentage tax applicable to order lines
type Tax struct {
	shared.CompanyAggregateRoot
	Name   string          `gorm:"type:varchar(100);not null"`
	Rate   decimal.Decimal `gorm:"type:decimal(8,4);not null"` // percentage
	Use    TaxUse          `gorm:"type:varchar(20);not null;default:'sale'"`
	Active bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Tax) TableName() string {
	return "taxes"
}

// NewTax creates an active tax
func NewTax(companyID uuid.UUID, name string, rate decimal.Decimal, use TaxUse) (*Tax, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax name cannot be empty")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Tax rate cannot be negative")
	}
	return &Tax{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Rate:                 rate,
		Use:                  use,
		Active:               true,
	}, nil
}
