package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// Contact is a person or organization the company does business with.
// A contact can rank as customer, supplier, or both; ranks are counters
// bumped on the first sale or purchase document.
type Contact struct {
	shared.CompanyAggregateRoot
	Name         string `gorm:"type:varchar(200);not null;index"`
	Email        string `gorm:"type:varchar(200);index"`
	Phone        string `gorm:"type:varchar(50)"`
	Street       string `gorm:"type:varchar(200)"`
	Street2      string `gorm:"type:varchar(200)"`
	City         string `gorm:"type:varchar(100)"`
	StateName    string `gorm:"type:varchar(100)"`
	Zip          string `gorm:"type:varchar(20)"`
	CountryName  string `gorm:"type:varchar(100)"`
	IsCompany    bool   `gorm:"not null;default:false"`
	ParentName   string `gorm:"type:varchar(200)"` // owning organization for person contacts
	VAT          string `gorm:"type:varchar(50)"`
	Website      string `gorm:"type:varchar(200)"`
	Comment      string `gorm:"type:text"`
	CustomerRank int    `gorm:"not null;default:0"`
	SupplierRank int    `gorm:"not null;default:0"`

	RemoteID   string     `gorm:"type:varchar(64);index"`
	Synced     bool       `gorm:"not null;default:false"`
	LastSyncAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a contact
func NewContact(companyID uuid.UUID, name string) (*Contact, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Contact name cannot exceed 200 characters")
	}
	return &Contact{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
	}, nil
}

// IsCustomer returns true if the contact has ever acted as a customer
func (c *Contact) IsCustomer() bool {
	return c.CustomerRank > 0
}

// IsSupplier returns true if the contact has ever acted as a supplier
func (c *Contact) IsSupplier() bool {
	return c.SupplierRank > 0
}

// CommercialName returns the organization name attached to the contact:
// the contact's own name for companies, the parent organization for
// person contacts, empty otherwise.
func (c *Contact) CommercialName() string {
	if c.IsCompany {
		return c.Name
	}
	return c.ParentName
}

// PromoteCustomer bumps the customer rank
func (c *Contact) PromoteCustomer() {
	c.CustomerRank++
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// PromoteSupplier bumps the supplier rank
func (c *Contact) PromoteSupplier() {
	c.SupplierRank++
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// MarkSynced records a successful sync; an empty remoteID never clears
// an already-assigned one.
func (c *Contact) MarkSynced(remoteID string, at time.Time) {
	if remoteID != "" {
		c.RemoteID = remoteID
	}
	c.Synced = true
	c.LastSyncAt = &at
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// MarkSyncStale flags the contact as needing a re-sync
func (c *Contact) MarkSyncStale() {
	c.Synced = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
