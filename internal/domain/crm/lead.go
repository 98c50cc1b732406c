package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
)

// Lead is a CRM opportunity. It is the source of the deal context fed to
// estimate generation and the anchor for generated quotations.
type Lead struct {
	shared.CompanyAggregateRoot
	Name            string               `gorm:"type:varchar(200);not null;index"`
	CustomerID      *uuid.UUID           `gorm:"type:uuid;index"`
	ExpectedRevenue decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency        valueobject.Currency `gorm:"type:varchar(3)"`
	Probability     decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"` // percentage
	StageName       string               `gorm:"type:varchar(100)"`
	Description     string               `gorm:"type:text"`
	Tags            []Tag                `gorm:"many2many:lead_tags"`
}

// TableName returns the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

// Tag labels leads for filtering and reporting
type Tag struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "lead_tags_def"
}

// NewLead creates a lead
func NewLead(companyID uuid.UUID, name string) (*Lead, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Lead name cannot be empty")
	}
	return &Lead{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
	}, nil
}

// HasCustomer returns true if the lead links a customer
func (l *Lead) HasCustomer() bool {
	return l.CustomerID != nil && *l.CustomerID != uuid.Nil
}

// LinkCustomer attaches the lead to a customer contact
func (l *Lead) LinkCustomer(customerID uuid.UUID) {
	l.CustomerID = &customerID
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// ActivityKind labels the scheduled activity type (call, meeting, todo)
type ActivityKind string

const (
	ActivityCall    ActivityKind = "Call"
	ActivityMeeting ActivityKind = "Meeting"
	ActivityTodo    ActivityKind = "To-Do"
	ActivityEmail   ActivityKind = "Email"
)

// Activity is a scheduled or completed follow-up on a lead
type Activity struct {
	shared.BaseEntity
	LeadID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	Kind     ActivityKind `gorm:"type:varchar(50);not null"`
	Summary  string       `gorm:"type:varchar(500)"`
	Note     string       `gorm:"type:text"`
	Deadline *time.Time   `gorm:"index"`
	Done     bool         `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "lead_activities"
}

// MessageKind distinguishes conversation entries from system notes
type MessageKind string

const (
	MessageComment      MessageKind = "comment"
	MessageEmail        MessageKind = "email"
	MessageNotification MessageKind = "notification"
)

// Message is one entry in a lead's communication log. Body may carry
// HTML as received from mail clients.
type Message struct {
	shared.BaseEntity
	LeadID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	Kind       MessageKind `gorm:"type:varchar(20);not null;index"`
	AuthorName string      `gorm:"type:varchar(200)"`
	Subject    string      `gorm:"type:varchar(500)"`
	Body       string      `gorm:"type:text"`
	SentAt     time.Time   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "lead_messages"
}
