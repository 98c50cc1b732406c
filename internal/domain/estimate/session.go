package estimate

import (
	"time"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
)

// SessionState is the lifecycle state of a generation session
type SessionState string

const (
	SessionStateDraft SessionState = "draft"
	SessionStateDone  SessionState = "done"
	SessionStateError SessionState = "error"
)

// IsValid returns true if the state is valid
func (s SessionState) IsValid() bool {
	switch s {
	case SessionStateDraft, SessionStateDone, SessionStateError:
		return true
	default:
		return false
	}
}

// Session is one attempt at generating an estimate for a lead. It holds
// the extracted deal context shown to the user, the user's additional
// instructions, and the outcome of the generation call.
type Session struct {
	shared.CompanyAggregateRoot
	LeadID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	// ExtractedContext is captured when the session opens and survives
	// retries so the user keeps editing the same base.
	ExtractedContext       string `gorm:"type:text"`
	AdditionalInstructions string `gorm:"type:text"`
	AllowNewItems          bool   `gorm:"not null;default:false"`

	State        SessionState `gorm:"type:varchar(20);not null;default:'draft'"`
	ErrorMessage string       `gorm:"type:text"`
	Preview      string       `gorm:"type:text"`
	OrderID      *uuid.UUID   `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Session) TableName() string {
	return "estimate_sessions"
}

// NewSession opens a draft session for a lead
func NewSession(companyID, leadID uuid.UUID, extractedContext string) (*Session, error) {
	if leadID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEAD", "Session requires a lead")
	}
	return &Session{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		LeadID:               leadID,
		ExtractedContext:     extractedContext,
		State:                SessionStateDraft,
	}, nil
}

// Complete records a successful generation and the created order
func (s *Session) Complete(preview string, orderID uuid.UUID) error {
	if s.State != SessionStateDraft {
		return shared.NewDomainError("INVALID_STATE", "Only a draft session can complete")
	}
	s.State = SessionStateDone
	s.Preview = preview
	s.OrderID = &orderID
	s.ErrorMessage = ""
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Fail records a generation failure
func (s *Session) Fail(message string) error {
	if s.State != SessionStateDraft {
		return shared.NewDomainError("INVALID_STATE", "Only a draft session can fail")
	}
	s.State = SessionStateError
	s.ErrorMessage = message
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Retry resets the session for another attempt. The error message and
// preview are cleared; the extracted context and the user's instructions
// are kept.
func (s *Session) Retry() error {
	if s.State == SessionStateDraft {
		return shared.NewDomainError("INVALID_STATE", "Session is not in a terminal state")
	}
	s.State = SessionStateDraft
	s.ErrorMessage = ""
	s.Preview = ""
	s.OrderID = nil
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsDone returns true if the session finished successfully
func (s *Session) IsDone() bool {
	return s.State == SessionStateDone
}
