package estimate

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/crm"
	"github.com/aeaevo/loopjet-bridge/internal/domain/partner"
)

// ContextBuilder assembles the plain-text deal context for a lead
type ContextBuilder struct {
	leads    crm.LeadRepository
	contacts partner.ContactRepository
}

// NewContextBuilder creates a context builder
func NewContextBuilder(leads crm.LeadRepository, contacts partner.ContactRepository) *ContextBuilder {
	return &ContextBuilder{leads: leads, contacts: contacts}
}

// Build loads the lead's history and renders it into the text form the
// generation endpoint consumes.
func (b *ContextBuilder) Build(ctx context.Context, leadID uuid.UUID) (string, error) {
	lead, err := b.leads.FindByID(ctx, leadID)
	if err != nil {
		return "", err
	}

	var customer *crm.ContextCustomer
	if lead.HasCustomer() {
		contact, err := b.contacts.FindByID(ctx, *lead.CustomerID)
		if err == nil {
			customer = &crm.ContextCustomer{
				Name:  contact.Name,
				Email: contact.Email,
				Phone: contact.Phone,
			}
		}
	}

	activities, err := b.leads.FindActivities(ctx, leadID, crm.MaxContextActivities)
	if err != nil {
		return "", err
	}
	conversation, err := b.leads.FindMessages(ctx, leadID, []crm.MessageKind{crm.MessageComment, crm.MessageEmail}, crm.MaxContextMessages)
	if err != nil {
		return "", err
	}
	notes, err := b.leads.FindMessages(ctx, leadID, []crm.MessageKind{crm.MessageNotification}, crm.MaxContextNotes)
	if err != nil {
		return "", err
	}

	return crm.BuildDealContext(crm.DealContext{
		Lead:         lead,
		Customer:     customer,
		Activities:   activities,
		Conversation: conversation,
		Notes:        notes,
	}), nil
}
