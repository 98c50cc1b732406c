package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aeaevo/loopjet-bridge/internal/domain/catalog"
	"github.com/aeaevo/loopjet-bridge/internal/domain/crm"
	domainestimate "github.com/aeaevo/loopjet-bridge/internal/domain/estimate"
	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/partner"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// DocumentSyncer pushes local records to the remote catalog before a
// generation attempt. The product catalog must be current or the model
// matches against stale items; contact and document history are best
// effort and generation proceeds without them.
type DocumentSyncer interface {
	SyncAllProducts(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error)
	SyncContact(ctx context.Context, contactID uuid.UUID) error
	SyncRecentCustomerDocuments(ctx context.Context, companyID, customerID uuid.UUID) error
}

// GenerateInput carries the user's choices for one generation attempt
type GenerateInput struct {
	SessionID              uuid.UUID
	UserID                 uuid.UUID
	AdditionalInstructions string
	AllowNewItems          bool
}

// GenerateOutput is the result of a successful generation
type GenerateOutput struct {
	Session *domainestimate.Session
	Order   *trade.SalesOrder
	Preview string
}

// Orchestrator drives the estimate generation workflow: session
// lifecycle, precondition checks, the generation call, and the
// reconciliation of the response into a quotation.
type Orchestrator struct {
	sessions   domainestimate.SessionRepository
	leads      crm.LeadRepository
	contacts   partner.ContactRepository
	products   catalog.ProductRepository
	builder    *ContextBuilder
	reconciler *Reconciler
	gateway    loopjet.Gateway
	syncer     DocumentSyncer
	notifier   shared.Notifier
	logger     *zap.Logger
	features   loopjet.Features
}

// NewOrchestrator creates an orchestrator
func NewOrchestrator(
	sessions domainestimate.SessionRepository,
	leads crm.LeadRepository,
	contacts partner.ContactRepository,
	products catalog.ProductRepository,
	builder *ContextBuilder,
	reconciler *Reconciler,
	gateway loopjet.Gateway,
	syncer DocumentSyncer,
	notifier shared.Notifier,
	logger *zap.Logger,
	features loopjet.Features,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		sessions:   sessions,
		leads:      leads,
		contacts:   contacts,
		products:   products,
		builder:    builder,
		reconciler: reconciler,
		gateway:    gateway,
		syncer:     syncer,
		notifier:   notifier,
		logger:     logger,
		features:   features,
	}
}

// OpenSession extracts the lead's deal context and opens a draft session
func (o *Orchestrator) OpenSession(ctx context.Context, companyID, leadID uuid.UUID) (*domainestimate.Session, error) {
	extracted, err := o.builder.Build(ctx, leadID)
	if err != nil {
		return nil, err
	}

	lead, err := o.leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	session, err := domainestimate.NewSession(companyID, leadID, extracted)
	if err != nil {
		return nil, err
	}
	session.CustomerID = lead.CustomerID

	if err := o.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Generate runs one generation attempt for a draft session. Preconditions
// are checked before any remote call; a missing customer or empty context
// never costs credits.
func (o *Orchestrator) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	session, err := o.sessions.FindByID(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if session.State != domainestimate.SessionStateDraft {
		return nil, shared.NewDomainError("SESSION_NOT_DRAFT", "Session has already finished; retry it first")
	}

	lead, err := o.leads.FindByID(ctx, session.LeadID)
	if err != nil {
		return nil, err
	}
	if !lead.HasCustomer() {
		return nil, shared.NewDomainError("CUSTOMER_REQUIRED",
			"This opportunity does not have a customer linked. Add a customer to the opportunity and try again.")
	}
	if o.features.StrictPreconditions {
		if strings.TrimSpace(session.ExtractedContext) == "" {
			return nil, shared.NewDomainError("EMPTY_CONTEXT",
				"No deal information could be extracted from this opportunity.")
		}
		// An empty catalog would spend a generation call on a result that
		// cannot match anything locally.
		count, err := o.products.Count(ctx, session.CompanyID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, shared.NewDomainError("NO_PRODUCTS",
				"No products found. Create at least one sellable product before generating a quotation.")
		}
	}

	customer, err := o.contacts.FindByID(ctx, *lead.CustomerID)
	if err != nil {
		return nil, err
	}

	session.AdditionalInstructions = in.AdditionalInstructions
	session.AllowNewItems = in.AllowNewItems && o.features.AllowNewItemsToggle

	o.notify(ctx, in.UserID, shared.Notification{
		Level:   shared.NotificationInfo,
		Title:   "Generating Quotation...",
		Message: "Loopjet AI is analyzing your deal and creating a quotation. This usually takes 30 seconds to 2 minutes.",
		Sticky:  true,
	})

	if o.syncer != nil {
		// The catalog has to reach the remote side before generation or
		// the response cannot reference existing products.
		if _, err := o.syncer.SyncAllProducts(ctx, session.CompanyID); err != nil {
			return nil, o.failSession(ctx, session, in.UserID, err)
		}

		// Best effort: the customer record and their recent documents give
		// the model current pricing history. Generation proceeds either way.
		if err := o.syncer.SyncContact(ctx, customer.ID); err != nil {
			o.logger.Warn("contact sync failed before generation",
				zap.String("customer", customer.Name),
				zap.Error(err),
			)
		}
		if err := o.syncer.SyncRecentCustomerDocuments(ctx, session.CompanyID, customer.ID); err != nil {
			o.logger.Warn("recent document sync failed before generation",
				zap.String("customer", customer.Name),
				zap.Error(err),
			)
		}
	}

	result, err := o.gateway.GenerateEstimate(ctx, o.buildRequest(session, customer))
	if err != nil {
		return nil, o.failSession(ctx, session, in.UserID, err)
	}

	order, err := o.reconciler.CreateOrder(ctx, session.CompanyID, customer.ID, session.LeadID, result)
	if err != nil {
		return nil, o.failSession(ctx, session, in.UserID, err)
	}

	preview := BuildPreview(result)
	if err := session.Complete(preview, order.ID); err != nil {
		return nil, err
	}
	if err := o.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	o.notify(ctx, in.UserID, shared.Notification{
		Level:   shared.NotificationSuccess,
		Title:   "Quotation Created",
		Message: fmt.Sprintf("Successfully generated quotation %s with %d items.", order.Number, len(result.Items)),
	})

	return &GenerateOutput{Session: session, Order: order, Preview: preview}, nil
}

// Retry resets a finished session for another attempt, keeping the
// extracted context and the user's instructions.
func (o *Orchestrator) Retry(ctx context.Context, sessionID uuid.UUID) (*domainestimate.Session, error) {
	session, err := o.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Retry(); err != nil {
		return nil, err
	}
	if err := o.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (o *Orchestrator) buildRequest(session *domainestimate.Session, customer *partner.Contact) loopjet.GenerationRequest {
	userInput := session.ExtractedContext
	if session.AdditionalInstructions != "" {
		userInput += fmt.Sprintf("\n\nAdditional Instructions:\n%s", session.AdditionalInstructions)
	}

	contact := remoteCustomer(customer)
	return loopjet.GenerationRequest{
		UserInput:       userInput,
		CustomerName:    customer.Name,
		CustomerContact: &contact,
		AllowNewItems:   session.AllowNewItems,
		// The quotation is created locally from the response; the remote
		// side never persists it.
		AutoSave: false,
	}
}

// failSession records the failure on the session and notifies the user.
// The original generation error is always returned to the caller.
func (o *Orchestrator) failSession(ctx context.Context, session *domainestimate.Session, userID uuid.UUID, genErr error) error {
	if err := session.Fail(genErr.Error()); err == nil {
		if saveErr := o.sessions.Save(ctx, session); saveErr != nil {
			o.logger.Error("failed to persist session failure", zap.Error(saveErr))
		}
	}
	o.notify(ctx, userID, shared.Notification{
		Level:   shared.NotificationDanger,
		Title:   "Quotation Generation Failed",
		Message: genErr.Error(),
		Sticky:  true,
	})
	return genErr
}

func (o *Orchestrator) notify(ctx context.Context, userID uuid.UUID, n shared.Notification) {
	if o.notifier == nil || userID == uuid.Nil {
		return
	}
	o.notifier.Notify(ctx, userID, n)
}

func remoteCustomer(c *partner.Contact) loopjet.RemoteContact {
	var company *string
	if name := c.CommercialName(); name != "" {
		company = &name
	} else if c.Name != "" {
		// the generation endpoint expects a company hint even for person
		// contacts without an organization
		company = &c.Name
	}

	return loopjet.RemoteContact{
		RemoteID:     c.RemoteID,
		Name:         c.Name,
		Email:        optional(c.Email),
		Phone:        optional(c.Phone),
		AddressLine1: optional(c.Street),
		AddressLine2: optional(c.Street2),
		City:         optional(c.City),
		State:        optional(c.StateName),
		PostalCode:   optional(c.Zip),
		Country:      optional(c.CountryName),
		Company:      company,
		Website:      optional(c.Website),
		Kind:         loopjet.ContactKindCustomer,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
