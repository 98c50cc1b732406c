package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/interfaces/http/dto"
)

// SyncService is the application-layer port the sync endpoints drive
type SyncService interface {
	SyncAllProducts(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error)
	SyncAllContacts(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error)
	SyncAllInvoices(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error)
	SyncAllQuotations(ctx context.Context, companyID uuid.UUID) (loopjet.BatchOutcome, error)
	SyncRecentCustomerDocuments(ctx context.Context, companyID, customerID uuid.UUID) error
	SyncProduct(ctx context.Context, productID uuid.UUID) error
	SyncContact(ctx context.Context, contactID uuid.UUID) error
	SyncInvoice(ctx context.Context, invoiceID uuid.UUID) error
}

// SyncHandler exposes the batch and single-record sync endpoints
type SyncHandler struct {
	BaseHandler
	service SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// BatchOutcomeResponse reports the result of a batch sync
type BatchOutcomeResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

func toBatchOutcomeResponse(outcome loopjet.BatchOutcome) BatchOutcomeResponse {
	return BatchOutcomeResponse{
		Created: outcome.Created,
		Updated: outcome.Updated,
		Failed:  outcome.Failed,
	}
}

// SyncProducts pushes all sellable products
// POST /api/v1/sync/products
func (h *SyncHandler) SyncProducts(c *gin.Context) {
	h.runBatch(c, h.service.SyncAllProducts)
}

// SyncContacts pushes all ranked contacts
// POST /api/v1/sync/contacts
func (h *SyncHandler) SyncContacts(c *gin.Context) {
	h.runBatch(c, h.service.SyncAllContacts)
}

// SyncInvoices pushes all non-cancelled invoices
// POST /api/v1/sync/invoices
func (h *SyncHandler) SyncInvoices(c *gin.Context) {
	h.runBatch(c, h.service.SyncAllInvoices)
}

// SyncQuotations pushes all open quotations as estimates
// POST /api/v1/sync/quotations
func (h *SyncHandler) SyncQuotations(c *gin.Context) {
	h.runBatch(c, h.service.SyncAllQuotations)
}

func (h *SyncHandler) runBatch(c *gin.Context, run func(context.Context, uuid.UUID) (loopjet.BatchOutcome, error)) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	outcome, err := run(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBatchOutcomeResponse(outcome))
}

// SyncCustomerDocuments pushes a customer's recent invoices and quotations
// POST /api/v1/sync/customers/:id/documents
func (h *SyncHandler) SyncCustomerDocuments(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	customerID := uuid.MustParse(req.ID)

	if err := h.service.SyncRecentCustomerDocuments(c.Request.Context(), companyID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"synced": true})
}

// SyncProduct pushes a single product
// POST /api/v1/sync/products/:id
func (h *SyncHandler) SyncProduct(c *gin.Context) {
	h.runSingle(c, h.service.SyncProduct)
}

// SyncContact pushes a single contact
// POST /api/v1/sync/contacts/:id
func (h *SyncHandler) SyncContact(c *gin.Context) {
	h.runSingle(c, h.service.SyncContact)
}

// SyncInvoice pushes a single invoice
// POST /api/v1/sync/invoices/:id
func (h *SyncHandler) SyncInvoice(c *gin.Context) {
	h.runSingle(c, h.service.SyncInvoice)
}

func (h *SyncHandler) runSingle(c *gin.Context, run func(context.Context, uuid.UUID) error) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID")
		return
	}

	if err := run(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"synced": true})
}
