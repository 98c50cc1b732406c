package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appestimate "github.com/aeaevo/loopjet-bridge/internal/application/estimate"
	"github.com/aeaevo/loopjet-bridge/internal/domain/estimate"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/interfaces/http/dto"
)

// EstimateService drives the generation session lifecycle
type EstimateService interface {
	OpenSession(ctx context.Context, companyID, leadID uuid.UUID) (*estimate.Session, error)
	Generate(ctx context.Context, in appestimate.GenerateInput) (*appestimate.GenerateOutput, error)
	Retry(ctx context.Context, sessionID uuid.UUID) (*estimate.Session, error)
}

// EstimateHandler exposes the estimate generation endpoints
type EstimateHandler struct {
	BaseHandler
	service  EstimateService
	sessions estimate.SessionRepository
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(service EstimateService, sessions estimate.SessionRepository) *EstimateHandler {
	return &EstimateHandler{service: service, sessions: sessions}
}

// OpenSession opens a draft generation session for a lead
// POST /api/v1/estimates/sessions
func (h *EstimateHandler) OpenSession(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	session, err := h.service.OpenSession(c.Request.Context(), companyID, uuid.MustParse(req.LeadID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.ToSessionResponse(session))
}

// GetSession returns a session by ID
// GET /api/v1/estimates/sessions/:id
func (h *EstimateHandler) GetSession(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessions.FindByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToSessionResponse(session))
}

// ListLeadSessions returns the sessions of a lead, newest first
// GET /api/v1/leads/:id/sessions
func (h *EstimateHandler) ListLeadSessions(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := shared.Filter{
		Limit:    listReq.Limit,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}
	sessions, err := h.sessions.FindByLead(c.Request.Context(), uuid.MustParse(req.ID), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToSessionResponses(sessions))
}

// Generate runs the generation for a draft session and returns the
// created order. This call waits on the remote service and can take
// minutes.
// POST /api/v1/estimates/sessions/:id/generate
func (h *EstimateHandler) Generate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	out, err := h.service.Generate(c.Request.Context(), appestimate.GenerateInput{
		SessionID:              uuid.MustParse(uri.ID),
		UserID:                 getUserID(c),
		AdditionalInstructions: req.AdditionalInstructions,
		AllowNewItems:          req.AllowNewItems,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.GenerateResponse{
		Session: dto.ToSessionResponse(out.Session),
		Order:   dto.ToOrderResponse(out.Order),
		Preview: out.Preview,
	})
}

// Retry resets a failed or completed session back to draft
// POST /api/v1/estimates/sessions/:id/retry
func (h *EstimateHandler) Retry(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.service.Retry(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToSessionResponse(session))
}
