package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared"
	"github.com/aeaevo/loopjet-bridge/internal/interfaces/http/dto"
)

// defaultCompanyID is the development fallback when no company header is
// present. Single-company deployments never send the header.
var defaultCompanyID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getUserID extracts the acting user from the X-User-ID header. A missing
// header is allowed; notifications are simply skipped.
func getUserID(c *gin.Context) uuid.UUID {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// getCompanyID extracts the acting company from the X-Company-ID header
func getCompanyID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("X-Company-ID")
	if raw == "" {
		return defaultCompanyID, nil
	}
	return uuid.Parse(raw)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain and upstream errors to HTTP responses.
// Upstream estimate-service failures keep their structure: a credits
// rejection carries the balance numbers, a validation rejection the
// remote message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := getRequestID(c)

	var creditsErr *loopjet.CreditsError
	if errors.As(err, &creditsErr) {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeCreditsExhausted, creditsErr.Error(), requestID)
		resp.Error.Credits = &dto.CreditsInfo{
			Balance:   creditsErr.Balance,
			Required:  creditsErr.Required,
			Shortfall: creditsErr.Shortfall,
		}
		c.JSON(http.StatusPaymentRequired, resp)
		return
	}

	var validationErr *loopjet.ValidationError
	if errors.As(err, &validationErr) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeUpstreamRejected, validationErr.Error())
		return
	}

	var requestErr *loopjet.RequestError
	if errors.As(err, &requestErr) {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamRejected, requestErr.Error())
		return
	}

	switch {
	case errors.Is(err, loopjet.ErrAPIKeyMissing):
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeNotConfigured,
			"Loopjet API key is not configured. Set it in the service configuration.")
		return
	case errors.Is(err, loopjet.ErrServiceUnavailable):
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUpstreamUnavailable,
			"Loopjet service is unreachable. Please try again later.")
		return
	case errors.Is(err, shared.ErrNotFound):
		h.NotFound(c, "Resource not found")
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
