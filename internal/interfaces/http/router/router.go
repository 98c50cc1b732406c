// Package router wires the HTTP routes of the bridge API.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aeaevo/loopjet-bridge/internal/infrastructure/logger"
	"github.com/aeaevo/loopjet-bridge/internal/interfaces/http/handler"
	"github.com/aeaevo/loopjet-bridge/internal/interfaces/http/middleware"
)

// maxBodyBytes caps request bodies. The API only receives small JSON
// payloads; generation instructions are the largest field.
const maxBodyBytes = 1 << 20

// Config holds router configuration
type Config struct {
	ServiceName    string
	TracingEnabled bool
}

// Handlers groups the handlers mounted by the router
type Handlers struct {
	System   *handler.SystemHandler
	Sync     *handler.SyncHandler
	Estimate *handler.EstimateHandler
}

// New builds the gin engine with all middleware and routes
func New(cfg Config, log *zap.Logger, h Handlers) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.BodyLimit(maxBodyBytes))

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	v1 := engine.Group("/api/v1")
	{
		sync := v1.Group("/sync")
		{
			sync.POST("/products", h.Sync.SyncProducts)
			sync.POST("/products/:id", h.Sync.SyncProduct)
			sync.POST("/contacts", h.Sync.SyncContacts)
			sync.POST("/contacts/:id", h.Sync.SyncContact)
			sync.POST("/invoices", h.Sync.SyncInvoices)
			sync.POST("/invoices/:id", h.Sync.SyncInvoice)
			sync.POST("/quotations", h.Sync.SyncQuotations)
			sync.POST("/customers/:id/documents", h.Sync.SyncCustomerDocuments)
		}

		estimates := v1.Group("/estimates")
		{
			estimates.POST("/sessions", h.Estimate.OpenSession)
			estimates.GET("/sessions/:id", h.Estimate.GetSession)
			estimates.POST("/sessions/:id/generate", h.Estimate.Generate)
			estimates.POST("/sessions/:id/retry", h.Estimate.Retry)
		}

		v1.GET("/leads/:id/sessions", h.Estimate.ListLeadSessions)
	}

	return engine
}
