package loopjet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	domain "github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Client implements the Gateway port against the Loopjet HTTP API
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
	tracer     trace.Tracer
}

var _ domain.Gateway = (*Client)(nil)

// NewClient creates a Loopjet API client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config: config,
		// Per-call deadlines come from the request context; the generate
		// endpoint needs a far longer budget than record syncs.
		httpClient: &http.Client{},
		logger:     logger,
		tracer:     otel.Tracer("loopjet-client"),
	}, nil
}

// ---------------------------------------------------------------------------
// Single-record operations
// ---------------------------------------------------------------------------

// CreateProduct creates a product remotely and returns its remote ID
func (c *Client) CreateProduct(ctx context.Context, p domain.RemoteProduct) (string, error) {
	return c.createRecord(ctx, "/products/", toProductPayload(p))
}

// UpdateProduct updates the product identified by p.RemoteID
func (c *Client) UpdateProduct(ctx context.Context, p domain.RemoteProduct) (string, error) {
	return c.updateRecord(ctx, "/products/"+p.RemoteID, toProductPayload(p))
}

// CreateContact creates a contact remotely and returns its remote ID
func (c *Client) CreateContact(ctx context.Context, contact domain.RemoteContact) (string, error) {
	return c.createRecord(ctx, "/contacts/", toContactPayload(contact))
}

// UpdateContact updates the contact identified by contact.RemoteID
func (c *Client) UpdateContact(ctx context.Context, contact domain.RemoteContact) (string, error) {
	return c.updateRecord(ctx, "/contacts/"+contact.RemoteID, toContactPayload(contact))
}

// CreateInvoice creates an invoice remotely and returns its remote ID
func (c *Client) CreateInvoice(ctx context.Context, d domain.RemoteDocument) (string, error) {
	return c.createRecord(ctx, "/invoices/", toInvoicePayload(d))
}

// UpdateInvoice updates the invoice identified by d.RemoteID
func (c *Client) UpdateInvoice(ctx context.Context, d domain.RemoteDocument) (string, error) {
	return c.updateRecord(ctx, "/invoices/"+d.RemoteID, toInvoicePayload(d))
}

func (c *Client) createRecord(ctx context.Context, path string, payload any) (string, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload, c.singleTimeout())
	if err != nil {
		return "", err
	}
	return decodeID(body)
}

func (c *Client) updateRecord(ctx context.Context, path string, payload any) (string, error) {
	body, err := c.do(ctx, http.MethodPut, path, payload, c.singleTimeout())
	if err != nil {
		return "", err
	}
	return decodeID(body)
}

// ---------------------------------------------------------------------------
// Batch operations
// ---------------------------------------------------------------------------

// BatchProducts upserts a product collection in one call
func (c *Client) BatchProducts(ctx context.Context, products []domain.RemoteProduct, upsert bool) (domain.BatchOutcome, error) {
	payloads := make([]productPayload, 0, len(products))
	for _, p := range products {
		payloads = append(payloads, toProductPayload(p))
	}
	return c.batch(ctx, domain.ResourceProducts, productBatchBody{Products: payloads, Upsert: upsert}, len(payloads))
}

// BatchContacts upserts a contact collection in one call
func (c *Client) BatchContacts(ctx context.Context, contacts []domain.RemoteContact, upsert bool) (domain.BatchOutcome, error) {
	payloads := make([]contactPayload, 0, len(contacts))
	for _, contact := range contacts {
		payloads = append(payloads, toContactPayload(contact))
	}
	return c.batch(ctx, domain.ResourceContacts, contactBatchBody{Contacts: payloads, Upsert: upsert}, len(payloads))
}

// BatchInvoices syncs an invoice collection in one call
func (c *Client) BatchInvoices(ctx context.Context, invoices []domain.RemoteDocument) (domain.BatchOutcome, error) {
	payloads := make([]invoicePayload, 0, len(invoices))
	for _, d := range invoices {
		payloads = append(payloads, toInvoicePayload(d))
	}
	return c.batch(ctx, domain.ResourceInvoices, invoiceBatchBody{Invoices: payloads}, len(payloads))
}

// BatchEstimates syncs a quotation collection in one call
func (c *Client) BatchEstimates(ctx context.Context, estimates []domain.RemoteDocument) (domain.BatchOutcome, error) {
	payloads := make([]estimatePayload, 0, len(estimates))
	for _, d := range estimates {
		payloads = append(payloads, toEstimatePayload(d))
	}
	return c.batch(ctx, domain.ResourceEstimates, estimateBatchBody{Estimates: payloads}, len(payloads))
}

func (c *Client) batch(ctx context.Context, kind domain.ResourceKind, body any, total int) (domain.BatchOutcome, error) {
	path := fmt.Sprintf("/batch/%s/batch", kind)
	respBody, err := c.do(ctx, http.MethodPost, path, body, c.batchTimeout())
	if err != nil {
		// A failed batch call counts every submitted item as failed
		return domain.BatchOutcome{Failed: total}, err
	}
	var result batchResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return domain.BatchOutcome{Failed: total}, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	return domain.BatchOutcome{Created: result.Created, Updated: result.Updated, Failed: result.Failed}, nil
}

// ---------------------------------------------------------------------------
// Estimate generation
// ---------------------------------------------------------------------------

// GenerateEstimate runs the AI generation call
func (c *Client) GenerateEstimate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	body := toGenerateBody(req, c.config.DefaultLanguage)

	respBody, err := c.do(ctx, http.MethodPost, "/ai/generate-estimate", body, c.generateTimeout())
	if err != nil {
		return nil, err
	}

	var parsed generateResponseBody
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	c.logger.Info("received generation response",
		zap.Int("items", len(parsed.Items)),
	)

	return &domain.GenerationResult{
		Reasoning: parsed.Reasoning,
		Items:     fromGeneratedItems(parsed.Items),
		Notes:     parsed.Notes,
		Raw:       string(respBody),
	}, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (c *Client) do(ctx context.Context, method, path string, payload any, timeout time.Duration) ([]byte, error) {
	if c.config.APIKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	url := c.config.BaseURL + c.config.BasePath + path

	ctx, span := c.tracer.Start(ctx, "loopjet."+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", url),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("loopjet: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("loopjet: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("loopjet request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("loopjet request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, parseErrorResponse(resp, respBody)
	}
	return respBody, nil
}

// parseErrorResponse maps a non-success HTTP response to the error taxonomy
func parseErrorResponse(resp *http.Response, body []byte) error {
	switch resp.StatusCode {
	case http.StatusPaymentRequired:
		var envelope errorEnvelope
		var detail errorDetail
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != nil {
			_ = json.Unmarshal(envelope.Detail, &detail)
		}
		return &domain.CreditsError{
			Message:   detail.Message,
			Balance:   detail.Balance,
			Required:  detail.Required,
			Shortfall: detail.Shortfall,
		}

	case http.StatusBadRequest:
		return &domain.ValidationError{Message: extractDetailMessage(body)}

	default:
		return &domain.RequestError{StatusCode: resp.StatusCode, Body: extractDetailMessage(body)}
	}
}

// extractDetailMessage digs the human-readable message out of an error
// body: a structured detail object's message, a plain detail string, or
// the raw body when neither parses.
func extractDetailMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Detail == nil {
		return strings.TrimSpace(string(body))
	}

	var structured errorDetail
	if err := json.Unmarshal(envelope.Detail, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}

	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil {
		return plain
	}
	return strings.TrimSpace(string(envelope.Detail))
}

func (c *Client) singleTimeout() time.Duration {
	return time.Duration(c.config.TimeoutSeconds) * time.Second
}

func (c *Client) batchTimeout() time.Duration {
	return time.Duration(c.config.BatchTimeoutSeconds) * time.Second
}

func (c *Client) generateTimeout() time.Duration {
	return time.Duration(c.config.GenerateTimeoutSeconds) * time.Second
}

func decodeID(body []byte) (string, error) {
	var result createResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	return result.ID, nil
}
