package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aeaevo/loopjet-bridge/internal/domain/estimate"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// OpenSessionRequest opens a generation session for a lead
type OpenSessionRequest struct {
	LeadID string `json:"lead_id" binding:"required,uuid"`
}

// GenerateRequest runs the generation for a draft session
type GenerateRequest struct {
	AdditionalInstructions string `json:"additional_instructions"`
	AllowNewItems          bool   `json:"allow_new_items"`
}

// SessionResponse is the API shape of a generation session
type SessionResponse struct {
	ID                     uuid.UUID  `json:"id"`
	LeadID                 uuid.UUID  `json:"lead_id"`
	CustomerID             *uuid.UUID `json:"customer_id,omitempty"`
	ExtractedContext       string     `json:"extracted_context"`
	AdditionalInstructions string     `json:"additional_instructions,omitempty"`
	AllowNewItems          bool       `json:"allow_new_items"`
	State                  string     `json:"state"`
	ErrorMessage           string     `json:"error_message,omitempty"`
	Preview                string     `json:"preview,omitempty"`
	OrderID                *uuid.UUID `json:"order_id,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// ToSessionResponse converts a session to its API shape
func ToSessionResponse(s *estimate.Session) SessionResponse {
	return SessionResponse{
		ID:                     s.ID,
		LeadID:                 s.LeadID,
		CustomerID:             s.CustomerID,
		ExtractedContext:       s.ExtractedContext,
		AdditionalInstructions: s.AdditionalInstructions,
		AllowNewItems:          s.AllowNewItems,
		State:                  string(s.State),
		ErrorMessage:           s.ErrorMessage,
		Preview:                s.Preview,
		OrderID:                s.OrderID,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

// ToSessionResponses converts a slice of sessions
func ToSessionResponses(sessions []estimate.Session) []SessionResponse {
	out := make([]SessionResponse, len(sessions))
	for i := range sessions {
		out[i] = ToSessionResponse(&sessions[i])
	}
	return out
}

// OrderLineResponse is the API shape of a sales order line
type OrderLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	TaxID     *uuid.UUID      `json:"tax_id,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the API shape of a generated sales order
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	Number      string              `json:"number"`
	CustomerID  uuid.UUID           `json:"customer_id"`
	Status      string              `json:"status"`
	Currency    string              `json:"currency"`
	AmountTotal decimal.Decimal     `json:"amount_total"`
	Generated   bool                `json:"generated"`
	Reasoning   string              `json:"reasoning,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	LeadID      *uuid.UUID          `json:"lead_id,omitempty"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToOrderResponse converts a sales order to its API shape
func ToOrderResponse(o *trade.SalesOrder) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = OrderLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			TaxID:     line.TaxID,
			Subtotal:  line.Subtotal,
		}
	}
	return OrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		Currency:    string(o.Currency),
		AmountTotal: o.AmountTotal,
		Generated:   o.Generated,
		Reasoning:   o.Reasoning,
		Notes:       o.Notes,
		LeadID:      o.LeadID,
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
	}
}

// GenerateResponse is the payload of a successful generation
type GenerateResponse struct {
	Session SessionResponse `json:"session"`
	Order   OrderResponse   `json:"order"`
	Preview string          `json:"preview"`
}
