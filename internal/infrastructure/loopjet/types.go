package loopjet

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Wire DTOs for the Loopjet API. Optional contact fields are pointers so
// an absent value is dropped from the payload and never overwrites remote
// data with blanks.

type productPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsService   bool            `json:"is_service"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Unit        string          `json:"unit"`
}

type contactPayload struct {
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Country      *string `json:"country,omitempty"`
	Company      *string `json:"company,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
	Website      *string `json:"website,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Type         string  `json:"type"`
}

type customerInfoPayload struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type documentItemPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit"`
	Currency    string          `json:"currency,omitempty"`
}

type invoicePayload struct {
	InvoiceNumber  string                `json:"invoice_number"`
	CustomerID     *string               `json:"customer_id"`
	CustomerInfo   customerInfoPayload   `json:"customer_info"`
	IssueDate      *string               `json:"issue_date"`
	DueDate        *string               `json:"due_date"`
	Status         string                `json:"status"`
	Items          []documentItemPayload `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TotalTax       decimal.Decimal       `json:"total_tax"`
	Total          decimal.Decimal       `json:"total"`
	ExternalID     string                `json:"external_id"`
	ExternalSystem string                `json:"external_system"`
}

type estimatePayload struct {
	EstimateNumber string                `json:"estimate_number"`
	CustomerID     *string               `json:"customer_id"`
	CustomerInfo   customerInfoPayload   `json:"customer_info"`
	IssueDate      *string               `json:"issue_date"`
	ValidUntil     *string               `json:"valid_until"`
	Status         string                `json:"status"`
	Items          []documentItemPayload `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TotalTax       decimal.Decimal       `json:"total_tax"`
	Total          decimal.Decimal       `json:"total"`
	ExternalID     string                `json:"external_id"`
	ExternalSystem string                `json:"external_system"`
}

type productBatchBody struct {
	Products []productPayload `json:"products"`
	Upsert   bool             `json:"upsert"`
}

type contactBatchBody struct {
	Contacts []contactPayload `json:"contacts"`
	Upsert   bool             `json:"upsert"`
}

type invoiceBatchBody struct {
	Invoices []invoicePayload `json:"invoices"`
}

type estimateBatchBody struct {
	Estimates []estimatePayload `json:"estimates"`
}

type batchResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

type createResult struct {
	ID string `json:"id"`
}

type generateRequestBody struct {
	UserInput           string          `json:"user_input"`
	CustomerName        string          `json:"customer_name"`
	CustomerContactData *contactPayload `json:"customer_contact_data"`
	AllowNewItems       bool            `json:"allow_new_items"`
	AutoSave            bool            `json:"auto_save"`
	Language            string          `json:"language,omitempty"`
}

type generatedItem struct {
	ID                 string           `json:"id"`
	ProductID          string           `json:"product_id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Quantity           decimal.Decimal  `json:"quantity"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	TaxRate            *decimal.Decimal `json:"tax_rate"`
}

type generateResponseBody struct {
	Reasoning string          `json:"reasoning"`
	Items     []generatedItem `json:"items"`
	Notes     string          `json:"notes"`
}

// errorEnvelope wraps the service's error responses. Detail is either a
// plain string or a structured object depending on the failure.
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Message   string          `json:"message"`
	Balance   decimal.Decimal `json:"balance"`
	Required  decimal.Decimal `json:"required"`
	Shortfall decimal.Decimal `json:"shortfall"`
}
