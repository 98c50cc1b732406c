package loopjet

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
)

func TestToInvoicePayload(t *testing.T) {
	issue := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	payload := toInvoicePayload(domain.RemoteDocument{
		Number:    "INV/2026/0042",
		Customer:  domain.CustomerSnapshot{Name: "Acme GmbH", Email: "info@acme.example"},
		IssueDate: &issue,
		DueDate:   &due,
		Status:    domain.DocumentStatusSent,
		Items: []domain.DocumentItem{
			{Name: "Design", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), Unit: "hour", Currency: "EUR"},
		},
		Subtotal:   decimal.NewFromInt(200),
		TotalTax:   decimal.NewFromInt(38),
		Total:      decimal.NewFromInt(238),
		ExternalID: "inv-uuid",
	})

	assert.Equal(t, "INV/2026/0042", payload.InvoiceNumber)
	assert.Equal(t, "sent", payload.Status)
	require.NotNil(t, payload.IssueDate)
	assert.Equal(t, "2026-02-01", *payload.IssueDate)
	require.NotNil(t, payload.DueDate)
	assert.Equal(t, "2026-03-01", *payload.DueDate)
	assert.Equal(t, "erp", payload.ExternalSystem)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "hour", payload.Items[0].Unit)
}

func TestToInvoicePayload_NilDates(t *testing.T) {
	payload := toInvoicePayload(domain.RemoteDocument{Number: "INV/1", Status: domain.DocumentStatusDraft})

	assert.Nil(t, payload.IssueDate)
	assert.Nil(t, payload.DueDate)

	// a nil date must serialize as JSON null, not be dropped
	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"issue_date":null`)
}

func TestToEstimatePayload(t *testing.T) {
	valid := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	payload := toEstimatePayload(domain.RemoteDocument{
		Number:     "S00042",
		Status:     domain.DocumentStatusDraft,
		ValidUntil: &valid,
	})

	assert.Equal(t, "S00042", payload.EstimateNumber)
	require.NotNil(t, payload.ValidUntil)
	assert.Equal(t, "2026-04-15", *payload.ValidUntil)
}

func TestToContactPayload_Kind(t *testing.T) {
	customer := toContactPayload(domain.RemoteContact{Name: "A", Kind: domain.ContactKindCustomer})
	assert.Equal(t, "customer", customer.Type)

	vendor := toContactPayload(domain.RemoteContact{Name: "B", Kind: domain.ContactKindVendor})
	assert.Equal(t, "vendor", vendor.Type)
}

func TestToGenerateBody(t *testing.T) {
	phone := "+49 30 1234"
	body := toGenerateBody(domain.GenerationRequest{
		UserInput:       "Deal: Relaunch",
		CustomerName:    "Acme GmbH",
		CustomerContact: &domain.RemoteContact{Name: "Acme GmbH", Phone: &phone, Kind: domain.ContactKindCustomer},
		AllowNewItems:   true,
	}, "de")

	assert.Equal(t, "Deal: Relaunch", body.UserInput)
	assert.True(t, body.AllowNewItems)
	assert.False(t, body.AutoSave)
	assert.Equal(t, "de", body.Language)
	require.NotNil(t, body.CustomerContactData)
	assert.Equal(t, "Acme GmbH", body.CustomerContactData.Name)
}

func TestToGenerateBody_NoContact(t *testing.T) {
	body := toGenerateBody(domain.GenerationRequest{UserInput: "x"}, "en")
	assert.Nil(t, body.CustomerContactData)
}

func TestProductPayload_DecimalPrice(t *testing.T) {
	payload := toProductPayload(domain.RemoteProduct{
		Name:  "Widget",
		Price: decimal.RequireFromString("19.99"),
	})

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"price":"19.99"`)
}
