package loopjet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreditsError_ContainsAllNumbers(t *testing.T) {
	err := &CreditsError{
		Message:   "Insufficient credits",
		Balance:   decimal.NewFromInt(5),
		Required:  decimal.NewFromInt(20),
		Shortfall: decimal.NewFromInt(15),
	}

	msg := err.Error()
	assert.Contains(t, msg, "5")
	assert.Contains(t, msg, "20")
	assert.Contains(t, msg, "15")
	assert.Contains(t, msg, "Insufficient credits")
}

func TestCreditsError_DefaultMessage(t *testing.T) {
	err := &CreditsError{
		Balance:   decimal.Zero,
		Required:  decimal.NewFromInt(10),
		Shortfall: decimal.NewFromInt(10),
	}
	assert.Contains(t, err.Error(), "credits")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Message: "customer_name is required"}
	assert.Contains(t, err.Error(), "customer_name is required")
}

func TestRequestError_IncludesStatus(t *testing.T) {
	err := &RequestError{StatusCode: 503, Body: "upstream down"}
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestResourceKind_IsValid(t *testing.T) {
	assert.True(t, ResourceProducts.IsValid())
	assert.True(t, ResourceEstimates.IsValid())
	assert.False(t, ResourceKind("orders").IsValid())
}

func TestEstimateItem_LineTotal(t *testing.T) {
	item := EstimateItem{
		Quantity:  decimal.NewFromInt(3),
		UnitPrice: decimal.RequireFromString("19.99"),
	}
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("59.97")))
}

func TestBatchOutcome_Succeeded(t *testing.T) {
	o := BatchOutcome{Created: 3, Updated: 2, Failed: 1}
	assert.Equal(t, 5, o.Succeeded())
}
