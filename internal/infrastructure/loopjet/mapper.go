package loopjet

import (
	"time"

	domain "github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
)

// externalSystem tags outbound documents with their source system so the
// remote side can trace them back.
const externalSystem = "erp"

const wireDateFormat = "2006-01-02"

func toProductPayload(p domain.RemoteProduct) productPayload {
	return productPayload{
		Name:        p.Name,
		Description: p.Description,
		IsService:   p.IsService,
		Price:       p.Price,
		Currency:    p.Currency,
		Unit:        p.Unit,
	}
}

func toContactPayload(c domain.RemoteContact) contactPayload {
	kind := string(domain.ContactKindVendor)
	if c.Kind == domain.ContactKindCustomer {
		kind = string(domain.ContactKindCustomer)
	}
	return contactPayload{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		State:        c.State,
		PostalCode:   c.PostalCode,
		Country:      c.Country,
		Company:      c.Company,
		TaxID:        c.TaxID,
		Website:      c.Website,
		Notes:        c.Notes,
		Type:         kind,
	}
}

func toCustomerInfo(c domain.CustomerSnapshot) customerInfoPayload {
	return customerInfoPayload{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}

func toItemPayloads(items []domain.DocumentItem) []documentItemPayload {
	out := make([]documentItemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, documentItemPayload{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Unit:        item.Unit,
			Currency:    item.Currency,
		})
	}
	return out
}

func toInvoicePayload(d domain.RemoteDocument) invoicePayload {
	return invoicePayload{
		InvoiceNumber:  d.Number,
		CustomerInfo:   toCustomerInfo(d.Customer),
		IssueDate:      wireDate(d.IssueDate),
		DueDate:        wireDate(d.DueDate),
		Status:         string(d.Status),
		Items:          toItemPayloads(d.Items),
		Subtotal:       d.Subtotal,
		TotalTax:       d.TotalTax,
		Total:          d.Total,
		ExternalID:     d.ExternalID,
		ExternalSystem: externalSystem,
	}
}

func toEstimatePayload(d domain.RemoteDocument) estimatePayload {
	return estimatePayload{
		EstimateNumber: d.Number,
		CustomerInfo:   toCustomerInfo(d.Customer),
		IssueDate:      wireDate(d.IssueDate),
		ValidUntil:     wireDate(d.ValidUntil),
		Status:         string(d.Status),
		Items:          toItemPayloads(d.Items),
		Subtotal:       d.Subtotal,
		TotalTax:       d.TotalTax,
		Total:          d.Total,
		ExternalID:     d.ExternalID,
		ExternalSystem: externalSystem,
	}
}

func toGenerateBody(req domain.GenerationRequest, language string) generateRequestBody {
	body := generateRequestBody{
		UserInput:     req.UserInput,
		CustomerName:  req.CustomerName,
		AllowNewItems: req.AllowNewItems,
		AutoSave:      req.AutoSave,
		Language:      language,
	}
	if req.CustomerContact != nil {
		payload := toContactPayload(*req.CustomerContact)
		body.CustomerContactData = &payload
	}
	return body
}

func fromGeneratedItems(items []generatedItem) []domain.EstimateItem {
	out := make([]domain.EstimateItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.EstimateItem{
			RemoteItemID:       item.ID,
			RemoteProductID:    item.ProductID,
			Name:               item.Name,
			Description:        item.Description,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			TaxRate:            item.TaxRate,
		})
	}
	return out
}

func wireDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(wireDateFormat)
	return &s
}
