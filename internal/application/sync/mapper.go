package sync

import (
	"github.com/aeaevo/loopjet-bridge/internal/domain/billing"
	"github.com/aeaevo/loopjet-bridge/internal/domain/catalog"
	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
	"github.com/aeaevo/loopjet-bridge/internal/domain/partner"
	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
	"github.com/aeaevo/loopjet-bridge/internal/domain/trade"
)

// toRemoteProduct maps a catalog product to its wire shape, resolving the
// currency chain (product, company, default) and the unit fallback.
func toRemoteProduct(p *catalog.Product, companyCurrency valueobject.Currency, unitFallback string) loopjet.RemoteProduct {
	return loopjet.RemoteProduct{
		RemoteID:    p.RemoteID,
		Name:        p.Name,
		Description: p.Description,
		IsService:   p.IsService(),
		Price:       p.ListPrice,
		Currency:    string(p.EffectiveCurrency(companyCurrency)),
		Unit:        p.EffectiveUnit(unitFallback),
	}
}

// toRemoteContact maps a contact to its wire shape. Blank optional fields
// map to nil so the payload drops them instead of overwriting remote data.
func toRemoteContact(c *partner.Contact) loopjet.RemoteContact {
	kind := loopjet.ContactKindVendor
	if c.IsCustomer() {
		kind = loopjet.ContactKindCustomer
	}

	var company *string
	if c.IsCompany {
		name := c.CommercialName()
		company = &name
	}

	return loopjet.RemoteContact{
		RemoteID:     c.RemoteID,
		Name:         c.Name,
		Email:        optional(c.Email),
		Phone:        optional(c.Phone),
		AddressLine1: optional(c.Street),
		AddressLine2: optional(c.Street2),
		City:         optional(c.City),
		State:        optional(c.StateName),
		PostalCode:   optional(c.Zip),
		Country:      optional(c.CountryName),
		Company:      company,
		TaxID:        optional(c.VAT),
		Website:      optional(c.Website),
		Notes:        optional(c.Comment),
		Kind:         kind,
	}
}

// toRemoteInvoice maps an invoice with its customer to the wire shape.
// Posted invoices travel as "sent"; everything else stays "draft".
func toRemoteInvoice(inv *billing.Invoice, customer *partner.Contact, companyCurrency valueobject.Currency, unitFallback string) loopjet.RemoteDocument {
	status := loopjet.DocumentStatusDraft
	if inv.IsPosted() {
		status = loopjet.DocumentStatusSent
	}

	currency := string(inv.EffectiveCurrency(companyCurrency))
	items := make([]loopjet.DocumentItem, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		unit := line.Unit
		if unit == "" {
			unit = unitFallback
		}
		items = append(items, loopjet.DocumentItem{
			Name:        line.Name,
			Description: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Unit:        unit,
			Currency:    currency,
		})
	}

	return loopjet.RemoteDocument{
		RemoteID:   inv.RemoteID,
		Number:     inv.Number,
		Customer:   contactSnapshot(customer),
		IssueDate:  inv.InvoiceDate,
		DueDate:    inv.DueDate,
		Status:     status,
		Items:      items,
		Subtotal:   inv.AmountUntaxed,
		TotalTax:   inv.AmountTax,
		Total:      inv.AmountTotal,
		ExternalID: inv.ID.String(),
	}
}

// toRemoteEstimate maps a quotation with its customer to the wire shape.
// Sent quotations travel as "sent"; draft and everything else as "draft".
// Quotations carry a single pre-tax total, taxes are only computed at
// invoicing, so subtotal and total are both AmountTotal and the tax
// amount stays zero.
func toRemoteEstimate(o *trade.SalesOrder, customer *partner.Contact, companyCurrency valueobject.Currency, unitFallback string) loopjet.RemoteDocument {
	status := loopjet.DocumentStatusDraft
	if o.Status == trade.OrderStatusSent {
		status = loopjet.DocumentStatusSent
	}

	currency := string(o.EffectiveCurrency(companyCurrency))
	items := make([]loopjet.DocumentItem, 0, len(o.Lines))
	for _, line := range o.Lines {
		items = append(items, loopjet.DocumentItem{
			Name:        line.Name,
			Description: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Unit:        unitFallback,
			Currency:    currency,
		})
	}

	subtotal := o.AmountTotal
	return loopjet.RemoteDocument{
		RemoteID:   o.RemoteID,
		Number:     o.Number,
		Customer:   contactSnapshot(customer),
		IssueDate:  o.OrderDate,
		ValidUntil: o.ValidUntil,
		Status:     status,
		Items:      items,
		Subtotal:   subtotal,
		Total:      o.AmountTotal,
		ExternalID: o.ID.String(),
	}
}

func contactSnapshot(c *partner.Contact) loopjet.CustomerSnapshot {
	if c == nil {
		return loopjet.CustomerSnapshot{}
	}
	return loopjet.CustomerSnapshot{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
