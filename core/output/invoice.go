package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chemcost/core/bom"
)

// Invoice is a priced bill of materials.
type Invoice struct {
	// ID uniquely identifies this invoice
	ID string `json:"id"`

	// Timestamp is when the invoice was produced, RFC 3339
	Timestamp string `json:"timestamp"`

	// Name is the bill's name, if any
	Name string `json:"name,omitempty"`

	// Currency is the currency code of all money fields
	Currency string `json:"currency"`

	// Database describes the cost database used
	Database string `json:"database,omitempty"`

	// Lines holds one priced line per bill item
	Lines []InvoiceLine `json:"lines"`

	// Total cost across all lines
	Total decimal.Decimal `json:"total"`
}

// InvoiceLine is one priced line of an invoice.
type InvoiceLine struct {
	// Formula of the material
	Formula string `json:"formula"`

	// Kilograms of the material
	Kilograms float64 `json:"kilograms"`

	// Moles of the material
	Moles float64 `json:"moles"`

	// CostPerKg is the estimated unit price
	CostPerKg decimal.Decimal `json:"cost_per_kg"`

	// Cost of the full line amount
	Cost decimal.Decimal `json:"cost"`
}

// NewInvoice builds an invoice from a priced bill of materials.
func NewInvoice(est *bom.Estimate, currency, database string) *Invoice {
	inv := &Invoice{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Name:      est.Name,
		Currency:  currency,
		Database:  database,
		Total:     money(est.Total),
	}

	for _, line := range est.Lines {
		inv.Lines = append(inv.Lines, InvoiceLine{
			Formula:   line.Composition.Formula(),
			Kilograms: line.Kilograms,
			Moles:     line.Moles,
			CostPerKg: money(line.CostPerKg),
			Cost:      money(line.Cost),
		})
	}

	return inv
}
