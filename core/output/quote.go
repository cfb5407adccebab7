// Package output renders material cost estimates for people and machines.
package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chemcost/core/analyzer"
)

// Quote is a complete cost estimate for one material.
type Quote struct {
	// ID uniquely identifies this quote
	ID string `json:"id"`

	// Timestamp is when the quote was produced, RFC 3339
	Timestamp string `json:"timestamp"`

	// Formula is the composition as requested
	Formula string `json:"formula"`

	// ReducedFormula is the canonical whole-number formula
	ReducedFormula string `json:"reduced_formula"`

	// Weight is the molar mass in g/mol
	Weight float64 `json:"weight_g_per_mol"`

	// Currency is the currency code of all money fields
	Currency string `json:"currency"`

	// CostPerKg is the estimated price of one kilogram
	CostPerKg decimal.Decimal `json:"cost_per_kg"`

	// CostPerMol is the estimated price of one mole
	CostPerMol decimal.Decimal `json:"cost_per_mol"`

	// Ingredients is the cheapest mix found, one line per priced entry
	Ingredients []Ingredient `json:"ingredients,omitempty"`

	// Database describes the cost database the quote was made against
	Database string `json:"database,omitempty"`
}

// Ingredient is one decomposition line of a quote.
type Ingredient struct {
	// Formula of the priced entry
	Formula string `json:"formula"`

	// Name of the priced entry, if any
	Name string `json:"name,omitempty"`

	// Source records where the price came from
	Source string `json:"source"`

	// Moles of the entry per mole of the target
	Moles float64 `json:"moles"`

	// Cost contributed per mole of the target
	Cost decimal.Decimal `json:"cost"`

	// Share is this ingredient's fraction of the total cost
	Share float64 `json:"share"`
}

// NewQuote builds a quote from a decomposition. Money values are rounded to
// six decimal places.
func NewQuote(d *analyzer.Decomposition, currency, database string) *Quote {
	q := &Quote{
		ID:             uuid.New().String(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Formula:        d.Target.Formula(),
		ReducedFormula: d.Target.ReducedFormula(),
		Weight:         d.Target.Weight(),
		Currency:       currency,
		CostPerKg:      money(d.CostPerKg()),
		CostPerMol:     money(d.CostPerMol),
		Database:       database,
	}

	for _, comp := range d.Components {
		share := 0.0
		if d.CostPerMol > 0 {
			share = comp.Cost / d.CostPerMol
		}
		q.Ingredients = append(q.Ingredients, Ingredient{
			Formula: comp.Entry.Composition.Formula(),
			Name:    comp.Entry.Name,
			Source:  comp.Entry.Source,
			Moles:   comp.Moles,
			Cost:    money(comp.Cost),
			Share:   share,
		})
	}

	return q
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(6)
}
