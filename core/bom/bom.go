// Package bom loads bills of materials and prices them against a cost
// database.
package bom

import (
	"bytes"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"chemcost/core/analyzer"
	"chemcost/core/composition"
	"chemcost/internal/errors"
	"chemcost/internal/logging"
)

// Item is one material in a bill of materials. Exactly one of Kilograms or
// Moles must be set.
type Item struct {
	// Formula of the material
	Formula string `yaml:"formula"`

	// Kilograms wanted
	Kilograms float64 `yaml:"kilograms,omitempty"`

	// Moles wanted
	Moles float64 `yaml:"moles,omitempty"`
}

// BOM is a bill of materials.
type BOM struct {
	// Name describes the bill, e.g. a batch or project name
	Name string `yaml:"name,omitempty"`

	Items []Item `yaml:"items"`
}

// Load reads a bill of materials from a YAML file.
func Load(path string) (*BOM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO("failed to read bill of materials", err)
	}
	return Parse(data)
}

// Parse reads a bill of materials from YAML:
//
//	items:
//	  - formula: AgO
//	    kilograms: 2.5
//	  - formula: LiFePO4
//	    moles: 10
func Parse(data []byte) (*BOM, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var b BOM
	if err := dec.Decode(&b); err != nil {
		return nil, errors.Parse("malformed bill of materials", err)
	}

	if len(b.Items) == 0 {
		return nil, errors.Input("bill of materials has no items")
	}
	for i, item := range b.Items {
		if item.Formula == "" {
			return nil, errors.Newf(errors.TypeInput, "bill of materials item %d has no formula", i+1)
		}
		hasKg := item.Kilograms != 0
		hasMol := item.Moles != 0
		if hasKg == hasMol {
			return nil, errors.Newf(errors.TypeInput, "bill of materials item %q needs exactly one of kilograms or moles", item.Formula)
		}
		if item.Kilograms < 0 || item.Moles < 0 {
			return nil, errors.Newf(errors.TypeInput, "bill of materials item %q has a negative amount", item.Formula)
		}
	}

	return &b, nil
}

// Line is one priced item of an estimate. Kilograms and Moles are both
// filled in regardless of which one the item specified.
type Line struct {
	// Item as given in the bill of materials
	Item Item

	// Composition parsed from the item's formula
	Composition composition.Composition

	// Kilograms of the material
	Kilograms float64

	// Moles of the material
	Moles float64

	// CostPerKg of the material
	CostPerKg float64

	// Cost of the full line amount
	Cost float64

	// Decomposition backing the price
	Decomposition *analyzer.Decomposition
}

// Estimate is a priced bill of materials.
type Estimate struct {
	// Name carries the bill's name, if any
	Name string

	Lines []Line

	// Total cost across all lines
	Total float64
}

// Estimate prices every item and totals the bill.
func (b *BOM) Estimate(a *analyzer.Analyzer) (*Estimate, error) {
	est := &Estimate{Name: b.Name, Lines: make([]Line, 0, len(b.Items))}

	for _, item := range b.Items {
		comp, err := composition.Parse(item.Formula)
		if err != nil {
			return nil, err
		}

		d, err := a.Decompose(comp)
		if err != nil {
			return nil, err
		}

		line := Line{
			Item:          item,
			Composition:   comp,
			CostPerKg:     d.CostPerKg(),
			Decomposition: d,
		}
		if item.Kilograms > 0 {
			line.Kilograms = item.Kilograms
			line.Moles = item.Kilograms / comp.MolarMassKg()
		} else {
			line.Moles = item.Moles
			line.Kilograms = item.Moles * comp.MolarMassKg()
		}
		line.Cost = line.Kilograms * line.CostPerKg

		est.Lines = append(est.Lines, line)
		est.Total += line.Cost
	}

	logging.Debug("estimated bill of materials",
		zap.Int("items", len(est.Lines)),
		zap.Float64("total", est.Total))

	return est, nil
}
