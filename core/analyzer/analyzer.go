// Package analyzer computes material costs by decomposing a target
// composition into the cheapest mix of priced ingredients.
package analyzer

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"chemcost/core/composition"
	"chemcost/core/costdb"
	"chemcost/internal/errors"
	"chemcost/internal/logging"
)

// simplexTol is the numerical tolerance handed to the LP solver.
const simplexTol = 1e-6

// molesTol is the amount below which an ingredient is dropped from a
// decomposition.
const molesTol = 1e-8

// Component is one priced ingredient in a decomposition.
type Component struct {
	// Entry is the cost database entry used.
	Entry costdb.Entry

	// Moles of the entry's formula unit per mole of the target.
	Moles float64

	// Cost contributed by this ingredient, in USD per mole of target.
	Cost float64
}

// Decomposition is the cheapest ingredient mix found for a target
// composition.
type Decomposition struct {
	// Target is the composition that was decomposed.
	Target composition.Composition

	// Components lists the ingredients with nonzero amounts.
	Components []Component

	// CostPerMol is the total cost of one mole of the target, in USD.
	CostPerMol float64
}

// CostPerKg converts the decomposition cost to USD per kilogram of target.
func (d *Decomposition) CostPerKg() float64 {
	return d.CostPerMol / d.Target.MolarMassKg()
}

// Analyzer estimates material costs against a cost database. Elements the
// database does not price directly fall back to the built-in elemental
// price table.
type Analyzer struct {
	db costdb.DB
}

// New creates an analyzer over the given cost database.
func New(db costdb.DB) *Analyzer {
	return &Analyzer{db: db}
}

// CostPerMol estimates the cost of one mole of the given formula in USD.
func (a *Analyzer) CostPerMol(formula string) (float64, error) {
	c, err := composition.Parse(formula)
	if err != nil {
		return 0, err
	}
	return a.CostPerMolOf(c)
}

// CostPerMolOf estimates the cost of one mole of the composition in USD.
func (a *Analyzer) CostPerMolOf(c composition.Composition) (float64, error) {
	d, err := a.Decompose(c)
	if err != nil {
		return 0, err
	}
	return d.CostPerMol, nil
}

// CostPerKg estimates the cost of one kilogram of the given formula in USD.
func (a *Analyzer) CostPerKg(formula string) (float64, error) {
	c, err := composition.Parse(formula)
	if err != nil {
		return 0, err
	}
	return a.CostPerKgOf(c)
}

// CostPerKgOf estimates the cost of one kilogram of the composition in USD.
func (a *Analyzer) CostPerKgOf(c composition.Composition) (float64, error) {
	d, err := a.Decompose(c)
	if err != nil {
		return 0, err
	}
	return d.CostPerKg(), nil
}

// Decompose finds the cheapest mix of priced ingredients that adds up to
// one mole of the target composition. Every element of the target must be
// balanced exactly, ingredient amounts cannot go negative, and the total
// ingredient cost is minimized.
func (a *Analyzer) Decompose(target composition.Composition) (*Decomposition, error) {
	candidates, err := a.candidates(target)
	if err != nil {
		return nil, err
	}

	elements := target.Elements()
	rows, cols := len(elements), len(candidates)

	// Minimize cost^T x subject to: for every element, the moles
	// contributed by the ingredients equal the moles in the target.
	cost := make([]float64, cols)
	for i, cand := range candidates {
		cost[i] = cand.CostPerMol()
	}

	data := make([]float64, rows*cols)
	b := make([]float64, rows)
	for r, el := range elements {
		for i, cand := range candidates {
			data[r*cols+i] = cand.Composition.Amount(el)
		}
		b[r] = target.Amount(el)
	}

	optF, optX, err := lp.Simplex(cost, mat.NewDense(rows, cols, data), b, simplexTol, nil)
	if err != nil {
		msg := "cost decomposition failed for " + target.Formula()
		if err == lp.ErrInfeasible {
			msg = "no feasible decomposition of " + target.Formula() + " from the available cost entries"
		}
		return nil, errors.Computation(msg, err)
	}

	d := &Decomposition{Target: target, CostPerMol: optF}
	for i, moles := range optX {
		if moles < molesTol {
			continue
		}
		d.Components = append(d.Components, Component{
			Entry: candidates[i],
			Moles: moles,
			Cost:  moles * candidates[i].CostPerMol(),
		})
	}

	logging.Debug("decomposed composition",
		zap.String("target", target.Formula()),
		zap.Float64("cost_per_mol", d.CostPerMol),
		zap.Int("ingredients", len(d.Components)))

	return d, nil
}

// candidates assembles the ingredient basis for a target: every database
// entry within the target's chemical system, plus built-in elemental prices
// for elements the database does not price on their own. Database entries
// keep their load order and fallback elements follow sorted by symbol, so
// the solve is deterministic.
func (a *Analyzer) candidates(target composition.Composition) ([]costdb.Entry, error) {
	sys := target.System()
	entries := a.db.Entries(sys)

	direct := make(map[composition.Element]bool)
	for _, e := range entries {
		if e.Composition.Len() == 1 {
			direct[e.Composition.Elements()[0]] = true
		}
	}

	// Elements() is sorted by symbol, so fallback entries land in a
	// stable order after the database entries.
	var missing []composition.Element
	for _, el := range target.Elements() {
		if !direct[el] {
			missing = append(missing, el)
		}
	}

	for _, el := range missing {
		price, ok := costdb.ElementPrice(el)
		if !ok {
			continue
		}
		comp, err := composition.New(map[composition.Element]float64{el: 1})
		if err != nil {
			return nil, err
		}
		entries = append(entries, costdb.Entry{
			Composition: comp,
			CostPerKg:   price,
			Name:        el.Name(),
			Source:      costdb.BuiltinSource,
		})
	}

	// Every target element must appear in at least one candidate or the
	// balance constraints cannot be met.
	covered := make(map[composition.Element]bool)
	for _, e := range entries {
		for _, el := range e.Composition.Elements() {
			covered[el] = true
		}
	}
	for _, el := range target.Elements() {
		if !covered[el] {
			return nil, errors.Pricing("no cost data for element " + el.Symbol() + " in " + target.Formula())
		}
	}

	return entries, nil
}
