// Package costdb provides cost databases: priced materials keyed by
// composition, loaded from CSV or HCL files or taken from the built-in
// elemental price table.
package costdb

import (
	"sort"

	"chemcost/core/composition"
	"chemcost/internal/errors"
)

// Entry is one priced material in a cost database.
type Entry struct {
	// Composition of the priced material.
	Composition composition.Composition

	// CostPerKg is the price of one kilogram, never negative.
	CostPerKg float64

	// Name is an optional human-readable material name.
	Name string

	// Source records where the entry came from, e.g. a file path or
	// "built-in".
	Source string
}

// NewEntry builds a validated entry.
func NewEntry(c composition.Composition, costPerKg float64, name, source string) (Entry, error) {
	if costPerKg < 0 {
		return Entry{}, errors.Pricing("negative cost per kg for " + c.ReducedFormula())
	}
	return Entry{Composition: c, CostPerKg: costPerKg, Name: name, Source: source}, nil
}

// CostPerMol returns the price of one mole of the entry's formula unit,
// derived from the per-kilogram price and the molar mass.
func (e Entry) CostPerMol() float64 {
	return e.CostPerKg * e.Composition.MolarMassKg()
}

// DB is a source of priced materials. Entries returns every entry made
// of elements within the given chemical system, in a stable order.
type DB interface {
	Entries(sys composition.System) []Entry
}

// Table is an in-memory cost database over a fixed entry list.
type Table struct {
	entries []Entry
}

// NewTable builds a Table from entries, preserving their order.
func NewTable(entries []Entry) *Table {
	return &Table{entries: entries}
}

// Entries returns the entries whose elements all lie within sys, in the
// order they were loaded.
func (t *Table) Entries(sys composition.System) []Entry {
	var out []Entry
	for _, e := range t.entries {
		if sys.ContainsAll(e.Composition.System()) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns a copy of every entry in the table.
func (t *Table) All() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// CostPerKg looks up the direct price of a material: the cheapest entry in
// the database whose reduced formula matches the composition's. It does not
// decompose; use the analyzer for materials priced via ingredients.
func CostPerKg(db DB, c composition.Composition) (Entry, error) {
	target := c.ReducedFormula()
	found := false
	var best Entry
	for _, e := range db.Entries(c.System()) {
		if e.Composition.ReducedFormula() != target {
			continue
		}
		if !found || e.CostPerKg < best.CostPerKg {
			best = e
			found = true
		}
	}
	if !found {
		return Entry{}, errors.NotFound("cost entry", target)
	}
	return best, nil
}

// SortByFormula orders entries by reduced formula for stable listings.
func SortByFormula(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Composition.ReducedFormula() < entries[j].Composition.ReducedFormula()
	})
}

// SortByCost orders entries from cheapest to most expensive per kilogram,
// formula as tie-break.
func SortByCost(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CostPerKg != entries[j].CostPerKg {
			return entries[i].CostPerKg < entries[j].CostPerKg
		}
		return entries[i].Composition.ReducedFormula() < entries[j].Composition.ReducedFormula()
	})
}
