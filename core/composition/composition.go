package composition

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"chemcost/internal/errors"
)

// amountTol is the tolerance below which an element amount is treated as zero.
const amountTol = 1e-8

// Composition is an immutable mapping from elements to their amounts in a
// formula unit. Amounts are kept exactly as given: Ag2O2 holds two silver and
// two oxygen atoms and is a different Composition from AgO, even though both
// describe the same material.
type Composition struct {
	amounts map[Element]float64
}

// New builds a Composition from element amounts. Unknown elements and
// negative amounts are rejected, amounts within tolerance of zero are
// dropped, and a composition with no atoms left is an error.
func New(amounts map[Element]float64) (Composition, error) {
	m := make(map[Element]float64, len(amounts))
	for el, amt := range amounts {
		if !el.IsValid() {
			return Composition{}, errors.Input("unknown element symbol: " + el.Symbol())
		}
		if amt < -amountTol {
			return Composition{}, errors.Input("negative amount for element " + el.Symbol())
		}
		if amt < amountTol {
			continue
		}
		m[el] = amt
	}
	if len(m) == 0 {
		return Composition{}, errors.Input("composition contains no atoms")
	}
	return Composition{amounts: m}, nil
}

// Amount returns the number of atoms of el per formula unit, 0 if absent.
func (c Composition) Amount(el Element) float64 {
	return c.amounts[el]
}

// Contains reports whether el appears in the composition.
func (c Composition) Contains(el Element) bool {
	_, ok := c.amounts[el]
	return ok
}

// Len returns the number of distinct elements.
func (c Composition) Len() int {
	return len(c.amounts)
}

// Elements returns the distinct elements sorted by symbol.
func (c Composition) Elements() []Element {
	els := make([]Element, 0, len(c.amounts))
	for el := range c.amounts {
		els = append(els, el)
	}
	sort.Slice(els, func(i, j int) bool { return els[i] < els[j] })
	return els
}

// NumAtoms returns the total number of atoms per formula unit.
func (c Composition) NumAtoms() float64 {
	var n float64
	for _, amt := range c.amounts {
		n += amt
	}
	return n
}

// Weight returns the molar mass of one formula unit in g/mol.
func (c Composition) Weight() float64 {
	var w float64
	for el, amt := range c.amounts {
		w += amt * el.AtomicMass()
	}
	return w
}

// MolarMassKg returns the molar mass of one formula unit in kg/mol.
func (c Composition) MolarMassKg() float64 {
	return c.Weight() / 1000
}

// AtomicFraction returns the fraction of all atoms contributed by el.
func (c Composition) AtomicFraction(el Element) float64 {
	return c.amounts[el] / c.NumAtoms()
}

// WeightFraction returns the fraction of the molar mass contributed by el.
func (c Composition) WeightFraction(el Element) float64 {
	return c.amounts[el] * el.AtomicMass() / c.Weight()
}

// System returns the chemical system spanned by the composition.
func (c Composition) System() System {
	return NewSystem(c.Elements()...)
}

// Equal reports whether both compositions have the same elements with the
// same amounts, within tolerance. Ag2O2 and AgO are not Equal.
func (c Composition) Equal(other Composition) bool {
	if len(c.amounts) != len(other.amounts) {
		return false
	}
	for el, amt := range c.amounts {
		if math.Abs(amt-other.amounts[el]) > amountTol {
			return false
		}
	}
	return true
}

// Reduced returns the composition divided by the largest common factor of
// its amounts, so Ag2O2 reduces to AgO. Compositions whose amounts share no
// integral ratio are returned unchanged.
func (c Composition) Reduced() Composition {
	f := c.reduceFactor()
	if f == 1 {
		return c
	}
	m := make(map[Element]float64, len(c.amounts))
	for el, amt := range c.amounts {
		m[el] = amt / f
	}
	return Composition{amounts: m}
}

// reduceFactor finds the factor by which all amounts can be divided to reach
// the smallest whole-number formula. Fractional amounts are first normalized
// by the smallest amount; if that does not yield integers the factor is 1.
func (c Composition) reduceFactor() float64 {
	if allIntegral(c.amounts, 1) {
		return float64(gcdAll(c.amounts, 1))
	}
	min := math.Inf(1)
	for _, amt := range c.amounts {
		if amt < min {
			min = amt
		}
	}
	if min > 0 && allIntegral(c.amounts, min) {
		return min * float64(gcdAll(c.amounts, min))
	}
	return 1
}

func allIntegral(amounts map[Element]float64, scale float64) bool {
	for _, amt := range amounts {
		v := amt / scale
		if math.Abs(v-math.Round(v)) > amountTol {
			return false
		}
	}
	return true
}

func gcdAll(amounts map[Element]float64, scale float64) int64 {
	var g int64
	for _, amt := range amounts {
		g = gcd(g, int64(math.Round(amt/scale)))
	}
	if g == 0 {
		return 1
	}
	return g
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Formula renders the composition with its amounts as given, elements
// ordered by electronegativity, e.g. "Li4P2O7" with amounts of 1 omitted.
func (c Composition) Formula() string {
	els := c.Elements()
	sortFormula(els)
	parts := make([]string, 0, len(els))
	for _, el := range els {
		parts = append(parts, el.Symbol()+formatAmount(c.amounts[el]))
	}
	return strings.Join(parts, "")
}

// ReducedFormula renders the smallest whole-number formula, the canonical
// form used to key cost database entries: Ag2O2 and AgO both yield "AgO".
func (c Composition) ReducedFormula() string {
	return c.Reduced().Formula()
}

// String implements fmt.Stringer using the as-given formula.
func (c Composition) String() string {
	return c.Formula()
}

// formatAmount renders an element amount: 1 is omitted, whole numbers are
// printed without a decimal point, fractions are rounded to four decimals.
func formatAmount(amt float64) string {
	r := math.Round(amt)
	if math.Abs(amt-r) < amountTol {
		if r == 1 {
			return ""
		}
		return strconv.FormatInt(int64(r), 10)
	}
	return strconv.FormatFloat(math.Round(amt*1e4)/1e4, 'f', -1, 64)
}

// System is a sorted set of element symbols describing a chemical system,
// e.g. [Ag O] for anything made of silver and oxygen.
type System []Element

// NewSystem builds a System from element symbols, sorting and deduplicating.
func NewSystem(els ...Element) System {
	seen := make(map[Element]bool, len(els))
	sys := make(System, 0, len(els))
	for _, el := range els {
		if !seen[el] {
			seen[el] = true
			sys = append(sys, el)
		}
	}
	sort.Slice(sys, func(i, j int) bool { return sys[i] < sys[j] })
	return sys
}

// Contains reports whether el is part of the system.
func (s System) Contains(el Element) bool {
	for _, e := range s {
		if e == el {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every element of other is part of the system.
func (s System) ContainsAll(other System) bool {
	for _, el := range other {
		if !s.Contains(el) {
			return false
		}
	}
	return true
}

// String renders the system in the conventional dash-joined form, e.g. "Ag-O".
func (s System) String() string {
	parts := make([]string, len(s))
	for i, el := range s {
		parts[i] = el.Symbol()
	}
	return strings.Join(parts, "-")
}
