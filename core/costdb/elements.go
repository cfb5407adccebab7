package costdb

import (
	"sort"

	"chemcost/core/composition"
)

// BuiltinSource labels entries from the built-in elemental price table.
const BuiltinSource = "built-in"

// elementPrices holds indicative bulk prices of pure elements in USD/kg.
// Values track published commodity figures; unstable and non-traded
// elements are omitted.
var elementPrices = map[composition.Element]float64{
	"H":  1.39,
	"He": 24.0,
	"Li": 85.6,
	"Be": 857,
	"B":  3.68,
	"C":  0.122,
	"N":  0.14,
	"O":  0.154,
	"F":  2.16,
	"Ne": 240,
	"Na": 3.43,
	"Mg": 2.32,
	"Al": 1.79,
	"Si": 1.70,
	"P":  2.69,
	"S":  0.0926,
	"Cl": 0.082,
	"Ar": 0.931,
	"K":  13.6,
	"Ca": 2.35,
	"Sc": 3460,
	"Ti": 11.7,
	"V":  385,
	"Cr": 9.40,
	"Mn": 1.82,
	"Fe": 0.424,
	"Co": 32.8,
	"Ni": 13.9,
	"Cu": 6.00,
	"Zn": 2.55,
	"Ga": 148,
	"Ge": 1010,
	"As": 1.31,
	"Se": 21.4,
	"Br": 4.39,
	"Kr": 290,
	"Rb": 15500,
	"Sr": 6.68,
	"Y":  31.0,
	"Zr": 36.4,
	"Nb": 73.5,
	"Mo": 40.1,
	"Ru": 10600,
	"Rh": 147000,
	"Pd": 49500,
	"Ag": 521,
	"Cd": 2.73,
	"In": 167,
	"Sn": 18.7,
	"Sb": 5.79,
	"Te": 63.5,
	"I":  35.0,
	"Xe": 1800,
	"Cs": 61800,
	"Ba": 0.275,
	"La": 4.92,
	"Ce": 4.71,
	"Pr": 103,
	"Nd": 57.5,
	"Sm": 13.9,
	"Eu": 31.4,
	"Gd": 28.6,
	"Tb": 658,
	"Dy": 307,
	"Ho": 57.1,
	"Er": 26.4,
	"Tm": 3000,
	"Yb": 17.1,
	"Lu": 643,
	"Hf": 900,
	"Ta": 312,
	"W":  35.3,
	"Re": 4150,
	"Os": 12000,
	"Ir": 56200,
	"Pt": 27800,
	"Au": 62000,
	"Hg": 30.2,
	"Tl": 4200,
	"Pb": 2.00,
	"Bi": 6.36,
	"Th": 287,
	"U":  101,
}

// ElementPrice returns the built-in price of a pure element in USD/kg, and
// whether one is known for it.
func ElementPrice(el composition.Element) (float64, bool) {
	price, ok := elementPrices[el]
	return price, ok
}

// Elements returns the built-in cost database of pure element prices,
// ordered by symbol.
func Elements() *Table {
	symbols := make([]composition.Element, 0, len(elementPrices))
	for el := range elementPrices {
		symbols = append(symbols, el)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	entries := make([]Entry, 0, len(symbols))
	for _, el := range symbols {
		comp, err := composition.New(map[composition.Element]float64{el: 1})
		if err != nil {
			panic(err)
		}
		entries = append(entries, Entry{
			Composition: comp,
			CostPerKg:   elementPrices[el],
			Name:        el.Name(),
			Source:      BuiltinSource,
		})
	}
	return NewTable(entries)
}
