// Package composition provides chemical formula parsing and composition
// arithmetic over the embedded element reference data.
package composition

import "sort"

// Element is a chemical element symbol, e.g. "Fe".
type Element string

// elementData holds the reference data for one element.
type elementData struct {
	number int
	name   string
	// mass is the standard atomic weight in g/mol. Elements without a
	// stable isotope carry the mass number of their most stable isotope.
	mass float64
	// eneg is the Pauling electronegativity, 0 where none is defined.
	eneg float64
}

// periodicTable is the process-wide immutable element reference, loaded once.
var periodicTable = map[Element]elementData{
	"H":  {1, "hydrogen", 1.008, 2.20},
	"He": {2, "helium", 4.002602, 0},
	"Li": {3, "lithium", 6.94, 0.98},
	"Be": {4, "beryllium", 9.0121831, 1.57},
	"B":  {5, "boron", 10.81, 2.04},
	"C":  {6, "carbon", 12.011, 2.55},
	"N":  {7, "nitrogen", 14.007, 3.04},
	"O":  {8, "oxygen", 15.999, 3.44},
	"F":  {9, "fluorine", 18.998403163, 3.98},
	"Ne": {10, "neon", 20.1797, 0},
	"Na": {11, "sodium", 22.98976928, 0.93},
	"Mg": {12, "magnesium", 24.305, 1.31},
	"Al": {13, "aluminium", 26.9815385, 1.61},
	"Si": {14, "silicon", 28.085, 1.90},
	"P":  {15, "phosphorus", 30.973761998, 2.19},
	"S":  {16, "sulfur", 32.06, 2.58},
	"Cl": {17, "chlorine", 35.45, 3.16},
	"Ar": {18, "argon", 39.948, 0},
	"K":  {19, "potassium", 39.0983, 0.82},
	"Ca": {20, "calcium", 40.078, 1.00},
	"Sc": {21, "scandium", 44.955908, 1.36},
	"Ti": {22, "titanium", 47.867, 1.54},
	"V":  {23, "vanadium", 50.9415, 1.63},
	"Cr": {24, "chromium", 51.9961, 1.66},
	"Mn": {25, "manganese", 54.938044, 1.55},
	"Fe": {26, "iron", 55.845, 1.83},
	"Co": {27, "cobalt", 58.933194, 1.88},
	"Ni": {28, "nickel", 58.6934, 1.91},
	"Cu": {29, "copper", 63.546, 1.90},
	"Zn": {30, "zinc", 65.38, 1.65},
	"Ga": {31, "gallium", 69.723, 1.81},
	"Ge": {32, "germanium", 72.63, 2.01},
	"As": {33, "arsenic", 74.921595, 2.18},
	"Se": {34, "selenium", 78.971, 2.55},
	"Br": {35, "bromine", 79.904, 2.96},
	"Kr": {36, "krypton", 83.798, 3.00},
	"Rb": {37, "rubidium", 85.4678, 0.82},
	"Sr": {38, "strontium", 87.62, 0.95},
	"Y":  {39, "yttrium", 88.90584, 1.22},
	"Zr": {40, "zirconium", 91.224, 1.33},
	"Nb": {41, "niobium", 92.90637, 1.60},
	"Mo": {42, "molybdenum", 95.95, 2.16},
	"Tc": {43, "technetium", 98, 1.90},
	"Ru": {44, "ruthenium", 101.07, 2.20},
	"Rh": {45, "rhodium", 102.90550, 2.28},
	"Pd": {46, "palladium", 106.42, 2.20},
	"Ag": {47, "silver", 107.8682, 1.93},
	"Cd": {48, "cadmium", 112.414, 1.69},
	"In": {49, "indium", 114.818, 1.78},
	"Sn": {50, "tin", 118.710, 1.96},
	"Sb": {51, "antimony", 121.760, 2.05},
	"Te": {52, "tellurium", 127.60, 2.10},
	"I":  {53, "iodine", 126.90447, 2.66},
	"Xe": {54, "xenon", 131.293, 2.60},
	"Cs": {55, "caesium", 132.90545196, 0.79},
	"Ba": {56, "barium", 137.327, 0.89},
	"La": {57, "lanthanum", 138.90547, 1.10},
	"Ce": {58, "cerium", 140.116, 1.12},
	"Pr": {59, "praseodymium", 140.90766, 1.13},
	"Nd": {60, "neodymium", 144.242, 1.14},
	"Pm": {61, "promethium", 145, 1.13},
	"Sm": {62, "samarium", 150.36, 1.17},
	"Eu": {63, "europium", 151.964, 1.20},
	"Gd": {64, "gadolinium", 157.25, 1.20},
	"Tb": {65, "terbium", 158.92535, 1.10},
	"Dy": {66, "dysprosium", 162.500, 1.22},
	"Ho": {67, "holmium", 164.93033, 1.23},
	"Er": {68, "erbium", 167.259, 1.24},
	"Tm": {69, "thulium", 168.93422, 1.25},
	"Yb": {70, "ytterbium", 173.045, 1.10},
	"Lu": {71, "lutetium", 174.9668, 1.27},
	"Hf": {72, "hafnium", 178.49, 1.30},
	"Ta": {73, "tantalum", 180.94788, 1.50},
	"W":  {74, "tungsten", 183.84, 2.36},
	"Re": {75, "rhenium", 186.207, 1.90},
	"Os": {76, "osmium", 190.23, 2.20},
	"Ir": {77, "iridium", 192.217, 2.20},
	"Pt": {78, "platinum", 195.084, 2.28},
	"Au": {79, "gold", 196.966569, 2.54},
	"Hg": {80, "mercury", 200.592, 2.00},
	"Tl": {81, "thallium", 204.38, 1.62},
	"Pb": {82, "lead", 207.2, 2.33},
	"Bi": {83, "bismuth", 208.98040, 2.02},
	"Po": {84, "polonium", 209, 2.00},
	"At": {85, "astatine", 210, 2.20},
	"Rn": {86, "radon", 222, 0},
	"Fr": {87, "francium", 223, 0.70},
	"Ra": {88, "radium", 226, 0.90},
	"Ac": {89, "actinium", 227, 1.10},
	"Th": {90, "thorium", 232.0377, 1.30},
	"Pa": {91, "protactinium", 231.03588, 1.50},
	"U":  {92, "uranium", 238.02891, 1.38},
	"Np": {93, "neptunium", 237, 1.36},
	"Pu": {94, "plutonium", 244, 1.28},
	"Am": {95, "americium", 243, 1.30},
	"Cm": {96, "curium", 247, 1.30},
	"Bk": {97, "berkelium", 247, 1.30},
	"Cf": {98, "californium", 251, 1.30},
	"Es": {99, "einsteinium", 252, 1.30},
	"Fm": {100, "fermium", 257, 1.30},
	"Md": {101, "mendelevium", 258, 1.30},
	"No": {102, "nobelium", 259, 1.30},
	"Lr": {103, "lawrencium", 262, 0},
	"Rf": {104, "rutherfordium", 267, 0},
	"Db": {105, "dubnium", 268, 0},
	"Sg": {106, "seaborgium", 271, 0},
	"Bh": {107, "bohrium", 272, 0},
	"Hs": {108, "hassium", 270, 0},
	"Mt": {109, "meitnerium", 276, 0},
	"Ds": {110, "darmstadtium", 281, 0},
	"Rg": {111, "roentgenium", 280, 0},
	"Cn": {112, "copernicium", 285, 0},
	"Nh": {113, "nihonium", 284, 0},
	"Fl": {114, "flerovium", 289, 0},
	"Mc": {115, "moscovium", 288, 0},
	"Lv": {116, "livermorium", 293, 0},
	"Ts": {117, "tennessine", 294, 0},
	"Og": {118, "oganesson", 294, 0},
}

// IsValid reports whether the symbol names a known element.
func (e Element) IsValid() bool {
	_, ok := periodicTable[e]
	return ok
}

// Symbol returns the element symbol as a string.
func (e Element) Symbol() string {
	return string(e)
}

// Name returns the lowercase English element name, or "" for unknown symbols.
func (e Element) Name() string {
	return periodicTable[e].name
}

// Number returns the atomic number, or 0 for unknown symbols.
func (e Element) Number() int {
	return periodicTable[e].number
}

// AtomicMass returns the standard atomic weight in g/mol, or 0 for unknown
// symbols.
func (e Element) AtomicMass() float64 {
	return periodicTable[e].mass
}

// formulaOrder is the sort key used when rendering formulas: increasing
// electronegativity, elements without one last, symbol as tie-break.
func (e Element) formulaOrder() float64 {
	x := periodicTable[e].eneg
	if x == 0 {
		return 99
	}
	return x
}

// AllElements returns every known element sorted by atomic number.
func AllElements() []Element {
	els := make([]Element, 0, len(periodicTable))
	for e := range periodicTable {
		els = append(els, e)
	}
	sort.Slice(els, func(i, j int) bool {
		return periodicTable[els[i]].number < periodicTable[els[j]].number
	})
	return els
}

// sortFormula orders elements the way chemists write formulas.
func sortFormula(els []Element) {
	sort.Slice(els, func(i, j int) bool {
		xi, xj := els[i].formulaOrder(), els[j].formulaOrder()
		if xi != xj {
			return xi < xj
		}
		return els[i] < els[j]
	})
}
