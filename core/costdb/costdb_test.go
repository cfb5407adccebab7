package costdb

import (
	"math"
	"strings"
	"testing"

	"chemcost/core/composition"
	"chemcost/internal/errors"
)

// TestLoadCSV tests loading the bare formula,cost layout
func TestLoadCSV(t *testing.T) {
	db, err := LoadCSV("testdata/costdb_1.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if db.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", db.Len())
	}

	entry, err := CostPerKg(db, composition.MustParse("Ag"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CostPerKg != 3 {
		t.Errorf("expected 3 USD/kg for Ag, got %v", entry.CostPerKg)
	}
	if entry.Source != "testdata/costdb_1.csv" {
		t.Errorf("expected source to be the file path, got %q", entry.Source)
	}

	wantPerMol := 3 * 107.8682 / 1000
	if got := entry.CostPerMol(); math.Abs(got-wantPerMol) > 1e-9 {
		t.Errorf("expected %v USD/mol, got %v", wantPerMol, got)
	}
}

// TestLoadCSVHeader tests loading the header-row layout with names
func TestLoadCSVHeader(t *testing.T) {
	db, err := LoadCSV("testdata/materials.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if db.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", db.Len())
	}

	entry, err := CostPerKg(db, composition.MustParse("LiFePO4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CostPerKg != 12.5 {
		t.Errorf("expected 12.5 USD/kg, got %v", entry.CostPerKg)
	}
	if entry.Name != "lithium iron phosphate" {
		t.Errorf("expected name from CSV, got %q", entry.Name)
	}
}

// TestReadCSVHeaderOrder tests that header columns are located by name
func TestReadCSVHeaderOrder(t *testing.T) {
	db, err := ReadCSV(strings.NewReader("name,cost_per_kg,formula\nsilver,3,Ag\n"), "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := CostPerKg(db, composition.MustParse("Ag"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CostPerKg != 3 {
		t.Errorf("expected 3 USD/kg, got %v", entry.CostPerKg)
	}
	if entry.Name != "silver" {
		t.Errorf("expected name column to be found, got %q", entry.Name)
	}
}

// TestLoadCSVMissing tests that a missing file yields an IO error
func TestLoadCSVMissing(t *testing.T) {
	_, err := LoadCSV("testdata/nope.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.IsType(err, errors.TypeIO) {
		t.Errorf("expected IO error type, got %v", errors.TypeOf(err))
	}
}

// TestReadCSVErrors tests rejection of malformed databases
func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantType errors.Type
	}{
		{"empty file", "", errors.TypeParse},
		{"bad formula", "Xx,3\n", errors.TypeParse},
		{"bad cost", "Ag,cheap\n", errors.TypeParse},
		{"short row", "Ag\n", errors.TypeParse},
		{"negative cost", "Ag,-1\n", errors.TypePricing},
		{"header missing cost column", "formula,name\nAg,silver\n", errors.TypeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.csv), "test.csv")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %v error type, got %v", tt.wantType, errors.TypeOf(err))
			}
		})
	}
}

// TestEntriesFiltersBySystem tests chemical system filtering
func TestEntriesFiltersBySystem(t *testing.T) {
	db, err := LoadCSV("testdata/costdb_2.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agO := composition.NewSystem("Ag", "O")
	if got := len(db.Entries(agO)); got != 3 {
		t.Errorf("expected 3 entries in Ag-O, got %d", got)
	}

	agOnly := composition.NewSystem("Ag")
	entries := db.Entries(agOnly)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry in Ag, got %d", len(entries))
	}
	if entries[0].Composition.ReducedFormula() != "Ag" {
		t.Errorf("expected the Ag entry, got %s", entries[0].Composition.ReducedFormula())
	}

	if got := len(db.Entries(composition.NewSystem("Cu"))); got != 0 {
		t.Errorf("expected no entries in Cu, got %d", got)
	}
}

// TestCostPerKgLookup tests direct reduced-formula lookups
func TestCostPerKgLookup(t *testing.T) {
	db1, err := LoadCSV("testdata/costdb_1.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	db2, err := LoadCSV("testdata/costdb_2.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// AgO is only priced directly in the second database.
	if _, err := CostPerKg(db1, composition.MustParse("AgO")); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}

	entry, err := CostPerKg(db2, composition.MustParse("AgO"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CostPerKg != 1.5 {
		t.Errorf("expected 1.5 USD/kg, got %v", entry.CostPerKg)
	}

	// Ag2O2 reduces to AgO and must find the same entry.
	entry2, err := CostPerKg(db2, composition.MustParse("Ag2O2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry2.CostPerKg != 1.5 {
		t.Errorf("expected Ag2O2 to match the AgO entry, got %v", entry2.CostPerKg)
	}
}

// TestCostPerKgPicksCheapest tests duplicate handling
func TestCostPerKgPicksCheapest(t *testing.T) {
	db, err := ReadCSV(strings.NewReader("Ag,3\nAg,2.5\nAg,4\n"), "dupes.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := CostPerKg(db, composition.MustParse("Ag"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CostPerKg != 2.5 {
		t.Errorf("expected cheapest entry 2.5, got %v", entry.CostPerKg)
	}
}

// TestLoadHCL tests the HCL entry block format
func TestLoadHCL(t *testing.T) {
	db, err := LoadHCL("testdata/costdb.hcl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if db.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", db.Len())
	}

	entry, err := CostPerKg(db, composition.MustParse("AgO"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CostPerKg != 1.5 {
		t.Errorf("expected 1.5 USD/kg, got %v", entry.CostPerKg)
	}
	if entry.Name != "silver oxide" {
		t.Errorf("expected name from HCL, got %q", entry.Name)
	}

	oxygen, err := CostPerKg(db, composition.MustParse("O"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oxygen.Name != "" {
		t.Errorf("expected empty name for O, got %q", oxygen.Name)
	}
}

// TestParseHCLErrors tests rejection of malformed HCL databases
func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `entry "Ag" {`},
		{"missing cost", `entry "Ag" { name = "silver" }`},
		{"cost not a number", `entry "Ag" { cost_per_kg = "cheap" }`},
		{"bad formula", `entry "Xx" { cost_per_kg = 1 }`},
		{"unknown attribute", `entry "Ag" { cost_per_kg = 1 vendor = "acme" }`},
		{"no entries", `# just a comment`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tt.src), "test.hcl")
			if err == nil {
				t.Fatalf("expected error for %q", tt.src)
			}
		})
	}

	_, err := ParseHCL([]byte(`entry "Ag" { cost_per_kg = -2 }`), "test.hcl")
	if !errors.IsType(err, errors.TypePricing) {
		t.Errorf("expected pricing error for negative cost, got %v", err)
	}
}

// TestElements tests the built-in elemental price table
func TestElements(t *testing.T) {
	db := Elements()

	if db.Len() < 70 {
		t.Errorf("expected at least 70 priced elements, got %d", db.Len())
	}

	for _, entry := range db.All() {
		if entry.Composition.Len() != 1 {
			t.Errorf("expected single-element entry, got %s", entry.Composition.Formula())
		}
		if entry.CostPerKg <= 0 {
			t.Errorf("expected positive price for %s, got %v", entry.Composition.Formula(), entry.CostPerKg)
		}
		if entry.Source != BuiltinSource {
			t.Errorf("expected built-in source, got %q", entry.Source)
		}
	}

	price, ok := ElementPrice("Pt")
	if !ok {
		t.Fatal("expected a built-in platinum price")
	}
	if price != 27800 {
		t.Errorf("expected 27800 USD/kg for Pt, got %v", price)
	}

	if _, ok := ElementPrice("Tc"); ok {
		t.Error("expected no built-in price for technetium")
	}

	entry, err := CostPerKg(db, composition.MustParse("Fe"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "iron" {
		t.Errorf("expected element name, got %q", entry.Name)
	}
}

// TestSortHelpers tests the listing sort orders
func TestSortHelpers(t *testing.T) {
	db, err := LoadCSV("testdata/costdb_2.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := db.All()
	SortByFormula(entries)
	if entries[0].Composition.ReducedFormula() != "Ag" {
		t.Errorf("expected Ag first by formula, got %s", entries[0].Composition.ReducedFormula())
	}

	SortByCost(entries)
	if entries[0].CostPerKg != 1 {
		t.Errorf("expected cheapest first, got %v", entries[0].CostPerKg)
	}
	if entries[2].CostPerKg != 3 {
		t.Errorf("expected most expensive last, got %v", entries[2].CostPerKg)
	}
}
