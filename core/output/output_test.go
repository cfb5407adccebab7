package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"chemcost/core/analyzer"
	"chemcost/core/bom"
	"chemcost/core/composition"
	"chemcost/core/costdb"
	"chemcost/internal/errors"
)

func testQuote(t *testing.T) *Quote {
	t.Helper()
	db, err := costdb.ReadCSV(strings.NewReader("Ag,3\nO,1\nAgO,1.5\n"), "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := analyzer.New(db).Decompose(composition.MustParse("AgO"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewQuote(d, "USD", "test.csv")
}

// TestNewQuote tests quote construction from a decomposition
func TestNewQuote(t *testing.T) {
	q := testQuote(t)

	if _, err := uuid.Parse(q.ID); err != nil {
		t.Errorf("expected a valid quote ID, got %q", q.ID)
	}
	if _, err := time.Parse(time.RFC3339, q.Timestamp); err != nil {
		t.Errorf("expected an RFC 3339 timestamp, got %q", q.Timestamp)
	}
	if q.Formula != "AgO" {
		t.Errorf("expected formula AgO, got %q", q.Formula)
	}
	if got := q.CostPerKg.InexactFloat64(); got != 1.5 {
		t.Errorf("expected 1.5 per kg, got %v", got)
	}
	if len(q.Ingredients) != 1 {
		t.Fatalf("expected 1 ingredient, got %d", len(q.Ingredients))
	}
	if got := q.Ingredients[0].Share; got < 0.999 || got > 1.001 {
		t.Errorf("expected the single ingredient to carry the whole cost, got share %v", got)
	}
}

// TestTableRender tests the human-readable table output
func TestTableRender(t *testing.T) {
	f, err := New(FormatTable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Format() != FormatTable {
		t.Errorf("expected table format, got %v", f.Format())
	}

	var buf bytes.Buffer
	if err := f.Render(&buf, testQuote(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"MATERIAL COST ESTIMATE", "AgO", "1.5000 USD", "123.8672 g/mol"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

// TestJSONRender tests that quotes round-trip through the JSON output
func TestJSONRender(t *testing.T) {
	f, err := New(FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := testQuote(t)
	var buf bytes.Buffer
	if err := f.Render(&buf, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Quote
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != q.ID {
		t.Errorf("expected ID %q, got %q", q.ID, got.ID)
	}
	if !got.CostPerKg.Equal(q.CostPerKg) {
		t.Errorf("expected cost %v, got %v", q.CostPerKg, got.CostPerKg)
	}
	if len(got.Ingredients) != len(q.Ingredients) {
		t.Errorf("expected %d ingredients, got %d", len(q.Ingredients), len(got.Ingredients))
	}
}

// TestMarkdownRender tests the markdown report output
func TestMarkdownRender(t *testing.T) {
	f, err := New(FormatMarkdown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf, testQuote(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"## Cost estimate: AgO", "| Cost per kg | 1.5000 USD |", "### Ingredients"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

// TestRenderAll tests rendering a batch of quotes in sequence
func TestRenderAll(t *testing.T) {
	f, err := New(FormatMarkdown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := RenderAll(&buf, f, []*Quote{testQuote(t), testQuote(t)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(buf.String(), "## Cost estimate"); got != 2 {
		t.Errorf("expected 2 rendered quotes, got %d", got)
	}
}

// TestInvoiceRender tests bill of materials rendering across formats
func TestInvoiceRender(t *testing.T) {
	db, err := costdb.ReadCSV(strings.NewReader("Ag,3\nO,1\nAgO,1.5\n"), "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := bom.Parse([]byte("name: cathode run\nitems:\n  - formula: AgO\n    kilograms: 2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	est, err := b.Estimate(analyzer.New(db))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := NewInvoice(est, "USD", "test.csv")
	if len(inv.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(inv.Lines))
	}
	if got := inv.Total.InexactFloat64(); got != 3 {
		t.Errorf("expected total 3, got %v", got)
	}

	table, _ := New(FormatTable)
	var buf bytes.Buffer
	if err := table.RenderInvoice(&buf, inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"BILL OF MATERIALS QUOTE", "cathode run", "AgO", "TOTAL", "3.00 USD"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, buf.String())
		}
	}

	jsonF, _ := New(FormatJSON)
	buf.Reset()
	if err := jsonF.RenderInvoice(&buf, inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Invoice
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Total.Equal(inv.Total) {
		t.Errorf("expected total %v, got %v", inv.Total, got.Total)
	}

	md, _ := New(FormatMarkdown)
	buf.Reset()
	if err := md.RenderInvoice(&buf, inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "| AgO |") {
		t.Errorf("expected markdown line for AgO, got:\n%s", buf.String())
	}
}

// TestUnknownFormat tests the formatter factory error path
func TestUnknownFormat(t *testing.T) {
	_, err := New(Format("yaml"))
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !errors.IsType(err, errors.TypeFormat) {
		t.Errorf("expected format error type, got %v", errors.TypeOf(err))
	}
}
