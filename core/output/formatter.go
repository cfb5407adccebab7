package output

import (
	"encoding/json"
	"fmt"
	"io"

	"chemcost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the quote to w
	Render(w io.Writer, q *Quote) error

	// RenderInvoice writes the invoice to w
	RenderInvoice(w io.Writer, inv *Invoice) error
}

// New returns the formatter for a format name.
func New(format Format) (Formatter, error) {
	switch format {
	case FormatTable:
		return tableFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatMarkdown:
		return markdownFormatter{}, nil
	default:
		return nil, errors.Format("unknown output format: " + string(format))
	}
}

// RenderAll writes every quote to w in sequence.
func RenderAll(w io.Writer, f Formatter, quotes []*Quote) error {
	for _, q := range quotes {
		if err := f.Render(w, q); err != nil {
			return err
		}
	}
	return nil
}

type tableFormatter struct{}

func (tableFormatter) Format() Format { return FormatTable }

func (tableFormatter) Render(w io.Writer, q *Quote) error {
	line := func(label, value string) {
		fmt.Fprintf(w, "│ %-22s %-48s │\n", label, truncate(value, 48))
	}

	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                           MATERIAL COST ESTIMATE                         │")
	fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────────┤")
	line("Formula", q.Formula)
	if q.ReducedFormula != q.Formula {
		line("Reduced formula", q.ReducedFormula)
	}
	line("Molar mass", fmt.Sprintf("%.4f g/mol", q.Weight))
	if q.Database != "" {
		line("Database", q.Database)
	}
	fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────────┤")
	line("Cost per kg", fmt.Sprintf("%s %s", q.CostPerKg.StringFixed(4), q.Currency))
	line("Cost per mol", fmt.Sprintf("%s %s", q.CostPerMol.StringFixed(4), q.Currency))

	if len(q.Ingredients) > 0 {
		fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────────┤")
		for _, ing := range q.Ingredients {
			label := ing.Formula
			if ing.Name != "" {
				label = fmt.Sprintf("%s (%s)", ing.Formula, ing.Name)
			}
			fmt.Fprintf(w, "│   └─ %-36s %10.4f mol %16s │\n",
				truncate(label, 36), ing.Moles,
				fmt.Sprintf("%s %s", ing.Cost.StringFixed(4), q.Currency))
		}
	}
	fmt.Fprintln(w, "└──────────────────────────────────────────────────────────────────────────┘")
	return nil
}

func (tableFormatter) RenderInvoice(w io.Writer, inv *Invoice) error {
	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                          BILL OF MATERIALS QUOTE                         │")
	fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────────┤")
	if inv.Name != "" {
		fmt.Fprintf(w, "│ %-22s %-48s │\n", "Bill", truncate(inv.Name, 48))
		fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────────┤")
	}
	for _, line := range inv.Lines {
		fmt.Fprintf(w, "│ %-24s %12.4f kg %12.2f mol %16s │\n",
			truncate(line.Formula, 24), line.Kilograms, line.Moles,
			fmt.Sprintf("%s %s", line.Cost.StringFixed(2), inv.Currency))
	}
	fmt.Fprintln(w, "├──────────────────────────────────────────────────────────────────────────┤")
	fmt.Fprintf(w, "│ %-50s %21s │\n", "TOTAL",
		fmt.Sprintf("%s %s", inv.Total.StringFixed(2), inv.Currency))
	fmt.Fprintln(w, "└──────────────────────────────────────────────────────────────────────────┘")
	return nil
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, q *Quote) error {
	return encodeJSON(w, q)
}

func (jsonFormatter) RenderInvoice(w io.Writer, inv *Invoice) error {
	return encodeJSON(w, inv)
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.TypeFormat, "failed to encode output", err)
	}
	return nil
}

type markdownFormatter struct{}

func (markdownFormatter) Format() Format { return FormatMarkdown }

func (markdownFormatter) Render(w io.Writer, q *Quote) error {
	fmt.Fprintf(w, "## Cost estimate: %s\n\n", q.Formula)
	fmt.Fprintf(w, "| | |\n|---|---|\n")
	if q.ReducedFormula != q.Formula {
		fmt.Fprintf(w, "| Reduced formula | %s |\n", q.ReducedFormula)
	}
	fmt.Fprintf(w, "| Molar mass | %.4f g/mol |\n", q.Weight)
	fmt.Fprintf(w, "| Cost per kg | %s %s |\n", q.CostPerKg.StringFixed(4), q.Currency)
	fmt.Fprintf(w, "| Cost per mol | %s %s |\n", q.CostPerMol.StringFixed(4), q.Currency)
	if q.Database != "" {
		fmt.Fprintf(w, "| Database | %s |\n", q.Database)
	}

	if len(q.Ingredients) > 0 {
		fmt.Fprintf(w, "\n### Ingredients\n\n")
		fmt.Fprintf(w, "| Ingredient | Moles | Cost (%s/mol) | Share |\n", q.Currency)
		fmt.Fprintf(w, "|---|---|---|---|\n")
		for _, ing := range q.Ingredients {
			label := ing.Formula
			if ing.Name != "" {
				label = fmt.Sprintf("%s (%s)", ing.Formula, ing.Name)
			}
			fmt.Fprintf(w, "| %s | %.4f | %s | %.1f%% |\n",
				label, ing.Moles, ing.Cost.StringFixed(4), ing.Share*100)
		}
	}
	return nil
}

func (markdownFormatter) RenderInvoice(w io.Writer, inv *Invoice) error {
	if inv.Name != "" {
		fmt.Fprintf(w, "## Bill of materials quote: %s\n\n", inv.Name)
	} else {
		fmt.Fprintf(w, "## Bill of materials quote\n\n")
	}
	if inv.Database != "" {
		fmt.Fprintf(w, "Database: %s\n\n", inv.Database)
	}
	fmt.Fprintf(w, "| Material | Kilograms | Moles | Cost (%s) |\n", inv.Currency)
	fmt.Fprintf(w, "|---|---|---|---|\n")
	for _, line := range inv.Lines {
		fmt.Fprintf(w, "| %s | %.4f | %.2f | %s |\n",
			line.Formula, line.Kilograms, line.Moles, line.Cost.StringFixed(2))
	}
	fmt.Fprintf(w, "| **Total** | | | **%s** |\n", inv.Total.StringFixed(2))
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
