package costdb

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"chemcost/core/composition"
	"chemcost/internal/errors"
	"chemcost/internal/logging"
)

// LoadCSV loads a cost database from a CSV file. Two layouts are accepted:
// bare "formula,cost_per_kg" rows, or a file with a header row naming the
// columns "formula", "cost_per_kg" and optionally "name".
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO("failed to open cost database", err)
	}
	defer f.Close()
	return ReadCSV(f, path)
}

// ReadCSV parses CSV cost entries from r, labelling them with source.
func ReadCSV(r io.Reader, source string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Parse("malformed CSV in cost database "+source, err)
	}
	if len(records) == 0 {
		return nil, errors.Parse("cost database "+source+" is empty", nil)
	}

	formulaCol, costCol, nameCol := 0, 1, -1
	start := 0
	if isHeader(records[0]) {
		formulaCol, costCol, nameCol = -1, -1, -1
		for i, field := range records[0] {
			switch strings.ToLower(strings.TrimSpace(field)) {
			case "formula", "composition":
				formulaCol = i
			case "cost_per_kg", "cost":
				costCol = i
			case "name":
				nameCol = i
			}
		}
		if formulaCol < 0 || costCol < 0 {
			return nil, errors.Parse("cost database "+source+" header needs formula and cost_per_kg columns", nil)
		}
		start = 1
	}

	entries := make([]Entry, 0, len(records)-start)
	for i, record := range records[start:] {
		row := start + i + 1
		if len(record) <= formulaCol || len(record) <= costCol {
			return nil, errors.Newf(errors.TypeParse, "cost database %s row %d: expected formula and cost", source, row)
		}

		comp, err := composition.Parse(record[formulaCol])
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParse, err, "cost database %s row %d", source, row)
		}

		cost, err := strconv.ParseFloat(strings.TrimSpace(record[costCol]), 64)
		if err != nil {
			return nil, errors.Newf(errors.TypeParse, "cost database %s row %d: malformed cost %q", source, row, record[costCol])
		}

		name := ""
		if nameCol >= 0 && nameCol < len(record) {
			name = strings.TrimSpace(record[nameCol])
		}

		entry, err := NewEntry(comp, cost, name, source)
		if err != nil {
			return nil, errors.Wrapf(errors.TypePricing, err, "cost database %s row %d", source, row)
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, errors.Parse("cost database "+source+" has no entries", nil)
	}

	logging.Debug("loaded cost database",
		zap.String("source", source),
		zap.Int("entries", len(entries)))

	return NewTable(entries), nil
}

// isHeader reports whether the first CSV record is a header row rather than
// a data row, judged by the presence of a known column name.
func isHeader(record []string) bool {
	for _, field := range record {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "formula", "composition", "cost_per_kg", "cost", "name":
			return true
		}
	}
	return false
}
