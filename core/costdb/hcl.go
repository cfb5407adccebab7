package costdb

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"chemcost/core/composition"
	"chemcost/internal/errors"
	"chemcost/internal/logging"
)

// LoadHCL loads a cost database from an HCL file of entry blocks:
//
//	entry "AgO" {
//	  cost_per_kg = 1.5
//	  name        = "silver oxide"
//	}
func LoadHCL(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO("failed to read cost database", err)
	}
	return ParseHCL(src, path)
}

// ParseHCL parses HCL cost entries from src, labelling them with source.
func ParseHCL(src []byte, source string) (*Table, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, source)
	if diags.HasErrors() {
		return nil, errors.Parse("failed to parse cost database "+source, diags)
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "entry", LabelNames: []string{"formula"}},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Parse("failed to read cost database "+source, diags)
	}

	var entries []Entry
	for _, block := range content.Blocks {
		entry, err := parseEntryBlock(block, source)
		if err != nil {
			return nil, err
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

func parseEntryBlock(block *hcl.Block, source string) (Entry, error) {
	formula := block.Labels[0]
	line := block.DefRange.Start.Line

	comp, err := composition.Parse(formula)
	if err != nil {
		return Entry{}, errors.Wrapf(errors.TypeParse, err, "cost database %s line %d", source, line)
	}

	bodyContent, diags := block.Body.Content(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "cost_per_kg", Required: true},
			{Name: "name"},
		},
	})
	if diags.HasErrors() {
		return Entry{}, errors.Parse("invalid entry block in cost database "+source, diags)
	}

	cost, err := numberAttr(bodyContent.Attributes["cost_per_kg"])
	if err != nil {
		return Entry{}, errors.Wrapf(errors.TypeParse, err, "cost database %s entry %q", source, formula)
	}

	name := ""
	if attr, ok := bodyContent.Attributes["name"]; ok {
		name, err = stringAttr(attr)
		if err != nil {
			return Entry{}, errors.Wrapf(errors.TypeParse, err, "cost database %s entry %q", source, formula)
		}
	}

	entry, err := NewEntry(comp, cost, name, source)
	if err != nil {
		return Entry{}, errors.Wrapf(errors.TypePricing, err, "cost database %s entry %q", source, formula)
	}
	return entry, nil
}

func numberAttr(attr *hcl.Attribute) (float64, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return 0, errors.Parse("failed to evaluate "+attr.Name, diags)
	}
	if val.Type() != cty.Number {
		return 0, errors.Parse(attr.Name+" must be a number", nil)
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

func stringAttr(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", errors.Parse("failed to evaluate "+attr.Name, diags)
	}
	if val.Type() != cty.String {
		return "", errors.Parse(attr.Name+" must be a string", nil)
	}
	return val.AsString(), nil
}
