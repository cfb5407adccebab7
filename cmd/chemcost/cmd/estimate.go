// Package cmd - estimate command
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chemcost/core/analyzer"
	"chemcost/core/composition"
	"chemcost/core/costdb"
	"chemcost/core/output"
	"chemcost/internal/config"
	"chemcost/internal/errors"
	"chemcost/internal/logging"
)

var (
	dbPath       string
	dbFormat     string
	outputFormat string
	showDetails  bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [formula...]",
	Short: "Estimate the cost of chemical compositions",
	Long: `Estimate what one kilogram and one mole of each composition cost.

Each composition is decomposed into the cheapest mix of entries from the
cost database. Without --db the built-in elemental price table is used.

Examples:
  chemcost estimate AgO
  chemcost estimate --db prices.csv Ag2O2 LiFePO4
  chemcost estimate --db entries.hcl --format markdown Fe2O3
  chemcost estimate --format json --details=false CaTiO3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&dbPath, "db", "", "cost database file (default: built-in elemental prices)")
	estimateCmd.Flags().StringVar(&dbFormat, "db-format", "", "database format, csv or hcl (default: by file extension)")
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (table, json, markdown)")
	estimateCmd.Flags().BoolVarP(&showDetails, "details", "d", true, "show the ingredient breakdown")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	db, label, err := loadDatabase()
	if err != nil {
		return err
	}

	formatter, err := output.New(chosenFormat())
	if err != nil {
		return err
	}

	details := showDetails
	if !cmd.Flags().Changed("details") {
		details = config.Get().Output.ShowDecomposition
	}

	a := analyzer.New(db)
	currency := config.Get().Database.Currency

	quotes := make([]*output.Quote, 0, len(args))
	for _, formula := range args {
		comp, err := composition.Parse(formula)
		if err != nil {
			return err
		}

		d, err := a.Decompose(comp)
		if err != nil {
			return err
		}

		q := output.NewQuote(d, currency, label)
		if !details {
			q.Ingredients = nil
		}
		quotes = append(quotes, q)
	}

	return output.RenderAll(os.Stdout, formatter, quotes)
}

// loadDatabase picks the cost database from flags and configuration. The
// returned label describes it in output.
func loadDatabase() (costdb.DB, string, error) {
	path := dbPath
	if path == "" {
		path = config.Get().Database.Path
	}
	if path == "" {
		return costdb.Elements(), "built-in elemental prices", nil
	}

	format := dbFormat
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".hcl":
			format = "hcl"
		case ".csv":
			format = "csv"
		default:
			format = config.Get().Database.Format
		}
	}

	logging.Debug("loading cost database",
		zap.String("path", path),
		zap.String("format", format))

	switch format {
	case "csv":
		db, err := costdb.LoadCSV(path)
		if err != nil {
			return nil, "", err
		}
		return db, path, nil
	case "hcl":
		db, err := costdb.LoadHCL(path)
		if err != nil {
			return nil, "", err
		}
		return db, path, nil
	default:
		return nil, "", errors.Input("unknown database format: " + format)
	}
}

// chosenFormat resolves the output format from the flag or configuration.
func chosenFormat() output.Format {
	if outputFormat != "" {
		return output.Format(outputFormat)
	}
	return output.Format(config.Get().Output.DefaultFormat)
}
