// Package cmd - quote command
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"chemcost/core/analyzer"
	"chemcost/core/bom"
	"chemcost/core/output"
	"chemcost/internal/config"
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote <bom.yaml>",
	Short: "Price a bill of materials",
	Long: `Price every item of a YAML bill of materials and total the cost.

The bill lists materials by formula with either kilograms or moles:

  items:
    - formula: AgO
      kilograms: 2.5
    - formula: LiFePO4
      moles: 10

Examples:
  chemcost quote bom.yaml
  chemcost quote --db prices.csv --format json bom.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&dbPath, "db", "", "cost database file (default: built-in elemental prices)")
	quoteCmd.Flags().StringVar(&dbFormat, "db-format", "", "database format, csv or hcl (default: by file extension)")
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (table, json, markdown)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	b, err := bom.Load(args[0])
	if err != nil {
		return err
	}

	db, label, err := loadDatabase()
	if err != nil {
		return err
	}

	est, err := b.Estimate(analyzer.New(db))
	if err != nil {
		return err
	}

	formatter, err := output.New(chosenFormat())
	if err != nil {
		return err
	}

	inv := output.NewInvoice(est, config.Get().Database.Currency, label)
	return formatter.RenderInvoice(os.Stdout, inv)
}
