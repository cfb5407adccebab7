// Package cmd - elements command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chemcost/core/costdb"
)

var byPrice bool

// elementsCmd lists the built-in elemental price table
var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List the built-in elemental price table",
	Long: `List the built-in price of every pure element in USD per kilogram.

These prices fill the gaps when a cost database has no entry of its own
for an element, and serve as the default database when none is given.`,
	Run: runElements,
}

func init() {
	elementsCmd.Flags().BoolVar(&byPrice, "by-price", false, "sort by price instead of symbol")
}

func runElements(cmd *cobra.Command, args []string) {
	entries := costdb.Elements().All()
	if byPrice {
		costdb.SortByCost(entries)
	}

	fmt.Println("┌────────────────────────────────────────────────┐")
	fmt.Println("│            BUILT-IN ELEMENTAL PRICES           │")
	fmt.Println("├────────────────────────────────────────────────┤")
	for _, e := range entries {
		fmt.Printf("│ %-3s %-20s %14.3f USD/kg │\n",
			e.Composition.Formula(), e.Name, e.CostPerKg)
	}
	fmt.Println("└────────────────────────────────────────────────┘")
	fmt.Printf("\n%d elements priced\n", len(entries))
}
