package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sciados/campaign-engine/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the provider catalog",
	Long:  "Shows every catalog entry in selection order with cost, quality, capabilities, and whether the vendor has a configured key.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}

		configured := make(map[string]bool)
		for vendor := range vendorAdapters() {
			configured[vendor] = true
		}

		var descriptors []provider.Descriptor
		for _, name := range registry.Names() {
			d, _ := registry.Get(name)
			descriptors = append(descriptors, d)
		}

		formatProviders(os.Stdout, descriptors, configured)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

// formatProviders writes a tabular catalog listing to out.
func formatProviders(out io.Writer, descriptors []provider.Descriptor, configured map[string]bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tNAME\tVENDOR\tMODEL\tCOST/1K\tQUALITY\tCAPABILITIES\tKEY")
	_, _ = fmt.Fprintln(w, "----\t----\t------\t-----\t-------\t-------\t------------\t---")

	for _, d := range descriptors {
		key := "missing"
		if configured[d.Vendor] {
			key = "ok"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%.4f\t%d\t%s\t%s\n",
			d.PriorityRank,
			d.Name,
			d.Vendor,
			d.Model,
			d.CostPer1KTokens,
			d.QualityScore,
			strings.Join(d.Capabilities, ","),
			key,
		)
	}
	_ = w.Flush()
}
