package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the named annotation intervals of an accession",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Listing feature names needs no observed segments.
		m, err := loadMapper(flagUniProt, nil)
		if err != nil {
			return err
		}

		for _, name := range m.AvailableAnnotations() {
			r := m.Intervals[name]
			fmt.Printf("%d-%d\t%s\n", r[0], r[1], name)
		}
		return nil
	},
}

func init() {
	featuresCmd.Flags().StringVarP(&flagUniProt, "uniprot", "u", "", "UniProt accession")
	featuresCmd.MarkFlagRequired("uniprot")

	rootCmd.AddCommand(featuresCmd)
}
