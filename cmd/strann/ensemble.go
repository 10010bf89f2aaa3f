package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/tikz/strann/annotate"
	"github.com/tikz/strann/sifts"
)

var flagName string

var ensembleCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Annotate all structures covering a named feature of an accession",
	RunE: func(cmd *cobra.Command, args []string) error {
		segments, err := sifts.LoadSegments(segmentsPath())
		if err != nil {
			return err
		}

		m, err := loadMapper(flagUniProt, segments)
		if err != nil {
			return err
		}

		structures, err := m.StructuresByName(flagName)
		if err != nil {
			return err
		}
		log.Printf("%s: %d structures over %q", flagUniProt, len(structures), flagName)

		var entries []*annotate.Annotations
		for _, s := range structures {
			a, err := annotateStructure(m, s)
			if err != nil {
				return err
			}
			entries = append(entries, a)

			if err := writeOutputs(a); err != nil {
				return err
			}
		}

		e := annotate.NewEnsemble(m.UniProt.ID, entries)
		return writeEnsembleCSV(e)
	},
}

func init() {
	ensembleCmd.Flags().StringVarP(&flagUniProt, "uniprot", "u", "", "UniProt accession")
	ensembleCmd.Flags().StringVarP(&flagName, "name", "n", "", "annotation name, i.e. a mature protein of a polyprotein")
	ensembleCmd.Flags().BoolVar(&flagSASA, "sasa", false, "add solvent accessibility column (needs freesasa)")
	ensembleCmd.Flags().BoolVar(&flagDSSP, "dssp", false, "add secondary structure column (needs mkdssp)")
	ensembleCmd.MarkFlagRequired("uniprot")
	ensembleCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(ensembleCmd)
}
