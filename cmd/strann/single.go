package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tikz/strann/annotate"
	"github.com/tikz/strann/dssp"
	"github.com/tikz/strann/mapping"
	"github.com/tikz/strann/pdbe"
	"github.com/tikz/strann/sasa"
	"github.com/tikz/strann/sifts"
)

var (
	flagUniProt string
	flagPDB     string
	flagSASA    bool
	flagDSSP    bool
)

var singleCmd = &cobra.Command{
	Use:   "single",
	Short: "Annotate a single PDB structure of an accession",
	RunE: func(cmd *cobra.Command, args []string) error {
		segments, err := sifts.LoadSegments(segmentsPath())
		if err != nil {
			return err
		}

		m, err := loadMapper(flagUniProt, segments)
		if err != nil {
			return err
		}

		s, err := m.StructureByID(flagPDB)
		if err != nil {
			return err
		}

		a, err := annotateStructure(m, s)
		if err != nil {
			return err
		}

		return writeOutputs(a)
	},
}

func init() {
	singleCmd.Flags().StringVarP(&flagUniProt, "uniprot", "u", "", "UniProt accession")
	singleCmd.Flags().StringVarP(&flagPDB, "pdb", "p", "", "PDB ID")
	singleCmd.Flags().BoolVar(&flagSASA, "sasa", false, "add solvent accessibility column (needs freesasa)")
	singleCmd.Flags().BoolVar(&flagDSSP, "dssp", false, "add secondary structure column (needs mkdssp)")
	singleCmd.MarkFlagRequired("uniprot")
	singleCmd.MarkFlagRequired("pdb")

	rootCmd.AddCommand(singleCmd)
}

// annotateStructure fetches a structure, reconciles its numbering
// against the accession and builds its annotation table.
func annotateStructure(m *mapping.Mapper, s *pdbe.Structure) (*annotate.Annotations, error) {
	p, err := loadPDB(s.PDBID)
	if err != nil {
		return nil, err
	}

	resMap, mismatches, err := m.MapToPDB(s, p)
	if err != nil {
		return nil, err
	}
	for _, mm := range mismatches {
		log.Printf("%s chain %s: residue %d is %s, canonical sequence has %s",
			s.PDBID, s.ChainID, mm.Position, mm.PDBAa, mm.UnpAa)
	}
	log.Printf("%s chain %s: %d residues mapped, %d mismatches",
		s.PDBID, s.ChainID, len(resMap), len(mismatches))

	a := annotate.Single(m.UniProt.ID, s, p, resMap)

	if flagSASA || flagDSSP {
		if err := writePDBFile(p); err != nil {
			return nil, err
		}
	}
	if flagSASA {
		results, err := sasa.RunSASA(p)
		if err != nil {
			return nil, fmt.Errorf("freesasa: %v", err)
		}
		a.AddSASA(results)
	}
	if flagDSSP {
		results, err := dssp.DSSP(p)
		if err != nil {
			return nil, fmt.Errorf("mkdssp: %v", err)
		}
		a.AddDSSP(results)
	}

	return a, nil
}
