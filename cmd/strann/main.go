// strann cross references structure-derived annotations for a protein
// across its solved PDB structures, reconciling UniProt and PDB residue
// numbering.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
