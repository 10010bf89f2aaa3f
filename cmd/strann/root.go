package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	flagDataDir  string
	flagOutDir   string
	flagSegments string
	flagEmail    string
	flagPost     bool
)

var rootCmd = &cobra.Command{
	Use:   "strann",
	Short: "Structure-derived residue annotations for UniProt accessions",
	Long: `strann retrieves the solved structures covering an UniProt accession,
reconciles UniProt and PDB residue numbering through the SIFTS observed
segments, and writes per-residue annotation tables plus SWISS-MODEL
annotation tracks.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataDir, "data", "data", "directory for cached downloads")
	pf.StringVar(&flagOutDir, "out", "results", "output directory")
	pf.StringVar(&flagSegments, "segments", "",
		"path to uniprot_segments_observed.tsv (default <data>/uniprot_segments_observed.tsv)")
	pf.StringVar(&flagEmail, "email", os.Getenv("STRANN_EMAIL"),
		"email for SWISS-MODEL annotation uploads")
	pf.BoolVar(&flagPost, "post", false, "post annotation tracks to the SWISS-MODEL beta site")
}

func segmentsPath() string {
	if flagSegments != "" {
		return flagSegments
	}
	return filepath.Join(flagDataDir, "uniprot_segments_observed.tsv")
}
