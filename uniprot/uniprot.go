// Package uniprot fetches protein entries from UniProtKB: the canonical
// sequence in FASTA format and the feature table in GFF format.
package uniprot

import (
	"fmt"

	"github.com/tikz/strann/http"
)

const restURL = "https://rest.uniprot.org/uniprotkb/"

// UniProt contains relevant protein data for a single accession.
type UniProt struct {
	ID       string     `json:"id"`       // accession ID
	FastaURL string     `json:"fastaUrl"` // FASTA API URL for the entry
	GFFURL   string     `json:"gffUrl"`   // GFF API URL for the entry
	Entry    string     `json:"entry"`    // entry name (i.e. R1AB_SARS2)
	Name     string     `json:"name"`     // protein name
	Gene     string     `json:"gene"`     // gene code
	Organism string     `json:"organism"` // organism
	Sequence string     `json:"sequence"` // canonical sequence
	Features []*Feature `json:"features"` // feature table entries

	RawFasta []byte `json:"-"` // FASTA API raw bytes
	RawGFF   []byte `json:"-"` // GFF API raw bytes
}

// NewUniProt constructs an instance from an UniProt accession ID,
// fetching and parsing the sequence and feature data.
func NewUniProt(uniprotID string) (*UniProt, error) {
	u := &UniProt{
		ID:       uniprotID,
		FastaURL: restURL + uniprotID + ".fasta",
		GFFURL:   restURL + uniprotID + ".gff",
	}

	raw, err := http.Get(u.FastaURL)
	if err != nil {
		return nil, fmt.Errorf("get UniProt accession %v: %v", uniprotID, err)
	}
	u.RawFasta = raw

	raw, err = http.Get(u.GFFURL)
	if err != nil {
		return nil, fmt.Errorf("get UniProt features %v: %v", uniprotID, err)
	}
	u.RawGFF = raw

	err = u.extract()
	if err != nil {
		return nil, fmt.Errorf("extract %v: %v", uniprotID, err)
	}

	return u, nil
}

// extract parses the raw API responses.
func (u *UniProt) extract() error {
	err := u.extractFasta()
	if err != nil {
		return fmt.Errorf("parse FASTA: %v", err)
	}

	err = u.extractFeatures()
	if err != nil {
		return fmt.Errorf("parse GFF: %v", err)
	}

	return nil
}

// NamedIntervals returns the sequence ranges of features carrying a
// Note attribute, keyed by note text. For polyprotein entries these are
// the ranges of the individual mature proteins.
func (u *UniProt) NamedIntervals() map[string][2]int64 {
	intervals := make(map[string][2]int64)
	for _, f := range u.Features {
		if f.Note != "" {
			intervals[f.Note] = [2]int64{f.Start, f.End}
		}
	}
	return intervals
}
