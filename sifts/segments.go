// Package sifts reads the EBI SIFTS resources that link UniProt sequence
// numbering with PDB structure numbering: the observed-segments summary
// flat file and the per-entry residue-level XML mappings.
package sifts

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

const segmentsURL = "https://ftp.ebi.ac.uk/pub/databases/msd/sifts/flatfiles/tsv/uniprot_segments_observed.tsv.gz"

// Segment is a row from uniprot_segments_observed.tsv: a continuous run
// of observed residues in one chain, with its start and end in SEQRES,
// PDB author and UniProt numbering.
type Segment struct {
	Accession string // SP_PRIMARY
	ResBeg    int64  // RES_BEG, SEQRES numbering
	ResEnd    int64  // RES_END
	PDBBegRaw string // PDB_BEG as published ("None", insertion codes)
	PDBEndRaw string // PDB_END as published
	PDBBeg    int64  // PDB_BEG, author numbering, valid if Numeric
	PDBEnd    int64  // PDB_END
	UnpBeg    int64  // SP_BEG, UniProt numbering
	UnpEnd    int64  // SP_END

	numeric bool
}

// Numeric returns true if the segment is usable for offset
// reconciliation: the author numbering bounds are plain integers and the
// UniProt bounds parse to a valid 1-based range.
func (s *Segment) Numeric() bool {
	return s.numeric
}

// Segments holds the parsed mapping file indexed by PDB ID and chain.
type Segments struct {
	byChain map[[2]string][]*Segment
}

// LoadSegments parses the observed-segments file at the given path,
// downloading and decompressing it from the EBI flat-file tree first if
// it does not exist.
func LoadSegments(path string) (*Segments, error) {
	if err := downloadSegments(path); err != nil {
		return nil, fmt.Errorf("download segments file: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseSegments(f)
}

func parseSegments(r io.Reader) (*Segments, error) {
	segments := &Segments{byChain: make(map[[2]string][]*Segment)}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for s.Scan() {
		line++
		if line <= 2 { // date comment and column header
			continue
		}

		fields := strings.Split(s.Text(), "\t")
		if len(fields) < 9 {
			continue
		}

		seg := &Segment{
			Accession: fields[2],
			PDBBegRaw: fields[5],
			PDBEndRaw: fields[6],
		}
		seg.ResBeg, _ = strconv.ParseInt(fields[3], 10, 64)
		seg.ResEnd, _ = strconv.ParseInt(fields[4], 10, 64)

		var errBeg, errEnd, errUnpBeg, errUnpEnd error
		seg.UnpBeg, errUnpBeg = strconv.ParseInt(fields[7], 10, 64)
		seg.UnpEnd, errUnpEnd = strconv.ParseInt(fields[8], 10, 64)
		seg.PDBBeg, errBeg = strconv.ParseInt(fields[5], 10, 64)
		seg.PDBEnd, errEnd = strconv.ParseInt(fields[6], 10, 64)
		seg.numeric = errBeg == nil && errEnd == nil &&
			errUnpBeg == nil && errUnpEnd == nil &&
			seg.UnpBeg >= 1 && seg.UnpEnd >= seg.UnpBeg

		key := [2]string{strings.ToLower(fields[0]), fields[1]}
		segments.byChain[key] = append(segments.byChain[key], seg)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return segments, nil
}

// Chain returns all observed segments for a PDB ID and chain.
func (s *Segments) Chain(pdbID string, chain string) ([]*Segment, error) {
	key := [2]string{strings.ToLower(pdbID), chain}
	segs, ok := s.byChain[key]
	if !ok {
		return nil, fmt.Errorf("no observed segments for %s chain %s", pdbID, chain)
	}
	return segs, nil
}

// ChainAccession returns the numeric segments of a chain that map to the
// given UniProt accession.
func (s *Segments) ChainAccession(pdbID string, chain string, accession string) ([]*Segment, error) {
	segs, err := s.Chain(pdbID, chain)
	if err != nil {
		return nil, err
	}

	var matched []*Segment
	for _, seg := range segs {
		if seg.Accession == accession && seg.Numeric() {
			matched = append(matched, seg)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no numeric segments for %s chain %s mapping to %s",
			pdbID, chain, accession)
	}

	return matched, nil
}

// downloadSegments downloads and decompresses the observed-segments file
// from the EBI flat-file tree, only if the file doesn't exist already.
func downloadSegments(path string) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		resp, err := http.Get(segmentsURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 {
			return fmt.Errorf("HTTP status code %d", resp.StatusCode)
		}

		out, err := os.Create(path)
		if err != nil {
			return err
		}
		defer out.Close()

		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gr.Close()

		_, err = io.Copy(out, gr)
		return err
	}

	return nil
}
