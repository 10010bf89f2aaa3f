// Package pdbe clients the PDBe best-structures API, which ranks the
// experimentally determined structures covering an UniProt accession.
// Reference: https://www.ebi.ac.uk/pdbe/api/doc/sifts.html
package pdbe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tikz/strann/http"
)

const bestStructuresURL = "https://www.ebi.ac.uk/pdbe/api/mappings/best_structures/"

// Structure represents a single entry from the best-structures ranking.
type Structure struct {
	PDBID      string  `json:"pdb_id"`
	ChainID    string  `json:"chain_id"`
	Method     string  `json:"experimental_method"`
	Resolution float64 `json:"resolution"`
	Coverage   float64 `json:"coverage"`
	UnpStart   int64   `json:"unp_start"` // first covered UniProt position
	UnpEnd     int64   `json:"unp_end"`   // last covered UniProt position
	Start      int64   `json:"start"`     // first covered SEQRES position
	End        int64   `json:"end"`       // last covered SEQRES position
	TaxID      int64   `json:"tax_id"`
}

// BestStructures retrieves the available X-ray structures for a given
// UniProt accession, best ranked first, deduplicated by PDB ID and chain.
// Accessions without crystals make the API answer non-200; that case is
// an empty list, not an error.
func BestStructures(unpID string) ([]*Structure, error) {
	raw, _ := http.Get(bestStructuresURL + unpID)
	return parseBestStructures(raw, unpID)
}

func parseBestStructures(raw []byte, unpID string) ([]*Structure, error) {
	unps := make(map[string]json.RawMessage)
	err := json.Unmarshal(raw, &unps)
	if err != nil { // Empty JSON, no crystals
		return []*Structure{}, nil
	}

	entries, ok := unps[unpID]
	if !ok {
		return []*Structure{}, nil
	}

	var structures []*Structure
	err = json.Unmarshal(entries, &structures)
	if err != nil {
		return nil, fmt.Errorf("unmarshal UniProt keys: %v", err)
	}

	return dedupe(structures), nil
}

func dedupe(structures []*Structure) []*Structure {
	seen := make(map[string]struct{})
	var unique []*Structure

	for _, s := range structures {
		key := s.PDBID + "_" + s.ChainID
		if _, ok := seen[key]; !ok && s.Method == "X-ray diffraction" {
			s.PDBID = strings.ToUpper(s.PDBID)
			unique = append(unique, s)
			seen[key] = struct{}{}
		}
	}

	return unique
}
