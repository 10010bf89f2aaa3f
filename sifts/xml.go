package sifts

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tikz/strann/http"
)

const splitXMLURL = "https://ftp.ebi.ac.uk/pub/databases/msd/sifts/split_xml/"

// ResidueLink is a residue-level equivalence between the PDB structure
// and an UniProt sequence, taken from the per-entry SIFTS XML.
// The PDB residue number stays a string: unobserved residues are
// published as "null" and insertion codes are possible.
type ResidueLink struct {
	PDBResNum    string `json:"pdbResNum"`
	PDBResName   string `json:"pdbResName"`
	UnpAccession string `json:"unpAccession"`
	UnpResNum    int64  `json:"unpResNum"`
}

// ResidueMapping downloads the SIFTS XML for a PDB entry and returns the
// residue-level UniProt links for each chain. Residues without an
// UniProt cross reference are skipped.
func ResidueMapping(pdbID string) (map[string][]*ResidueLink, error) {
	pdbID = strings.ToLower(pdbID)
	url := splitXMLURL + pdbID[1:3] + "/" + pdbID + ".xml.gz"

	raw, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get SIFTS XML for %s: %v", pdbID, err)
	}

	gr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decompress SIFTS XML: %v", err)
	}
	defer gr.Close()

	decompressed, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("decompress SIFTS XML: %v", err)
	}

	return parseSIFTSXML(decompressed)
}

type siftsEntry struct {
	XMLName  xml.Name      `xml:"entry"`
	Entities []siftsEntity `xml:"entity"`
}

type siftsEntity struct {
	Type     string         `xml:"type,attr"`
	EntityID string         `xml:"entityId,attr"`
	Segments []siftsSegment `xml:"segment"`
}

type siftsSegment struct {
	Residues []siftsResidue `xml:"listResidue>residue"`
}

type siftsResidue struct {
	DBResNum  string          `xml:"dbResNum,attr"`
	DBResName string          `xml:"dbResName,attr"`
	CrossRefs []siftsCrossRef `xml:"crossRefDb"`
}

type siftsCrossRef struct {
	DBSource      string `xml:"dbSource,attr"`
	DBCoordSys    string `xml:"dbCoordSys,attr"`
	DBResNum      string `xml:"dbResNum,attr"`
	DBResName     string `xml:"dbResName,attr"`
	DBAccessionID string `xml:"dbAccessionId,attr"`
}

func parseSIFTSXML(raw []byte) (map[string][]*ResidueLink, error) {
	var entry siftsEntry
	if err := xml.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal SIFTS XML: %v", err)
	}

	chains := make(map[string][]*ResidueLink)
	for _, ent := range entry.Entities {
		if ent.Type != "protein" {
			continue
		}
		chains[ent.EntityID] = []*ResidueLink{}
		for _, seg := range ent.Segments {
			for _, res := range seg.Residues {
				link := &ResidueLink{
					PDBResNum:  res.DBResNum,
					PDBResName: res.DBResName,
				}
				for _, ref := range res.CrossRefs {
					switch {
					case ref.DBSource == "PDB":
						// Author numbering, when present.
						link.PDBResNum = ref.DBResNum
						link.PDBResName = ref.DBResName
					case ref.DBCoordSys == "UniProt":
						link.UnpAccession = ref.DBAccessionID
						link.UnpResNum, _ = strconv.ParseInt(ref.DBResNum, 10, 64)
					}
				}
				if link.UnpAccession == "" {
					continue
				}
				chains[ent.EntityID] = append(chains[ent.EntityID], link)
			}
		}
	}

	return chains, nil
}
