package mapping

import (
	"os"
	"strings"
	"testing"

	"github.com/tikz/strann/pdb"
	"github.com/tikz/strann/pdbe"
	"github.com/tikz/strann/sifts"
	"github.com/tikz/strann/uniprot"
)

const testSequence = "MKTAYIAKQRQISFVKSHFSRQLEERLGLIEVQAPILSRVGDGTQDNLSGAEKAVQVKVK" +
	"ALPDAQFEVVHSLAKWKR"

func testMapper(t *testing.T) *Mapper {
	segments, err := sifts.LoadSegments("testdata/segments_observed.tsv")
	if err != nil {
		t.Fatalf("load segments: %s", err)
	}

	u := &uniprot.UniProt{
		ID:       "P12345",
		Sequence: testSequence,
		Features: []*uniprot.Feature{
			{Type: "Chain", Start: 1, End: 78, Note: "Test protease"},
			{Type: "Domain", Start: 10, End: 40, Note: "Peptidase"},
			{Type: "Region", Start: 78, End: 78, Note: "Tail"},
		},
	}

	structures := []*pdbe.Structure{
		{PDBID: "6LU7", ChainID: "A", Method: "X-ray diffraction",
			Resolution: 2.16, Coverage: 0.96, UnpStart: 4, UnpEnd: 78},
		{PDBID: "5R82", ChainID: "A", Method: "X-ray diffraction",
			Resolution: 1.31, Coverage: 0.63, UnpStart: 30, UnpEnd: 78},
	}

	return NewMapperFromData(u, structures, segments)
}

func testStructure(t *testing.T) *pdb.PDB {
	raw, err := os.ReadFile("testdata/6lu7.pdb")
	if err != nil {
		t.Fatalf("cannot open file: %s", err)
	}

	p, err := pdb.NewPDBFromRaw(raw)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestStructuresByName(t *testing.T) {
	m := testMapper(t)

	structures, err := m.StructuresByName("Peptidase")
	if err != nil {
		t.Fatal(err)
	}
	if len(structures) != 2 {
		t.Fatalf("expected 2 structures over Peptidase, got %d", len(structures))
	}
	if structures[0].PDBID != "6LU7" {
		t.Errorf("expected best covered structure 6LU7 first, got %s", structures[0].PDBID)
	}

	// The last position of a covered range still overlaps.
	structures, err = m.StructuresByName("Tail")
	if err != nil {
		t.Fatal(err)
	}
	if len(structures) != 2 {
		t.Errorf("expected 2 structures over Tail, got %d", len(structures))
	}

	_, err = m.StructuresByName("Spike")
	if err == nil {
		t.Fatal("expected error for unknown annotation name")
	}
	if !strings.Contains(err.Error(), "Peptidase") {
		t.Errorf("expected available names in error, got %v", err)
	}
}

func TestStructureByID(t *testing.T) {
	m := testMapper(t)

	s, err := m.StructureByID("6lu7")
	if err != nil {
		t.Fatal(err)
	}
	if s.PDBID != "6LU7" || s.ChainID != "A" {
		t.Errorf("unexpected structure %+v", s)
	}

	_, err = m.StructureByID("1xyz")
	if err == nil {
		t.Fatal("expected error for unknown PDB ID")
	}
	if !strings.Contains(err.Error(), "5R82") {
		t.Errorf("expected available IDs in error, got %v", err)
	}
}

func TestMapToPDB(t *testing.T) {
	m := testMapper(t)
	p := testStructure(t)

	s, err := m.StructureByID("6LU7")
	if err != nil {
		t.Fatal(err)
	}

	resMap, mismatches, err := m.MapToPDB(s, p)
	if err != nil {
		t.Fatal(err)
	}

	// 75 segment positions, minus the 10-12 gap, minus A-30 with no
	// alpha carbon.
	if len(resMap) != 71 {
		t.Errorf("expected 71 mapped residues, got %d", len(resMap))
	}

	// Constant +3 offset between author and UniProt numbering.
	if resMap[1] != 4 {
		t.Errorf("expected A-1 to map to UniProt 4, got %d", resMap[1])
	}
	if resMap[75] != 78 {
		t.Errorf("expected A-75 to map to UniProt 78, got %d", resMap[75])
	}

	// Crystallographic gaps are absent, not aligned around.
	for _, pos := range []int64{10, 11, 12, 30} {
		if _, ok := resMap[pos]; ok {
			t.Errorf("expected no mapping for unobserved residue %d", pos)
		}
	}

	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(mismatches))
	}
	mm := mismatches[0]
	if mm.Position != 20 || mm.PDBAa != "V" || mm.UnpAa != "L" {
		t.Errorf("unexpected mismatch %+v", mm)
	}
}

func TestMapToPDBModifiedResidue(t *testing.T) {
	m := testMapper(t)

	raw := "ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00 10.00           C\n" +
		"ATOM      2  CA  MSE A   2       3.800   0.000   0.000  1.00 10.00           C\n"
	p, err := pdb.NewPDBFromRaw([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}

	s := &pdbe.Structure{PDBID: "9ZZZ", ChainID: "A"}
	resMap, mismatches, err := m.MapToPDB(s, p)
	if err != nil {
		t.Fatal(err)
	}

	// The selenomethionine at A-2 has no standard one-letter code: it
	// maps but doesn't count as a mismatch against the canonical K.
	if len(resMap) != 2 || resMap[2] != 2 {
		t.Errorf("unexpected mapping %v", resMap)
	}
	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(mismatches))
	}
	if mismatches[0].Position != 1 || mismatches[0].PDBAa != "A" || mismatches[0].UnpAa != "M" {
		t.Errorf("unexpected mismatch %+v", mismatches[0])
	}
}

func TestMapToPDBNoSegments(t *testing.T) {
	m := testMapper(t)
	p := testStructure(t)

	s := &pdbe.Structure{PDBID: "1ABC", ChainID: "B"}
	if _, _, err := m.MapToPDB(s, p); err == nil {
		t.Error("expected error for chain without numeric segments")
	}
}

func TestMapperWithoutSegments(t *testing.T) {
	u := &uniprot.UniProt{
		ID:       "P12345",
		Sequence: testSequence,
		Features: []*uniprot.Feature{
			{Type: "Chain", Start: 1, End: 78, Note: "Test protease"},
		},
	}
	structures := []*pdbe.Structure{
		{PDBID: "6LU7", ChainID: "A", UnpStart: 4, UnpEnd: 78},
	}

	// Feature listing works without the observed segments file;
	// reconciliation doesn't.
	m := NewMapperFromData(u, structures, nil)
	if len(m.AvailableAnnotations()) != 1 {
		t.Errorf("unexpected annotations %v", m.AvailableAnnotations())
	}

	s, err := m.StructureByID("6LU7")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.MapToPDB(s, testStructure(t)); err == nil {
		t.Error("expected error without loaded segments")
	}
}
