package annotate

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/tikz/strann/pdb"
	"github.com/tikz/strann/pdbe"
)

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

func testAnnotations(t *testing.T) *Annotations {
	p := testStructure(t)
	s := &pdbe.Structure{PDBID: "6LU7", ChainID: "A"}
	resMap := map[int64]int64{5: 8, 1: 4, 2: 5}

	return Single("P12345", s, p, resMap)
}

func TestSingle(t *testing.T) {
	a := testAnnotations(t)

	if a.Title() != "P12345_6LU7_chain_A" {
		t.Errorf("unexpected title %s", a.Title())
	}

	// Rows come out ordered by author residue number.
	if len(a.ResidueNumbers) != 3 || a.ResidueNumbers[0] != 1 || a.ResidueNumbers[2] != 5 {
		t.Errorf("unexpected residue numbers %v", a.ResidueNumbers)
	}
	if a.UniProtNumbers[0] != 4 || a.UniProtNumbers[2] != 8 {
		t.Errorf("unexpected UniProt numbers %v", a.UniProtNumbers)
	}

	mean, ok := a.Column("mean_bfactor")
	if !ok {
		t.Fatal("mean_bfactor column missing")
	}
	if mean[0] != 12.0 {
		t.Errorf("expected mean B-factor 12.0 for A-1, got %f", mean[0])
	}

	// Single chain structure: no inter-chain contacts anywhere.
	chainContacts, _ := a.Column("chain_contacts")
	for i, v := range chainContacts {
		if v != 0 {
			t.Errorf("expected no chain contacts at row %d, got %f", i, v)
		}
	}

	// The SO4 group sits next to residue 5; waters don't count.
	hetContacts, _ := a.Column("het_contacts")
	if hetContacts[2] != 1 {
		t.Errorf("expected 1 het contact for A-5, got %f", hetContacts[2])
	}
	if hetContacts[0] != 0 {
		t.Errorf("expected no het contacts for A-1, got %f", hetContacts[0])
	}
}

func TestAddColumnLengthCheck(t *testing.T) {
	a := testAnnotations(t)

	if err := a.AddColumn("bad", []float64{1}); err == nil {
		t.Error("expected error for wrong length column")
	}
	if err := a.AddColumn("good", []float64{1, 2, 3}); err != nil {
		t.Error(err)
	}
}

func TestWriteCSV(t *testing.T) {
	a := testAnnotations(t)

	var buf bytes.Buffer
	if err := a.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}

	header := strings.Split(lines[0], ",")
	if header[0] != "residue_numbers" || header[1] != "uniprot_annotation" {
		t.Errorf("unexpected header %v", header)
	}
	if len(header) != 2+len(a.Columns) {
		t.Errorf("expected %d header fields, got %d", 2+len(a.Columns), len(header))
	}

	row := strings.Split(lines[1], ",")
	if row[0] != "1" || row[1] != "4" {
		t.Errorf("unexpected first row %v", row)
	}
	if row[2] != "12.00" {
		t.Errorf("expected rounded mean B-factor 12.00, got %s", row[2])
	}
}

func TestEnsemble(t *testing.T) {
	e1 := &Annotations{
		UniProtID:      "P12345",
		PDBID:          "6LU7",
		Chain:          "A",
		ResidueNumbers: []int64{1, 2, 3},
		UniProtNumbers: []int64{4, 5, 6},
		Columns:        []Column{{Name: "x", Values: []float64{1, 2, 3}}},
	}
	e2 := &Annotations{
		UniProtID:      "P12345",
		PDBID:          "5R82",
		Chain:          "A",
		ResidueNumbers: []int64{5, 6, 7},
		UniProtNumbers: []int64{5, 6, 7},
		Columns:        []Column{{Name: "x", Values: []float64{3, 4, 5}}},
	}

	e := NewEnsemble("P12345", []*Annotations{e1, e2})

	if e.Title() != "P12345_ensemble" {
		t.Errorf("unexpected title %s", e.Title())
	}

	wantPos := []int64{4, 5, 6, 7}
	if len(e.Positions) != len(wantPos) {
		t.Fatalf("expected %d positions, got %d", len(wantPos), len(e.Positions))
	}
	for i, pos := range wantPos {
		if e.Positions[i] != pos {
			t.Errorf("expected position %d at %d, got %d", pos, i, e.Positions[i])
		}
	}

	wantCov := []float64{1, 2, 2, 1}
	for i, cov := range wantCov {
		if e.Coverage[i] != cov {
			t.Errorf("expected coverage %f at position %d, got %f", cov, e.Positions[i], e.Coverage[i])
		}
	}

	x := e.Columns[0]
	wantMeans := []float64{1, 2.5, 3.5, 5}
	for i, mean := range wantMeans {
		if x.Values[i] != mean {
			t.Errorf("expected mean %f at position %d, got %f", mean, e.Positions[i], x.Values[i])
		}
	}

	var buf bytes.Buffer
	if err := e.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d lines", len(lines))
	}
	if lines[2] != "5,2,2.50" {
		t.Errorf("unexpected row %q", lines[2])
	}
}
