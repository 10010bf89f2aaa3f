package pdb

import (
	"os"
	"testing"
)

func loadTestPDB(t *testing.T) *PDB {
	raw, err := os.ReadFile("testdata/6lu7.pdb")
	if err != nil {
		t.Fatalf("cannot open file: %s", err)
	}

	pdb, err := NewPDBFromRaw(raw)
	if err != nil {
		t.Fatal(err)
	}

	return pdb
}

func TestChains(t *testing.T) {
	pdb := loadTestPDB(t)

	// 75 residues minus the 10-12 gap.
	actual := pdb.TotalLength
	expected := int64(72)
	if actual != expected {
		t.Errorf("expected %d, got %d", expected, actual)
	}

	res := pdb.Chains["A"][1]
	expect := "Alanine"
	if res.Name != expect {
		t.Errorf("expected %s in A-1, got %s", expect, res.Name)
	}

	if _, ok := pdb.Chains["A"][11]; ok {
		t.Error("expected no residue at A-11 (unobserved)")
	}

	res = pdb.Chains["A"][20]
	if res.Name1 != "V" {
		t.Errorf("expected V in A-20, got %s", res.Name1)
	}

	if len(pdb.HetGroups) != 2 {
		t.Errorf("expected 2 het groups, got %d", len(pdb.HetGroups))
	}
}

func TestSeqRes(t *testing.T) {
	pdb := loadTestPDB(t)

	err := pdb.ExtractSeqRes()
	if err != nil {
		t.Error(err)
	}

	if len(pdb.SeqRes["A"]) != 75 {
		t.Fatalf("expected 75 SEQRES residues, got %d", len(pdb.SeqRes["A"]))
	}

	res := pdb.SeqRes["A"][0]
	expected := "Alanine"
	if res.Name != expected {
		t.Errorf("expected %s in SEQRES A-1, got %s", expected, res.Name)
	}

	res = pdb.SeqRes["A"][74]
	expected = "Arginine"
	if res.Name != expected {
		t.Errorf("expected %s in SEQRES A-75, got %s", expected, res.Name)
	}
}

func TestCarbonAlpha(t *testing.T) {
	pdb := loadTestPDB(t)

	if pdb.Chains["A"][30].CA() != nil {
		t.Error("expected no alpha carbon at A-30")
	}
	if pdb.Chains["A"][1].CA() == nil {
		t.Error("expected alpha carbon at A-1")
	}

	residues := pdb.CAlphaResidues("A")
	if len(residues) != 71 {
		t.Errorf("expected 71 alpha carbon residues, got %d", len(residues))
	}
}

func TestBFactors(t *testing.T) {
	pdb := loadTestPDB(t)

	res := pdb.Chains["A"][1]
	if res.MeanBFactor != 12.0 {
		t.Errorf("expected mean B-factor 12.0 in A-1, got %f", res.MeanBFactor)
	}

	var zSum float64
	for _, res := range pdb.Chains["A"] {
		zSum += res.NormMeanBFactor
	}
	if zSum > 1e-6 || zSum < -1e-6 {
		t.Errorf("expected normalized B-factors to sum to zero, got %f", zSum)
	}
}

func TestCIF(t *testing.T) {
	pdb := loadTestPDB(t)

	rawCIF, err := os.ReadFile("testdata/6lu7.cif")
	if err != nil {
		t.Fatalf("cannot open file: %s", err)
	}
	pdb.RawCIF = rawCIF

	err = pdb.ExtractCIFData()
	if err != nil {
		t.Fatalf("cannot extract CIF: %s", err)
	}

	if pdb.Title != "Test protease structure" {
		t.Errorf("unexpected title %q", pdb.Title)
	}
	if pdb.Method != "X-RAY DIFFRACTION" {
		t.Errorf("unexpected method %q", pdb.Method)
	}
	if pdb.Resolution != 2.16 {
		t.Errorf("expected resolution 2.16, got %f", pdb.Resolution)
	}
	if pdb.Date.Year() != 2020 || int(pdb.Date.Month()) != 1 || pdb.Date.Day() != 26 {
		t.Error("expected deposition date 2020-01-26")
	}
}

func TestIsAminoacid(t *testing.T) {
	if !IsAminoacid("V") {
		t.Error("expected V to be an aminoacid")
	}
	if IsAminoacid("X") {
		t.Error("expected X not to be an aminoacid")
	}
}

func TestDistance(t *testing.T) {
	a1 := &Atom{X: 0, Y: 0, Z: 0}
	a2 := &Atom{X: 3, Y: 4, Z: 0}
	if d := Distance(a1, a2); d != 5 {
		t.Errorf("expected distance 5, got %f", d)
	}

	r1 := &Residue{Atoms: []*Atom{a1, {X: 1, Y: 0, Z: 0}}}
	r2 := &Residue{Atoms: []*Atom{{X: 3, Y: 0, Z: 0}}}
	if d := ResiduesDistance(r1, r2); d != 2 {
		t.Errorf("expected min distance 2, got %f", d)
	}
}
