// Package sasa wraps the freesasa tool to compute per-residue solvent
// accessible surface areas.
package sasa

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/tikz/strann/pdb"
)

// ResidueSASA represents results for a single residue, a line in the
// RSA format output.
type ResidueSASA struct {
	All       float64
	RelAll    float64
	Side      float64
	RelSide   float64
	Main      float64
	RelMain   float64
	Apolar    float64
	RelApolar float64
	Polar     float64
	RelPolar  float64
}

// RunSASA runs freesasa on the file pointed by pdb.LocalPath and returns
// per-residue accessibilities.
func RunSASA(p *pdb.PDB) (map[*pdb.Residue]ResidueSASA, error) {
	cmd := exec.Command("freesasa",
		p.LocalPath,
		"--format=rsa")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, err
	}

	return parseRSA(out, p), nil
}

// BuriedResidues returns a list of buried residues (relative sidechain
// SASA < 50%), glycines excluded.
func BuriedResidues(p *pdb.PDB) ([]*pdb.Residue, error) {
	results, err := RunSASA(p)
	if err != nil {
		return nil, err
	}

	var buried []*pdb.Residue
	for res, rs := range results {
		if res.Name3 != "Gly" && rs.RelSide < 50 {
			buried = append(buried, res)
		}
	}

	return buried, nil
}

// parseRSA parses RSA formatted output and matches lines to residues of
// the structure by chain and author residue number.
// https://freesasa.github.io/doxygen/CLI.html
func parseRSA(out []byte, p *pdb.PDB) map[*pdb.Residue]ResidueSASA {
	results := make(map[*pdb.Residue]ResidueSASA)

	for _, l := range strings.Split(string(out), "\n") {
		if len(l) < 14 || l[0:3] != "RES" {
			continue
		}

		chain := string(l[8])
		pos, err := strconv.ParseInt(strings.TrimSpace(l[9:13]), 10, 64)
		if err != nil {
			continue
		}
		res, ok := p.Chains[chain][pos]
		if !ok {
			continue
		}

		fields := strings.Fields(l[13:])
		if len(fields) < 10 {
			continue
		}
		values := make([]float64, 10)
		for i := range values {
			values[i], _ = strconv.ParseFloat(fields[i], 64)
		}

		results[res] = ResidueSASA{
			All:       values[0],
			RelAll:    values[1],
			Side:      values[2],
			RelSide:   values[3],
			Main:      values[4],
			RelMain:   values[5],
			Apolar:    values[6],
			RelApolar: values[7],
			Polar:     values[8],
			RelPolar:  values[9],
		}
	}

	return results
}
