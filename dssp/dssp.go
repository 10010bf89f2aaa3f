// Package dssp wraps the mkdssp tool to assign per-residue secondary
// structure.
package dssp

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/tikz/strann/pdb"
)

// classes are the DSSP secondary structure codes, loop first.
var classes = []string{" ", "H", "B", "E", "G", "I", "T", "S"}

// ClassIndex returns a numeric index for a DSSP secondary structure
// code: 0 for loop or unknown codes, then H, B, E, G, I, T, S in order.
func ClassIndex(class string) int {
	for i, c := range classes {
		if c == class {
			return i
		}
	}
	return 0
}

// DSSP calculates secondary structure for a given PDB.
func DSSP(p *pdb.PDB) (map[*pdb.Residue]string, error) {
	cmd := exec.Command("mkdssp", "-i", p.LocalPath)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, err
	}

	return parse(out, p), nil
}

// parse matches output lines to residues of the structure.
// https://swift.cmbi.umcn.nl/gv/dssp/
func parse(out []byte, p *pdb.PDB) map[*pdb.Residue]string {
	results := make(map[*pdb.Residue]string)

	start := false
	for _, l := range strings.Split(string(out), "\n") {
		if len(l) <= 17 {
			continue
		}
		if start {
			posStr := strings.TrimSpace(l[5:10])
			if len(posStr) > 0 {
				chain := string(l[11])
				pos, _ := strconv.ParseInt(posStr, 10, 64)
				if chain, ok := p.Chains[chain]; ok {
					if res, ok := chain[pos]; ok {
						results[res] = string(l[16])
					}
				}
			}
		}
		if string(l[2]) == "#" {
			start = true
		}
	}

	return results
}
