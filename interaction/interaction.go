// Package interaction derives per-residue contact counts from structure
// geometry.
package interaction

import (
	"github.com/tikz/strann/pdb"
)

// ChainContacts receives a structure and a cutoff distance, and returns
// per residue the number of residues from other chains that are near.
func ChainContacts(p *pdb.PDB, distance float64) map[*pdb.Residue]int {
	contacts := make(map[*pdb.Residue]int)
	var i1, i2 int
	for chainName1, chain1 := range p.Chains {
		i2 = 0
		for chainName2, chain2 := range p.Chains {
			if i2 > i1 && chainName1 != chainName2 {
				for _, res1 := range chain1 {
					for _, res2 := range chain2 {
						if pdb.ResiduesDistance(res1, res2) < distance {
							contacts[res1]++
							contacts[res2]++
						}
					}
				}
			}
			i2++
		}
		i1++
	}
	return contacts
}

// HetContacts receives a structure and a cutoff distance, and returns
// per residue the number of het (ligand) groups that are near. Waters
// are not counted.
func HetContacts(p *pdb.PDB, distance float64) map[*pdb.Residue]int {
	contacts := make(map[*pdb.Residue]int)
	for _, chain := range p.Chains {
		for _, res := range chain {
			for het, near := range NearHets(p, res, distance) {
				if near && het != "HOH" {
					contacts[res]++
				}
			}
		}
	}
	return contacts
}

// NearHets returns a map of het group names present in the structure
// (HOH, SO4, etc) to a bool indicating if the group is near the given
// residue.
func NearHets(p *pdb.PDB, r *pdb.Residue, distance float64) map[string]bool {
	hets := make(map[string]bool)
	for _, atom := range r.Atoms {
		for _, hetAtom := range p.HetAtoms {
			if _, ok := hets[hetAtom.Residue]; !ok {
				hets[hetAtom.Residue] = false
			}
			if pdb.Distance(atom, hetAtom) < distance {
				hets[hetAtom.Residue] = true
			}
		}
	}
	return hets
}

// NearWater returns if the given residue is near a HOH het.
func NearWater(p *pdb.PDB, r *pdb.Residue, distance float64) bool {
	for _, atom := range r.Atoms {
		for _, hetAtom := range p.HetAtoms {
			if hetAtom.Residue == "HOH" && pdb.Distance(atom, hetAtom) < distance {
				return true
			}
		}
	}
	return false
}
