// Package annotate assembles per-residue annotation tables for
// structures covering an UniProt accession, in both the author (PDB)
// and the canonical (UniProt) numbering frames.
package annotate

import (
	"fmt"
	"sort"

	"github.com/tikz/strann/dssp"
	"github.com/tikz/strann/interaction"
	"github.com/tikz/strann/pdb"
	"github.com/tikz/strann/pdbe"
	"github.com/tikz/strann/sasa"
)

// ContactDistance is the cutoff in ångströms for the geometric contact
// columns.
const ContactDistance = 5.0

// Column is a named per-residue value series, parallel to the residue
// number slices of the table it belongs to.
type Column struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Annotations is the per-residue table for a single structure chain.
// All slices have the same length: one entry per residue present in the
// reconciled numbering mapping, ordered by author residue number.
type Annotations struct {
	UniProtID string `json:"uniprotId"`
	PDBID     string `json:"pdbId"`
	Chain     string `json:"chain"`

	ResidueNumbers []int64  `json:"residueNumbers"` // author numbering
	UniProtNumbers []int64  `json:"uniprotNumbers"` // canonical numbering
	Columns        []Column `json:"columns"`

	residues []*pdb.Residue
}

// Single builds the annotation table for one structure chain from the
// reconciled author to UniProt position mapping. The base columns come
// from the structure itself: B-factors and contact counts.
func Single(unpID string, s *pdbe.Structure, p *pdb.PDB, resMap map[int64]int64) *Annotations {
	a := &Annotations{
		UniProtID: unpID,
		PDBID:     s.PDBID,
		Chain:     s.ChainID,
	}

	for pos := range resMap {
		a.ResidueNumbers = append(a.ResidueNumbers, pos)
	}
	sort.Slice(a.ResidueNumbers, func(i, j int) bool {
		return a.ResidueNumbers[i] < a.ResidueNumbers[j]
	})

	chain := p.Chains[s.ChainID]
	for _, pos := range a.ResidueNumbers {
		a.UniProtNumbers = append(a.UniProtNumbers, resMap[pos])
		a.residues = append(a.residues, chain[pos])
	}

	a.addBFactors()
	a.addContacts(p)

	return a
}

// Title returns the identifier used for output files.
func (a *Annotations) Title() string {
	title := a.UniProtID + "_" + a.PDBID
	if a.Chain != "" {
		title += "_chain_" + a.Chain
	}
	return title
}

// AddColumn appends a value column. The series must have one value per
// mapped residue.
func (a *Annotations) AddColumn(name string, values []float64) error {
	if len(values) != len(a.ResidueNumbers) {
		return fmt.Errorf("column %s has %d values for %d residues",
			name, len(values), len(a.ResidueNumbers))
	}
	a.Columns = append(a.Columns, Column{Name: name, Values: values})
	return nil
}

// Column returns the values for a column name.
func (a *Annotations) Column(name string) ([]float64, bool) {
	for _, c := range a.Columns {
		if c.Name == name {
			return c.Values, true
		}
	}
	return nil, false
}

func (a *Annotations) addBFactors() {
	mean := make([]float64, len(a.residues))
	norm := make([]float64, len(a.residues))
	for i, res := range a.residues {
		mean[i] = res.MeanBFactor
		norm[i] = res.NormMeanBFactor
	}
	a.AddColumn("mean_bfactor", mean)
	a.AddColumn("norm_mean_bfactor", norm)
}

func (a *Annotations) addContacts(p *pdb.PDB) {
	chainContacts := interaction.ChainContacts(p, ContactDistance)
	hetContacts := interaction.HetContacts(p, ContactDistance)

	chain := make([]float64, len(a.residues))
	het := make([]float64, len(a.residues))
	for i, res := range a.residues {
		chain[i] = float64(chainContacts[res])
		het[i] = float64(hetContacts[res])
	}
	a.AddColumn("chain_contacts", chain)
	a.AddColumn("het_contacts", het)
}

// AddSASA adds the relative solvent accessibility column from freesasa
// results.
func (a *Annotations) AddSASA(results map[*pdb.Residue]sasa.ResidueSASA) {
	values := make([]float64, len(a.residues))
	for i, res := range a.residues {
		values[i] = results[res].RelAll
	}
	a.AddColumn("relative_solvent_accessibility", values)
}

// AddDSSP adds the secondary structure column from mkdssp results,
// encoded as the DSSP class index so the table stays numeric.
func (a *Annotations) AddDSSP(results map[*pdb.Residue]string) {
	values := make([]float64, len(a.residues))
	for i, res := range a.residues {
		values[i] = float64(dssp.ClassIndex(results[res]))
	}
	a.AddColumn("secondary_structure", values)
}
