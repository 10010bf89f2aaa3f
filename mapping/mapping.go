// Package mapping reconciles UniProt sequence numbering with PDB author
// numbering for the structures covering an accession, via the SIFTS
// observed segments.
//
// The two numbering systems describe the same sequence but disagree
// whenever the crystal has unobserved residues, expression tags or
// author renumbering. Reconciliation here is positional: within an
// observed segment the correspondence is one-to-one modulo the segment
// offset, never an edit-distance alignment.
package mapping

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/biogo/store/interval"

	"github.com/tikz/strann/pdb"
	"github.com/tikz/strann/pdbe"
	"github.com/tikz/strann/sifts"
	"github.com/tikz/strann/uniprot"
)

// Mapper cross references an UniProt accession with the PDB structures
// covering it.
type Mapper struct {
	UniProt    *uniprot.UniProt
	Intervals  map[string][2]int64        // named annotation intervals in UniProt numbering
	Structures map[string]*pdbe.Structure // PDB ID to best structure record

	segments *sifts.Segments
	tree     *interval.IntTree
}

// Mismatch is a residue where the observed structure disagrees with the
// canonical sequence at the reconciled position.
type Mismatch struct {
	Position int64  `json:"position"` // author residue number
	PDBAa    string `json:"pdbAa"`    // observed aminoacid
	UnpAa    string `json:"unpAa"`    // canonical aminoacid
}

// structureRange is an entry of the interval tree: the UniProt range
// covered by one structure, stored half open so the last covered
// position participates in overlap queries.
type structureRange struct {
	start, end int
	id         uintptr
	entry      *pdbe.Structure
}

func (r structureRange) Range() interval.IntRange {
	return interval.IntRange{Start: r.start, End: r.end}
}

func (r structureRange) Overlap(b interval.IntRange) bool {
	return r.end > b.Start && r.start < b.End
}

func (r structureRange) ID() uintptr { return r.id }

// NewMapper fetches the UniProt entry and its best structures and
// assembles a Mapper over the given observed segments.
func NewMapper(unpID string, segments *sifts.Segments) (*Mapper, error) {
	u, err := uniprot.NewUniProt(unpID)
	if err != nil {
		return nil, err
	}

	structures, err := pdbe.BestStructures(unpID)
	if err != nil {
		return nil, fmt.Errorf("best structures for %v: %v", unpID, err)
	}

	return NewMapperFromData(u, structures, segments), nil
}

// NewMapperFromData assembles a Mapper from already fetched data.
func NewMapperFromData(u *uniprot.UniProt, structures []*pdbe.Structure, segments *sifts.Segments) *Mapper {
	m := &Mapper{
		UniProt:    u,
		Intervals:  u.NamedIntervals(),
		Structures: make(map[string]*pdbe.Structure),
		segments:   segments,
		tree:       &interval.IntTree{},
	}

	var id uintptr
	for _, s := range structures {
		if _, ok := m.Structures[s.PDBID]; !ok {
			m.Structures[s.PDBID] = s
		}
		m.tree.Insert(structureRange{
			start: int(s.UnpStart),
			end:   int(s.UnpEnd) + 1,
			id:    id,
			entry: s,
		}, false)
		id++
	}

	return m
}

// AvailableAnnotations returns the names of the annotation intervals
// present in the entry, sorted.
func (m *Mapper) AvailableAnnotations() []string {
	var names []string
	for name := range m.Intervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StructuresByName returns the structures overlapping the named
// annotation interval, i.e. the crystals covering one mature protein of
// a polyprotein entry. Best covered structures first.
func (m *Mapper) StructuresByName(name string) ([]*pdbe.Structure, error) {
	r, ok := m.Intervals[name]
	if !ok {
		return nil, fmt.Errorf("no annotation named %q, available ones: %s",
			name, strings.Join(m.AvailableAnnotations(), ", "))
	}

	q := structureRange{start: int(r[0]), end: int(r[1]) + 1}
	var structures []*pdbe.Structure
	for _, e := range m.tree.Get(q) {
		structures = append(structures, e.(structureRange).entry)
	}

	sort.Slice(structures, func(i, j int) bool {
		if structures[i].Coverage != structures[j].Coverage {
			return structures[i].Coverage > structures[j].Coverage
		}
		return structures[i].PDBID < structures[j].PDBID
	})

	return structures, nil
}

// StructureByID returns the best structure record for a PDB ID.
func (m *Mapper) StructureByID(pdbID string) (*pdbe.Structure, error) {
	s, ok := m.Structures[strings.ToUpper(pdbID)]
	if !ok {
		var ids []string
		for id := range m.Structures {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return nil, fmt.Errorf("PDB ID %s not covered by %s, available IDs: %s",
			pdbID, m.UniProt.ID, strings.Join(ids, ", "))
	}
	return s, nil
}

// MapToPDB reconciles the author residue numbering of a structure chain
// with the UniProt canonical numbering. Returns the author to UniProt
// position mapping for the observed alpha carbon residues, plus the
// residues whose observed aminoacid disagrees with the canonical
// sequence. Modified residues without a standard one-letter code are
// mapped but not reported as mismatches. Unobserved positions are
// simply absent from the mapping.
func (m *Mapper) MapToPDB(s *pdbe.Structure, p *pdb.PDB) (map[int64]int64, []Mismatch, error) {
	if m.segments == nil {
		return nil, nil, errors.New("no observed segments loaded")
	}

	segs, err := m.segments.ChainAccession(s.PDBID, s.ChainID, m.UniProt.ID)
	if err != nil {
		return nil, nil, err
	}

	observed := p.CAlphaResidues(s.ChainID)
	if len(observed) == 0 {
		return nil, nil, fmt.Errorf("no alpha carbon residues in %s chain %s", s.PDBID, s.ChainID)
	}

	resMap := make(map[int64]int64)
	var mismatches []Mismatch
	for _, seg := range segs {
		if seg.UnpBeg < 1 || seg.UnpEnd > int64(len(m.UniProt.Sequence)) {
			return nil, nil, fmt.Errorf("segment %d-%d outside sequence of length %d",
				seg.UnpBeg, seg.UnpEnd, len(m.UniProt.Sequence))
		}

		ref := m.UniProt.Sequence[seg.UnpBeg-1 : seg.UnpEnd]
		for i := int64(0); i < int64(len(ref)); i++ {
			pos := seg.PDBBeg + i
			res, ok := observed[pos]
			if !ok {
				continue
			}
			if pdb.IsAminoacid(res.Name1) && res.Name1 != string(ref[i]) {
				mismatches = append(mismatches, Mismatch{
					Position: pos,
					PDBAa:    res.Name1,
					UnpAa:    string(ref[i]),
				})
			}
			resMap[pos] = seg.UnpBeg + i
		}
	}

	return resMap, mismatches, nil
}

// ResidueMapping returns the SIFTS residue-level links between the given
// PDB entry and UniProt numbering, per chain.
func (m *Mapper) ResidueMapping(pdbID string) (map[string][]*sifts.ResidueLink, error) {
	return sifts.ResidueMapping(pdbID)
}
