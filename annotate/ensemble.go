package annotate

import (
	"sort"
)

// Ensemble is the cross-structure table: per-structure annotations
// pivoted onto the UniProt numbering frame, averaged per position over
// the structures covering it.
type Ensemble struct {
	UniProtID string         `json:"uniprotId"`
	Entries   []*Annotations `json:"entries"`

	Positions []int64   `json:"positions"` // UniProt positions covered by at least one entry
	Coverage  []float64 `json:"coverage"`  // how many entries cover each position
	Columns   []Column  `json:"columns"`   // per-position mean over covering entries
}

// NewEnsemble pivots the given per-structure tables onto the UniProt
// reference frame.
func NewEnsemble(unpID string, entries []*Annotations) *Ensemble {
	e := &Ensemble{
		UniProtID: unpID,
		Entries:   entries,
	}

	covered := make(map[int64]struct{})
	for _, entry := range entries {
		for _, pos := range entry.UniProtNumbers {
			covered[pos] = struct{}{}
		}
	}
	for pos := range covered {
		e.Positions = append(e.Positions, pos)
	}
	sort.Slice(e.Positions, func(i, j int) bool { return e.Positions[i] < e.Positions[j] })

	index := make(map[int64]int, len(e.Positions))
	for i, pos := range e.Positions {
		index[pos] = i
	}

	e.Coverage = make([]float64, len(e.Positions))
	for _, entry := range entries {
		for _, pos := range entry.UniProtNumbers {
			e.Coverage[index[pos]]++
		}
	}

	// Union of column names, in order of first appearance.
	var names []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		for _, c := range entry.Columns {
			if _, ok := seen[c.Name]; !ok {
				seen[c.Name] = struct{}{}
				names = append(names, c.Name)
			}
		}
	}

	for _, name := range names {
		sums := make([]float64, len(e.Positions))
		counts := make([]float64, len(e.Positions))
		for _, entry := range entries {
			values, ok := entry.Column(name)
			if !ok {
				continue
			}
			for i, pos := range entry.UniProtNumbers {
				sums[index[pos]] += values[i]
				counts[index[pos]]++
			}
		}
		means := make([]float64, len(e.Positions))
		for i := range sums {
			if counts[i] > 0 {
				means[i] = sums[i] / counts[i]
			}
		}
		e.Columns = append(e.Columns, Column{Name: name, Values: means})
	}

	return e
}

// Title returns the identifier used for output files.
func (e *Ensemble) Title() string {
	return e.UniProtID + "_ensemble"
}
