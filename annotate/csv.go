package annotate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the table: one row per residue, author and UniProt
// numbers first, then the value columns rounded to 2 decimals.
func (a *Annotations) WriteCSV(w io.Writer) error {
	for _, c := range a.Columns {
		if len(c.Values) != len(a.ResidueNumbers) {
			return fmt.Errorf("column %s has %d values for %d residues",
				c.Name, len(c.Values), len(a.ResidueNumbers))
		}
	}

	cw := csv.NewWriter(w)

	header := []string{"residue_numbers", "uniprot_annotation"}
	for _, c := range a.Columns {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range a.ResidueNumbers {
		row := []string{
			strconv.FormatInt(a.ResidueNumbers[i], 10),
			strconv.FormatInt(a.UniProtNumbers[i], 10),
		}
		for _, c := range a.Columns {
			row = append(row, strconv.FormatFloat(c.Values[i], 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the pivoted table: one row per covered UniProt
// position with its coverage count and per-column means.
func (e *Ensemble) WriteCSV(w io.Writer) error {
	for _, c := range e.Columns {
		if len(c.Values) != len(e.Positions) {
			return fmt.Errorf("column %s has %d values for %d positions",
				c.Name, len(c.Values), len(e.Positions))
		}
	}

	cw := csv.NewWriter(w)

	header := []string{"uniprot_position", "coverage"}
	for _, c := range e.Columns {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range e.Positions {
		row := []string{
			strconv.FormatInt(e.Positions[i], 10),
			strconv.FormatInt(int64(e.Coverage[i]), 10),
		}
		for _, c := range e.Columns {
			row = append(row, strconv.FormatFloat(c.Values[i], 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
