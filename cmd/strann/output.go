package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/tikz/strann/annotate"
	"github.com/tikz/strann/swissmodel"
)

// writeOutputs writes the CSV table and one annotation track per value
// column for a single structure, posting the tracks first when enabled
// so the result URLs end up in the saved files.
func writeOutputs(a *annotate.Annotations) error {
	path := filepath.Join(flagOutDir, "csv", a.Title()+".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.WriteCSV(f); err != nil {
		return err
	}
	log.Printf("wrote %s", path)

	dir := filepath.Join(flagOutDir, "annotations")
	for _, c := range a.Columns {
		an, err := swissmodel.FromColumn(a, c.Name)
		if err != nil {
			return err
		}

		if flagPost {
			client := swissmodel.NewClient(flagEmail)
			url, err := client.Post(an)
			if err != nil {
				return err
			}
			log.Printf("posted %s: %s", an.Title, url)
		}

		if err := an.WriteFile(dir); err != nil {
			return err
		}
	}

	return nil
}

func writeEnsembleCSV(e *annotate.Ensemble) error {
	path := filepath.Join(flagOutDir, "csv", e.Title()+".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := e.WriteCSV(f); err != nil {
		return err
	}
	log.Printf("wrote %s", path)

	return nil
}
