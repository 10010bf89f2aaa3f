package main

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tikz/strann/mapping"
	"github.com/tikz/strann/pdb"
	"github.com/tikz/strann/pdbe"
	"github.com/tikz/strann/sifts"
	"github.com/tikz/strann/uniprot"
)

const fileExt = ".data"

// accessionData is the cached part of a Mapper: the fetched UniProt
// entry and best structures. The interval tree is rebuilt on load.
type accessionData struct {
	UniProt    *uniprot.UniProt
	Structures []*pdbe.Structure
}

func unpDir() string { return filepath.Join(flagDataDir, "uniprot") }
func pdbDir() string { return filepath.Join(flagDataDir, "pdb") }

func makeDirs() error {
	for _, dir := range []string{
		unpDir(),
		pdbDir(),
		filepath.Join(flagOutDir, "csv"),
		filepath.Join(flagOutDir, "annotations"),
	} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

// loadMapper builds a Mapper for the accession, fetching the entry and
// its best structures only when there is no cached copy.
func loadMapper(unpID string, segments *sifts.Segments) (*mapping.Mapper, error) {
	if err := makeDirs(); err != nil {
		return nil, err
	}

	path := filepath.Join(unpDir(), unpID+fileExt)
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		m, err := mapping.NewMapper(unpID, segments)
		if err != nil {
			return nil, err
		}

		data := accessionData{UniProt: m.UniProt}
		for _, s := range m.Structures {
			data.Structures = append(data.Structures, s)
		}
		if err := write(path, &data); err != nil {
			return nil, fmt.Errorf("write UniProt cache: %v", err)
		}
		return m, nil
	}

	data := new(accessionData)
	if err := read(path, data); err != nil {
		return nil, fmt.Errorf("load file: %v", err)
	}

	return mapping.NewMapperFromData(data.UniProt, data.Structures, segments), nil
}

// loadPDB fetches and caches a PDB entry, re-parsing cached copies.
func loadPDB(pdbID string) (*pdb.PDB, error) {
	if err := makeDirs(); err != nil {
		return nil, err
	}

	path := filepath.Join(pdbDir(), pdbID+fileExt)
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		p, err := pdb.NewPDBFromID(pdbID)
		if err != nil {
			return nil, err
		}

		if err := write(path, &p); err != nil {
			return nil, fmt.Errorf("write PDB cache: %v", err)
		}
		return &p, nil
	}

	p := new(pdb.PDB)
	if err := read(path, p); err != nil {
		return nil, fmt.Errorf("load file: %v", err)
	}

	err = p.Parse()
	return p, err
}

// writePDBFile makes sure the raw PDB file exists on disk for the
// external tools, and sets LocalPath.
func writePDBFile(p *pdb.PDB) error {
	path := filepath.Join(pdbDir(), p.ID+".pdb")
	if _, err := os.Stat(path); err == nil {
		p.LocalPath = path
		return nil
	}
	return p.WriteFile(path)
}

func write(filePath string, object interface{}) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(object)
}

func read(filePath string, object interface{}) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewDecoder(file).Decode(object)
}
