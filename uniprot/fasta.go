package uniprot

import (
	"bufio"
	"bytes"
	"errors"
	"regexp"
	"strings"
)

// extractFasta parses the canonical sequence and the header metadata
// from the raw FASTA response.
func (u *UniProt) extractFasta() error {
	scanner := bufio.NewScanner(bytes.NewReader(u.RawFasta))

	var header string
	var seq strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if header != "" {
				break // canonical entry only, ignore isoforms
			}
			header = line
			continue
		}
		seq.WriteString(line)
	}

	if seq.Len() == 0 {
		return errors.New("canonical sequence not found")
	}

	u.Sequence = seq.String()
	u.parseFastaHeader(header)

	return nil
}

// parseFastaHeader extracts entry, protein, organism and gene names from
// an UniProtKB FASTA header line, i.e.:
// >sp|P0DTD1|R1AB_SARS2 Replicase polyprotein 1ab OS=... OX=2697049 GN=rep PE=1 SV=1
func (u *UniProt) parseFastaHeader(header string) {
	r := regexp.MustCompile(`^>\w+\|\S+\|(\S+) (.*?) OS=(.*?) OX=`)
	m := r.FindStringSubmatch(header)
	if len(m) > 0 {
		u.Entry = m[1]
		u.Name = m[2]
		u.Organism = m[3]
	}

	r = regexp.MustCompile(` GN=(\S+)`)
	m = r.FindStringSubmatch(header)
	if len(m) > 0 {
		u.Gene = m[1]
	}
}
