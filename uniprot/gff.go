package uniprot

import (
	"bufio"
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Feature represents a single line from the GFF feature table.
type Feature struct {
	Type  string `json:"type"`  // feature type (Chain, Domain, Active site, ...)
	Start int64  `json:"start"` // 1-based inclusive sequence start
	End   int64  `json:"end"`   // 1-based inclusive sequence end
	ID    string `json:"id"`    // ID attribute, if any
	Note  string `json:"note"`  // Note attribute, if any
}

// extractFeatures parses the raw GFF response into the feature table.
// Reference: https://www.uniprot.org/help/gff
func (u *UniProt) extractFeatures() error {
	scanner := bufio.NewScanner(bytes.NewReader(u.RawGFF))

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			continue
		}

		start, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return fmt.Errorf("feature start %q: %v", fields[3], err)
		}
		end, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return fmt.Errorf("feature end %q: %v", fields[4], err)
		}

		f := &Feature{
			Type:  fields[2],
			Start: start,
			End:   end,
		}

		for _, attr := range strings.Split(fields[8], ";") {
			kv := strings.SplitN(attr, "=", 2)
			if len(kv) != 2 {
				continue
			}
			value, err := url.PathUnescape(kv[1])
			if err != nil {
				value = kv[1]
			}
			switch kv[0] {
			case "ID":
				f.ID = value
			case "Note":
				f.Note = value
			}
		}

		u.Features = append(u.Features, f)
	}

	return scanner.Err()
}
