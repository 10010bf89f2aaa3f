// Package swissmodel renders annotation tracks in the SWISS-MODEL
// annotation upload format and submits them to the beta site.
package swissmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tikz/strann/annotate"
	"github.com/tikz/strann/http"
)

const DefaultBaseURL = "https://beta.swissmodel.expasy.org"

// Range is a single annotation line: a run of consecutive UniProt
// positions sharing a color.
type Range struct {
	Start   int64
	End     int64
	Color   string
	Comment string
}

// Annotator holds one annotation track for an accession.
type Annotator struct {
	Accession string
	Title     string
	URL       string // result URL after posting, empty otherwise
	Ranges    []Range
}

// FromColumn builds a track from one column of a per-residue table,
// coloring each position on a blue to red scale over the column's value
// range and merging consecutive equally-colored positions.
func FromColumn(a *annotate.Annotations, column string) (*Annotator, error) {
	values, ok := a.Column(column)
	if !ok {
		return nil, fmt.Errorf("no column named %s", column)
	}

	an := &Annotator{
		Accession: a.UniProtID,
		Title:     a.Title() + "_" + column,
	}
	if len(values) == 0 {
		return an, nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	for i, pos := range a.UniProtNumbers {
		color := heatColor(values[i], min, max)
		n := len(an.Ranges)
		if n > 0 && an.Ranges[n-1].End == pos-1 && an.Ranges[n-1].Color == color {
			an.Ranges[n-1].End = pos
			continue
		}
		an.Ranges = append(an.Ranges, Range{
			Start:   pos,
			End:     pos,
			Color:   color,
			Comment: column,
		})
	}

	return an, nil
}

// heatColor maps a value within [min, max] to a blue-to-red hex color.
func heatColor(v, min, max float64) string {
	t := 0.5
	if max > min {
		t = (v - min) / (max - min)
	}
	return fmt.Sprintf("#%02X00%02X", int(math.Round(255*t)), int(math.Round(255*(1-t))))
}

// String renders the track in the annotation upload format: tab
// separated accession, range and color lines, titled by a comment line.
func (an *Annotator) String() string {
	var b strings.Builder
	if an.URL != "" {
		fmt.Fprintf(&b, "# URL: %s\n", an.URL)
	}
	fmt.Fprintf(&b, "# %s\n", an.Title)
	for _, r := range an.Ranges {
		fmt.Fprintf(&b, "%s\t%d\t%d\t%s\t%s\n", an.Accession, r.Start, r.End, r.Color, r.Comment)
	}
	return b.String()
}

// WriteFile writes the rendered track under dir, named after the title.
func (an *Annotator) WriteFile(dir string) error {
	name := strings.ReplaceAll(an.Title, " ", "_") + ".txt"
	return os.WriteFile(filepath.Join(dir, name), []byte(an.String()), 0644)
}

// Client submits annotation tracks to the SWISS-MODEL beta site.
type Client struct {
	BaseURL string
	Email   string
}

// NewClient returns a client posting on behalf of the given email.
func NewClient(email string) *Client {
	return &Client{BaseURL: DefaultBaseURL, Email: email}
}

// Post uploads the track and sets its result URL from the response.
func (c *Client) Post(an *Annotator) (string, error) {
	raw, err := http.PostMultipart(c.BaseURL+"/annotations/upload/", map[string]string{
		"email":      c.Email,
		"title":      an.Title,
		"annotation": an.String(),
	})
	if err != nil {
		return "", fmt.Errorf("post annotation %s: %v", an.Title, err)
	}

	var res struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("unmarshal annotation response: %v", err)
	}
	if res.URL == "" {
		return "", fmt.Errorf("no result URL for annotation %s", an.Title)
	}

	an.URL = res.URL
	return res.URL, nil
}
