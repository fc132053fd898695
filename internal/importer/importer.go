// Package importer turns pasted rosters into athlete names ready for
// registration.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type SkipReason string

const (
	SkipBlank     SkipReason = "blank"
	SkipDuplicate SkipReason = "duplicate"
	SkipHeader    SkipReason = "header"
)

type Skipped struct {
	Line   int        `json:"line"`
	Value  string     `json:"value"`
	Reason SkipReason `json:"reason"`
}

type Result struct {
	Names   []string  `json:"names"`
	Skipped []Skipped `json:"skipped"`
}

// ParseLines reads one athlete per line. Surrounding whitespace and list
// bullets are stripped; blank lines and repeated names are skipped.
func ParseLines(input string) Result {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		rows = append(rows, cleanName(line))
	}
	return collect(rows)
}

// ParseHTML reads a roster table: the first cell of every row is the
// athlete name. Rows made only of header cells are skipped.
func ParseHTML(r io.Reader) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse roster: %w", err)
	}

	var rows []string
	var headers []int
	doc.Find("table tr").Each(func(i int, s *goquery.Selection) {
		cell := s.Find("td").First()
		if cell.Length() == 0 {
			headers = append(headers, i)
			rows = append(rows, "")
			return
		}
		rows = append(rows, cleanName(cell.Text()))
	})

	res := collect(rows)
	for _, line := range headers {
		for i := range res.Skipped {
			if res.Skipped[i].Line == line+1 {
				res.Skipped[i].Reason = SkipHeader
			}
		}
	}
	return res, nil
}

func collect(rows []string) Result {
	res := Result{Names: []string{}, Skipped: []Skipped{}}
	seen := make(map[string]bool)

	for i, name := range rows {
		switch {
		case name == "":
			res.Skipped = append(res.Skipped, Skipped{Line: i + 1, Reason: SkipBlank})
		case seen[name]:
			res.Skipped = append(res.Skipped, Skipped{Line: i + 1, Value: name, Reason: SkipDuplicate})
		default:
			seen[name] = true
			res.Names = append(res.Names, name)
		}
	}
	return res
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*•")
	return strings.Join(strings.Fields(s), " ")
}
