package override

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mgijax/genmapload"
)

// StatusGood marks rows of the secondary map whose position may be used.
const StatusGood = "good"

const sourceName = "override map"

// Columns of the secondary (MIT) map that are used here; the file carries at
// least MinFields columns.
const (
	colAccID      = 3
	colChromosome = 7
	colStartBP    = 8
	colEndBP      = 9
	colStatus     = 11
	colAverageCM  = 14

	MinFields = colAverageCM + 1
)

// Row is one line of the secondary map.
type Row struct {
	Line       int
	AccID      string
	Chromosome string
	StartBP    string
	EndBP      string
	Status     string
	AverageCM  string
}

// Good reports whether the row's status makes it eligible as an override.
func (r Row) Good() bool {
	return r.Status == StatusGood
}

// ReadSource parses the secondary map. The first row is a header and is
// discarded. Rows with fewer than MinFields fields fail the read.
func ReadSource(r io.Reader, delim rune) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	out := make([]Row, 0)
	for first := true; ; first = false {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &genmapload.RowError{Source: sourceName, Line: line, Err: err}
		}

		if first {
			continue
		}

		line, _ := cr.FieldPos(0)
		if len(fields) < MinFields {
			return nil, genmapload.MalformedRow(sourceName, line, "expected at least %d fields, found %d", MinFields, len(fields))
		}

		out = append(out, Row{
			Line:       line,
			AccID:      strings.TrimSpace(fields[colAccID]),
			Chromosome: strings.TrimSpace(fields[colChromosome]),
			StartBP:    strings.TrimSpace(fields[colStartBP]),
			EndBP:      strings.TrimSpace(fields[colEndBP]),
			Status:     strings.TrimSpace(fields[colStatus]),
			AverageCM:  strings.TrimSpace(fields[colAverageCM]),
		})
	}

	return out, nil
}

func (r Row) String() string {
	return fmt.Sprintf("%s (%s, line %d)", r.AccID, r.Status, r.Line)
}
