// Package marker reads and writes the marker map: one row per marker with its
// assigned chromosome and, when placed, its genomic start coordinate.
package marker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgijax/genmapload"
	"gopkg.in/fatih/set.v0"
	"gopkg.in/guregu/null.v3"
)

// NoCoordinate is written in place of a missing genomic position.
const NoCoordinate = "None"

const sourceName = "marker map"

// Columns of the marker map. The existing cM column is optional on input, as
// is the trailing genomic chromosome.
const (
	colKey int = iota
	colSymbol
	colAccID
	colChromosome
	colCM
	colPosition
	colGenomicChromosome
)

// Record is one marker as seen by the offset builder.
type Record struct {
	Key        int
	Symbol     string
	AccID      string
	Chromosome string

	// CM is the marker's current map position. It is carried through but
	// never used to compute a new one.
	CM null.Float

	// Position is the genomic start coordinate in bp. Invalid means the
	// marker is unplaced.
	Position null.Float

	// GenomicChromosome is the chromosome of the genomic coordinate, tracked
	// independently of the assigned Chromosome.
	GenomicChromosome null.String
}

// Read parses a headerless marker map. Rows have five fields (key, symbol,
// accID, chromosome, bp), six (with the current cM before bp) or seven (with
// the genomic chromosome last). A bp of "None" or an empty field marks an
// unplaced marker. Chromosome labels are normalised so that X reads as 20.
func Read(r io.Reader, delim rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := make([]Record, 0)
	for {
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

		line, _ := cr.FieldPos(0)
		rec, err := parseRow(fields)
		if err != nil {
			return nil, &genmapload.RowError{Source: sourceName, Line: line, Err: err}
		}

		out = append(out, rec)
	}

	return out, nil
}

func parseRow(fields []string) (Record, error) {
	var rec Record

	switch len(fields) {
	case 5:
		// No cM column: shift bp into place.
		fields = []string{fields[0], fields[1], fields[2], fields[3], "", fields[4]}
	case 6, 7:
	default:
		return rec, fmt.Errorf("expected 5 to 7 fields, found %d", len(fields))
	}

	key, err := strconv.Atoi(strings.TrimSpace(fields[colKey]))
	if err != nil {
		return rec, fmt.Errorf("marker key: %w", err)
	}

	rec.Key = key
	rec.Symbol = fields[colSymbol]
	rec.AccID = strings.TrimSpace(fields[colAccID])
	rec.Chromosome = genmapload.NormalizeChromosome(fields[colChromosome])

	if rec.CM, err = parseOptional(fields[colCM]); err != nil {
		return rec, fmt.Errorf("cM: %w", err)
	}
	if rec.Position, err = parseOptional(fields[colPosition]); err != nil {
		return rec, fmt.Errorf("bp: %w", err)
	}

	if len(fields) > colGenomicChromosome {
		if chr := genmapload.NormalizeChromosome(fields[colGenomicChromosome]); chr != "" {
			rec.GenomicChromosome = null.StringFrom(chr)
		}
	}

	return rec, nil
}

func parseOptional(s string) (null.Float, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == NoCoordinate {
		return null.Float{}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Float{}, err
	}

	return null.FloatFrom(v), nil
}

// Write emits records in the seven-column layout accepted by Read.
func Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	for _, rec := range records {
		pos := NoCoordinate
		if rec.Position.Valid {
			pos = strconv.FormatFloat(rec.Position.Float64, 'f', -1, 64)
		}
		cm := ""
		if rec.CM.Valid {
			cm = strconv.FormatFloat(rec.CM.Float64, 'f', -1, 64)
		}

		if err := cw.Write([]string{
			strconv.Itoa(rec.Key),
			rec.Symbol,
			rec.AccID,
			rec.Chromosome,
			cm,
			pos,
			rec.GenomicChromosome.ValueOrZero(),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// IndexByAccession maps each accession ID to the distinct marker keys that
// carry it, in first-seen order. If pattern is non-nil only markers whose
// symbol matches it are indexed.
func IndexByAccession(records []Record, pattern *regexp.Regexp) map[string][]int {
	out := make(map[string][]int)
	seen := make(map[string]set.Interface)

	for _, rec := range records {
		if rec.AccID == "" {
			continue
		}
		if pattern != nil && !pattern.MatchString(rec.Symbol) {
			continue
		}

		keys, ok := seen[rec.AccID]
		if !ok {
			keys = set.New(set.NonThreadSafe)
			seen[rec.AccID] = keys
		}
		if keys.Has(rec.Key) {
			continue
		}
		keys.Add(rec.Key)

		out[rec.AccID] = append(out[rec.AccID], rec.Key)
	}

	return out
}
