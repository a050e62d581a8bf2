package backbone

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mgijax/genmapload"
)

// Columns of the backbone map file.
const (
	colSNP int = iota
	colChromosome
	colPosition
	colFemaleCM
	colMaleCM
	colAverageCM

	numColumns
)

const sourceName = "backbone map"

// Index holds, per chromosome, the backbone reference points sorted by
// physical position. It is not modified after Load returns.
type Index struct {
	chromosomes map[string]Sequence
	points      int
}

// Load reads a delimited backbone map (snpID, chr, bp, female cM, male cM,
// average cM). The first row is a header and is discarded. Any row with the
// wrong number of fields or an unparseable number fails the whole load.
func Load(r io.Reader, delim rune) (*Index, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	idx := &Index{
		chromosomes: make(map[string]Sequence),
	}

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

		chr, point, err := parseRow(fields)
		if err != nil {
			return nil, &genmapload.RowError{Source: sourceName, Line: line, Err: err}
		}

		idx.chromosomes[chr] = append(idx.chromosomes[chr], point)
		idx.points++
	}

	for chr, seq := range idx.chromosomes {
		sort.SliceStable(seq, func(i, j int) bool {
			return seq[i].Position < seq[j].Position
		})
		idx.chromosomes[chr] = seq
	}

	return idx, nil
}

func parseRow(fields []string) (string, ReferencePoint, error) {
	var point ReferencePoint

	if len(fields) != numColumns {
		return "", point, fmt.Errorf("expected %d fields, found %d", numColumns, len(fields))
	}

	chr := genmapload.NormalizeChromosome(fields[colChromosome])
	if chr == "" {
		return "", point, fmt.Errorf("empty chromosome")
	}
	point.SNP = strings.TrimSpace(fields[colSNP])

	var err error
	if point.Position, err = parseNumber("bp", fields[colPosition]); err != nil {
		return "", point, err
	}
	if point.Position < 0 {
		return "", point, fmt.Errorf("bp: negative position %v", point.Position)
	}
	if point.FemaleCM, err = parseNumber("female cM", fields[colFemaleCM]); err != nil {
		return "", point, err
	}

	// There is no male recombination model for X: missing male and average
	// values take the female value.
	if chr == genmapload.XChromosome {
		if isAbsent(fields[colMaleCM]) {
			fields[colMaleCM] = fields[colFemaleCM]
		}
		if isAbsent(fields[colAverageCM]) {
			fields[colAverageCM] = fields[colFemaleCM]
		}
	}

	if point.MaleCM, err = parseNumber("male cM", fields[colMaleCM]); err != nil {
		return "", point, err
	}
	if point.AverageCM, err = parseNumber("average cM", fields[colAverageCM]); err != nil {
		return "", point, err
	}

	for _, cm := range []float64{point.FemaleCM, point.MaleCM, point.AverageCM} {
		if cm < 0 {
			return "", point, fmt.Errorf("negative cM %v", cm)
		}
	}

	return chr, point, nil
}

func isAbsent(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "NA")
}

func parseNumber(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	return v, nil
}

// Lookup returns the reference points of chr. The boolean is false when the
// backbone has no coverage for chr, which is not an error.
func (idx *Index) Lookup(chr string) (Sequence, bool) {
	seq, ok := idx.chromosomes[chr]
	if !ok || len(seq) == 0 {
		return nil, false
	}

	return seq, true
}

// Chromosomes returns the covered chromosome keys in numeric order.
func (idx *Index) Chromosomes() []string {
	out := make([]string, 0, len(idx.chromosomes))
	for chr := range idx.chromosomes {
		out = append(out, chr)
	}

	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i])
		b, errB := strconv.Atoi(out[j])
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		return out[i] < out[j]
	})

	return out
}

// Len returns the total number of reference points.
func (idx *Index) Len() int {
	return idx.points
}
