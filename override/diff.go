package override

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/mgijax/genmapload"
	"gopkg.in/guregu/null.v3"
)

// Location is a marker's coordinates as recorded in the marker database.
type Location struct {
	Symbol     string
	Chromosome string
	StartBP    null.Int
	EndBP      null.Int
}

// Discrepancy is a good row of the secondary map whose coordinates disagree
// with the marker database.
type Discrepancy struct {
	AccID         string `csv:"accID"`
	Symbol        string `csv:"symbol"`
	Chromosome    string `csv:"chromosome"`
	StartBP       string `csv:"startBP"`
	EndBP         string `csv:"endBP"`
	MapChromosome string `csv:"mitChromosome"`
	MapStartBP    string `csv:"mitStartBP"`
	MapEndBP      string `csv:"mitEndBP"`
	AverageCM     string `csv:"aveCM"`
}

// Diff compares the start and end coordinates of every good row with the
// database location of the same accession ID. Rows whose marker is unknown to
// the database are skipped; a missing database coordinate compares as 0.
func Diff(rows []Row, locations map[string]Location) ([]Discrepancy, error) {
	out := make([]Discrepancy, 0)

	for _, row := range rows {
		if !row.Good() {
			continue
		}

		loc, exists := locations[row.AccID]
		if !exists {
			continue
		}

		start, err := parseBP(row.StartBP)
		if err != nil {
			return nil, genmapload.MalformedRow(sourceName, row.Line, "start bp: %v", err)
		}
		end, err := parseBP(row.EndBP)
		if err != nil {
			return nil, genmapload.MalformedRow(sourceName, row.Line, "end bp: %v", err)
		}

		if loc.StartBP.ValueOrZero() == start && loc.EndBP.ValueOrZero() == end {
			continue
		}

		out = append(out, Discrepancy{
			AccID:         row.AccID,
			Symbol:        loc.Symbol,
			Chromosome:    loc.Chromosome,
			StartBP:       formatBP(loc.StartBP),
			EndBP:         formatBP(loc.EndBP),
			MapChromosome: row.Chromosome,
			MapStartBP:    row.StartBP,
			MapEndBP:      row.EndBP,
			AverageCM:     row.AverageCM,
		})
	}

	return out, nil
}

func parseBP(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.ParseInt(s, 10, 64)
}

func formatBP(v null.Int) string {
	if !v.Valid {
		return "None"
	}

	return strconv.FormatInt(v.Int64, 10)
}

// WriteDiff writes discrepancies as headerless TAB-delimited rows.
func WriteDiff(w io.Writer, diffs []Discrepancy) error {
	if len(diffs) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	sw := gocsv.NewSafeCSVWriter(cw)
	if err := gocsv.MarshalCSVWithoutHeaders(diffs, sw); err != nil {
		return err
	}

	sw.Flush()
	return sw.Error()
}
