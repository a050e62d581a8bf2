package offset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/mgijax/genmapload"
)

// DateLayout is the layout of the creation and modification dates.
const DateLayout = "01/02/2006"

// DefaultSource is the discriminator of the computed genetic map track.
const DefaultSource = 0

const sourceName = "offset table"

// Offset is a marker's genetic map position in cM.
type Offset struct {
	Value float64

	// text, when set, is written instead of a formatted Value.
	text string
}

// Syntenic is the sentinel for a marker that is assigned to a chromosome but
// has no usable map position.
var Syntenic = Offset{Value: -1, text: "-1.0"}

// Computed wraps an interpolated value.
func Computed(v float64) Offset {
	return Offset{Value: v}
}

// Curated wraps an override, keeping its text as given.
func Curated(v float64, text string) Offset {
	return Offset{Value: v, text: text}
}

// IsSyntenic reports whether o is the syntenic sentinel.
func (o Offset) IsSyntenic() bool {
	return o.Value == Syntenic.Value
}

func (o Offset) String() string {
	if o.text != "" {
		return o.text
	}

	return FormatCM(o.Value)
}

// FormatCM writes v with at most 12 significant digits, always including a
// decimal point (12 -> "12.0").
func FormatCM(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	s := strconv.FormatFloat(v, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

// Record is one row of the offset table handed to the bulk loader.
type Record struct {
	MarkerKey        int
	Source           int
	Offset           Offset
	CreationDate     string
	ModificationDate string

	// Rule is the tier of the rule chain that produced Offset.
	Rule Rule
}

// row is the serialized layout of a Record.
type row struct {
	MarkerKey        int    `csv:"_Marker_key"`
	Source           int    `csv:"source"`
	Offset           string `csv:"offset"`
	CreationDate     string `csv:"creation_date"`
	ModificationDate string `csv:"modification_date"`
}

// NewRecord stamps an offset with the source discriminator and run date.
func NewRecord(markerKey, source int, o Offset, rule Rule, date time.Time) Record {
	d := date.Format(DateLayout)

	return Record{
		MarkerKey:        markerKey,
		Source:           source,
		Offset:           o,
		CreationDate:     d,
		ModificationDate: d,
		Rule:             rule,
	}
}

// Read parses a table written by Write. Offsets keep their text.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 5

	rows := make([]row, 0)
	if err := gocsv.UnmarshalCSVWithoutHeaders(cr, &rows); errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return []Record{}, nil
	} else if err != nil {
		line := 0
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			line = pe.Line
		}
		return nil, &genmapload.RowError{Source: sourceName, Line: line, Err: err}
	}

	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		v, err := strconv.ParseFloat(row.Offset, 64)
		if err != nil {
			return nil, &genmapload.RowError{Source: sourceName, Line: i + 1, Err: fmt.Errorf("offset: %w", err)}
		}
		if v < 0 && v != Syntenic.Value {
			return nil, genmapload.MalformedRow(sourceName, i+1, "offset: negative value %s", row.Offset)
		}

		out = append(out, Record{
			MarkerKey:        row.MarkerKey,
			Source:           row.Source,
			Offset:           Offset{Value: v, text: row.Offset},
			CreationDate:     row.CreationDate,
			ModificationDate: row.ModificationDate,
		})
	}

	return out, nil
}

// Write emits records as headerless TAB-delimited rows:
// markerKey, source, offset, creation date, modification date.
func Write(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]row, len(records))
	for i, r := range records {
		rows[i] = row{
			MarkerKey:        r.MarkerKey,
			Source:           r.Source,
			Offset:           r.Offset.String(),
			CreationDate:     r.CreationDate,
			ModificationDate: r.ModificationDate,
		}
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	sw := gocsv.NewSafeCSVWriter(cw)
	if err := gocsv.MarshalCSVWithoutHeaders(rows, sw); err != nil {
		return err
	}

	sw.Flush()
	return sw.Error()
}
