package mgd

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/marker"
	"gopkg.in/guregu/null.v3"
)

// CoordinatePrecedence chooses between the two sources of a marker's start
// coordinate when both have one.
type CoordinatePrecedence int

const (
	// FeatureFirst prefers the coordinate feature table, falling back to
	// the sequence coordinate cache.
	FeatureFirst CoordinatePrecedence = iota

	// SequenceFirst prefers the sequence coordinate cache.
	SequenceFirst
)

func (p CoordinatePrecedence) String() string {
	if p == SequenceFirst {
		return "sequence"
	}

	return "feature"
}

// ParseCoordinatePrecedence accepts "feature" or "sequence".
func ParseCoordinatePrecedence(s string) (CoordinatePrecedence, error) {
	switch strings.ToLower(s) {
	case "", "feature":
		return FeatureFirst, nil
	case "sequence":
		return SequenceFirst, nil
	}

	return FeatureFirst, fmt.Errorf("unknown coordinate precedence %q: use feature or sequence", s)
}

// Extractor reads the marker map from the database.
type Extractor struct {
	DB         *sqlx.DB
	Precedence CoordinatePrecedence

	// Source is the offset track whose unset values ResetUnset repairs.
	Source int
}

type markerRow struct {
	MarkerKey  int    `db:"marker_key"`
	Symbol     string `db:"symbol"`
	Chromosome string `db:"chromosome"`
	AccID      string `db:"acc_id"`
}

type coordinateRow struct {
	MarkerKey int        `db:"marker_key"`
	Start     null.Float `db:"start_coordinate"`
}

type locationRow struct {
	MarkerKey         int         `db:"marker_key"`
	GenomicChromosome null.String `db:"genomic_chromosome"`
}

var (
	markersQuery = fmt.Sprintf(`SELECT m._Marker_key AS marker_key, m.symbol AS symbol, m.chromosome AS chromosome, a.accID AS acc_id
FROM MRK_Marker m
JOIN ACC_Accession a ON a._Object_key = m._Marker_key
WHERE m._Organism_key = %d
AND m._Marker_Status_key IN (%d, %d)
AND m.chromosome <> 'UN'
AND a._MGIType_key = %d
AND a._LogicalDB_key = %d
AND a.preferred = 1
AND a.prefixPart = 'MGI:'
ORDER BY m._Marker_key`, organismMouse, statusOfficial, statusInterim, mgiTypeMarker, logicalDBMGI)

	featureCoordinatesQuery = fmt.Sprintf(`SELECT DISTINCT f._Object_key AS marker_key, f.startCoordinate AS start_coordinate
FROM MAP_Coord_Feature f
WHERE f._MGIType_key = %d
ORDER BY marker_key, start_coordinate`, mgiTypeMarker)

	sequenceCoordinatesQuery = fmt.Sprintf(`SELECT DISTINCT mc._Marker_key AS marker_key, c.startCoordinate AS start_coordinate
FROM SEQ_Marker_Cache mc
JOIN SEQ_Coord_Cache c ON c._Sequence_key = mc._Sequence_key
WHERE mc._Qualifier_key = %d
ORDER BY marker_key, start_coordinate`, qualifierSequence)

	locationQuery = `SELECT _Marker_key AS marker_key, genomicChromosome AS genomic_chromosome
FROM MRK_Location_Cache`

	resetUnsetQuery = fmt.Sprintf(`UPDATE MRK_Offset SET "offset" = -1
WHERE source = ?
AND "offset" < -1
AND _Marker_key IN (
	SELECT _Marker_key FROM MRK_Marker
	WHERE chromosome <> 'UN'
	AND _Marker_Status_key IN (%d, %d)
)`, statusOfficial, statusInterim)
)

// ResetUnset sets offsets below -1 of official and interim markers with a
// known chromosome to the syntenic value -1, so that the next load replaces
// them.
func (e *Extractor) ResetUnset(ctx context.Context) (int64, error) {
	res, err := e.DB.ExecContext(ctx, e.DB.Rebind(resetUnsetQuery), e.Source)
	if err != nil {
		return 0, pfx.Err(err)
	}

	return res.RowsAffected()
}

// Markers returns official and interim mouse markers ordered by marker key.
// Each marker carries at most one start coordinate, chosen by Precedence, and
// the genomic chromosome of its location, if any. Chromosome labels are
// normalised so that X reads as 20.
func (e *Extractor) Markers(ctx context.Context) ([]marker.Record, error) {
	var markers []markerRow
	if err := e.DB.SelectContext(ctx, &markers, markersQuery); err != nil {
		return nil, pfx.Err(err)
	}

	coordinates, err := e.coordinates(ctx)
	if err != nil {
		return nil, err
	}

	var locations []locationRow
	if err := e.DB.SelectContext(ctx, &locations, locationQuery); err != nil {
		return nil, pfx.Err(err)
	}
	genomic := make(map[int]string, len(locations))
	for _, loc := range locations {
		if chr := genmapload.NormalizeChromosome(loc.GenomicChromosome.ValueOrZero()); chr != "" {
			genomic[loc.MarkerKey] = chr
		}
	}

	out := make([]marker.Record, 0, len(markers))
	for _, m := range markers {
		rec := marker.Record{
			Key:        m.MarkerKey,
			Symbol:     m.Symbol,
			AccID:      m.AccID,
			Chromosome: genmapload.NormalizeChromosome(m.Chromosome),
		}
		if start, ok := coordinates[m.MarkerKey]; ok {
			rec.Position = null.FloatFrom(start)
		}
		if chr, ok := genomic[m.MarkerKey]; ok {
			rec.GenomicChromosome = null.StringFrom(chr)
		}

		out = append(out, rec)
	}

	return out, nil
}

// coordinates returns one start coordinate per marker key. The preferred
// source is read first; the other only fills markers it left without one.
// Within a source the lowest coordinate is used.
func (e *Extractor) coordinates(ctx context.Context) (map[int]float64, error) {
	queries := []string{featureCoordinatesQuery, sequenceCoordinatesQuery}
	if e.Precedence == SequenceFirst {
		queries[0], queries[1] = queries[1], queries[0]
	}

	out := make(map[int]float64)
	for _, query := range queries {
		var rows []coordinateRow
		if err := e.DB.SelectContext(ctx, &rows, query); err != nil {
			return nil, pfx.Err(err)
		}

		for _, row := range rows {
			if !row.Start.Valid {
				continue
			}
			if _, exists := out[row.MarkerKey]; exists {
				continue
			}
			out[row.MarkerKey] = row.Start.Float64
		}
	}

	return out, nil
}
