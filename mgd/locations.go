package mgd

import (
	"context"
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	"github.com/mgijax/genmapload/override"
	"gopkg.in/guregu/null.v3"
)

type accessionLocationRow struct {
	AccID      string   `db:"acc_id"`
	Symbol     string   `db:"symbol"`
	Chromosome string   `db:"chromosome"`
	StartBP    null.Int `db:"start_bp"`
	EndBP      null.Int `db:"end_bp"`
}

var locationsBySymbolQuery = fmt.Sprintf(`SELECT a.accID AS acc_id, m.symbol AS symbol, m.chromosome AS chromosome,
	c.startCoordinate AS start_bp, c.endCoordinate AS end_bp
FROM MRK_Location_Cache c
JOIN MRK_Marker m ON m._Marker_key = c._Marker_key
JOIN ACC_Accession a ON a._Object_key = m._Marker_key
WHERE m._Organism_key = %d
AND m._Marker_Status_key IN (%d, %d)
AND lower(m.symbol) LIKE ?
AND a._MGIType_key = %d
AND a._LogicalDB_key = %d
AND a.prefixPart = 'MGI:'
ORDER BY m._Marker_key`, organismMouse, statusOfficial, statusInterim, mgiTypeMarker, logicalDBMGI)

// Locations returns the location cache coordinates of official and interim
// markers whose lower-cased symbol matches the SQL LIKE pattern, keyed by MGI
// accession ID. If an accession ID names several markers, the one with the
// lowest marker key is used.
func Locations(ctx context.Context, db *sqlx.DB, symbolLike string) (map[string]override.Location, error) {
	var rows []accessionLocationRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(locationsBySymbolQuery), symbolLike); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]override.Location, len(rows))
	for _, row := range rows {
		if _, exists := out[row.AccID]; exists {
			continue
		}
		out[row.AccID] = override.Location{
			Symbol:     row.Symbol,
			Chromosome: row.Chromosome,
			StartBP:    row.StartBP,
			EndBP:      row.EndBP,
		}
	}

	return out, nil
}
