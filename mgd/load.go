package mgd

import (
	"context"
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	"github.com/mgijax/genmapload/offset"
)

// Loader replaces one offset track in the database.
type Loader struct {
	DB     *sqlx.DB
	Source int
}

type offsetRow struct {
	MarkerKey        int     `db:"marker_key"`
	Source           int     `db:"source"`
	Offset           float64 `db:"offset"`
	CreationDate     string  `db:"creation_date"`
	ModificationDate string  `db:"modification_date"`
}

// Withdrawn markers and unset (< -1) offsets are history and are kept, as are
// DNA-MIT segments, whose positions are curated elsewhere.
var deleteOffsetsQuery = fmt.Sprintf(`DELETE FROM MRK_Offset
WHERE source = ?
AND "offset" >= -1
AND _Marker_key IN (
	SELECT _Marker_key FROM MRK_Marker
	WHERE _Marker_Status_key IN (%d, %d)
	AND lower(symbol) NOT LIKE '%s'
)`, statusOfficial, statusInterim, DNAMITSymbolLike)

const insertOffsetQuery = `INSERT INTO MRK_Offset (_Marker_key, source, "offset", creation_date, modification_date)
VALUES (:marker_key, :source, :offset, :creation_date, :modification_date)`

// Replace deletes the current offsets of l.Source and inserts records in one
// transaction. Records of another source are rejected before anything is
// changed. It returns the number of deleted rows.
func (l *Loader) Replace(ctx context.Context, records []offset.Record) (int64, error) {
	for _, r := range records {
		if r.Source != l.Source {
			return 0, fmt.Errorf("marker %d: record source %d does not match loader source %d", r.MarkerKey, r.Source, l.Source)
		}
	}

	tx, err := l.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(deleteOffsetsQuery), l.Source)
	if err != nil {
		return 0, pfx.Err(err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, pfx.Err(err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, insertOffsetQuery)
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, offsetRow{
			MarkerKey:        r.MarkerKey,
			Source:           r.Source,
			Offset:           r.Offset.Value,
			CreationDate:     r.CreationDate,
			ModificationDate: r.ModificationDate,
		}); err != nil {
			return 0, pfx.Err(fmt.Errorf("marker %d: %w", r.MarkerKey, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, pfx.Err(err)
	}

	return deleted, nil
}
