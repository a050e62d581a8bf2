// Package mgd reads markers from, and loads offsets into, the marker
// database.
package mgd

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

// Database constants shared by the queries.
const (
	organismMouse     = 1
	statusOfficial    = 1
	statusInterim     = 3
	mgiTypeMarker     = 2
	logicalDBMGI      = 1
	qualifierSequence = 615419

	// DNAMITSymbolLike matches the symbols of DNA-MIT segments.
	DNAMITSymbolLike = "d%mit%"
)

// Open connects to the marker database. For sqlite3, plain paths are turned
// into file: URIs.
func Open(driver, dsn string) (*sqlx.DB, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if driver == "sqlite3" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", driver, err))
	}

	return db, nil
}
