// makemgimap writes the marker map consumed by genmapload: every official or
// interim mouse marker with its chromosome and, when known, its genome start
// coordinate.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/mgijax/genmapload/marker"
	"github.com/mgijax/genmapload/mgd"

	_ "github.com/mgijax/genmapload/compileinfoprint"
)

func main() {
	var driver, dsn, outFile, precedence string
	var source int
	var reset bool
	flag.StringVar(&driver, "driver", "sqlite3", "database/sql driver name")
	flag.StringVar(&dsn, "dsn", os.Getenv("MGD_DSN"), "Marker database DSN. Defaults to $MGD_DSN.")
	flag.StringVar(&outFile, "out", os.Getenv("MGI_MAP_FILE"), "Marker map to write. Defaults to $MGI_MAP_FILE.")
	flag.StringVar(&precedence, "coordinates", "feature", "Coordinate source to prefer when a marker has two: 'feature' (MAP_Coord_Feature) or 'sequence' (SEQ_Coord_Cache)")
	flag.IntVar(&source, "source", 0, "MRK_Offset source whose unset (< -1) offsets are reset to -1 before extraction")
	flag.BoolVar(&reset, "reset", true, "Reset unset offsets of official/interim markers to -1")
	flag.Parse()

	if dsn == "" || outFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	prec, err := mgd.ParseCoordinatePrecedence(precedence)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(driver, dsn, outFile, prec, source, reset); err != nil {
		log.Fatalln(err)
	}
}

func run(driver, dsn, outFile string, prec mgd.CoordinatePrecedence, source int, reset bool) error {
	ctx := context.Background()

	db, err := mgd.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ex := &mgd.Extractor{DB: db, Precedence: prec, Source: source}

	if reset {
		n, err := ex.ResetUnset(ctx)
		if err != nil {
			return err
		}
		log.Println("Reset", n, "unset offsets to -1")
	}

	markers, err := ex.Markers(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := marker.Write(w, markers); err != nil {
		return pfx.Err(err)
	}
	if err := w.Flush(); err != nil {
		return pfx.Err(err)
	}

	placed := 0
	for _, m := range markers {
		if m.Position.Valid {
			placed++
		}
	}
	log.Printf("Wrote %d markers (%d with %s-first coordinates) to %s\n", len(markers), placed, prec, outFile)

	return f.Close()
}
