// checkdmit reports DNA-MIT map rows whose start/end coordinates disagree with
// the marker database location cache.
package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/mgd"
	"github.com/mgijax/genmapload/override"

	_ "github.com/mgijax/genmapload/compileinfoprint"
)

func main() {
	var driver, dsn, mitFile, outFile, delim string
	flag.StringVar(&driver, "driver", "sqlite3", "database/sql driver name")
	flag.StringVar(&dsn, "dsn", os.Getenv("MGD_DSN"), "Marker database DSN. Defaults to $MGD_DSN.")
	flag.StringVar(&mitFile, "mit", os.Getenv("MIT_MAP_FILE"), "DNA-MIT map (header skipped). Defaults to $MIT_MAP_FILE.")
	flag.StringVar(&outFile, "out", os.Getenv("MIT_DIFF_FILE"), "Report to write. Defaults to $MIT_DIFF_FILE.")
	flag.StringVar(&delim, "mit-delim", `\t`, "Delimiter of the DNA-MIT map, or 'auto'")
	flag.Parse()

	if dsn == "" || mitFile == "" || outFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	d, err := genmapload.ParseDelimiter(delim)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(driver, dsn, mitFile, outFile, d); err != nil {
		log.Fatalln(err)
	}
}

func run(driver, dsn, mitFile, outFile string, delim rune) error {
	ctx := context.Background()

	data, err := genmapload.ReadInput(ctx, mitFile, nil)
	if err != nil {
		return err
	}
	rows, err := override.ReadSource(bytes.NewReader(data), genmapload.ResolveDelimiter(data, delim))
	if err != nil {
		return err
	}

	db, err := mgd.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	locations, err := mgd.Locations(ctx, db, mgd.DNAMITSymbolLike)
	if err != nil {
		return err
	}

	diffs, err := override.Diff(rows, locations)
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := override.WriteDiff(f, diffs); err != nil {
		return pfx.Err(err)
	}

	log.Printf("%d of %d DNA-MIT rows disagree with the location cache\n", len(diffs), len(rows))

	return nil
}
