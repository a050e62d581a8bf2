// loadgenmap replaces the offsets of one MRK_Offset source with the contents
// of a file written by genmapload.
package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"

	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/mgd"
	"github.com/mgijax/genmapload/offset"

	_ "github.com/mgijax/genmapload/compileinfoprint"
)

func main() {
	var driver, dsn, inFile string
	var source int
	flag.StringVar(&driver, "driver", "sqlite3", "database/sql driver name")
	flag.StringVar(&dsn, "dsn", os.Getenv("MGD_DSN"), "Marker database DSN. Defaults to $MGD_DSN.")
	flag.StringVar(&inFile, "in", os.Getenv("NEW_MAP_FILE"), "MRK_Offset file written by genmapload. Defaults to $NEW_MAP_FILE.")
	flag.IntVar(&source, "source", offset.DefaultSource, "MRK_Offset source to replace")
	flag.Parse()

	if dsn == "" || inFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(driver, dsn, inFile, source); err != nil {
		log.Fatalln(err)
	}
}

func run(driver, dsn, inFile string, source int) error {
	ctx := context.Background()

	data, err := genmapload.ReadInput(ctx, inFile, nil)
	if err != nil {
		return err
	}

	records, err := offset.Read(bytes.NewReader(data))
	if err != nil {
		return err
	}

	db, err := mgd.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := (&mgd.Loader{DB: db, Source: source}).Replace(ctx, records)
	if err != nil {
		return err
	}

	log.Println("Deleted", deleted, "and inserted", len(records), "offsets for source", source)

	return nil
}
