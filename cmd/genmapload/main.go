// genmapload interpolates the SNP backbone map at every marker's genome
// coordinate, applies curated DNA-MIT positions, and writes the MRK_Offset
// bulk-load file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"regexp"
	"time"

	"cloud.google.com/go/storage"
	"github.com/araddon/dateparse"
	"github.com/carbocation/pfx"
	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/genmap"

	_ "github.com/mgijax/genmapload/compileinfoprint"
)

func main() {
	cfg := genmap.DefaultConfig()

	var backboneDelim, markerDelim, overrideDelim, date, overrideSymbols string
	flag.StringVar(&cfg.BackboneMap, "snp", os.Getenv("SNP_MAP_FILE"), "SNP backbone map (snpID, chr, bp, female cM, male cM, average cM; header skipped). Defaults to $SNP_MAP_FILE. May be gs:// and/or compressed.")
	flag.StringVar(&cfg.MarkerMap, "mgi", os.Getenv("MGI_MAP_FILE"), "Marker map (key, symbol, accID, chr, cM, bp|None[, genomic chr]). Defaults to $MGI_MAP_FILE.")
	flag.StringVar(&cfg.OverrideMap, "mit", os.Getenv("MIT_MAP_FILE"), "DNA-MIT map with curated positions (header skipped). Defaults to $MIT_MAP_FILE. Optional.")
	flag.StringVar(&cfg.Output, "out", os.Getenv("NEW_MAP_FILE"), "MRK_Offset bulk-load file to write. Defaults to $NEW_MAP_FILE.")
	flag.StringVar(&backboneDelim, "snp-delim", ",", "Delimiter of the SNP map, or 'auto'")
	flag.StringVar(&markerDelim, "mgi-delim", `\t`, "Delimiter of the marker map, or 'auto'")
	flag.StringVar(&overrideDelim, "mit-delim", `\t`, "Delimiter of the DNA-MIT map, or 'auto'")
	flag.StringVar(&overrideSymbols, "mit-symbols", "", "If set, a regular expression that marker symbols must match to take a DNA-MIT position, e.g. '(?i)^d.*mit'")
	flag.IntVar(&cfg.Source, "source", cfg.Source, "MRK_Offset source discriminator to write")
	flag.StringVar(&date, "date", "", "Creation/modification date of the records. Defaults to today.")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of concurrent resolvers")
	flag.Parse()

	if cfg.BackboneMap == "" || cfg.MarkerMap == "" || cfg.Output == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	var err error
	if cfg.BackboneDelimiter, err = genmapload.ParseDelimiter(backboneDelim); err != nil {
		log.Fatalln(err)
	}
	if cfg.MarkerDelimiter, err = genmapload.ParseDelimiter(markerDelim); err != nil {
		log.Fatalln(err)
	}
	if cfg.OverrideDelimiter, err = genmapload.ParseDelimiter(overrideDelim); err != nil {
		log.Fatalln(err)
	}

	if overrideSymbols != "" {
		if cfg.OverrideSymbols, err = regexp.Compile(overrideSymbols); err != nil {
			log.Fatalln(err)
		}
	}

	if date != "" {
		if cfg.Date, err = dateparse.ParseAny(date); err != nil {
			log.Fatalln(pfx.Err(err))
		}
	} else {
		cfg.Date = time.Now()
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg genmap.Config) error {
	ctx := context.Background()

	if usesStorage(cfg.BackboneMap, cfg.MarkerMap, cfg.OverrideMap) {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return pfx.Err(err)
		}
		defer client.Close()
		cfg.Storage = client
	}

	summary, err := genmap.Run(ctx, cfg)
	if err != nil {
		return err
	}

	log.Println("Wrote", cfg.Output)
	log.Println(summary)

	return nil
}

func usesStorage(paths ...string) bool {
	for _, path := range paths {
		if genmapload.IsGSPath(path) {
			return true
		}
	}

	return false
}
