// interpolatecm fills the centiMorgan column of a PLINK .bim or .pvar file by
// interpolating each variant's position against the SNP backbone map.
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/backbone"

	_ "github.com/mgijax/genmapload/compileinfoprint"
)

func main() {
	var bimFile, pvarFile, mapFile, outFile, delim string
	flag.StringVar(&bimFile, "bim", "", ".bim file. Column 3 is replaced.")
	flag.StringVar(&pvarFile, "pvar", "", ".pvar file. Must have a 'CM' column.")
	flag.StringVar(&mapFile, "map", os.Getenv("SNP_MAP_FILE"), "SNP backbone map (snpID, chr, bp, female cM, male cM, average cM; header skipped). Defaults to $SNP_MAP_FILE.")
	flag.StringVar(&delim, "delim", ",", "delimiter for the map file, or 'auto'")
	flag.StringVar(&outFile, "out", "", "output file. If not specified, writes to stdout")
	flag.Parse()

	if (bimFile == "") == (pvarFile == "") || mapFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	d, err := genmapload.ParseDelimiter(delim)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(bimFile, pvarFile, mapFile, outFile, d); err != nil {
		log.Fatalln(err)
	}
}

func run(bimFile, pvarFile, mapFile, outFile string, delim rune) error {
	ctx := context.Background()

	// Map
	data, err := genmapload.ReadInput(ctx, mapFile, nil)
	if err != nil {
		return err
	}
	idx, err := backbone.Load(bytes.NewReader(data), genmapload.ResolveDelimiter(data, delim))
	if err != nil {
		return err
	}

	// Writer
	var outWriter io.WriteCloser
	if outFile == "" {
		outWriter = os.Stdout
	} else {
		outWriter, err = os.Create(outFile)
		if err != nil {
			return pfx.Err(err)
		}
	}
	defer outWriter.Close()

	w := bufio.NewWriter(outWriter)

	// Variants
	inFile := bimFile
	if inFile == "" {
		inFile = pvarFile
	}
	rdr, err := genmapload.OpenInput(ctx, inFile, nil)
	if err != nil {
		return pfx.Err(err)
	}
	defer rdr.Close()
	in, err := genmapload.MaybeDecompress(rdr)
	if err != nil {
		return pfx.Err(err)
	}

	var n int
	if bimFile != "" {
		n, err = processBIM(in, w, idx)
	} else {
		n, err = processPVAR(in, w, idx)
	}
	if err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return pfx.Err(err)
	}

	log.Println("Interpolated", n, "variants")

	return nil
}
