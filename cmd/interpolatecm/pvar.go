package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/backbone"
	"github.com/mgijax/genmapload/interpolate"
)

const (
	PVARChromColumn = 0
	PVARPosColumn   = 1
)

// centiMorgans interpolates a variant, returning "0" when the chromosome is
// not covered by the backbone.
func centiMorgans(idx *backbone.Index, chr string, pos float64) string {
	seq, ok := idx.Lookup(genmapload.NormalizeChromosome(chr))
	if !ok {
		return "0"
	}

	return fmt.Sprintf("%.6f", interpolate.Estimate(seq, pos))
}

func processBIM(f io.Reader, w io.Writer, idx *backbone.Index) (int, error) {
	n := 0

	bim := genmapload.NewBIM(f)
	for row := bim.Read(); row != nil; row = bim.Read() {
		row.Morgans = centiMorgans(idx, row.Chromosome, float64(row.Coordinate))
		fmt.Fprintln(w, strings.Join(row.Fields(), "\t"))
		n++
	}

	return n, bim.Err()
}

func processPVAR(f io.Reader, w io.Writer, idx *backbone.Index) (int, error) {
	var header []string
	sawHeader := false
	pvarCMColumn := -1
	n := 0

	// Read each line from the reader f and print it to the writer w
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "##") {
			fmt.Fprintln(w, line)
			continue
		}

		fields := strings.Split(line, "\t")

		// Setup the header
		if !sawHeader {
			sawHeader = true
			header = fields

			for j, v := range header {
				if v == "CM" {
					pvarCMColumn = j
					break
				}
			}
			if pvarCMColumn < 0 {
				return n, fmt.Errorf("CM column not found in header. Saw: %v", header)
			}

			fmt.Fprintln(w, line)
			continue
		}

		if len(fields) <= pvarCMColumn || len(fields) <= PVARPosColumn {
			return n, fmt.Errorf("%w: pvar row has %d fields: %q", genmapload.ErrMalformedRow, len(fields), line)
		}

		pos, err := strconv.Atoi(fields[PVARPosColumn])
		if err != nil {
			return n, err
		}

		fields[pvarCMColumn] = centiMorgans(idx, fields[PVARChromColumn], float64(pos))
		fmt.Fprintln(w, strings.Join(fields, "\t"))
		n++
	}

	return n, scanner.Err()
}
