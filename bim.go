package genmapload

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// BIM reads PLINK .bim variant rows from any reader.
type BIM struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

func NewBIM(r io.Reader) *BIM {
	return &BIM{
		scanner: bufio.NewScanner(r),
	}
}

func (b *BIM) Err() error {
	if b.err != nil {
		return b.err
	}

	return b.scanner.Err()
}

// Read returns the next row, or nil at the end of the input or on error.
// Blank lines are skipped.
func (b *BIM) Read() *BIMRow {
	for b.scanner.Scan() {
		b.line++

		cols := strings.Fields(b.scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if len(cols) < Allele2+1 {
			b.err = MalformedRow("bim", b.line, "expected %d columns, found %d", Allele2+1, len(cols))
			return nil
		}

		row := &BIMRow{
			Chromosome: cols[Chromosome],
			VariantID:  cols[VariantID],
			Morgans:    cols[Morgans],
			Allele1:    cols[Allele1],
			Allele2:    cols[Allele2],
		}

		coord64, err := strconv.ParseUint(cols[Coordinate], 10, 32)
		if err != nil {
			b.err = &RowError{Source: "bim", Line: b.line, Err: fmt.Errorf("coordinate: %w", err)}
			return nil
		}
		row.Coordinate = uint32(coord64)

		return row
	}

	return nil
}
