package backbone

import (
	"errors"
	"strings"
	"testing"

	"github.com/mgijax/genmapload"
)

const sample = `snpID,chr,build37,fem_cM,mal_cM,ave_cM
rs3707673,1,3397474,1.769,1.521,1.648
zero1,1,0,0.000,0.000,0.000
rs3683945,1,3187481,1.663,1.521,1.593
rs13476090,2,3213002,0.000,0.000,0.000
rs13483700,20,7131011,0.512,,
rs13483701,20,7231011,0.612,NA,0.700
`

func TestLoad(t *testing.T) {
	idx, err := Load(strings.NewReader(sample), ',')
	if err != nil {
		t.Fatal(err)
	}

	if idx.Len() != 6 {
		t.Errorf("got %d points, expected 6", idx.Len())
	}

	if got := strings.Join(idx.Chromosomes(), " "); got != "1 2 20" {
		t.Errorf("chromosomes: got %q", got)
	}

	seq, ok := idx.Lookup("1")
	if !ok || len(seq) != 3 {
		t.Fatalf("chromosome 1: got %v (%v)", seq, ok)
	}
	if seq[0].SNP != "zero1" || seq[1].SNP != "rs3683945" || seq[2].SNP != "rs3707673" {
		t.Errorf("chromosome 1 not sorted by position: %+v", seq)
	}
}

func TestLoadSortedByPosition(t *testing.T) {
	idx, err := Load(strings.NewReader(sample), ',')
	if err != nil {
		t.Fatal(err)
	}

	for _, chr := range idx.Chromosomes() {
		seq, _ := idx.Lookup(chr)
		for i := 1; i < len(seq); i++ {
			if seq[i].Position < seq[i-1].Position {
				t.Errorf("chromosome %s: position %v follows %v", chr, seq[i].Position, seq[i-1].Position)
			}
		}
	}
}

func TestLoadXUsesFemaleMap(t *testing.T) {
	idx, err := Load(strings.NewReader(sample), ',')
	if err != nil {
		t.Fatal(err)
	}

	seq, ok := idx.Lookup("20")
	if !ok {
		t.Fatal("chromosome 20 missing")
	}

	if p := seq[0]; p.MaleCM != 0.512 || p.AverageCM != 0.512 {
		t.Errorf("absent values should take the female value: %+v", p)
	}
	if p := seq[1]; p.MaleCM != 0.612 || p.AverageCM != 0.700 {
		t.Errorf("only absent values should be replaced: %+v", p)
	}
}

func TestLookupAbsent(t *testing.T) {
	idx, err := Load(strings.NewReader(sample), ',')
	if err != nil {
		t.Fatal(err)
	}

	for _, chr := range []string{"Y", "XY", "MT", "UN", "3"} {
		if seq, ok := idx.Lookup(chr); ok || seq != nil {
			t.Errorf("%s: expected no coverage, got %v", chr, seq)
		}
	}
}

func TestLoadMalformed(t *testing.T) {
	header := "snpID,chr,build37,fem_cM,mal_cM,ave_cM\n"

	for _, v := range []struct {
		Name string
		Row  string
		Line int
	}{
		{"too few fields", "rs1,1,100,0.1,0.1\n", 2},
		{"too many fields", "rs1,1,100,0.1,0.1,0.1,0.1\n", 2},
		{"non-numeric bp", "rs1,1,abc,0.1,0.1,0.1\n", 2},
		{"non-numeric cM", "rs1,1,100,0.1,x,0.1\n", 2},
		{"absent autosomal cM", "rs1,1,100,0.1,,0.1\n", 2},
		{"negative bp", "rs1,1,-100,0.1,0.1,0.1\n", 2},
		{"second row", "rs1,1,100,0.1,0.1,0.1\nrs2,1,200,0.1,0.1\n", 3},
	} {
		_, err := Load(strings.NewReader(header+v.Row), ',')
		if !errors.Is(err, genmapload.ErrMalformedRow) {
			t.Errorf("%s: expected a malformed row error, got %v", v.Name, err)
			continue
		}

		var rowErr *genmapload.RowError
		if !errors.As(err, &rowErr) || rowErr.Line != v.Line {
			t.Errorf("%s: expected line %d, got %v", v.Name, v.Line, err)
		}
	}
}

func TestLoadTabDelimited(t *testing.T) {
	data := strings.ReplaceAll(sample, ",", "\t")

	idx, err := Load(strings.NewReader(data), '\t')
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 6 {
		t.Errorf("got %d points, expected 6", idx.Len())
	}
}
