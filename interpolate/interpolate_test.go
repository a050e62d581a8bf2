package interpolate

import (
	"math"
	"strings"
	"testing"

	"github.com/mgijax/genmapload/backbone"
)

const chr1 = `snpID,chr,build37,fem_cM,mal_cM,ave_cM
zero1,1,0,0.000,0.000,0.000
rs3683945,1,3187481,1.663,1.521,1.593
rs3707673,1,3397474,1.769,1.521,1.648
rs6269442,1,3482276,1.769,1.521,1.648
rs6336442,1,3692684,1.769,1.521,1.648
rs3713001,1,4319749,2.207,1.701,1.954
rs13475700,1,4775208,2.310,2.092,2.201
`

func loadChr1(t *testing.T) backbone.Sequence {
	t.Helper()

	idx, err := backbone.Load(strings.NewReader(chr1), ',')
	if err != nil {
		t.Fatal(err)
	}
	seq, ok := idx.Lookup("1")
	if !ok {
		t.Fatal("chromosome 1 missing")
	}

	return seq
}

func TestLocateBracket(t *testing.T) {
	seq := loadChr1(t)

	for _, v := range []struct {
		Target   float64
		Expected int
	}{
		{-5, -1},
		{0, 0},
		{1, 0},
		{3187480, 0},
		{3187481, 1},
		{3292000, 1},
		{3397474, 2},
		{4775208, 6},
		{9999999, 6},
	} {
		if i := LocateBracket(seq, v.Target); i != v.Expected {
			t.Errorf("LocateBracket(%v): got %d, expected %d", v.Target, i, v.Expected)
		}
	}
}

func TestEstimateBetweenPoints(t *testing.T) {
	seq := loadChr1(t)

	expected := 1.593 + (float64(3292000-3187481)/float64(3397474-3187481))*(1.648-1.593)
	if got := Estimate(seq, 3292000); math.Abs(got-expected) > 1e-12 {
		t.Fatalf("Estimate: got %.12f, expected %.12f", got, expected)
	}
	if got := Estimate(seq, 3292000); math.Abs(got-1.620) > 0.001 {
		t.Fatalf("Estimate: got %.6f, expected about 1.620", got)
	}
}

func TestEstimateKnotIdentity(t *testing.T) {
	seq := loadChr1(t)

	for _, p := range seq {
		if got := Estimate(seq, p.Position); got != p.AverageCM {
			t.Errorf("%s at %v: got %v, expected exactly %v", p.SNP, p.Position, got, p.AverageCM)
		}
		if got := Convert(seq, p.Position, backbone.Position, backbone.Female); got != p.FemaleCM {
			t.Errorf("%s female: got %v, expected exactly %v", p.SNP, got, p.FemaleCM)
		}
	}
}

func TestEstimateBeyondLastPoint(t *testing.T) {
	seq := loadChr1(t)
	last := seq[len(seq)-1]

	target := 5000000.0
	expected := target * last.AverageCM / last.Position
	if got := Estimate(seq, target); got != expected {
		t.Fatalf("got %v, expected %v", got, expected)
	}
}

func TestEstimateMonotonic(t *testing.T) {
	seq := loadChr1(t)

	prev := Estimate(seq, 0)
	for pos := 1000.0; pos < 6000000; pos += 1000 {
		cur := Estimate(seq, pos)
		if cur < prev {
			t.Fatalf("estimate decreased at %v: %v < %v", pos, cur, prev)
		}
		prev = cur
	}
}

func TestEstimateZeroPositionGuard(t *testing.T) {
	seq := backbone.Sequence{{Position: 0, AverageCM: 0.5}}

	if got := Estimate(seq, 100); got != 0.5 {
		t.Fatalf("got %v, expected 0.5", got)
	}
	if got := Estimate(nil, 100); !math.IsNaN(got) {
		t.Fatalf("got %v, expected NaN for an empty sequence", got)
	}
}

func TestEstimateDegenerateBracket(t *testing.T) {
	lo := backbone.ReferencePoint{Position: 10, AverageCM: 1}
	hi := backbone.ReferencePoint{Position: 10, AverageCM: 2}

	if got := between(lo, hi, 10, backbone.Position, backbone.Average); got != 1 {
		t.Fatalf("got %v, expected the lower point's value", got)
	}
}

func TestEstimateBeforeFirstPoint(t *testing.T) {
	seq := backbone.Sequence{
		{Position: 1000, AverageCM: 1},
		{Position: 2000, AverageCM: 3},
	}

	if got := Estimate(seq, 500); got != 0.5 {
		t.Fatalf("got %v, expected 0.5", got)
	}
}

func TestConvertToPosition(t *testing.T) {
	seq := loadChr1(t)

	// Halfway between 1.593 and 1.648 cM
	got := Convert(seq, 1.6205, backbone.Average, backbone.Position)
	if got != math.Trunc(got) {
		t.Fatalf("expected a whole basepair, got %v", got)
	}
	if got < 3187481 || got > 3397474 {
		t.Fatalf("got %v, expected a position between the bracketing SNPs", got)
	}
}
