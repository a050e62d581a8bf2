package offset

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/backbone"
	"github.com/mgijax/genmapload/marker"
	"github.com/mgijax/genmapload/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

const backboneMap = `snpID,chr,build37,fem_cM,mal_cM,ave_cM
zero1,1,0,0.000,0.000,0.000
rs3683945,1,3187481,1.663,1.521,1.593
rs3707673,1,3397474,1.769,1.521,1.648
rsX,20,5000000,2.000,,
`

var runDate = time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

func newBuilder(t *testing.T) *Builder {
	t.Helper()

	idx, err := backbone.Load(strings.NewReader(backboneMap), ',')
	require.NoError(t, err)

	mit := make([]string, 15)
	mit[3], mit[11], mit[14] = "MGI:D", "good", "12.3"
	header := strings.Repeat("h\t", 14) + "h\n"
	rows, err := override.ReadSource(strings.NewReader(header+strings.Join(mit, "\t")+"\n"), '\t')
	require.NoError(t, err)

	res, err := override.NewResolver(rows, map[string][]int{"MGI:D": {4}})
	require.NoError(t, err)

	return &Builder{Index: idx, Overrides: res, Source: DefaultSource, Date: runDate}
}

func placed(key int, chr string, bp float64) marker.Record {
	return marker.Record{Key: key, Chromosome: chr, Position: null.FloatFrom(bp)}
}

func TestResolveExamples(t *testing.T) {
	b := newBuilder(t)

	o, rule := b.Resolve(placed(1, "1", 3292000))
	assert.Equal(t, RuleInterpolated, rule)
	assert.InDelta(t, 1.620, o.Value, 0.001)

	o, rule = b.Resolve(placed(2, "1", 3397474))
	assert.Equal(t, RuleInterpolated, rule)
	assert.Equal(t, 1.648, o.Value)
	assert.Equal(t, "1.648", o.String())

	o, rule = b.Resolve(marker.Record{Key: 3, Chromosome: "1"})
	assert.Equal(t, RuleNoCoordinate, rule)
	assert.Equal(t, "-1.0", o.String())

	o, rule = b.Resolve(placed(4, "1", 3292000))
	assert.Equal(t, RuleOverride, rule)
	assert.Equal(t, "12.3", o.String())
	assert.Equal(t, 12.3, o.Value)
}

func TestResolveTiers(t *testing.T) {
	b := newBuilder(t)

	for _, v := range []struct {
		Name     string
		Marker   marker.Record
		Expected Rule
	}{
		{"override without coordinate", marker.Record{Key: 4, Chromosome: "1"}, RuleOverride},
		{"override off the backbone", placed(4, "Y", 100), RuleOverride},
		{"override with mismatch", marker.Record{Key: 4, Chromosome: "1", Position: null.FloatFrom(100), GenomicChromosome: null.StringFrom("2")}, RuleOverride},
		{"absent position", marker.Record{Key: 5, Chromosome: "1"}, RuleNoCoordinate},
		{"zero position", placed(5, "1", 0), RuleNoCoordinate},
		{"negative position", placed(5, "1", -10), RuleNoCoordinate},
		{"absent position off the backbone", marker.Record{Key: 5, Chromosome: "MT"}, RuleNoCoordinate},
		{"no coverage", placed(6, "MT", 5328), RuleNoBackbone},
		{"no coverage with mismatch", marker.Record{Key: 6, Chromosome: "Y", Position: null.FloatFrom(100), GenomicChromosome: null.StringFrom("1")}, RuleNoBackbone},
		{"mismatch", marker.Record{Key: 7, Chromosome: "1", Position: null.FloatFrom(3292000), GenomicChromosome: null.StringFrom("2")}, RuleChromosomeMismatch},
		{"matching genomic chromosome", marker.Record{Key: 8, Chromosome: "1", Position: null.FloatFrom(3292000), GenomicChromosome: null.StringFrom("1")}, RuleInterpolated},
		{"X", placed(9, "20", 2500000), RuleInterpolated},
	} {
		o, rule := b.Resolve(v.Marker)
		assert.Equal(t, v.Expected, rule, v.Name)

		switch rule {
		case RuleNoCoordinate, RuleNoBackbone, RuleChromosomeMismatch:
			assert.True(t, o.IsSyntenic(), v.Name)
		default:
			assert.GreaterOrEqual(t, o.Value, 0.0, v.Name)
		}
	}
}

func TestResolveX(t *testing.T) {
	b := newBuilder(t)

	o, _ := b.Resolve(placed(9, "20", 2500000))
	assert.Equal(t, 1.0, o.Value)

	// Beyond the last point: scaled from the origin.
	o, _ = b.Resolve(placed(9, "20", 10000000))
	assert.Equal(t, 4.0, o.Value)
}

func TestTierOrder(t *testing.T) {
	assert.Equal(t, []Rule{RuleOverride, RuleNoCoordinate, RuleNoBackbone, RuleChromosomeMismatch, RuleInterpolated}, Tiers())
}

func testMarkers(n int) []marker.Record {
	out := make([]marker.Record, 0, n)
	for i := 0; i < n; i++ {
		m := placed(i+1, "1", float64(i*997))
		switch i % 7 {
		case 1:
			m.Position = null.Float{}
		case 2:
			m.Chromosome = "Y"
		case 3:
			m.GenomicChromosome = null.StringFrom("2")
		case 4:
			m.Key = 4
		}
		out = append(out, m)
	}

	return out
}

func TestBuildOneRecordPerMarker(t *testing.T) {
	b := newBuilder(t)
	markers := testMarkers(100)

	records, err := b.Build(context.Background(), markers)
	require.NoError(t, err)
	require.Len(t, records, len(markers))

	for i, r := range records {
		assert.Equal(t, markers[i].Key, r.MarkerKey)
		assert.Equal(t, DefaultSource, r.Source)
		assert.Equal(t, "10/17/2026", r.CreationDate)
		assert.Equal(t, r.CreationDate, r.ModificationDate)
		assert.True(t, r.Offset.Value >= 0 || r.Offset.IsSyntenic())
	}

	tally := Tally(records)
	assert.Equal(t, len(markers), tally[RuleOverride]+tally[RuleNoCoordinate]+tally[RuleNoBackbone]+tally[RuleChromosomeMismatch]+tally[RuleInterpolated])
	assert.Zero(t, tally[RuleNone])
}

func TestBuildParallelMatchesSerial(t *testing.T) {
	markers := testMarkers(3*chunkSize + 17)

	serial := newBuilder(t)
	expected, err := serial.Build(context.Background(), markers)
	require.NoError(t, err)

	parallel := newBuilder(t)
	parallel.Workers = 4
	got, err := parallel.Build(context.Background(), markers)
	require.NoError(t, err)

	assert.Equal(t, expected, got)
}

func TestBuildCanceled(t *testing.T) {
	b := newBuilder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, testMarkers(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteIdempotent(t *testing.T) {
	markers := testMarkers(50)

	var outputs []string
	for i := 0; i < 2; i++ {
		records, err := newBuilder(t).Build(context.Background(), markers)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, records))
		outputs = append(outputs, buf.String())
	}

	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, 50, strings.Count(outputs[0], "\n"))
}

func TestWriteFormat(t *testing.T) {
	records := []Record{
		NewRecord(10, 0, Computed(1.6203754), RuleInterpolated, runDate),
		NewRecord(11, 0, Syntenic, RuleNoCoordinate, runDate),
		NewRecord(12, 0, Curated(12.3, "12.30"), RuleOverride, runDate),
		NewRecord(13, 0, Computed(0), RuleInterpolated, runDate),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	assert.Equal(t, "10\t0\t1.6203754\t10/17/2026\t10/17/2026\n"+
		"11\t0\t-1.0\t10/17/2026\t10/17/2026\n"+
		"12\t0\t12.30\t10/17/2026\t10/17/2026\n"+
		"13\t0\t0.0\t10/17/2026\t10/17/2026\n", buf.String())
}

func TestFormatCM(t *testing.T) {
	for in, expected := range map[float64]string{
		12:                 "12.0",
		-1:                 "-1.0",
		1.648:              "1.648",
		1.6203754000000001: "1.6203754",
		1.0 / 3.0:          "0.333333333333",
		95.5:               "95.5",
	} {
		assert.Equal(t, expected, FormatCM(in), "%v", in)
	}
}

func TestReadWrittenTable(t *testing.T) {
	records := []Record{
		NewRecord(10, 0, Computed(1.6203754), RuleInterpolated, runDate),
		NewRecord(11, 0, Syntenic, RuleNoCoordinate, runDate),
		NewRecord(12, 0, Curated(12.3, "12.30"), RuleOverride, runDate),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))
	written := buf.String()

	got, err := Read(strings.NewReader(written))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 12.3, got[2].Offset.Value)
	assert.True(t, got[1].Offset.IsSyntenic())

	buf.Reset()
	require.NoError(t, Write(&buf, got))
	assert.Equal(t, written, buf.String())

	_, err = Read(strings.NewReader("10\t0\t-3.0\t10/17/2026\t10/17/2026\n"))
	assert.ErrorIs(t, err, genmapload.ErrMalformedRow)
}

func TestReadTable(t *testing.T) {
	got, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Read(strings.NewReader("10\t0\t12.30\t10/17/2026\t10/18/2026\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].MarkerKey)
	assert.Equal(t, "12.30", got[0].Offset.String())
	assert.Equal(t, "10/18/2026", got[0].ModificationDate)

	for _, in := range []string{
		"x\t0\t1.0\t10/17/2026\t10/17/2026\n",
		"10\t0\tnone\t10/17/2026\t10/17/2026\n",
		"10\t0\t1.0\t10/17/2026\n",
	} {
		_, err := Read(strings.NewReader(in))
		assert.ErrorIs(t, err, genmapload.ErrMalformedRow, "%q", in)
	}
}
