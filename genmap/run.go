package genmap

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/carbocation/pfx"
	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/backbone"
	"github.com/mgijax/genmapload/marker"
	"github.com/mgijax/genmapload/offset"
	"github.com/mgijax/genmapload/override"
)

// Summary describes a completed run.
type Summary struct {
	Chromosomes     int
	ReferencePoints int
	Markers         int
	Overrides       int
	Rules           map[offset.Rule]int
}

func (s Summary) String() string {
	out := fmt.Sprintf("%d markers, %d backbone points on %d chromosomes, %d overrides;", s.Markers, s.ReferencePoints, s.Chromosomes, s.Overrides)
	for _, rule := range offset.Tiers() {
		out += fmt.Sprintf(" %s: %d", rule, s.Rules[rule])
	}

	return out
}

// Inputs are the fully loaded inputs of a run.
type Inputs struct {
	Index     *backbone.Index
	Markers   []marker.Record
	Overrides *override.Resolver
}

// Load reads every input of cfg into memory. Any unreadable or malformed
// input fails the load.
func Load(ctx context.Context, cfg Config) (*Inputs, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	data, err := genmapload.ReadInput(ctx, cfg.BackboneMap, cfg.Storage)
	if err != nil {
		return nil, err
	}
	idx, err := backbone.Load(bytes.NewReader(data), genmapload.ResolveDelimiter(data, cfg.BackboneDelimiter))
	if err != nil {
		return nil, err
	}

	data, err = genmapload.ReadInput(ctx, cfg.MarkerMap, cfg.Storage)
	if err != nil {
		return nil, err
	}
	markers, err := marker.Read(bytes.NewReader(data), genmapload.ResolveDelimiter(data, cfg.MarkerDelimiter))
	if err != nil {
		return nil, err
	}

	in := &Inputs{
		Index:   idx,
		Markers: markers,
	}

	if cfg.OverrideMap == "" {
		return in, nil
	}

	data, err = genmapload.ReadInput(ctx, cfg.OverrideMap, cfg.Storage)
	if err != nil {
		return nil, err
	}
	rows, err := override.ReadSource(bytes.NewReader(data), genmapload.ResolveDelimiter(data, cfg.OverrideDelimiter))
	if err != nil {
		return nil, err
	}
	in.Overrides, err = override.NewResolver(rows, marker.IndexByAccession(markers, cfg.OverrideSymbols))
	if err != nil {
		return nil, err
	}

	return in, nil
}

// Run loads the inputs, resolves every marker and writes the offset table to
// cfg.Output. The table is written to a temporary file next to the output and
// renamed into place only once complete, so a failed run leaves any previous
// output untouched.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	var summary Summary

	in, err := Load(ctx, cfg)
	if err != nil {
		return summary, err
	}

	summary.Chromosomes = len(in.Index.Chromosomes())
	summary.ReferencePoints = in.Index.Len()
	summary.Markers = len(in.Markers)
	summary.Overrides = in.Overrides.Len()
	log.Printf("Loaded %d backbone points on %d chromosomes, %d markers and %d overrides\n",
		summary.ReferencePoints, summary.Chromosomes, summary.Markers, summary.Overrides)

	date := cfg.Date
	if date.IsZero() {
		date = time.Now()
	}

	b := &offset.Builder{
		Index:     in.Index,
		Overrides: in.Overrides,
		Source:    cfg.Source,
		Date:      date,
		Workers:   cfg.Workers,
	}

	records, err := b.Build(ctx, in.Markers)
	if err != nil {
		return summary, err
	}
	summary.Rules = offset.Tally(records)

	if err := writeAtomic(cfg.Output, records); err != nil {
		return summary, err
	}

	return summary, nil
}

func writeAtomic(path string, records []offset.Record) (err error) {
	path = genmapload.ExpandHome(path)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = offset.Write(tmp, records); err != nil {
		return pfx.Err(err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return pfx.Err(err)
	}
	if err = tmp.Close(); err != nil {
		return pfx.Err(err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return pfx.Err(err)
	}

	return nil
}
