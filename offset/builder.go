// Package offset resolves every marker to a genetic map offset and writes the
// offset table consumed by the bulk loader.
package offset

import (
	"context"
	"time"

	"github.com/mgijax/genmapload/backbone"
	"github.com/mgijax/genmapload/marker"
	"github.com/mgijax/genmapload/override"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of markers resolved by one worker task.
const chunkSize = 4096

// Builder resolves markers against a backbone index and a set of curated
// overrides. Both are only read, so a Builder may be shared.
type Builder struct {
	Index     *backbone.Index
	Overrides *override.Resolver

	// Source is the discriminator written on every record.
	Source int

	// Date stamps the creation and modification dates.
	Date time.Time

	// Workers > 1 resolves chunks of markers concurrently. Output order is
	// always input order.
	Workers int
}

// Resolve returns the offset of one marker and the tier that produced it.
func (b *Builder) Resolve(m marker.Record) (Offset, Rule) {
	for _, t := range tiers {
		if t.applies(b, m) {
			return t.resolve(b, m), t.rule
		}
	}

	// The last tier always applies.
	return Syntenic, RuleNone
}

// Build resolves markers in input order, producing exactly one record per
// marker.
func (b *Builder) Build(ctx context.Context, markers []marker.Record) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Record, len(markers))

	if b.Workers <= 1 || len(markers) <= chunkSize {
		b.resolveInto(out, markers)
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Workers)

	for start := 0; start < len(markers); start += chunkSize {
		end := start + chunkSize
		if end > len(markers) {
			end = len(markers)
		}

		// Each task writes a disjoint window of out.
		dst, src := out[start:end], markers[start:end]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b.resolveInto(dst, src)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (b *Builder) resolveInto(dst []Record, markers []marker.Record) {
	for i, m := range markers {
		o, rule := b.Resolve(m)
		dst[i] = NewRecord(m.Key, b.Source, o, rule, b.Date)
	}
}

// Tally counts records per rule.
func Tally(records []Record) map[Rule]int {
	out := make(map[Rule]int)
	for _, r := range records {
		out[r.Rule]++
	}

	return out
}
