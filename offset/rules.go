package offset

import (
	"github.com/mgijax/genmapload/interpolate"
	"github.com/mgijax/genmapload/marker"
)

// Rule identifies one tier of the resolution chain.
type Rule int

const (
	RuleNone Rule = iota
	RuleOverride
	RuleNoCoordinate
	RuleNoBackbone
	RuleChromosomeMismatch
	RuleInterpolated
)

func (r Rule) String() string {
	switch r {
	case RuleOverride:
		return "override"
	case RuleNoCoordinate:
		return "no coordinate"
	case RuleNoBackbone:
		return "no backbone coverage"
	case RuleChromosomeMismatch:
		return "chromosome mismatch"
	case RuleInterpolated:
		return "interpolated"
	}

	return "none"
}

// tier pairs a predicate with the resolution used when it holds. Each
// predicate may assume that every earlier tier did not apply.
type tier struct {
	rule    Rule
	applies func(b *Builder, m marker.Record) bool
	resolve func(b *Builder, m marker.Record) Offset
}

// tiers is evaluated top to bottom; the first tier that applies is final.
// Reordering it changes the output.
var tiers = []tier{
	{
		rule: RuleOverride,
		applies: func(b *Builder, m marker.Record) bool {
			_, ok := b.Overrides.Lookup(m.Key)
			return ok
		},
		resolve: func(b *Builder, m marker.Record) Offset {
			v, _ := b.Overrides.Lookup(m.Key)
			return Curated(v.CM, v.Text)
		},
	},
	{
		rule: RuleNoCoordinate,
		applies: func(b *Builder, m marker.Record) bool {
			return !m.Position.Valid || !(m.Position.Float64 > 0)
		},
		resolve: syntenic,
	},
	{
		rule: RuleNoBackbone,
		applies: func(b *Builder, m marker.Record) bool {
			_, ok := b.Index.Lookup(m.Chromosome)
			return !ok
		},
		resolve: syntenic,
	},
	{
		rule: RuleChromosomeMismatch,
		applies: func(b *Builder, m marker.Record) bool {
			return m.GenomicChromosome.Valid && m.GenomicChromosome.String != m.Chromosome
		},
		resolve: syntenic,
	},
	{
		rule: RuleInterpolated,
		applies: func(b *Builder, m marker.Record) bool {
			return true
		},
		resolve: func(b *Builder, m marker.Record) Offset {
			seq, _ := b.Index.Lookup(m.Chromosome)
			return Computed(interpolate.Estimate(seq, m.Position.Float64))
		},
	},
}

func syntenic(*Builder, marker.Record) Offset {
	return Syntenic
}

// Tiers returns the rules of the chain in evaluation order.
func Tiers() []Rule {
	out := make([]Rule, len(tiers))
	for i, t := range tiers {
		out[i] = t.rule
	}

	return out
}
