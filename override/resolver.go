// Package override resolves curated genetic positions that take precedence
// over interpolated ones.
package override

import (
	"fmt"
	"strconv"

	"github.com/mgijax/genmapload"
)

// Value is a curated genetic position. Text is kept as found in the source so
// that it is emitted without reformatting.
type Value struct {
	Text string
	CM   float64
}

// Resolver maps marker keys to curated positions. It is not modified after
// NewResolver returns.
type Resolver struct {
	values map[int]Value
}

// NewResolver builds the marker key -> curated position map from the rows of
// the secondary map. keysByAccession translates a row's accession ID into the
// internal marker keys it stands for.
//
// Only rows with status "good" and a non-empty average cM are used. When a
// marker key is reached more than once the first value seen is kept and the
// later ones are ignored without being parsed. A non-numeric or negative
// value on a row that supplies at least one marker's position is an error.
func NewResolver(rows []Row, keysByAccession map[string][]int) (*Resolver, error) {
	res := &Resolver{
		values: make(map[int]Value),
	}

	for _, row := range rows {
		if !row.Good() || row.AverageCM == "" {
			continue
		}

		keys, exists := keysByAccession[row.AccID]
		if !exists {
			continue
		}

		// A row whose markers all have a value already is dropped unread.
		if !res.anyUnseen(keys) {
			continue
		}

		cm, err := strconv.ParseFloat(row.AverageCM, 64)
		if err != nil {
			return nil, genmapload.MalformedRow(sourceName, row.Line, "average cM: %v", err)
		}
		if cm < 0 {
			return nil, genmapload.MalformedRow(sourceName, row.Line, "average cM: negative value %s", row.AverageCM)
		}

		for _, key := range keys {
			if _, seen := res.values[key]; seen {
				continue
			}
			res.values[key] = Value{Text: row.AverageCM, CM: cm}
		}
	}

	return res, nil
}

func (r *Resolver) anyUnseen(keys []int) bool {
	for _, key := range keys {
		if _, seen := r.values[key]; !seen {
			return true
		}
	}

	return false
}

// Lookup returns the curated position of a marker key.
func (r *Resolver) Lookup(key int) (Value, bool) {
	if r == nil {
		return Value{}, false
	}

	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of marker keys with a curated position.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}

	return len(r.values)
}

func (v Value) String() string {
	return fmt.Sprintf("%s cM", v.Text)
}
