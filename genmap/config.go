// Package genmap runs the offset table build end to end: every input is
// loaded into memory first, then markers are resolved and the table is
// written in one piece.
package genmap

import (
	"fmt"
	"regexp"
	"time"

	"cloud.google.com/go/storage"
	"github.com/mgijax/genmapload"
	"github.com/mgijax/genmapload/offset"
)

// Config describes one run.
type Config struct {
	// BackboneMap is the SNP backbone map (required).
	BackboneMap string
	// MarkerMap is the marker map (required).
	MarkerMap string
	// OverrideMap is the curated secondary map. Empty means no overrides.
	OverrideMap string
	// Output is the offset table to write (required).
	Output string

	// Delimiters of the inputs. 0 detects the delimiter from the data.
	BackboneDelimiter rune
	MarkerDelimiter   rune
	OverrideDelimiter rune

	// OverrideSymbols, if set, restricts overrides to markers whose symbol
	// matches it.
	OverrideSymbols *regexp.Regexp

	// Source is the discriminator written on every record.
	Source int
	// Date stamps every record. The zero value means today.
	Date time.Time
	// Workers resolves markers concurrently when greater than 1.
	Workers int

	// Storage is used for gs:// inputs. May be nil.
	Storage *storage.Client
}

// DefaultConfig returns a Config with the historical delimiters and source.
func DefaultConfig() Config {
	return Config{
		BackboneDelimiter: ',',
		MarkerDelimiter:   '\t',
		OverrideDelimiter: '\t',
		Source:            offset.DefaultSource,
		Workers:           1,
	}
}

// Validate reports missing required paths.
func (c Config) Validate() error {
	for _, v := range []struct {
		name, path string
	}{
		{"backbone map", c.BackboneMap},
		{"marker map", c.MarkerMap},
		{"output", c.Output},
	} {
		if v.path == "" {
			return fmt.Errorf("%w: no %s path configured", genmapload.ErrMissingInput, v.name)
		}
	}

	if genmapload.IsGSPath(c.Output) {
		return fmt.Errorf("output %s: only local output paths are supported", c.Output)
	}

	return nil
}
