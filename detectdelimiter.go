package genmapload

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// ParseDelimiter turns a command line delimiter into a rune. "auto" (or the
// empty string) yields 0, which asks ResolveDelimiter to sniff the data.
// "\t" and "tab" both mean a TAB.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", "auto":
		return 0, nil
	case `\t`, "tab", "TAB":
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}

	return r, nil
}

// ResolveDelimiter returns delim unless it is 0, in which case the delimiter
// is detected from data.
func ResolveDelimiter(data []byte, delim rune) rune {
	if delim != 0 {
		return delim
	}

	return DetermineDelimiter(bytes.NewReader(data))
}
