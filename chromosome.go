package genmapload

import "strings"

// XChromosome is the key under which the backbone map files chromosome X.
const XChromosome = "20"

// NormalizeChromosome maps chromosome labels onto the keys used by the
// backbone map: a leading "chr" is dropped and X becomes "20". Every other
// label (Y, XY, MT, UN) is returned unchanged and simply has no coverage.
func NormalizeChromosome(chr string) string {
	chr = strings.TrimSpace(chr)
	if len(chr) > 3 && strings.EqualFold(chr[:3], "chr") {
		chr = chr[3:]
	}

	if strings.EqualFold(chr, "X") {
		return XChromosome
	}

	return strings.ToUpper(chr)
}
