package genmapload

import "strconv"

// Map columns in the BIM file to their positions
const (
	Chromosome int = iota
	VariantID
	Morgans
	Coordinate
	Allele1
	Allele2
)

type BIMRow struct {
	Chromosome string
	VariantID  string // E.g., RSID
	Morgans    string // Genetic distance as found in the file; "0" when unknown
	Coordinate uint32 // Labeled "position" by most applications
	Allele1    string // Can contain > 1 character
	Allele2    string // Can contain > 1 character
}

// Fields returns the row in BIM column order.
func (r BIMRow) Fields() []string {
	return []string{
		r.Chromosome,
		r.VariantID,
		r.Morgans,
		strconv.FormatUint(uint64(r.Coordinate), 10),
		r.Allele1,
		r.Allele2,
	}
}
