package backbone

// Column selects one coordinate of a ReferencePoint.
type Column int

const (
	Position Column = iota // physical position, bp
	Female                 // female map, cM
	Male                   // male map, cM
	Average                // sex-averaged map, cM
)

func (c Column) String() string {
	switch c {
	case Position:
		return "bp"
	case Female:
		return "female cM"
	case Male:
		return "male cM"
	case Average:
		return "average cM"
	}

	return "unknown"
}

// ReferencePoint ties one SNP's physical position to its genetic positions.
type ReferencePoint struct {
	SNP       string
	Position  float64
	FemaleCM  float64
	MaleCM    float64
	AverageCM float64
}

// Get returns the coordinate selected by c.
func (p ReferencePoint) Get(c Column) float64 {
	switch c {
	case Female:
		return p.FemaleCM
	case Male:
		return p.MaleCM
	case Average:
		return p.AverageCM
	}

	return p.Position
}

// Sequence is one chromosome's reference points, ascending by Position.
type Sequence []ReferencePoint
