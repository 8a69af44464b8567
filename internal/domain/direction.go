package domain

// Direction selects which way an interval is measured from the first note.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// DefaultDirection is used when a caller does not supply one.
const DefaultDirection = Ascending

// ParseDirection accepts exactly "asc" or "desc".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", InvalidArgument("direction.parse", "unsupported direction %q (expected asc|desc)", s)
	}
}

func (d Direction) String() string { return string(d) }

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}
