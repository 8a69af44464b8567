package interval

// Specifier is a named interval: quality letter, diatonic degree and width.
type Specifier struct {
	Name      string
	Quality   Quality
	Degree    int
	Semitones int
}

// Quality modifies the width of a degree.
type Quality byte

const (
	Minor   Quality = 'm'
	Major   Quality = 'M'
	Perfect Quality = 'P'
)

func (q Quality) String() string {
	switch q {
	case Minor:
		return "minor"
	case Major:
		return "major"
	case Perfect:
		return "perfect"
	default:
		return "unknown"
	}
}

// table is ordered by width; identification returns the first exact match.
var table = []Specifier{
	{Name: "m2", Quality: Minor, Degree: 2, Semitones: 1},
	{Name: "M2", Quality: Major, Degree: 2, Semitones: 2},
	{Name: "m3", Quality: Minor, Degree: 3, Semitones: 3},
	{Name: "M3", Quality: Major, Degree: 3, Semitones: 4},
	{Name: "P4", Quality: Perfect, Degree: 4, Semitones: 5},
	{Name: "P5", Quality: Perfect, Degree: 5, Semitones: 7},
	{Name: "m6", Quality: Minor, Degree: 6, Semitones: 8},
	{Name: "M6", Quality: Major, Degree: 6, Semitones: 9},
	{Name: "m7", Quality: Minor, Degree: 7, Semitones: 10},
	{Name: "M7", Quality: Major, Degree: 7, Semitones: 11},
	{Name: "P8", Quality: Perfect, Degree: 8, Semitones: 12},
}

var byName = func() map[string]Specifier {
	m := make(map[string]Specifier, len(table))
	for _, s := range table {
		m[s.Name] = s
	}
	return m
}()

// Lookup returns the table entry for an interval name such as "M3".
func Lookup(name string) (Specifier, bool) {
	s, ok := byName[name]
	return s, ok
}

// BySemitones returns the first table entry whose width equals n.
func BySemitones(n int) (Specifier, bool) {
	for _, s := range table {
		if s.Semitones == n {
			return s, true
		}
	}
	return Specifier{}, false
}

// Specifiers returns a copy of the interval table in width order.
func Specifiers() []Specifier {
	out := make([]Specifier, len(table))
	copy(out, table)
	return out
}
