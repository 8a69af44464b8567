// Package interval builds and names intervals between diatonic notes.
//
// An Engine is stateless apart from the read-only ring it walks, so a single
// instance is safe for concurrent use.
package interval

import (
	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/notering"
)

type Engine struct {
	ring *notering.Ring
}

// New returns an engine over ring. A nil ring selects notering.Default().
func New(ring *notering.Ring) *Engine {
	if ring == nil {
		ring = notering.Default()
	}
	return &Engine{ring: ring}
}

var std = New(notering.Default())

// Default returns the process-wide engine.
func Default() *Engine { return std }

// Construct returns the note that lies interval name away from start in dir.
func (e *Engine) Construct(name, start string, dir domain.Direction) (string, error) {
	a, err := e.construct(name, start, dir)
	if err != nil {
		return "", err
	}
	return a.Result, nil
}

// Identify names the interval from note a to note b in dir.
func (e *Engine) Identify(a, b string, dir domain.Direction) (string, error) {
	ans, err := e.identify(a, b, dir)
	if err != nil {
		return "", err
	}
	return ans.Result, nil
}

func (e *Engine) construct(name, start string, dir domain.Direction) (domain.Answer, error) {
	const op = "interval.construct"

	spec, ok := Lookup(name)
	if !ok {
		return domain.Answer{}, domain.InvalidArgument(op, "unknown interval %q", name)
	}
	note, err := ParseNote(start)
	if err != nil {
		return domain.Answer{}, err
	}
	if err := checkDirection(op, dir); err != nil {
		return domain.Answer{}, err
	}

	pos, err := e.ring.Find(note.Letter)
	if err != nil {
		return domain.Answer{}, err
	}

	pos, counter := e.walk(pos, note.Offset, spec.Degree, dir)
	if dir == domain.Ascending {
		counter += spec.Semitones
	} else {
		counter -= spec.Semitones
	}

	letter := e.ring.Letter(pos)
	return domain.Answer{
		Operation: domain.OpConstruct,
		Args:      []string{name, start, string(dir)},
		Direction: dir,
		Result:    spell(letter, counter),
		Letter:    letter,
		Offset:    counter,
		Interval:  spec.Name,
		Quality:   spec.Quality.String(),
		Degree:    spec.Degree,
		Semitones: spec.Semitones,
	}, nil
}

// walk advances degree-1 letters from pos. The counter starts at the start
// note's offset and loses the width of every letter step, so what remains
// after adding the interval width is the accidental the target letter needs.
func (e *Engine) walk(pos notering.Pos, counter, degree int, dir domain.Direction) (notering.Pos, int) {
	for i := 1; i < degree; i++ {
		var w int
		pos, w = e.ring.Step(pos, dir)
		if dir == domain.Ascending {
			counter -= w
		} else {
			counter += w
		}
	}
	return pos, counter
}

func (e *Engine) identify(a, b string, dir domain.Direction) (domain.Answer, error) {
	const op = "interval.identify"

	from, err := ParseNote(a)
	if err != nil {
		return domain.Answer{}, err
	}
	to, err := ParseNote(b)
	if err != nil {
		return domain.Answer{}, err
	}
	if err := checkDirection(op, dir); err != nil {
		return domain.Answer{}, err
	}

	pa, err := e.ring.Find(from.Letter)
	if err != nil {
		return domain.Answer{}, err
	}
	pb, err := e.ring.Find(to.Letter)
	if err != nil {
		return domain.Answer{}, err
	}

	// Ascending counts both accidentals toward the gap; descending lets the
	// destination's accidental pull back against the start's.
	total := e.ring.Distance(pa, pb, dir)
	if dir == domain.Ascending {
		total += from.Offset + to.Offset
	} else {
		total += from.Offset - to.Offset
	}
	if total < 0 {
		total = -total
	}

	spec, ok := BySemitones(total)
	if !ok {
		return domain.Answer{}, domain.NotFound(op, "no interval spans %d semitones from %s to %s (%s)", total, a, b, dir)
	}

	return domain.Answer{
		Operation: domain.OpIdentify,
		Args:      []string{a, b, string(dir)},
		Direction: dir,
		Result:    spec.Name,
		Interval:  spec.Name,
		Quality:   spec.Quality.String(),
		Degree:    spec.Degree,
		Semitones: spec.Semitones,
	}, nil
}

func checkDirection(op string, dir domain.Direction) error {
	switch dir {
	case domain.Ascending, domain.Descending:
		return nil
	default:
		return domain.InvalidArgument(op, "unsupported direction %q (expected asc|desc)", dir)
	}
}
