// Package notering models the seven natural note letters as a circular
// sequence annotated with the semitone width to each successor.
package notering

import (
	"errors"
	"fmt"

	"github.com/aalvaropc/diatonic/internal/domain"
)

// Size is the number of natural letters in one octave.
const Size = 7

// OctaveSemitones is the total width of one full traversal.
const OctaveSemitones = 12

// Node is a single natural letter and the semitones to the next letter up.
type Node struct {
	Letter     byte
	StepToNext int
}

// Pos is a position on the ring. Two positions are the same note when they are equal.
type Pos int

// Ring is an immutable circular sequence of natural letters.
type Ring struct {
	nodes [Size]Node
}

// anchor is the position lookups start from.
const anchor Pos = 0

var layout = [Size]Node{
	{'C', 2},
	{'D', 2},
	{'E', 1},
	{'F', 2},
	{'G', 2},
	{'A', 2},
	{'B', 1},
}

var std = mustNew()

// Default returns the process-wide ring, built once during package initialization.
func Default() *Ring { return std }

// New builds the C-D-E-F-G-A-B ring and verifies its invariants.
func New() (*Ring, error) {
	r := &Ring{nodes: layout}
	if err := r.check(); err != nil {
		return nil, err
	}
	return r, nil
}

func mustNew() *Ring {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Ring) check() error {
	total, halfSteps := 0, 0
	seen := map[byte]bool{}
	for _, n := range r.nodes {
		if seen[n.Letter] {
			return fmt.Errorf("notering: duplicate letter %q", n.Letter)
		}
		seen[n.Letter] = true

		switch n.StepToNext {
		case 1:
			halfSteps++
		case 2:
		default:
			return fmt.Errorf("notering: letter %q has step %d", n.Letter, n.StepToNext)
		}
		total += n.StepToNext
	}
	if halfSteps != 2 {
		return errors.New("notering: expected exactly two half steps")
	}
	if total != OctaveSemitones {
		return fmt.Errorf("notering: octave spans %d semitones", total)
	}
	return nil
}

// Find returns the position of a natural letter, scanning forward from the C anchor.
func (r *Ring) Find(letter byte) (Pos, error) {
	p := anchor
	for i := 0; i < Size; i++ {
		if r.nodes[p].Letter == letter {
			return p, nil
		}
		p = next(p)
	}
	return 0, domain.NotFound("notering.find", "letter %q is not a natural note", letter)
}

// Node returns the node at p.
func (r *Ring) Node(p Pos) Node {
	return r.nodes[norm(p)]
}

// Letter returns the letter at p as a string.
func (r *Ring) Letter(p Pos) string {
	return string(r.Node(p).Letter)
}

// Step moves one letter in dir and reports the semitones crossed: the width of
// the node being left when ascending, of the node being entered when descending.
func (r *Ring) Step(p Pos, dir domain.Direction) (Pos, int) {
	p = norm(p)
	if dir == domain.Descending {
		q := prev(p)
		return q, r.nodes[q].StepToNext
	}
	return next(p), r.nodes[p].StepToNext
}

// Distance walks from one position to another in dir and returns the
// semitones crossed. Equal positions are zero apart.
func (r *Ring) Distance(from, to Pos, dir domain.Direction) int {
	from, to = norm(from), norm(to)
	total := 0
	for from != to {
		var w int
		from, w = r.Step(from, dir)
		total += w
	}
	return total
}

// Letters lists the natural letters in ascending order from the anchor.
func (r *Ring) Letters() []string {
	out := make([]string, 0, Size)
	for _, n := range r.nodes {
		out = append(out, string(n.Letter))
	}
	return out
}

func next(p Pos) Pos { return (p + 1) % Size }
func prev(p Pos) Pos { return (p - 1 + Size) % Size }

func norm(p Pos) Pos { return ((p % Size) + Size) % Size }
