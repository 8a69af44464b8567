package interval

import (
	"strings"

	"github.com/aalvaropc/diatonic/internal/domain"
)

const (
	sharp = '#'
	flat  = 'b'
)

// Note is a natural letter plus a signed accidental offset (sharps positive).
type Note struct {
	Letter byte
	Offset int
}

// ParseNote reads a letter A-G followed by a run of identical accidentals.
func ParseNote(s string) (Note, error) {
	const op = "interval.parse_note"
	if s == "" {
		return Note{}, domain.InvalidArgument(op, "empty note")
	}
	letter := s[0]
	if letter < 'A' || letter > 'G' {
		return Note{}, domain.InvalidArgument(op, "note %q: letter must be one of A-G", s)
	}

	acc := s[1:]
	if acc == "" {
		return Note{Letter: letter}, nil
	}
	mark := acc[0]
	if mark != sharp && mark != flat {
		return Note{}, domain.InvalidArgument(op, "note %q: unexpected %q after letter", s, mark)
	}
	if strings.Count(acc, string(mark)) != len(acc) {
		return Note{}, domain.InvalidArgument(op, "note %q: accidentals must be all '#' or all 'b'", s)
	}

	n := Note{Letter: letter, Offset: len(acc)}
	if mark == flat {
		n.Offset = -n.Offset
	}
	return n, nil
}

// String renders the note with as many accidentals as its offset needs.
func (n Note) String() string {
	return spell(string(n.Letter), n.Offset)
}

func spell(letter string, offset int) string {
	var b strings.Builder
	b.WriteString(letter)
	for ; offset < 0; offset++ {
		b.WriteByte(flat)
	}
	for ; offset > 0; offset-- {
		b.WriteByte(sharp)
	}
	return b.String()
}
