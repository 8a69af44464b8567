package domain

import (
	"errors"
	"fmt"
	"strings"
)

// VarResolver resolves {{var}} placeholders inside query arguments.
type VarResolver struct {
	vars Vars
}

// NewVarResolver snapshots vars; later changes to the map are not observed.
func NewVarResolver(vars Vars) *VarResolver {
	return &VarResolver{vars: Merge(nil, vars)}
}

// ResolveString resolves placeholders in a string.
func (r *VarResolver) ResolveString(s string) (string, error) {
	// Fast path: no token start.
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s) + 8)

	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i] == '{' && s[i+1] == '{' {
			start := i + 2

			end := strings.Index(s[start:], "}}")
			if end < 0 {
				return "", &OpError{
					Op:   "vars.resolve",
					Kind: KindInvalidConfig,
					Err:  errors.New("unclosed placeholder"),
				}
			}
			end = start + end

			name := strings.TrimSpace(s[start:end])
			if name == "" {
				return "", &OpError{
					Op:   "vars.resolve",
					Kind: KindInvalidConfig,
					Err:  errors.New("empty placeholder"),
				}
			}

			val, ok := r.vars[name]
			if !ok {
				return "", &OpError{
					Op:   "vars.resolve",
					Kind: KindMissingVar,
					Err:  fmt.Errorf("missing variable: %s: %w", name, ErrMissingVar),
				}
			}

			b.WriteString(val)
			i = end + 2
			continue
		}

		b.WriteByte(s[i])
		i++
	}

	return b.String(), nil
}

// ResolveQuery resolves placeholders in every argument of q.
// It returns a copy (does not mutate input).
func (r *VarResolver) ResolveQuery(q QuerySpec) (QuerySpec, error) {
	out := q
	out.Args = make([]string, len(q.Args))
	for i, a := range q.Args {
		v, err := r.ResolveString(a)
		if err != nil {
			return QuerySpec{}, wrapField(err, fmt.Sprintf("args[%d]", i))
		}
		out.Args[i] = v
	}
	return out, nil
}

// Placeholders lists the variable names referenced by s, in order of appearance.
// Malformed placeholders are ignored; ResolveString reports them.
func Placeholders(s string) []string {
	var names []string
	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			return names
		}
		rest = rest[start+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			return names
		}
		if name := strings.TrimSpace(rest[:end]); name != "" {
			names = append(names, name)
		}
		rest = rest[end+2:]
	}
}

func wrapField(err error, field string) error {
	// Keep Kind information, but add context about which field was being resolved.
	return &OpError{
		Op:   "vars.resolve",
		Kind: KindOf(err),
		Err:  fmt.Errorf("%s: %w", field, err),
	}
}
