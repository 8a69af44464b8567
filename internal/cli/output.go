package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/diatonic/internal/domain"
)

func printAnswer(w io.Writer, a domain.Answer, format string, sel string) error {
	if sel != "" {
		return printSelected(w, a, sel)
	}

	switch format {
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case domain.FormatPretty, "":
		printPrettyAnswer(w, a)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyAnswer(w io.Writer, a domain.Answer) {
	switch a.Operation {
	case domain.OpConstruct:
		fmt.Fprintf(w, "%s %s from %s: %s\n", a.Interval, a.Direction, a.Args[1], a.Result)
	case domain.OpIdentify:
		fmt.Fprintf(w, "%s to %s %s: %s (%d semitones)\n", a.Args[0], a.Args[1], a.Direction, a.Result, a.Semitones)
	default:
		fmt.Fprintln(w, a.Result)
	}
}

// printSelected prints strings raw and every other value as JSON.
func printSelected(w io.Writer, a domain.Answer, sel string) error {
	doc, err := a.Document()
	if err != nil {
		return err
	}
	v, err := jsonpath.Get(sel, doc)
	if err != nil {
		return &domain.OpError{
			Op:   "cli.select",
			Kind: domain.KindInvalidArgument,
			Err:  fmt.Errorf("jsonpath %q: %v: %w", sel, err, domain.ErrInvalidArgument),
		}
	}

	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
