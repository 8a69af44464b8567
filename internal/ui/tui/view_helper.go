package tui

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/interval"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderAnswerDetails(a domain.Answer) string {
	var b strings.Builder

	switch a.Operation {
	case domain.OpConstruct:
		b.WriteString(fmt.Sprintf("%s %s from %s\n", a.Interval, a.Direction, a.Args[1]))
		b.WriteString(fmt.Sprintf("letter: %s  offset: %+d\n", a.Letter, a.Offset))
	case domain.OpIdentify:
		b.WriteString(fmt.Sprintf("%s to %s %s\n", a.Args[0], a.Args[1], a.Direction))
	}
	b.WriteString(fmt.Sprintf("%s %d, %d semitones\n", a.Quality, a.Degree, a.Semitones))

	return b.String()
}

func renderIntervalTable() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-5s %-8s %-6s %s\n", "name", "quality", "degree", "semitones"))
	for _, s := range interval.Specifiers() {
		b.WriteString(fmt.Sprintf("%-5s %-8s %-6d %d\n", s.Name, s.Quality, s.Degree, s.Semitones))
	}
	return b.String()
}

func renderQueryResult(t Theme, qr domain.QueryResult) string {
	var b strings.Builder

	mark := t.Pass.Render("PASS")
	if qr.Failed() {
		mark = t.Fail.Render("FAIL")
	}

	b.WriteString(fmt.Sprintf("[%s] %s  %s %s", mark, qr.Name, qr.Op, strings.Join(qr.Args, " ")))
	switch {
	case qr.Answer != nil:
		b.WriteString(" = ")
		b.WriteString(qr.Answer.Result)
	case qr.Error != nil:
		b.WriteString(" ! ")
		b.WriteString(string(qr.Error.Kind))
	}
	b.WriteString("\n")

	for _, a := range qr.Assertions {
		if a.Passed {
			continue
		}
		b.WriteString("    - ")
		b.WriteString(a.Name)
		b.WriteString(": ")
		b.WriteString(clampString(a.Message, 80))
		b.WriteString("\n")
	}
	for _, e := range qr.Extracts {
		if e.Success {
			continue
		}
		b.WriteString("    - extract ")
		b.WriteString(clampString(e.Message, 80))
		b.WriteString("\n")
	}

	if len(qr.Extracted) > 0 {
		keys := make([]string, 0, len(qr.Extracted))
		for k := range qr.Extracted {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("    ")
			b.WriteString(k)
			b.WriteString(" = ")
			b.WriteString(qr.Extracted[k])
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderRun(t Theme, run domain.RunResult, id string) string {
	var b strings.Builder

	failed := 0
	for _, qr := range run.Results {
		if qr.Failed() {
			failed++
		}
	}

	b.WriteString(fmt.Sprintf("Sheet: %s  (%d queries, %d failed)\n", run.SheetName, len(run.Results), failed))
	if id != "" {
		b.WriteString("Run ID: ")
		b.WriteString(id)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, qr := range run.Results {
		b.WriteString(renderQueryResult(t, qr))
	}
	return b.String()
}
