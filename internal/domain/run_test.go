package domain

import (
	"errors"
	"testing"
)

func TestNewQueryError_KeepsKind(t *testing.T) {
	qe := NewQueryError(NotFound("interval.identify", "no interval"))
	if qe == nil || qe.Kind != KindNotFound {
		t.Fatalf("expected not_found, got %+v", qe)
	}

	qe = NewQueryError(errors.New("boom"))
	if qe.Kind != KindExecution {
		t.Fatalf("expected execution, got %s", qe.Kind)
	}

	if NewQueryError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestQueryResultFailed(t *testing.T) {
	cases := []struct {
		name string
		r    QueryResult
		want bool
	}{
		{"empty", QueryResult{}, false},
		{"assertion fails", QueryResult{Assertions: []AssertionResult{{Passed: false}}}, true},
		{"extract fails", QueryResult{Extracts: []ExtractResult{{Success: false}}}, true},
		{"unexpected error", QueryResult{Error: &QueryError{Kind: KindNotFound}}, true},
		{
			"expected error",
			QueryResult{
				Error:      &QueryError{Kind: KindNotFound},
				Assertions: []AssertionResult{{Name: AssertErrorKind, Passed: true}},
			},
			false,
		},
		{
			"all pass",
			QueryResult{
				Assertions: []AssertionResult{{Passed: true}},
				Extracts:   []ExtractResult{{Success: true}},
			},
			false,
		},
	}
	for _, c := range cases {
		if got := c.r.Failed(); got != c.want {
			t.Errorf("%s: Failed() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestParseOperation(t *testing.T) {
	if op, err := ParseOperation("Construct"); err != nil || op != OpConstruct {
		t.Fatalf("expected construct, got %q (%v)", op, err)
	}
	if op, err := ParseOperation("identify"); err != nil || op != OpIdentify {
		t.Fatalf("expected identify, got %q (%v)", op, err)
	}
	if _, err := ParseOperation("transpose"); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestAnswerDocument(t *testing.T) {
	a := Answer{
		Operation: OpConstruct,
		Args:      []string{"m3", "C"},
		Direction: Ascending,
		Result:    "Eb",
		Letter:    "E",
		Offset:    -1,
		Interval:  "m3",
		Quality:   "minor",
		Degree:    3,
		Semitones: 3,
	}

	doc, err := a.Document()
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("expected object document, got %T", doc)
	}
	if m["result"] != "Eb" || m["letter"] != "E" {
		t.Fatalf("unexpected document: %v", m)
	}
	if m["offset"] != float64(-1) || m["semitones"] != float64(3) {
		t.Fatalf("expected numbers decoded as float64, got %v", m)
	}

	doc, err = Answer{Operation: OpIdentify, Result: "P5"}.Document()
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if _, has := doc.(map[string]any)["letter"]; has {
		t.Fatalf("expected letter omitted for identify answers")
	}
}
