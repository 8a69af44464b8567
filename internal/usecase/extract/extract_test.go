package extract

import (
	"testing"

	"github.com/aalvaropc/diatonic/internal/domain"
)

func fifth() *domain.Answer {
	return &domain.Answer{
		Operation: domain.OpIdentify,
		Args:      []string{"C", "G"},
		Direction: domain.Ascending,
		Result:    "P5",
		Interval:  "P5",
		Quality:   "perfect",
		Degree:    5,
		Semitones: 7,
	}
}

func TestApply_EmptyRules(t *testing.T) {
	vars, results := Apply(fifth(), domain.ExtractSpec{})
	if len(vars) != 0 {
		t.Fatalf("expected empty vars, got %v", vars)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %v", results)
	}
}

func TestApply_Success(t *testing.T) {
	rules := domain.ExtractSpec{
		"fifth":     "$.result",
		"semitones": "$.semitones",
		"lower":     "$.args[0]",
	}

	vars, res := Apply(fifth(), rules)

	if vars["fifth"] != "P5" {
		t.Fatalf("expected fifth=P5, got=%q", vars["fifth"])
	}
	if vars["semitones"] != "7" {
		t.Fatalf("expected semitones=7, got=%q", vars["semitones"])
	}
	if vars["lower"] != "C" {
		t.Fatalf("expected lower=C, got=%q", vars["lower"])
	}

	if len(res) != 3 {
		t.Fatalf("expected 3 results, got=%d", len(res))
	}
	for _, r := range res {
		if !r.Success {
			t.Fatalf("expected all success, got fail: %+v", r)
		}
	}
}

func TestApply_NoAnswer_FailsAll(t *testing.T) {
	rules := domain.ExtractSpec{
		"note":  "$.result",
		"steps": "$.semitones",
	}

	vars, res := Apply(nil, rules)
	if len(vars) != 0 {
		t.Fatalf("expected no vars, got=%v", vars)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got=%d", len(res))
	}
	for _, r := range res {
		if r.Success {
			t.Fatalf("expected failure, got %+v", r)
		}
	}
}

func TestApply_ExtractArray(t *testing.T) {
	vars, results := Apply(fifth(), domain.ExtractSpec{"args": "$.args"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Success {
		t.Fatalf("expected Success=true, got: %s", results[0].Message)
	}
	if vars["args"] != `["C","G"]` {
		t.Fatalf("expected args as JSON array, got %q", vars["args"])
	}
}

func TestApply_InvalidJSONPath_FailsRule(t *testing.T) {
	vars, res := Apply(fifth(), domain.ExtractSpec{"note": "$.result["})

	if len(vars) != 0 {
		t.Fatalf("expected no vars, got=%v", vars)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got=%d", len(res))
	}
	if res[0].Success {
		t.Fatalf("expected failure")
	}
}

func TestApply_EmptyExpression(t *testing.T) {
	_, results := Apply(fifth(), domain.ExtractSpec{"note": "  "})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Success {
		t.Fatalf("expected Success=false for empty expression")
	}
}

func TestApply_MissingValue_FailsRule(t *testing.T) {
	// letter is omitted from identify answers.
	vars, res := Apply(fifth(), domain.ExtractSpec{"letter": "$.letter"})

	if len(vars) != 0 {
		t.Fatalf("expected no vars, got=%v", vars)
	}
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got=%d", len(res))
	}
	if res[0].Success {
		t.Fatalf("expected failure")
	}
}

func TestApply_MixedResults_StableOrder(t *testing.T) {
	rules := domain.ExtractSpec{
		"aaa": "$.result",
		"bbb": "",
	}
	vars, results := Apply(fifth(), rules)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "aaa" || results[1].Name != "bbb" {
		t.Fatalf("expected results sorted by name, got %q, %q", results[0].Name, results[1].Name)
	}
	if !results[0].Success {
		t.Fatalf("expected aaa to succeed")
	}
	if results[1].Success {
		t.Fatalf("expected bbb to fail (empty expression)")
	}
	if vars["aaa"] != "P5" {
		t.Fatalf("expected aaa=P5, got %q", vars["aaa"])
	}
}
