package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/interval"
)

func chainSheet() domain.Sheet {
	return domain.Sheet{
		Name: "Triad",
		Vars: domain.Vars{"root": "C"},
		Queries: []domain.QuerySpec{
			{
				Name:    "third",
				Op:      domain.OpConstruct,
				Args:    []string{"M3", "{{root}}"},
				Assert:  domain.AssertionsSpec{Result: strPtr("E")},
				Extract: domain.ExtractSpec{"third": "$.result"},
			},
			{
				Name:   "fifth",
				Op:     domain.OpConstruct,
				Args:   []string{"m3", "{{third}}"},
				Assert: domain.AssertionsSpec{Result: strPtr("G")},
			},
			{
				Name:   "span",
				Op:     domain.OpIdentify,
				Args:   []string{"{{root}}", "G"},
				Assert: domain.AssertionsSpec{Result: strPtr("P5")},
			},
		},
	}
}

func TestRunSheet_ChainsExtractedVars(t *testing.T) {
	eng := &countingEngine{next: interval.Default()}
	uc := NewRunSheet(fakeSheetLoader{sheet: chainSheet()}, eng, nil)

	run, id, err := uc.Execute(context.Background(), "triad.yaml", nil)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id when store is nil, got %q", id)
	}
	if run.SheetName != "Triad" || run.SheetPath != "triad.yaml" {
		t.Fatalf("unexpected run header: %+v", run)
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}

	for _, r := range run.Results {
		if r.Failed() {
			t.Fatalf("query %q failed: %+v", r.Name, r)
		}
	}

	if got := run.Results[0].Extracted["third"]; got != "E" {
		t.Fatalf("expected third=E extracted, got %q", got)
	}
	if got := strings.Join(run.Results[1].Args, " "); got != "m3 E" {
		t.Fatalf("expected resolved args recorded, got %q", got)
	}
	if eng.calls != 3 {
		t.Fatalf("expected 3 engine calls, got %d", eng.calls)
	}
}

func TestRunSheet_OverridesBeatSheetVars(t *testing.T) {
	sheet := domain.Sheet{
		Name: "Override",
		Vars: domain.Vars{"root": "C"},
		Queries: []domain.QuerySpec{
			{Name: "third", Op: domain.OpConstruct, Args: []string{"M3", "{{root}}"}},
		},
	}
	uc := NewRunSheet(fakeSheetLoader{sheet: sheet}, interval.Default(), nil)

	run, _, err := uc.Execute(context.Background(), "o.yaml", domain.Vars{"root": "D"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if got := run.Results[0].Answer.Result; got != "F#" {
		t.Fatalf("expected F#, got %q", got)
	}
}

func TestRunSheet_EngineErrorRecordedAndRunContinues(t *testing.T) {
	sheet := domain.Sheet{
		Name: "Errors",
		Queries: []domain.QuerySpec{
			{Name: "tritone", Op: domain.OpIdentify, Args: []string{"F", "B"}},
			{Name: "bad note", Op: domain.OpConstruct, Args: []string{"M3", "H"}},
			{Name: "ok", Op: domain.OpConstruct, Args: []string{"M2", "B"}},
		},
	}
	uc := NewRunSheet(fakeSheetLoader{sheet: sheet}, interval.Default(), nil)

	run, _, err := uc.Execute(context.Background(), "e.yaml", nil)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}

	tests := []struct {
		idx  int
		kind domain.ErrorKind
	}{
		{0, domain.KindNotFound},
		{1, domain.KindInvalidArgument},
	}
	for _, tt := range tests {
		r := run.Results[tt.idx]
		if r.Error == nil || r.Error.Kind != tt.kind {
			t.Fatalf("result %d: expected %s error, got %+v", tt.idx, tt.kind, r.Error)
		}
		if r.Answer != nil {
			t.Fatalf("result %d: expected no answer", tt.idx)
		}
		if !r.Failed() {
			t.Fatalf("result %d: expected unexpected error to fail the query", tt.idx)
		}
	}

	if r := run.Results[2]; r.Error != nil || r.Answer == nil || r.Answer.Result != "C#" {
		t.Fatalf("expected M2 B = C#, got %+v", r)
	}
}

func TestRunSheet_ExpectedErrorPasses(t *testing.T) {
	sheet := domain.Sheet{
		Name: "Expected",
		Queries: []domain.QuerySpec{
			{
				Name:   "tritone",
				Op:     domain.OpIdentify,
				Args:   []string{"F", "B"},
				Assert: domain.AssertionsSpec{ErrorKind: kindPtr(domain.KindNotFound)},
			},
			{
				Name:   "answers instead",
				Op:     domain.OpIdentify,
				Args:   []string{"C", "G"},
				Assert: domain.AssertionsSpec{ErrorKind: kindPtr(domain.KindNotFound)},
			},
		},
	}
	uc := NewRunSheet(fakeSheetLoader{sheet: sheet}, interval.Default(), nil)

	run, _, err := uc.Execute(context.Background(), "x.yaml", nil)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if run.Results[0].Failed() {
		t.Fatalf("expected not_found to satisfy expect_error, got %+v", run.Results[0])
	}
	if !run.Results[1].Failed() {
		t.Fatalf("expected a successful answer to fail expect_error")
	}
}

func TestRunSheet_MissingVarRecorded(t *testing.T) {
	sheet := domain.Sheet{
		Name: "Missing",
		Queries: []domain.QuerySpec{
			{
				Name:    "third",
				Op:      domain.OpConstruct,
				Args:    []string{"M3", "{{root}}"},
				Extract: domain.ExtractSpec{"third": "$.result"},
			},
		},
	}
	eng := &countingEngine{next: interval.Default()}
	uc := NewRunSheet(fakeSheetLoader{sheet: sheet}, eng, nil)

	run, _, err := uc.Execute(context.Background(), "m.yaml", nil)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	r := run.Results[0]
	if r.Error == nil || r.Error.Kind != domain.KindMissingVar {
		t.Fatalf("expected missing_variable error, got %+v", r.Error)
	}
	if eng.calls != 0 {
		t.Fatalf("expected engine not called, got %d calls", eng.calls)
	}
	if len(r.Extracts) != 1 || r.Extracts[0].Success {
		t.Fatalf("expected failing extract without answer, got %+v", r.Extracts)
	}
	if got := strings.Join(r.Args, " "); got != "M3 {{root}}" {
		t.Fatalf("expected unresolved args kept, got %q", got)
	}
}

func TestRunSheet_ExtractFailureLeavesNextQueryMissingVar(t *testing.T) {
	sheet := domain.Sheet{
		Name: "Broken chain",
		Queries: []domain.QuerySpec{
			{
				Name:    "span",
				Op:      domain.OpIdentify,
				Args:    []string{"C", "G"},
				Extract: domain.ExtractSpec{"note": "$.letter"},
			},
			{Name: "next", Op: domain.OpConstruct, Args: []string{"M3", "{{note}}"}},
		},
	}
	uc := NewRunSheet(fakeSheetLoader{sheet: sheet}, interval.Default(), nil)

	run, _, err := uc.Execute(context.Background(), "b.yaml", nil)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !run.Results[0].Failed() {
		t.Fatalf("expected failed extract to fail the query")
	}
	if e := run.Results[1].Error; e == nil || e.Kind != domain.KindMissingVar {
		t.Fatalf("expected missing_variable on the next query, got %+v", e)
	}
}

func TestRunSheet_StoreCalled(t *testing.T) {
	store := &fakeStore{}
	uc := NewRunSheet(fakeSheetLoader{sheet: chainSheet()}, interval.Default(), store)

	run, id, err := uc.Execute(context.Background(), "triad.yaml", nil)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if id != "run-123" {
		t.Fatalf("expected id run-123, got %q", id)
	}
	if !store.saved {
		t.Fatalf("expected store.SaveRun to be called")
	}
	if store.last.SheetName != run.SheetName || len(store.last.Results) != 3 {
		t.Fatalf("expected saved run to match, got %+v", store.last)
	}
}

func TestRunSheet_StoreSaveError(t *testing.T) {
	saveErr := errors.New("store unavailable")
	uc := NewRunSheet(fakeSheetLoader{sheet: chainSheet()}, interval.Default(), &fakeStore{err: saveErr})

	run, id, err := uc.Execute(context.Background(), "triad.yaml", nil)
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if id != "" {
		t.Fatalf("expected empty id on store error, got %q", id)
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected results kept on store error, got %d", len(run.Results))
	}
}

func TestRunSheet_LoadError(t *testing.T) {
	loadErr := &domain.OpError{Op: "sheet.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	uc := NewRunSheet(fakeSheetLoader{err: loadErr}, interval.Default(), nil)

	_, _, err := uc.Execute(context.Background(), "nope.yaml", nil)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestRunSheet_StopsOnContextCancel(t *testing.T) {
	eng := &countingEngine{next: interval.Default()}
	store := &fakeStore{}

	ticks := 0
	base := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	clock := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Millisecond)
	}

	uc := NewRunSheet(fakeSheetLoader{sheet: chainSheet()}, eng, store, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, id, err := uc.Execute(ctx, "triad.yaml", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if id != "" || store.saved {
		t.Fatalf("expected nothing saved, id=%q saved=%v", id, store.saved)
	}
	if eng.calls != 0 {
		t.Fatalf("expected 0 engine calls, got %d", eng.calls)
	}
	if out.StartedAt.IsZero() || out.EndedAt.IsZero() {
		t.Fatalf("expected StartedAt and EndedAt set")
	}
	if !out.EndedAt.After(out.StartedAt) {
		t.Fatalf("expected EndedAt after StartedAt")
	}
	if len(out.Results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(out.Results))
	}
}

func TestRunSheet_LogsQueries(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	uc := NewRunSheet(fakeSheetLoader{sheet: chainSheet()}, interval.Default(), nil, WithRunLogger(l))
	if _, _, err := uc.Execute(context.Background(), "triad.yaml", nil); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	out := buf.String()
	for _, msg := range []string{`"msg":"sheet.run.start"`, `"msg":"sheet.query"`, `"msg":"sheet.run.done"`} {
		if !strings.Contains(out, msg) {
			t.Fatalf("expected log to contain %s, got:\n%s", msg, out)
		}
	}
	if strings.Count(out, `"msg":"sheet.query"`) != 3 {
		t.Fatalf("expected one sheet.query line per query, got:\n%s", out)
	}
}

func TestRunSheet_DefaultDirectionAppliesToTwoArgQueries(t *testing.T) {
	sheet := domain.Sheet{
		Name: "Down",
		Queries: []domain.QuerySpec{
			{Name: "implicit", Op: domain.OpConstruct, Args: []string{"M3", "C"}},
			{Name: "explicit", Op: domain.OpConstruct, Args: []string{"M3", "C", "asc"}},
		},
	}
	eng := &countingEngine{next: interval.Default()}
	uc := NewRunSheet(fakeSheetLoader{sheet: sheet}, eng, nil, WithDefaultDirection(domain.Descending))

	run, _, err := uc.Execute(context.Background(), "down.yaml", nil)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if got := run.Results[0].Answer.Result; got != "Ab" {
		t.Fatalf("implicit direction: expected Ab, got %q", got)
	}
	if got := run.Results[1].Answer.Result; got != "E" {
		t.Fatalf("explicit asc: expected E, got %q", got)
	}
	if got := strings.Join(eng.args[0], " "); got != "M3 C desc" {
		t.Fatalf("expected default direction appended, got %q", got)
	}
}
