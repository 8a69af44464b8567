package usecase

import (
	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/ports"
)

type fakeSheetLoader struct {
	sheet domain.Sheet
	err   error
}

func (f fakeSheetLoader) LoadSheet(_ string) (domain.Sheet, error) {
	return f.sheet, f.err
}

func (f fakeSheetLoader) ListSheets(_ string) ([]domain.SheetRef, error) {
	return nil, nil
}

type fakeStore struct {
	saved bool
	last  domain.RunResult
	err   error
}

func (s *fakeStore) SaveRun(run domain.RunResult) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = true
	s.last = run
	return "run-123", nil
}

// countingEngine records every Describe call and answers with next.
type countingEngine struct {
	next  ports.IntervalEngine
	calls int
	args  [][]string
}

func (e *countingEngine) Describe(op domain.Operation, args []string) (domain.Answer, error) {
	e.calls++
	e.args = append(e.args, append([]string(nil), args...))
	return e.next.Describe(op, args)
}

func strPtr(s string) *string { return &s }

func kindPtr(k domain.ErrorKind) *domain.ErrorKind { return &k }

var (
	_ ports.SheetLoader    = fakeSheetLoader{}
	_ ports.ArtifactStore  = (*fakeStore)(nil)
	_ ports.IntervalEngine = (*countingEngine)(nil)
)
