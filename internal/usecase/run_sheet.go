package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/ports"
	ucassert "github.com/aalvaropc/diatonic/internal/usecase/assert"
	ucextract "github.com/aalvaropc/diatonic/internal/usecase/extract"
)

type RunSheet struct {
	sheets ports.SheetLoader
	engine ports.IntervalEngine
	store  ports.ArtifactStore
	dir    domain.Direction
	log    *slog.Logger
	now    func() time.Time
}

type RunOption func(*RunSheet)

// WithRunLogger routes query events to l.
func WithRunLogger(l *slog.Logger) RunOption {
	return func(uc *RunSheet) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithDefaultDirection sets the direction used by queries that give only two args.
func WithDefaultDirection(dir domain.Direction) RunOption {
	return func(uc *RunSheet) {
		uc.dir = dir
	}
}

// WithClock overrides the clock used for StartedAt/EndedAt.
func WithClock(now func() time.Time) RunOption {
	return func(uc *RunSheet) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewRunSheet builds the use case. store may be nil, in which case runs are not persisted.
func NewRunSheet(sl ports.SheetLoader, eng ports.IntervalEngine, store ports.ArtifactStore, opts ...RunOption) *RunSheet {
	uc := &RunSheet{
		sheets: sl,
		engine: eng,
		store:  store,
		dir:    domain.DefaultDirection,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs every query of the sheet at sheetPath in order and returns the run
// plus the artifact id (empty when no store is configured).
//
// Variables: sheet vars < overrides < extracted vars (updated after each query).
// Query failures are recorded on the result and never stop the run; a cancelled
// ctx does, returning the partial run with ctx.Err().
func (uc *RunSheet) Execute(ctx context.Context, sheetPath string, overrides domain.Vars) (domain.RunResult, string, error) {
	sheet, err := uc.sheets.LoadSheet(sheetPath)
	if err != nil {
		return domain.RunResult{}, "", err
	}

	vars := domain.Merge(sheet.Vars, overrides)

	run := domain.RunResult{
		SheetName: sheet.Name,
		SheetPath: sheetPath,
		StartedAt: uc.now(),
		Results:   make([]domain.QueryResult, 0, len(sheet.Queries)),
	}

	uc.log.Info("sheet.run.start", "sheet", sheet.Name, "path", sheetPath, "queries", len(sheet.Queries))

	for _, q := range sheet.Queries {
		if err := ctx.Err(); err != nil {
			run.EndedAt = uc.now()
			uc.log.Warn("sheet.run.cancelled", "sheet", sheet.Name, "done", len(run.Results))
			return run, "", err
		}

		qr := uc.runQuery(q, vars)

		// Partial extracts still feed later queries.
		for k, v := range qr.Extracted {
			vars[k] = v
		}

		run.Results = append(run.Results, qr)
	}

	run.EndedAt = uc.now()
	uc.log.Info("sheet.run.done", "sheet", sheet.Name, "queries", len(run.Results), "failed", countFailed(run))

	if uc.store == nil {
		return run, "", nil
	}

	id, err := uc.store.SaveRun(run)
	if err != nil {
		uc.log.Error("sheet.run.save_failed", "sheet", sheet.Name, "err", err)
		return run, "", err
	}
	return run, id, nil
}

func (uc *RunSheet) runQuery(q domain.QuerySpec, vars domain.Vars) domain.QueryResult {
	qr := domain.QueryResult{
		Name:      q.Name,
		Op:        q.Op,
		Args:      q.Args,
		Extracted: domain.Vars{},
	}

	resolved, err := domain.NewVarResolver(vars).ResolveQuery(q)
	if err == nil {
		qr.Args = resolved.Args
		var a domain.Answer
		a, err = uc.engine.Describe(q.Op, withDirection(resolved.Args, uc.dir))
		if err == nil {
			qr.Answer = &a
		}
	}
	if err != nil {
		qr.Error = domain.NewQueryError(err)
	}

	qr.Assertions = ucassert.Evaluate(q.Assert, qr.Answer, qr.Error)
	if qr.Assertions == nil {
		qr.Assertions = []domain.AssertionResult{}
	}

	extracted, extracts := ucextract.Apply(qr.Answer, q.Extract)
	qr.Extracted = extracted
	qr.Extracts = extracts

	if qr.Error != nil {
		uc.log.Debug("sheet.query", "name", q.Name, "op", string(q.Op), "args", qr.Args,
			"error_kind", string(qr.Error.Kind), "error", qr.Error.Message, "failed", qr.Failed())
	} else {
		uc.log.Debug("sheet.query", "name", q.Name, "op", string(q.Op), "args", qr.Args,
			"result", qr.Answer.Result, "failed", qr.Failed())
	}
	return qr
}

func countFailed(run domain.RunResult) int {
	n := 0
	for _, r := range run.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}
