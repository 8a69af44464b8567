package usecase

import (
	"io"
	"log/slog"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/ports"
)

// Compute answers a single construct or identify query, filling in the
// workspace default direction when the caller gives none.
type Compute struct {
	engine ports.IntervalEngine
	dir    domain.Direction
	log    *slog.Logger
}

func NewCompute(eng ports.IntervalEngine, defaultDir domain.Direction, log *slog.Logger) *Compute {
	if defaultDir == "" {
		defaultDir = domain.DefaultDirection
	}
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Compute{engine: eng, dir: defaultDir, log: log}
}

func (uc *Compute) Execute(op domain.Operation, args []string) (domain.Answer, error) {
	args = withDirection(args, uc.dir)

	a, err := uc.engine.Describe(op, args)
	if err != nil {
		uc.log.Info("interval."+string(op), "args", args, "error_kind", string(domain.KindOf(err)), "error", err.Error())
		return domain.Answer{}, err
	}

	uc.log.Info("interval."+string(op), "args", args, "result", a.Result, "semitones", a.Semitones)
	return a, nil
}

// withDirection appends dir to a two-argument query.
func withDirection(args []string, dir domain.Direction) []string {
	if len(args) != 2 || dir == "" {
		return args
	}
	return []string{args[0], args[1], string(dir)}
}
