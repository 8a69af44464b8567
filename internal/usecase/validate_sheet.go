package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/ports"
)

type ValidateSheet struct {
	sheets ports.SheetLoader
	engine ports.IntervalEngine
}

func NewValidateSheet(sl ports.SheetLoader, eng ports.IntervalEngine) *ValidateSheet {
	return &ValidateSheet{sheets: sl, engine: eng}
}

// Execute checks a sheet without running it: argument counts, {{vars}} that
// later queries reference must come from initial vars or earlier extract keys,
// and fully literal queries must be accepted by the engine unless they expect
// an error.
func (uc *ValidateSheet) Execute(ctx context.Context, sheetPath string, overrides domain.Vars) error {
	sheet, err := uc.sheets.LoadSheet(sheetPath)
	if err != nil {
		return err
	}

	vars := domain.Merge(sheet.Vars, overrides)

	for _, q := range sheet.Queries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if n := len(q.Args); n < 2 || n > 3 {
			return fmt.Errorf("query %q: %w", q.Name,
				domain.InvalidArgument("sheet.validate", "expected 2 or 3 args, got %d", n))
		}

		if _, err := domain.NewVarResolver(vars).ResolveQuery(q); err != nil {
			return fmt.Errorf("query %q: %w", q.Name, err)
		}

		if uc.engine != nil && q.Assert.ErrorKind == nil && isLiteral(q.Args) {
			if _, err := uc.engine.Describe(q.Op, q.Args); domain.IsKind(err, domain.KindInvalidArgument) {
				return fmt.Errorf("query %q: %w", q.Name, err)
			}
		}

		// Assume extract keys become available for subsequent queries.
		for k := range q.Extract {
			if _, ok := vars[k]; !ok {
				vars[k] = "x"
			}
		}
	}

	return nil
}

func isLiteral(args []string) bool {
	for _, a := range args {
		if len(domain.Placeholders(a)) > 0 {
			return false
		}
	}
	return true
}
