package interval

import "github.com/aalvaropc/diatonic/internal/domain"

// Construct answers ["<interval>", "<note>", "asc|desc"?] with the default engine.
func Construct(args []string) (string, error) {
	return std.ConstructArgs(args)
}

// Identify answers ["<note>", "<note>", "asc|desc"?] with the default engine.
func Identify(args []string) (string, error) {
	return std.IdentifyArgs(args)
}

// ConstructArgs is Construct over e.
func (e *Engine) ConstructArgs(args []string) (string, error) {
	a, err := e.Describe(domain.OpConstruct, args)
	if err != nil {
		return "", err
	}
	return a.Result, nil
}

// IdentifyArgs is Identify over e.
func (e *Engine) IdentifyArgs(args []string) (string, error) {
	a, err := e.Describe(domain.OpIdentify, args)
	if err != nil {
		return "", err
	}
	return a.Result, nil
}

// Describe validates a 2 or 3 token argument list, runs op and returns the full answer.
func (e *Engine) Describe(op domain.Operation, args []string) (domain.Answer, error) {
	name := "interval." + string(op)
	if args == nil {
		return domain.Answer{}, domain.InvalidArgument(name, "arguments can't be nil")
	}
	if len(args) < 2 || len(args) > 3 {
		return domain.Answer{}, domain.InvalidArgument(name, "expected 2 or 3 arguments, got %d", len(args))
	}

	dir := domain.DefaultDirection
	if len(args) == 3 {
		d, err := domain.ParseDirection(args[2])
		if err != nil {
			return domain.Answer{}, err
		}
		dir = d
	}

	switch op {
	case domain.OpConstruct:
		return e.construct(args[0], args[1], dir)
	case domain.OpIdentify:
		return e.identify(args[0], args[1], dir)
	default:
		return domain.Answer{}, domain.InvalidArgument(name, "unsupported operation %q", op)
	}
}
