package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aalvaropc/diatonic/internal/domain"
)

func MapSheet(path string, ys YAMLSheet) (domain.Sheet, error) {
	if strings.TrimSpace(ys.Name) == "" {
		return domain.Sheet{}, invalidField(path, "name", "sheet name is required")
	}

	sheet := domain.Sheet{
		Name:    ys.Name,
		Vars:    domain.Vars(ys.Vars),
		Queries: make([]domain.QuerySpec, 0, len(ys.Queries)),
	}
	if sheet.Vars == nil {
		sheet.Vars = domain.Vars{}
	}

	for i, q := range ys.Queries {
		fieldPrefix := fmt.Sprintf("queries[%d]", i)
		if strings.TrimSpace(q.Name) == "" {
			return domain.Sheet{}, invalidField(path, fieldPrefix+".name", "query name is required")
		}
		if strings.TrimSpace(q.Op) == "" {
			return domain.Sheet{}, invalidField(path, fieldPrefix+".op", "op is required")
		}

		op, err := domain.ParseOperation(q.Op)
		if err != nil {
			return domain.Sheet{}, invalidField(path, fieldPrefix+".op", fmt.Sprintf("unsupported op %q", q.Op))
		}

		result, err := mapResult(q)
		if err != nil {
			return domain.Sheet{}, invalidField(path, fieldPrefix+".expect", err.Error())
		}

		errKind, err := parseExpectError(q.ExpectError)
		if err != nil {
			return domain.Sheet{}, invalidField(path, fieldPrefix+".expect_error", err.Error())
		}
		if errKind != nil && result != nil {
			return domain.Sheet{}, invalidField(path, fieldPrefix+".expect_error", "cannot be combined with expect")
		}

		jp, err := mapJSONPath(q.Assert.JSONPath)
		if err != nil {
			return domain.Sheet{}, invalidField(path, fieldPrefix+".assert.jsonpath", err.Error())
		}

		spec := domain.QuerySpec{
			Name: q.Name,
			Op:   op,
			Args: append([]string(nil), q.Args...),
			Assert: domain.AssertionsSpec{
				Result:    result,
				ErrorKind: errKind,
				JSONPath:  jp,
			},
			Extract: domain.ExtractSpec(q.Extract),
		}
		if spec.Args == nil {
			spec.Args = []string{}
		}
		if spec.Extract == nil {
			spec.Extract = domain.ExtractSpec{}
		}

		sheet.Queries = append(sheet.Queries, spec)
	}

	return sheet, nil
}

func mapResult(q YAMLQuery) (*string, error) {
	switch {
	case q.Expect != nil && q.Assert.Result != nil && *q.Expect != *q.Assert.Result:
		return nil, fmt.Errorf("expect %q conflicts with assert.result %q", *q.Expect, *q.Assert.Result)
	case q.Expect != nil:
		return q.Expect, nil
	default:
		return q.Assert.Result, nil
	}
}

func parseExpectError(s string) (*domain.ErrorKind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	k := domain.ErrorKind(s)
	switch k {
	case domain.KindInvalidArgument, domain.KindNotFound, domain.KindMissingVar:
		return &k, nil
	default:
		return nil, fmt.Errorf("unsupported error kind %q (expected invalid_argument|not_found|missing_variable)", s)
	}
}

func mapJSONPath(in map[string]YAMLJSONPathAssertion) (map[string]domain.JSONPathAssertion, error) {
	out := make(map[string]domain.JSONPathAssertion, len(in))
	for k, v := range in {
		if v.Matches != nil {
			if _, err := regexp.Compile(*v.Matches); err != nil {
				return nil, fmt.Errorf("%s: invalid matches pattern: %v", k, err)
			}
		}
		out[k] = domain.JSONPathAssertion{
			Exists:   v.Exists,
			Eq:       v.Eq,
			Contains: v.Contains,
			Matches:  v.Matches,
			Gt:       v.Gt,
			Lt:       v.Lt,
		}
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
