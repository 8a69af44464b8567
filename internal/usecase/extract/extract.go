package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/diatonic/internal/domain"
)

// Apply extracts variables from an answer document using JSONPath rules.
// rules: map[varName]jsonPathExpr
//
// Without an answer every rule fails. A failing rule is reported in its
// ExtractResult and the other rules still run.
func Apply(answer *domain.Answer, rules domain.ExtractSpec) (domain.Vars, []domain.ExtractResult) {
	if len(rules) == 0 {
		return domain.Vars{}, []domain.ExtractResult{}
	}

	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys) // stable output for tests/UI

	var (
		doc any
		err error
	)
	if answer == nil {
		err = fmt.Errorf("query has no answer")
	} else {
		doc, err = answer.Document()
	}
	if err != nil {
		out := make([]domain.ExtractResult, 0, len(keys))
		for _, name := range keys {
			expr := strings.TrimSpace(rules[name])
			out = append(out, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): %v", name, expr, err),
			})
		}
		return domain.Vars{}, out
	}

	extracted := domain.Vars{}
	results := make([]domain.ExtractResult, 0, len(keys))

	for _, name := range keys {
		expr := strings.TrimSpace(rules[name])
		if expr == "" {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q: empty jsonpath expression", name),
			})
			continue
		}

		val, getErr := jsonpath.Get(expr, doc)
		if getErr != nil {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): jsonpath error: %v", name, expr, getErr),
			})
			continue
		}

		if isEmptyValue(val) {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): no value found", name, expr),
			})
			continue
		}

		s, convErr := toString(val)
		if convErr != nil {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): cannot convert value to string: %v", name, expr, convErr),
			})
			continue
		}

		extracted[name] = s
		results = append(results, domain.ExtractResult{
			Name:    name,
			Success: true,
			Message: fmt.Sprintf("extracted %q", name),
		})
	}

	return extracted, results
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// Common case: jsonpath returns a slice with 1 element
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return "", fmt.Errorf("empty array")
		}
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
