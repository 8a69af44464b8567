package domain

import "strings"

// Operation names one of the two interval computations.
type Operation string

const (
	OpConstruct Operation = "construct"
	OpIdentify  Operation = "identify"
)

// ParseOperation accepts "construct" or "identify" (case-insensitive).
func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(s))) {
	case OpConstruct:
		return OpConstruct, nil
	case OpIdentify:
		return OpIdentify, nil
	default:
		return "", InvalidArgument("operation.parse", "unsupported operation %q (expected construct|identify)", s)
	}
}

// JSONPathAssertion defines a JSONPath-based check against an Answer document.
type JSONPathAssertion struct {
	Exists   bool
	Eq       *string
	Contains *string
	Matches  *string
	Gt       *float64
	Lt       *float64
}

// AssertionsSpec defines the checks applied to a query outcome.
type AssertionsSpec struct {
	// Result is the expected result string (note name or interval name).
	Result *string

	// ErrorKind expects the query to fail with this kind instead of answering.
	ErrorKind *ErrorKind

	// JSONPath contains JSONPath assertions keyed by expression.
	JSONPath map[string]JSONPathAssertion
}

// ExtractSpec defines variable extraction from answers.
// Map: variableName -> jsonpathExpression
type ExtractSpec map[string]string

// QuerySpec describes a single construct/identify call inside a sheet.
type QuerySpec struct {
	Name string
	Op   Operation
	Args []string

	Assert  AssertionsSpec
	Extract ExtractSpec
}

// Sheet groups queries that run in order and may feed each other through vars.
type Sheet struct {
	Name string

	// Vars are the initial variables available to every query.
	Vars Vars

	Queries []QuerySpec
}

// SheetRef is a lightweight reference to a sheet file on disk.
type SheetRef struct {
	Name string
	Path string
}
