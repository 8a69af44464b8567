package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// Answer is the structured outcome of a single construct or identify call.
// It is also the JSON document that sheet assertions and extracts query.
type Answer struct {
	Operation Operation `json:"operation"`
	Args      []string  `json:"args"`
	Direction Direction `json:"direction"`

	// Result is a note name for construct and an interval name for identify.
	Result string `json:"result"`

	// Letter and Offset describe the constructed note; empty for identify.
	Letter string `json:"letter,omitempty"`
	Offset int    `json:"offset"`

	Interval  string `json:"interval"`
	Quality   string `json:"quality"`
	Degree    int    `json:"degree"`
	Semitones int    `json:"semitones"`
}

// Document returns the answer as a generic JSON value, the shape JSONPath
// expressions are evaluated against.
func (a Answer) Document() (any, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// QueryError represents a structured error produced while answering a query.
type QueryError struct {
	Kind    ErrorKind
	Message string
}

// NewQueryError converts err into a QueryError, keeping the OpError kind when present.
func NewQueryError(err error) *QueryError {
	if err == nil {
		return nil
	}
	kind := KindExecution
	var oe *OpError
	if errors.As(err, &oe) {
		kind = oe.Kind
	}
	return &QueryError{Kind: kind, Message: err.Error()}
}

// AssertionResult is the output of a single assertion.
type AssertionResult struct {
	Name    string
	Passed  bool
	Message string
}

// ExtractResult is the output of a single extract rule.
type ExtractResult struct {
	Name    string
	Success bool
	Message string
}

// QueryResult represents the result of running a single sheet query.
type QueryResult struct {
	Name string
	Op   Operation
	Args []string

	Answer *Answer

	Assertions []AssertionResult
	Extracts   []ExtractResult
	Extracted  Vars

	Error *QueryError
}

// Failed reports whether the query errored unexpectedly or any check failed.
func (r QueryResult) Failed() bool {
	for _, a := range r.Assertions {
		if !a.Passed {
			return true
		}
	}
	for _, e := range r.Extracts {
		if !e.Success {
			return true
		}
	}
	if r.Error == nil {
		return false
	}
	// An expected error is reported through a passing assertion.
	for _, a := range r.Assertions {
		if a.Name == AssertErrorKind {
			return false
		}
	}
	return true
}

// AssertErrorKind names the assertion produced for expect_error.
const AssertErrorKind = "error_kind"

// RunResult represents the result of running a whole sheet.
type RunResult struct {
	SheetName string
	SheetPath string

	StartedAt time.Time
	EndedAt   time.Time

	Results []QueryResult
}
