package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/diatonic/internal/domain"
)

func TestLoadSheet(t *testing.T) {
	path := filepath.Join("testdata", "sheet.yaml")
	sheet, err := LoadSheet(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.Name != "Thirds" {
		t.Fatalf("expected name Thirds, got %q", sheet.Name)
	}
	if len(sheet.Queries) != 2 {
		t.Fatalf("expected two queries, got %d", len(sheet.Queries))
	}
	if got := sheet.Queries[1].Args; len(got) != 3 || got[2] != "desc" {
		t.Fatalf("unexpected args %v", got)
	}
	eq := sheet.Queries[1].Assert.JSONPath["$.semitones"].Eq
	if eq == nil || *eq != "4" {
		t.Fatalf("expected jsonpath eq 4")
	}
}

func TestLoadSheetInvalid(t *testing.T) {
	path := filepath.Join("testdata", "sheet_invalid.yaml")
	_, err := LoadSheet(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "queries[0].op") {
		t.Fatalf("expected field in error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestLoadSheetMissing(t *testing.T) {
	_, err := LoadSheet(filepath.Join("testdata", "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestReadSheetName(t *testing.T) {
	name, err := ReadSheetName(filepath.Join("testdata", "sheet.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Thirds" {
		t.Fatalf("expected Thirds, got %q", name)
	}
}
