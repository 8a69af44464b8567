package logger_test

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/infra/logger"
	"github.com/aalvaropc/diatonic/internal/interval"
	"github.com/aalvaropc/diatonic/internal/usecase"
)

func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var recs []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		recs = append(recs, rec)
	}
	return recs
}

func TestComputeEventsReachLogFile(t *testing.T) {
	root := t.TempDir()
	cleanup, err := logger.Setup(logger.Config{Root: root})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	path := logger.Path()

	uc := usecase.NewCompute(interval.Default(), domain.Descending, logger.L())
	if _, err := uc.Execute(domain.OpConstruct, []string{"M3", "C"}); err != nil {
		t.Fatalf("construct: %v", err)
	}
	if _, err := uc.Execute(domain.OpIdentify, []string{"F", "B", "asc"}); err == nil {
		t.Fatalf("identify F B: expected not_found")
	}

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	byMsg := map[string]map[string]any{}
	for _, rec := range readRecords(t, path) {
		byMsg[rec["msg"].(string)] = rec
	}

	c, ok := byMsg["interval.construct"]
	if !ok {
		t.Fatalf("missing interval.construct record: %v", byMsg)
	}
	if c["result"] != "Ab" || c["level"] != "INFO" {
		t.Fatalf("unexpected construct record: %v", c)
	}
	if sem, _ := c["semitones"].(float64); sem != 4 {
		t.Fatalf("expected semitones=4, got %v", c["semitones"])
	}

	id, ok := byMsg["interval.identify"]
	if !ok {
		t.Fatalf("missing interval.identify record: %v", byMsg)
	}
	if id["error_kind"] != string(domain.KindNotFound) {
		t.Fatalf("unexpected identify record: %v", id)
	}
	if _, hasResult := id["result"]; hasResult {
		t.Fatalf("failed identify should not carry a result: %v", id)
	}
}

func TestDebugRecordsAreDroppedAtInfoLevel(t *testing.T) {
	root := t.TempDir()
	cleanup, err := logger.Setup(logger.Config{Root: root})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	path := logger.Path()

	logger.L().Debug("sheet.query", "name", "third", "result", "E")
	logger.L().Info("sheet.run.done", "sheet", "Triad", "failed", 0)

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	for _, rec := range readRecords(t, path) {
		if rec["msg"] == "sheet.query" {
			t.Fatalf("debug record written without --debug: %v", rec)
		}
	}
}
