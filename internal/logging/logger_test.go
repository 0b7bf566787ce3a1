package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ladle/internal/logging"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("job accepted",
		logging.FieldComponent, "agent",
		logging.FieldJobID, "job-1")

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO agent: job accepted") {
		t.Fatalf("unexpected console line %q", line)
	}
	if !strings.Contains(line, "job_id=job-1") {
		t.Fatalf("expected job_id attribute in %q", line)
	}
}

func TestConsoleQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("note", "detail", "two words")
	if !strings.Contains(buf.String(), `detail="two words"`) {
		t.Fatalf("expected quoted value in %q", buf.String())
	}
}

func TestConsoleComponentFromWith(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(logging.FieldComponent, "bookmarks").Info("stored")
	if !strings.Contains(buf.String(), " INFO bookmarks: stored") {
		t.Fatalf("expected component prefix in %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN shown") {
		t.Fatalf("warn line missing from %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("poll tick", logging.FieldJobID, "job-1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "poll tick" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry["job_id"] != "job-1" {
		t.Fatalf("expected job_id field, got %+v", entry)
	}
	if _, ok := entry["ts"].(string); !ok {
		t.Fatalf("expected ts string, got %+v", entry)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should vanish")
}
