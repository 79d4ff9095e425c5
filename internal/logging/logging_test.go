package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel)

	ctx := WithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Error("expected the attached logger back")
	}
	if FromContext(context.Background()) != log.Default() {
		t.Error("expected the default logger for a bare context")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Level(false))

	l.Debug("hidden")
	l.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected info message, got %q", out)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(New(&buf, log.DebugLevel))

	p.Done("Shuffled 3 sections")

	if !strings.Contains(buf.String(), "Shuffled 3 sections (") {
		t.Errorf("expected elapsed time suffix, got %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tui.log")

	l, closer, err := OpenFile(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log line in file, got %q", data)
	}
}
