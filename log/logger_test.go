package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	SetLevel(Notice)
	logger := New("test")
	logger.Info("hidden")
	logger.Notice("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "[test]") || !strings.Contains(out, "visible") {
		t.Fatalf("expected notice message with module name; got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	type spec struct {
		in  string
		exp Level
	}
	specs := []spec{
		{"debug", Debug},
		{"info", Info},
		{"warn", Warning},
		{"error", Error},
		{"", Notice},
		{"bogus", Notice},
	}
	for index, s := range specs {
		if got := ParseLevel(s.in); got != s.exp {
			t.Fatalf("[spec %d] expected level %d; got %d", index, s.exp, got)
		}
	}
}

func TestFileSink(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "mdlanim.log")
	closer := SetFileSink(&buf, logFile, 1, 1)
	defer SetSink(os.Stdout)

	SetLevel(Notice)
	New("filesink").Notice("written to both")
	closer.Close()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to both") {
		t.Fatalf("expected log file to contain message; got %q", string(data))
	}
	if !strings.Contains(buf.String(), "written to both") {
		t.Fatalf("expected console sink to contain message; got %q", buf.String())
	}
}
