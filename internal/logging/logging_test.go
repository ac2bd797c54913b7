package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Console: &buf})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer l.Close()

	l.Debug().Msg("hidden")
	l.Info().Str("port", "/dev/ttyUSB0").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "/dev/ttyUSB0") {
		t.Fatalf("expected info record with field, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("non-terminal console should not be coloured: %q", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty", Console: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_LevelCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "DEBUG", Console: &buf})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	l.Debug().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug record, got %q", buf.String())
	}
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uart.log")
	l, err := New(Options{File: path, Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	l.Info().Msg("to file")
	if err := l.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"to file"`) {
		t.Fatalf("expected JSON record in file, got %q", string(data))
	}
}

func TestOptionsFromEnv(t *testing.T) {
	env := map[string]string{EnvLevel: "warn", EnvFile: "/tmp/x.log"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	got := OptionsFromEnv(Options{}, lookup)
	if got.Level != "warn" || got.File != "/tmp/x.log" {
		t.Fatalf("unexpected options: %+v", got)
	}

	got = OptionsFromEnv(Options{Level: "debug"}, lookup)
	if got.Level != "debug" {
		t.Fatalf("explicit level should win, got %q", got.Level)
	}
}
