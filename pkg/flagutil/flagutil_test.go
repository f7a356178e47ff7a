package flagutil

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHostPort(t *testing.T) {
	tests := []struct {
		in     string
		expect string
		ok     bool
	}{
		{":8080", ":8080", true},
		{"127.0.0.1:80", "127.0.0.1:80", true},
		{"[::1]:443", "[::1]:443", true},
		{"localhost", "", false},
		{"8080", ":8080", true},
		{":99999", "", false},
		{":http", "", false},
		{"::1:80", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var hp HostPort
			err := hp.UnmarshalFlag(tc.in)
			if (err == nil) != tc.ok {
				t.Fatalf("UnmarshalFlag(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			}
			if string(hp) != tc.expect {
				t.Errorf("UnmarshalFlag(%q) = %q, want %q", tc.in, hp, tc.expect)
			}
		})
	}
}

func TestPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	var p Path
	if err := p.UnmarshalFlag("~/site"); err != nil {
		t.Fatalf("UnmarshalFlag() failed: %v", err)
	}
	if want := filepath.Join(home, "site"); string(p) != want {
		t.Errorf("Path = %q, want %q", p, want)
	}

	if err := p.UnmarshalFlag("~other/site"); err != nil {
		t.Fatalf("UnmarshalFlag() failed: %v", err)
	}
	if string(p) != "~other/site" {
		t.Errorf("Path = %q, want it unchanged", p)
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	if err := d.UnmarshalFlag("250ms"); err != nil {
		t.Fatalf("UnmarshalFlag() failed: %v", err)
	}
	if time.Duration(d) != 250*time.Millisecond {
		t.Errorf("Duration = %s, want 250ms", d)
	}
	if err := d.UnmarshalFlag("soon"); err == nil {
		t.Error("UnmarshalFlag(\"soon\") should fail")
	}
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"directory", root, true},
		{"file", file, false},
		{"missing", filepath.Join(root, "missing"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Dir
			err := d.UnmarshalFlag(tc.in)
			if (err == nil) != tc.ok {
				t.Fatalf("UnmarshalFlag(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			}
			if tc.ok && string(d) != tc.in {
				t.Errorf("Dir = %q, want %q", d, tc.in)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in     string
		expect slog.Level
		ok     bool
	}{
		{"debug", slog.LevelDebug, true},
		{"WARN", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"trace", slog.LevelDebug - 4, true},
		{"info+2", slog.LevelInfo + 2, true},
		{"loud", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var l LogLevel
			err := l.UnmarshalFlag(tc.in)
			if (err == nil) != tc.ok {
				t.Fatalf("UnmarshalFlag(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			}
			if tc.ok && l.Level != tc.expect {
				t.Errorf("Level = %s, want %s", l.Level, tc.expect)
			}
		})
	}
}

func TestLogLevelLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogLevel{Level: slog.LevelWarn}.Logger(&buf)
	logger.Info("dropped")
	logger.Warn("kept", slog.String("k", "v"))

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("record below the level was written: %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}
