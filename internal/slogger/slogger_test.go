package slogger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func logAttrs(t *testing.T, opts HandlerOptions, attrs map[string]any) string {
	t.Helper()
	var buf bytes.Buffer
	opts.Output = &buf
	opts.Level = slog.LevelDebug
	logger := NewWithOptions(opts)
	var args []any
	for k, v := range attrs {
		args = append(args, slog.Any(k, v))
	}
	logger.Info("test", args...)
	return buf.String()
}

func TestIncludeFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   []string
		attrs     map[string]any
		shouldLog bool
	}{
		{
			name:      "include err=* logs record with non-nil error",
			filters:   []string{"err=*"},
			attrs:     map[string]any{"err": "timeout", "resource": "default.img"},
			shouldLog: true,
		},
		{
			name:      "include err=* excludes record with nil error",
			filters:   []string{"err=*"},
			attrs:     map[string]any{"err": nil, "resource": "default.img"},
			shouldLog: false,
		},
		{
			name:      "include err=* excludes record without error",
			filters:   []string{"err=*"},
			attrs:     map[string]any{"resource": "default.img"},
			shouldLog: false,
		},
		{
			name:      "include err logs record with any err value",
			filters:   []string{"err"},
			attrs:     map[string]any{"err": nil},
			shouldLog: true,
		},
		{
			name:      "include resource=*.bin matches value",
			filters:   []string{"resource=*.bin"},
			attrs:     map[string]any{"resource": "microbe.bin"},
			shouldLog: true,
		},
		{
			name:      "include resource=*.bin skips other values",
			filters:   []string{"resource=*.bin"},
			attrs:     map[string]any{"resource": "default.img"},
			shouldLog: false,
		},
		{
			name:      "multiple include filters (OR logic)",
			filters:   []string{"err=*", "status=4*"},
			attrs:     map[string]any{"status": 404},
			shouldLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := logAttrs(t, HandlerOptions{Include: tt.filters}, tt.attrs)
			if tt.shouldLog && out == "" {
				t.Fatal("expected record to be logged, but it wasn't")
			}
			if !tt.shouldLog && out != "" {
				t.Fatalf("expected record to be filtered out, but it was logged: %q", out)
			}
			if tt.shouldLog {
				for k := range tt.attrs {
					if !strings.Contains(out, k+"=") {
						t.Errorf("expected all attributes in output, missing %q: %q", k, out)
					}
				}
			}
		})
	}
}

func TestExcludeFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   []string
		attrs     map[string]any
		shouldLog bool
	}{
		{
			name:      "exclude debug_* filters record with debug attribute",
			filters:   []string{"debug_*"},
			attrs:     map[string]any{"debug_flag": true, "size": 3},
			shouldLog: false,
		},
		{
			name:      "exclude debug_* allows record without debug attribute",
			filters:   []string{"debug_*"},
			attrs:     map[string]any{"size": 3},
			shouldLog: true,
		},
		{
			name:      "exclude specific value filters exact match",
			filters:   []string{"method=GET"},
			attrs:     map[string]any{"method": "GET"},
			shouldLog: false,
		},
		{
			name:      "exclude specific value allows different value",
			filters:   []string{"method=GET"},
			attrs:     map[string]any{"method": "POST"},
			shouldLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := logAttrs(t, HandlerOptions{Exclude: tt.filters}, tt.attrs)
			if tt.shouldLog != (out != "") {
				t.Fatalf("shouldLog=%v, got %q", tt.shouldLog, out)
			}
		})
	}
}

func TestCombinedFilters(t *testing.T) {
	opts := HandlerOptions{
		Include: []string{"db_*"},
		Exclude: []string{"*_trace"},
	}
	if out := logAttrs(t, opts, map[string]any{"db_name": "users"}); out == "" {
		t.Error("expected db_name to be logged")
	}
	if out := logAttrs(t, opts, map[string]any{"db_name": "users", "db_trace": "1"}); out != "" {
		t.Errorf("expected db_trace to be excluded: %q", out)
	}
	if out := logAttrs(t, opts, map[string]any{"user": "admin"}); out != "" {
		t.Errorf("expected record without db_* to be excluded: %q", out)
	}
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(HandlerOptions{Output: &buf})
	logger.With("resource", "default.img").WithGroup("http").Error("fetch failed", "status", 404, "err", nil)

	out := buf.String()
	for _, want := range []string{
		"ERROR slogger: fetch failed",
		"resource=default.img",
		"http.status=404",
		"http.err=<nil>",
		"slogger_test.go:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("unexpected color escapes: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected a trailing newline: %q", out)
	}
}

func TestLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(HandlerOptions{Output: &buf, Level: slog.LevelWarn})
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be dropped at warn level: %q", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("warn should be logged: %q", buf.String())
	}
}

func TestInvalidPattern(t *testing.T) {
	if _, err := NewHandler(HandlerOptions{Include: []string{"[z-a]"}}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
