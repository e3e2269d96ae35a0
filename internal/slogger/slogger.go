package slogger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"tractor.dev/zealboot/internal/glob"
)

type HandlerOptions struct {
	Level   slog.Leveler
	Include []string // If non-empty, only records with an attr matching ANY pattern are logged
	Exclude []string // Records with an attr matching ANY pattern are dropped

	// Output defaults to os.Stdout. Under js/wasm stdout is the browser console.
	Output io.Writer
	// Color enables ANSI escapes for terminals.
	Color bool
}

type Handler struct {
	opts    HandlerOptions
	include []*regexp.Regexp
	exclude []*regexp.Regexp
	attrs   []slog.Attr
	group   string

	mu *sync.Mutex
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		h2.attrs = append(h2.attrs[:len(h2.attrs):len(h2.attrs)], a)
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	h2.group = name
	return &h2
}

func formatValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}

// matchesPatterns checks the attr as both "key=value" and "key".
func matchesPatterns(key string, value any, patterns []*regexp.Regexp) bool {
	full := key + "=" + formatValue(value)
	for _, p := range patterns {
		// "key=*" must not match a nil value, so "err=*" skips nil errors
		if value == nil && strings.HasSuffix(p.String(), "=[^/]*$") {
			continue
		}
		if p.MatchString(full) || p.MatchString(key) {
			return true
		}
	}
	return false
}

func (h *Handler) recordAttrs(r slog.Record) []slog.Attr {
	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		attrs = append(attrs, a)
		return true
	})
	return attrs
}

// shouldInclude applies the include and exclude filters.
func (h *Handler) shouldInclude(attrs []slog.Attr) bool {
	var included, excluded bool
	for _, a := range attrs {
		v := a.Value.Resolve().Any()
		if len(h.include) > 0 && matchesPatterns(a.Key, v, h.include) {
			included = true
		}
		if len(h.exclude) > 0 && matchesPatterns(a.Key, v, h.exclude) {
			excluded = true
		}
	}
	if len(h.include) > 0 && !included {
		return false
	}
	return !excluded
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	attrs := h.recordAttrs(r)
	if !h.shouldInclude(attrs) {
		return nil
	}

	gray, reset := "", ""
	if h.opts.Color {
		gray, reset = "\033[90m", "\033[0m"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s %-5s", gray, r.Time.Format("15:04:05.000"), reset, r.Level.String())
	file, line := "???", 0
	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			file, line = frame.File, frame.Line
		}
	}
	pkg := filepath.Base(filepath.Dir(file))
	fmt.Fprintf(&b, " %s: %s", pkg, r.Message)
	for _, a := range attrs {
		fmt.Fprintf(&b, " %s%s=%s%s", gray, a.Key, reset, formatValue(a.Value.Resolve().Any()))
	}
	fmt.Fprintf(&b, " %s%s:%d%s\n", gray, filepath.Base(file), line, reset)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.opts.Output, b.String())
	return err
}

// compilePatterns converts glob patterns to compiled regexes
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	var compiled []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func Use(level slog.Level) {
	slog.SetDefault(New(level))
}

func UseWithOptions(opts HandlerOptions) {
	slog.SetDefault(NewWithOptions(opts))
}

func New(level slog.Level) *slog.Logger {
	return NewWithOptions(HandlerOptions{
		Level: level,
	})
}

func NewWithOptions(opts HandlerOptions) *slog.Logger {
	h, err := NewHandler(opts)
	if err != nil {
		panic(fmt.Sprintf("slogger: %v", err))
	}
	return slog.New(h)
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	include, err := compilePatterns(opts.Include)
	if err != nil {
		return nil, fmt.Errorf("include filters: %w", err)
	}
	exclude, err := compilePatterns(opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude filters: %w", err)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Handler{
		opts:    opts,
		include: include,
		exclude: exclude,
		mu:      &sync.Mutex{},
	}, nil
}
