package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/shaderbuild/internal/ui/output"
	"go.trai.ch/shaderbuild/internal/ui/style"
)

// Attribute keys that locate a diagnostic in a shader source.
const (
	FileKey = "file"
	LineKey = "line"
)

// locationPattern matches the "path:line: " prefix of variant parser diagnostics.
// The path is matched lazily so Windows drive letters stay part of it.
var locationPattern = regexp.MustCompile(`^(\S+?):(\d+): `)

// PrettyHandler is a slog.Handler that writes one colored line per record.
//
// A record located in a source file, either through a leading "path:line: " in
// its message or through top-level file and line attributes, is written in the
// compiler style "path:line: message" with the location in bold, so editors
// and terminals can jump to it.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	msg := r.Message
	var loc location
	if m := locationPattern.FindStringSubmatch(msg); m != nil {
		loc = location{file: m[1], line: m[2], fromMessage: true}
		msg = msg[len(m[0]):]
	}

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	add := func(attr slog.Attr) bool {
		if h.group == "" && loc.take(attr) {
			return true
		}
		attrs = appendAttr(attrs, h.group, attr)
		return true
	}
	for _, attr := range h.attrs {
		add(attr)
	}
	r.Attrs(add)

	if loc.file == "" && loc.line != "" {
		attrs = append(attrs, LineKey+"="+loc.line)
	}
	if len(attrs) > 0 {
		msg += " " + strings.Join(attrs, " ")
	}

	var b strings.Builder
	if icon != "" {
		b.WriteString(h.out.String(icon + " ").Foreground(color).String())
	}
	if where := loc.String(); where != "" {
		b.WriteString(h.out.String(where + ":").Foreground(color).Bold().String())
		b.WriteString(" ")
	}
	b.WriteString(h.out.String(msg).Foreground(color).String())
	b.WriteString("\n")

	_, err := h.out.WriteString(b.String())
	return err
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, output.Color(style.Red)
	case level >= slog.LevelWarn:
		return style.Warning, output.Color(style.Yellow)
	case level >= slog.LevelInfo:
		return "", output.Color(style.Slate)
	default:
		return style.Dot, output.Color(style.Iris)
	}
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(slices.Clip(h.attrs), attrs...)
	return &c
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	c := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	c.group = name
	return &c
}

// location is the source position a record refers to.
type location struct {
	file string
	line string
	// fromMessage is set when the message already names the position,
	// which then wins over file and line attributes.
	fromMessage bool
}

// take consumes file and line attributes.
func (l *location) take(attr slog.Attr) bool {
	if l.fromMessage {
		return false
	}
	switch attr.Key {
	case FileKey:
		l.file = attr.Value.String()
	case LineKey:
		l.line = attr.Value.String()
	default:
		return false
	}
	return true
}

func (l location) String() string {
	switch {
	case l.file == "":
		return ""
	case l.line == "":
		return l.file
	default:
		return l.file + ":" + l.line
	}
}

// appendAttr formats attr as key=value, flattening groups into dotted keys.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, inner := range attr.Value.Group() {
			parts = appendAttr(parts, key, inner)
		}
		return parts
	}
	return append(parts, key+"="+attr.Value.String())
}
