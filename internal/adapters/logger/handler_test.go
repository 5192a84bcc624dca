package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/shaderbuild/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		build      func(h slog.Handler) slog.Handler
		attrs      []any
		goldenName string
	}{
		{
			name:       "record attributes",
			build:      func(h slog.Handler) slog.Handler { return h },
			attrs:      []any{"task", "foo.slang (foo_a)", "exit_code", 3},
			goldenName: "handler_attrs_record",
		},
		{
			name: "handler attributes first",
			build: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("worker", "2")})
			},
			attrs:      []any{"task", "a.comp"},
			goldenName: "handler_attrs_handler",
		},
		{
			name: "nested groups",
			build: func(h slog.Handler) slog.Handler {
				return h.WithGroup("build").WithGroup("task")
			},
			attrs:      []any{slog.Group("cmd", slog.String("name", "slangc"))},
			goldenName: "handler_attrs_groups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			h := logger.NewPrettyHandler(buf, nil)
			slog.New(tt.build(h)).Info("attribute message", tt.attrs...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Location(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		attrs      []any
		goldenName string
	}{
		{
			name:       "location in the message",
			level:      slog.LevelWarn,
			msg:        "shaders/fog.slang:4: this looks like a variant declaration but is not one",
			goldenName: "handler_location_message",
		},
		{
			name:       "drive letter stays in the path",
			level:      slog.LevelError,
			msg:        `C:\shaders\fog.slang:12: unknown variant fog_c`,
			goldenName: "handler_location_drive",
		},
		{
			name:       "location from attributes",
			level:      slog.LevelError,
			msg:        "no !end-variants found in the file",
			attrs:      []any{logger.FileKey, "shaders/sky.comp.slang", logger.LineKey, 2, "task", "sky"},
			goldenName: "handler_location_attrs",
		},
		{
			name:       "message location wins over attributes",
			level:      slog.LevelWarn,
			msg:        "a.slang:3: duplicate variant",
			attrs:      []any{logger.FileKey, "b.slang"},
			goldenName: "handler_location_both",
		},
		{
			name:       "line without file stays an attribute",
			level:      slog.LevelInfo,
			msg:        "compiled",
			attrs:      []any{logger.LineKey, 7},
			goldenName: "handler_location_line_only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, nil))
			lg.Log(t.Context(), tt.level, tt.msg, tt.attrs...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}
