// Package logger configures log/slog for the CLI and library and enriches
// records with fields carried on the context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Options selects the handler and level.
type Options struct {
	JSON    bool
	Verbose bool
	Output  io.Writer
}

// New builds a logger without touching the process default.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if opts.Verbose {
		handlerOpts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(NewContextHandler(handler))
}

// Setup installs a logger built from opts as the slog default.
func Setup(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	return l
}

// ContextHandler adds LogFields from the record's context.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps h.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	fields := GetLogFields(ctx)
	if fields.Component != "" {
		r.AddAttrs(slog.String("component", fields.Component))
	}
	if fields.View != "" {
		r.AddAttrs(slog.String("view", fields.View))
	}
	if fields.RequestID != nil {
		r.AddAttrs(slog.String("request_id", *fields.RequestID))
	}
	if fields.Generation != nil {
		r.AddAttrs(slog.Uint64("generation", *fields.Generation))
	}
	if fields.Mutation != "" {
		r.AddAttrs(slog.String("mutation", fields.Mutation))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
