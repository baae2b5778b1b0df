// Package mutation runs create/update/delete calls and reloads the owning
// collection from the server afterwards. Local state is never patched.
package mutation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/jobdash/internal/logger"
)

// Reloader re-reads the collection a mutation changed.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadFunc adapts a function to Reloader.
type ReloadFunc func(ctx context.Context) error

// Reload calls f.
func (f ReloadFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

// Outcome describes a mutation that reached the server successfully.
// ReloadErr is set when the follow-up reload failed: the change was saved
// but the view could not confirm it.
type Outcome struct {
	Name      string
	RequestID string
	Saved     bool
	ReloadErr error
}

// Confirmed reports whether the reload after the mutation succeeded.
func (o Outcome) Confirmed() bool {
	return o.Saved && o.ReloadErr == nil
}

// Message is the user-facing summary of the outcome.
func (o Outcome) Message() string {
	switch {
	case !o.Saved:
		return "not saved"
	case o.ReloadErr != nil:
		return fmt.Sprintf("saved, but could not confirm: %v", o.ReloadErr)
	default:
		return "saved"
	}
}

// Coordinator sequences a mutation and the reload that follows it.
type Coordinator struct {
	reloader Reloader
	log      *slog.Logger
}

// New creates a coordinator that calls reloader after every successful mutation.
func New(reloader Reloader, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{reloader: reloader, log: log}
}

// Perform runs fn and, only if it succeeds, reloads. An error from fn is
// returned unchanged with a zero Outcome. A reload error never becomes the
// returned error; it is reported in Outcome.ReloadErr.
func (c *Coordinator) Perform(ctx context.Context, name string, fn func(ctx context.Context) error) (Outcome, error) {
	requestID := uuid.NewString()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "mutation",
		Mutation:  name,
		RequestID: &requestID,
	})

	if err := fn(ctx); err != nil {
		c.log.WarnContext(ctx, "mutation failed", "error", err)
		return Outcome{Name: name, RequestID: requestID}, err
	}

	outcome := Outcome{Name: name, RequestID: requestID, Saved: true}
	// The reload is a fresh activation with its own correlation ID.
	reloadCtx := logger.WithLogFields(ctx, logger.LogFields{RequestID: logger.Ptr(uuid.NewString())})
	if err := c.reloader.Reload(reloadCtx); err != nil {
		c.log.WarnContext(ctx, "reload after mutation failed", "error", err)
		outcome.ReloadErr = err
		return outcome, nil
	}

	c.log.DebugContext(ctx, "mutation saved and reloaded")
	return outcome, nil
}
