// Package views holds the controllers behind each dashboard screen. A view
// owns one resource store and, for editable collections, a mutation
// coordinator that reloads that store after every successful change.
package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/jonathan/jobdash/internal/logger"
	"github.com/jonathan/jobdash/internal/mutation"
	"github.com/jonathan/jobdash/internal/resource"
)

// Options are shared by every view constructor.
type Options struct {
	Clock  clockwork.Clock
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// view wires the lifecycle methods common to all views.
type view[T any] struct {
	name  string
	store *resource.Store[T]
}

func newView[T any](name string, loader resource.Loader[T], opts Options, extra ...resource.Option) *view[T] {
	storeOpts := append([]resource.Option{
		resource.WithName(name),
		resource.WithClock(opts.Clock),
		resource.WithLogger(opts.Logger),
	}, extra...)
	return &view[T]{
		name:  name,
		store: resource.New(loader, storeOpts...),
	}
}

func (v *view[T]) ctx(ctx context.Context) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{View: v.name})
}

// Mount starts the first load in the background, and the refresh timer for
// views that have one.
func (v *view[T]) Mount(ctx context.Context) error {
	return v.store.Start(v.ctx(ctx))
}

// Refetch reloads the view and waits for the result.
func (v *view[T]) Refetch(ctx context.Context) (resource.State[T], error) {
	return v.store.Refetch(v.ctx(ctx))
}

// State returns the current snapshot.
func (v *view[T]) State() resource.State[T] {
	return v.store.State()
}

// Subscribe registers fn for every state transition.
func (v *view[T]) Subscribe(fn func(resource.State[T])) func() {
	return v.store.Subscribe(fn)
}

// Close tears the view down. Pending results are discarded.
func (v *view[T]) Close() {
	v.store.Close()
}

// reloader adapts the view's store for a mutation coordinator. A reload
// superseded by a newer activation is not a failure: the newer one reads
// the same server state.
func (v *view[T]) reloader() mutation.Reloader {
	return mutation.ReloadFunc(func(ctx context.Context) error {
		_, err := v.store.Refetch(ctx)
		if errors.Is(err, resource.ErrStaleActivation) {
			return nil
		}
		return err
	})
}

// ValidationError wraps a client-side check that failed before any request.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func checkIndex(index int) error {
	if index < 0 {
		return &ValidationError{Message: fmt.Sprintf("index %d is negative", index)}
	}
	return nil
}
