// Package resource holds the state of read queries that feed a view.
//
// Every load is an activation tagged with a generation number. Activations
// may overlap (mount, manual refetch and the refresh ticker all start one),
// and results are applied in start order: a completion whose generation is
// no longer the newest is dropped.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/jonathan/jobdash/internal/logger"
)

var (
	// ErrStaleActivation is returned to the caller of an activation that a
	// newer one superseded. Its result was discarded.
	ErrStaleActivation = errors.New("activation superseded by a newer one")
	// ErrClosed is returned once the store has been torn down.
	ErrClosed = errors.New("resource store closed")
)

// Loader fetches the complete value of one activation. A loader that needs
// several requests must return either all of them or an error.
type Loader[T any] func(ctx context.Context) (T, error)

// Option configures a Store.
type Option func(*options)

type options struct {
	name     string
	interval time.Duration
	clock    clockwork.Clock
	log      *slog.Logger
}

// WithName labels the store in logs.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithRefreshInterval re-runs the loader every d while the store is started.
func WithRefreshInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Store owns one State and is the only writer to it.
type Store[T any] struct {
	loader   Loader[T]
	name     string
	interval time.Duration
	clock    clockwork.Clock
	log      *slog.Logger

	mu          sync.Mutex
	state       State[T]
	generation  uint64
	seq         uint64
	started     bool
	closed      bool
	ticker      clockwork.Ticker
	stop        chan struct{}
	subscribers map[int]func(State[T])
	nextSub     int

	notifyMu     sync.Mutex
	lastNotified uint64
}

// New creates an idle store around loader.
func New[T any](loader Loader[T], opts ...Option) *Store[T] {
	o := options{name: "resource"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	if o.log == nil {
		o.log = slog.Default()
	}

	return &Store[T]{
		loader:      loader,
		name:        o.name,
		interval:    o.interval,
		clock:       o.clock,
		log:         o.log,
		subscribers: make(map[int]func(State[T])),
	}
}

// State returns the current snapshot.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every snapshot after a transition.
// Snapshots arrive in transition order; fn must not call Refetch
// synchronously. The returned func removes the subscription.
func (s *Store[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Start performs the mount activation in the background and, when a refresh
// interval is set, starts the ticker. The state is Loading when Start
// returns. Calling Start again is a no-op.
func (s *Store[T]) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	if s.interval > 0 {
		s.ticker = s.clock.NewTicker(s.interval)
		s.stop = make(chan struct{})
		go s.refreshLoop(ctx, s.ticker, s.stop)
	}
	s.mu.Unlock()

	gen, err := s.begin()
	if err != nil {
		return err
	}
	go func() {
		_, _ = s.run(ctx, gen)
	}()
	return nil
}

// Refetch starts a new activation and waits for it. It returns the state
// the activation committed, or ErrStaleActivation if a newer activation
// started before it finished. Load errors are returned as-is and are also
// recorded in the state.
func (s *Store[T]) Refetch(ctx context.Context) (State[T], error) {
	gen, err := s.begin()
	if err != nil {
		return State[T]{}, err
	}
	return s.run(ctx, gen)
}

// Close stops the refresh ticker and discards the results of in-flight
// activations. Later activations fail with ErrClosed.
func (s *Store[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
	}
	s.subscribers = make(map[int]func(State[T]))
	s.mu.Unlock()

	s.log.Debug("store closed", "store", s.name)
}

// begin claims the next generation and moves the state to Loading.
func (s *Store[T]) begin() (uint64, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrClosed
	}
	s.generation++
	gen := s.generation
	s.state.Status = Loading
	s.state.Generation = gen
	snap := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.notify(snap, subs)
	return gen, nil
}

func (s *Store[T]) run(ctx context.Context, gen uint64) (State[T], error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component:  "resource." + s.name,
		RequestID:  logger.Ptr(uuid.NewString()),
		Generation: logger.Ptr(gen),
	})
	s.log.DebugContext(ctx, "activation started")

	data, loadErr := s.load(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.DebugContext(ctx, "activation discarded after close")
		return State[T]{}, ErrClosed
	}
	if gen != s.generation {
		newest := s.generation
		s.mu.Unlock()
		s.log.DebugContext(ctx, "activation discarded", "newest_generation", newest)
		return State[T]{}, ErrStaleActivation
	}

	if loadErr != nil {
		s.state.Status = Failed
		s.state.Err = loadErr
	} else {
		s.state.Data = data
		s.state.HasData = true
		s.state.Status = Ready
		s.state.Err = nil
	}
	s.state.UpdatedAt = s.clock.Now()
	snap := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	if loadErr != nil {
		s.log.WarnContext(ctx, "activation failed", "error", loadErr)
	} else {
		s.log.DebugContext(ctx, "activation committed")
	}
	s.notify(snap, subs)
	return snap, loadErr
}

// load calls the loader and turns a panic into an error so one bad view
// cannot leave the store stuck in Loading.
func (s *Store[T]) load(ctx context.Context) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader for %s panicked: %v", s.name, r)
		}
	}()
	return s.loader(ctx)
}

func (s *Store[T]) refreshLoop(ctx context.Context, ticker clockwork.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			_, err := s.Refetch(ctx)
			switch {
			case err == nil, errors.Is(err, ErrStaleActivation):
			case errors.Is(err, ErrClosed):
				return
			default:
				s.log.WarnContext(ctx, "scheduled refresh failed", "store", s.name, "error", err)
			}
		}
	}
}

func (s *Store[T]) snapshotLocked() State[T] {
	s.seq++
	s.state.seq = s.seq
	return s.state
}

func (s *Store[T]) subscribersLocked() []func(State[T]) {
	if len(s.subscribers) == 0 {
		return nil
	}
	subs := make([]func(State[T]), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// notify delivers snap unless a later snapshot was already delivered.
func (s *Store[T]) notify(snap State[T], subs []func(State[T])) {
	if len(subs) == 0 {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if snap.seq <= s.lastNotified {
		return
	}
	s.lastNotified = snap.seq
	for _, fn := range subs {
		fn(snap)
	}
}
