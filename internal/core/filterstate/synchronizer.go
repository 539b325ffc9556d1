// Package filterstate keeps a view's editable filter criteria in step with the
// query-string parameters that persist them.
//
// Edits land in memory immediately. Writes to the parameter store are
// debounced: every edit restarts the timer and only the settled state is
// written, read at the moment the timer fires.
package filterstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const DefaultDebounce = 500 * time.Millisecond

var ErrClosed = errors.New("filter synchronizer closed")

// ReconcileHook observes every reconcile attempt.
type ReconcileHook func(wrote bool, err error)

type Option func(*Synchronizer)

func WithDebounce(delay time.Duration) Option {
	return func(s *Synchronizer) {
		if delay > 0 {
			s.delay = delay
		}
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *Synchronizer) {
		s.clock = c
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

func WithReconcileHook(hook ReconcileHook) Option {
	return func(s *Synchronizer) {
		s.hook = hook
	}
}

type Synchronizer struct {
	store  ports.ParamStore
	clock  clock.Clock
	delay  time.Duration
	logger *zap.Logger
	hook   ReconcileHook

	// ctx scopes timer-driven writes; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	// writeMu serialises reconciles and lets Close wait for one in flight.
	writeMu sync.Mutex

	mu       sync.Mutex
	criteria domain.FilterCriteria
	version  uint64
	loading  bool
	timer    *clock.Timer
	gen      uint64
	closed   bool
}

// New builds a Synchronizer whose initial state is decoded from the store.
func New(ctx context.Context, store ports.ParamStore, opts ...Option) (*Synchronizer, error) {
	s := &Synchronizer{
		store:  store,
		clock:  clock.New(),
		delay:  DefaultDebounce,
		logger: zap.L(),
	}
	for _, opt := range opts {
		opt(s)
	}

	values, err := store.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("load filter params: %w", err)
	}
	s.criteria = DecodeParams(values)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

func (s *Synchronizer) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Loading reports whether edits are waiting to be written.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Synchronizer) SetField(field domain.Field, values ...string) {
	s.update(func(c domain.FilterCriteria) domain.FilterCriteria {
		return c.With(field, values...)
	})
}

func (s *Synchronizer) ClearField(field domain.Field) {
	s.update(func(c domain.FilterCriteria) domain.FilterCriteria {
		return c.Without(field)
	})
}

func (s *Synchronizer) ClearAll() {
	s.update(func(domain.FilterCriteria) domain.FilterCriteria {
		return domain.FilterCriteria{}
	})
}

func (s *Synchronizer) update(apply func(domain.FilterCriteria) domain.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.criteria = apply(s.criteria)
	s.version++
	s.loading = true
	s.scheduleLocked()
}

func (s *Synchronizer) scheduleLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() {
		s.fire(gen)
	})
}

func (s *Synchronizer) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	err := s.Reconcile(s.ctx)
	if err == nil || errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
		return
	}
	s.logger.Warn("failed to sync filter params", zap.Error(err))

	// Retry after another debounce period unless a newer edit already did.
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed && s.timer == nil {
		s.scheduleLocked()
	}
}

// Reconcile writes the parameters whose value differs from the current
// in-memory criteria. Nothing is written when every parameter already matches.
func (s *Synchronizer) Reconcile(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	criteria := s.criteria
	version := s.version
	s.mu.Unlock()

	current, err := s.store.Values(ctx)
	if err != nil {
		s.observe(false, err)
		return fmt.Errorf("read filter params: %w", err)
	}

	set, remove := diff(criteria, current)
	if len(set) == 0 && len(remove) == 0 {
		s.settle(version)
		s.observe(false, nil)
		return nil
	}

	if err := s.store.Apply(ctx, set, remove); err != nil {
		s.observe(false, err)
		return fmt.Errorf("write filter params: %w", err)
	}
	s.settle(version)
	s.observe(true, nil)
	return nil
}

// settle clears the loading flag unless newer edits arrived meanwhile.
func (s *Synchronizer) settle(version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version == version {
		s.loading = false
	}
}

func (s *Synchronizer) observe(wrote bool, err error) {
	if s.hook != nil {
		s.hook(wrote, err)
	}
}

// Close cancels any pending write and waits for one already in flight, so
// nothing reaches the store once it returns. The Synchronizer is unusable
// afterwards.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cancel()
	s.mu.Unlock()

	s.writeMu.Lock()
	s.writeMu.Unlock()
}
