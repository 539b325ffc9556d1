package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/filterstate"
	"taskboard/internal/core/ports"
)

type viewSession struct {
	sync       *filterstate.Synchronizer
	store      ports.ParamStore
	lastAccess time.Time
}

// ViewService owns one filter Synchronizer per open task list view.
type ViewService struct {
	taskService ports.TaskService
	newStore    ports.ParamStoreFactory
	syncOptions []filterstate.Option
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*viewSession
}

func NewViewService(taskService ports.TaskService, newStore ports.ParamStoreFactory, syncOptions ...filterstate.Option) *ViewService {
	return &ViewService{
		taskService: taskService,
		newStore:    newStore,
		syncOptions: syncOptions,
		now:         time.Now,
		sessions:    make(map[string]*viewSession),
	}
}

// Open starts a view whose filters are seeded from the given query string.
func (s *ViewService) Open(ctx context.Context, initial url.Values) (string, *filterstate.Synchronizer, error) {
	id := uuid.NewString()

	store, err := s.newStore(ctx, id, initial)
	if err != nil {
		return "", nil, fmt.Errorf("create view store: %w", err)
	}

	synchronizer, err := filterstate.New(ctx, store, s.syncOptions...)
	if err != nil {
		_ = store.Drop(ctx)
		return "", nil, err
	}

	s.mu.Lock()
	s.sessions[id] = &viewSession{sync: synchronizer, store: store, lastAccess: s.now()}
	s.mu.Unlock()

	zap.L().Debug("view opened", zap.String("view_id", id))
	return id, synchronizer, nil
}

func (s *ViewService) Get(ctx context.Context, id string) (*filterstate.Synchronizer, error) {
	session, err := s.access(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.sync, nil
}

// Params returns the persisted query-string form of a view's filters.
func (s *ViewService) Params(ctx context.Context, id string) (url.Values, error) {
	session, err := s.access(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.store.Values(ctx)
}

// access marks a view as in use, both for idle eviction and for the expiry
// of its stored params.
func (s *ViewService) access(ctx context.Context, id string) (*viewSession, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		session.lastAccess = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrViewSessionNotFound
	}

	if err := session.store.Touch(ctx); err != nil {
		zap.L().Warn("failed to refresh view params", zap.String("view_id", id), zap.Error(err))
	}
	return session, nil
}

// ListTasks lists tasks with the view's in-memory criteria.
func (s *ViewService) ListTasks(ctx context.Context, id string) ([]domain.Task, error) {
	synchronizer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.taskService.ListTasks(ctx, synchronizer.Criteria())
}

// Close tears a view down. Any pending filter write is cancelled.
func (s *ViewService) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrViewSessionNotFound
	}

	session.sync.Close()
	if err := session.store.Drop(ctx); err != nil {
		return fmt.Errorf("drop view %s: %w", id, err)
	}
	return nil
}

// EvictIdle closes views not accessed within idle and returns how many were closed.
func (s *ViewService) EvictIdle(ctx context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var stale []string
	for id, session := range s.sessions {
		if session.lastAccess.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	evicted := 0
	for _, id := range stale {
		if err := s.Close(ctx, id); err != nil {
			zap.L().Warn("failed to evict view", zap.String("view_id", id), zap.Error(err))
			continue
		}
		evicted++
	}
	return evicted
}

func (s *ViewService) CloseAll(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if err := s.Close(ctx, id); err != nil {
			zap.L().Warn("failed to close view", zap.String("view_id", id), zap.Error(err))
		}
	}
}
