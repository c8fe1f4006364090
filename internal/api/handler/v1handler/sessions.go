package v1handler

import (
	"context"
	"finplan/internal/intake"
	"finplan/pkg/domain"
	"finplan/pkg/logger"
	"finplan/pkg/serrors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session is one user's wizard. A generation is submitted at most once at a
// time and the session runs at most one export at a time.
type session struct {
	id           uuid.UUID
	orchestrator *intake.Orchestrator
	options      domain.ReferenceOptions

	lastSeen  atomic.Int64
	exporting atomic.Bool

	mu         sync.Mutex
	submitting map[uuid.UUID]struct{}
}

func (s *session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

// beginSubmit marks generation gen as submitting. It returns false if a
// submission of gen is already in flight.
func (s *session) beginSubmit(gen uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.submitting[gen]; ok {
		return false
	}
	if s.submitting == nil {
		s.submitting = map[uuid.UUID]struct{}{}
	}
	s.submitting[gen] = struct{}{}

	return true
}

func (s *session) endSubmit(gen uuid.UUID) {
	s.mu.Lock()
	delete(s.submitting, gen)
	s.mu.Unlock()
}

func (s *session) busy() bool {
	s.mu.Lock()
	n := len(s.submitting)
	s.mu.Unlock()

	return n > 0 || s.exporting.Load()
}

// view is the snapshot returned for the session.
func (s *session) view() SessionResponse {
	return SessionResponse{
		Snapshot:  s.orchestrator.Snapshot(),
		Exporting: s.exporting.Load(),
	}
}

// Registry holds the live sessions in memory.
type Registry struct {
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// NewRegistry returns an empty registry evicting sessions idle for idleTTL.
func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: map[uuid.UUID]*session{},
	}
}

func (r *Registry) add(o *intake.Orchestrator, options domain.ReferenceOptions) *session {
	s := &session{id: uuid.New(), orchestrator: o, options: options}
	s.touch(r.now())

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	return s
}

func (r *Registry) get(id uuid.UUID) (*session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, serrors.With(serrors.ErrNotFound, "session not found")
	}
	s.touch(r.now())

	return s, nil
}

func (r *Registry) remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[id]
	delete(r.sessions, id)

	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were evicted. Sessions with a request in flight are kept.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if s.lastSeen.Load() < cutoff && !s.busy() {
			delete(r.sessions, id)
			evicted++
		}
	}

	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug(ctx, "evicted idle sessions", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
