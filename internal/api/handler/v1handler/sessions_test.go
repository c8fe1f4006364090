package v1handler

import (
	"context"
	"finplan/internal/intake"
	"finplan/pkg/domain"
	"finplan/pkg/serrors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestRegistry(ttl time.Duration) (*Registry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(ttl)
	r.now = clock.now

	return r, clock
}

func TestRegistry_GetUnknown(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)

	_, err := r.get(uuid.New())
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	r, clock := newTestRegistry(time.Minute)

	idle := r.add(intake.New(nil, intake.Options{}), domain.ReferenceOptions{})
	active := r.add(intake.New(nil, intake.Options{}), domain.ReferenceOptions{})
	require.Equal(t, 2, r.Len())

	clock.t = clock.t.Add(45 * time.Second)
	_, err := r.get(active.id)
	require.NoError(t, err)

	clock.t = clock.t.Add(30 * time.Second)
	require.Equal(t, 1, r.Sweep())

	_, err = r.get(idle.id)
	require.ErrorIs(t, err, serrors.ErrNotFound)
	_, err = r.get(active.id)
	require.NoError(t, err)
}

func TestRegistry_SweepKeepsBusySessions(t *testing.T) {
	r, clock := newTestRegistry(time.Minute)

	s := r.add(intake.New(nil, intake.Options{}), domain.ReferenceOptions{})
	gen := s.orchestrator.Generation()
	require.True(t, s.beginSubmit(gen))

	clock.t = clock.t.Add(time.Hour)
	require.Zero(t, r.Sweep())
	require.Equal(t, 1, r.Len())

	s.endSubmit(gen)
	s.exporting.Store(true)
	require.Zero(t, r.Sweep())

	s.exporting.Store(false)
	require.Equal(t, 1, r.Sweep())
	require.Zero(t, r.Len())
}

func TestSession_SubmitGuardIsPerGeneration(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)
	s := r.add(intake.New(nil, intake.Options{}), domain.ReferenceOptions{})

	old := s.orchestrator.Generation()
	require.True(t, s.beginSubmit(old))
	require.False(t, s.beginSubmit(old))

	s.orchestrator.Reset(context.Background())
	gen := s.orchestrator.Generation()
	require.NotEqual(t, old, gen)
	require.True(t, s.beginSubmit(gen))

	s.endSubmit(old)
	require.True(t, s.busy())
	s.endSubmit(gen)
	require.False(t, s.busy())
	require.True(t, s.beginSubmit(old))
}

func TestSession_ViewReportsExport(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)
	s := r.add(intake.New(nil, intake.Options{}), domain.ReferenceOptions{})

	require.False(t, s.view().Exporting)
	s.exporting.Store(true)
	v := s.view()
	require.True(t, v.Exporting)
	require.Equal(t, intake.CollectingBusinessInfo, v.State)
}

func TestRegistry_Remove(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)

	s := r.add(intake.New(nil, intake.Options{}), domain.ReferenceOptions{})
	require.True(t, r.remove(s.id))
	require.False(t, r.remove(s.id))
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
