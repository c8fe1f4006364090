package serrors_test

import (
	"errors"
	"finplan/pkg/serrors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrRejected,
		serrors.ErrUnavailable,
		serrors.ErrStale,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrNotFound, "session %s not found", "abc")
	require.Equal(t, "session abc not found", e1.Error())

	e2 := serrors.Wrap(serrors.ErrUnavailable, base, "could not reach planning service")
	require.Equal(t, "could not reach planning service: connection refused", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrStale)
	require.Equal(t, "STALE", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrRejected, base, "calculating")

	require.ErrorIs(t, e, serrors.ErrRejected)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnavailable)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrConflict, base, "busy")
	require.Equal(t, serrors.ErrConflict, e.Kind())
	require.Equal(t, "busy", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("could not submit: %w", serrors.With(serrors.ErrRejected, "bad input"))
	require.Equal(t, serrors.ErrRejected, serrors.KindOf(wrapped))
	require.Nil(t, serrors.KindOf(errors.New("plain")))
	require.Nil(t, serrors.KindOf(nil))
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("could not submit: %w", serrors.With(serrors.ErrRejected, "bad input"))
	require.Equal(t, "bad input", serrors.UserMessage(wrapped, "fallback"))
	require.Equal(t, "fallback", serrors.UserMessage(errors.New("plain"), "fallback"))
	require.Equal(t, "fallback", serrors.UserMessage(serrors.KindOnly(serrors.ErrStale), "fallback"))
}
