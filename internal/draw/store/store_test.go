package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louisbranch/luckydraw/internal/draw"
	"github.com/louisbranch/luckydraw/internal/draw/flow"
)

func validInput() draw.Input {
	return draw.Input{Start: "1", End: "10", WinnersCount: "2"}
}

func TestMachineReturnsSameInstancePerSession(t *testing.T) {
	t.Parallel()

	s, err := New(4, flow.WithDelay(0))
	require.NoError(t, err)

	first, err := s.Machine("a")
	require.NoError(t, err)
	again, err := s.Machine(" a ")
	require.NoError(t, err)
	other, err := s.Machine("b")
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, s.Len())
}

func TestMachineRequiresSessionID(t *testing.T) {
	t.Parallel()

	s, err := New(4)
	require.NoError(t, err)

	_, err = s.Machine("  ")
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	s, err := New(4, flow.WithDelay(0))
	require.NoError(t, err)

	a, err := s.Machine("a")
	require.NoError(t, err)
	_, err = a.Submit(context.Background(), validInput())
	require.NoError(t, err)

	b, err := s.Machine("b")
	require.NoError(t, err)
	assert.Equal(t, flow.StateResult, a.Snapshot().State)
	assert.Equal(t, flow.StateIdle, b.Snapshot().State)
}

func TestEvictionDropsLeastRecentlyUsedSession(t *testing.T) {
	t.Parallel()

	s, err := New(2, flow.WithDelay(0))
	require.NoError(t, err)

	a, err := s.Machine("a")
	require.NoError(t, err)
	_, err = a.Submit(context.Background(), validInput())
	require.NoError(t, err)

	_, err = s.Machine("b")
	require.NoError(t, err)
	_, err = s.Machine("c")
	require.NoError(t, err)

	_, ok := s.Peek("a")
	assert.False(t, ok, "oldest session should be evicted")
	assert.Equal(t, flow.StateIdle, a.Snapshot().State, "evicted machine should be reset")

	fresh, err := s.Machine("a")
	require.NoError(t, err)
	assert.NotSame(t, a, fresh)
	assert.Equal(t, flow.StateIdle, fresh.Snapshot().State)
}

func TestNewDefaultsSize(t *testing.T) {
	t.Parallel()

	s, err := New(0)
	require.NoError(t, err)
	_, err = s.Machine("a")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}
