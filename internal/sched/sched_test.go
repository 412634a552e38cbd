package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 10 * time.Millisecond

func TestAfterFiresOnce(t *testing.T) {
	s := New(nil)
	calls := 0
	h := s.Spawn("after", After(30*time.Millisecond, func() { calls++ }))

	s.Tick(frame)
	s.Tick(frame)
	assert.Equal(t, 0, calls)
	assert.False(t, h.Done())

	s.Tick(frame)
	assert.Equal(t, 1, calls)
	assert.True(t, h.Done())
	assert.Zero(t, s.Len())

	s.Tick(frame)
	assert.Equal(t, 1, calls)
}

func TestSpawnDuringTickStartsNextTick(t *testing.T) {
	s := New(nil)
	var order []string

	s.Spawn("parent", Func(func(time.Duration) bool {
		order = append(order, "parent")
		s.Spawn("child", Func(func(time.Duration) bool {
			order = append(order, "child")
			return true
		}))
		return true
	}))

	s.Tick(frame)
	assert.Equal(t, []string{"parent"}, order)
	assert.Equal(t, 1, s.Len())

	s.Tick(frame)
	assert.Equal(t, []string{"parent", "child"}, order)
	assert.Zero(t, s.Len())
}

func TestCancel(t *testing.T) {
	s := New(nil)
	fired := false
	h := s.Spawn("after", After(frame, func() { fired = true }))
	h.Cancel()

	s.Tick(frame)

	assert.False(t, fired)
	assert.True(t, h.Done())
	assert.True(t, h.Cancelled())
	assert.Zero(t, s.Len())
}

func TestCancelFinishedIsNoop(t *testing.T) {
	s := New(nil)
	h := s.Spawn("once", Func(func(time.Duration) bool { return true }))
	s.Tick(frame)

	h.Cancel()

	assert.False(t, h.Cancelled())
	assert.True(t, h.Done())
}

func TestUntil(t *testing.T) {
	s := New(nil)
	ready := false
	fired := 0
	s.Spawn("wait", Until(func() bool { return ready }, func() { fired++ }))

	for i := 0; i < 5; i++ {
		s.Tick(frame)
	}
	assert.Zero(t, fired)

	ready = true
	s.Tick(frame)
	s.Tick(frame)
	assert.Equal(t, 1, fired)
}

func TestEvery(t *testing.T) {
	s := New(nil)
	count := 0
	s.Spawn("every", Every(20*time.Millisecond, func() bool {
		count++
		return count < 3
	}))

	for i := 0; i < 10; i++ {
		s.Tick(frame)
	}

	assert.Equal(t, 3, count)
	assert.Zero(t, s.Len())
}

func TestCancelAll(t *testing.T) {
	s := New(nil)
	a := s.Spawn("a", After(time.Second, nil))
	s.Tick(frame)
	b := s.Spawn("b", After(time.Second, nil))

	s.CancelAll()
	s.Tick(frame)

	assert.True(t, a.Done())
	assert.True(t, b.Done())
	assert.Zero(t, s.Len())
	assert.Equal(t, 2*frame, s.Now())
}

func TestDelay(t *testing.T) {
	var d Delay
	require.False(t, d.Active())

	d.Start(25 * time.Millisecond)
	assert.True(t, d.Waiting(frame))
	assert.True(t, d.Waiting(frame))
	assert.False(t, d.Waiting(frame))
	assert.False(t, d.Active())
}
