package geniter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func counter(n *int) Waker {
	return WakerFunc(func() { *n++ })
}

func TestSlotPutTake(t *testing.T) {
	var s Slot[int]
	require.True(t, s.Empty())

	var woken int
	s.Put(42, counter(&woken))
	require.False(t, s.Empty())
	require.Equal(t, 0, woken)

	v, ok := s.Take()
	require.True(t, ok)
	require.Equal(t, 42, v)
	require.Equal(t, 1, woken)
	require.True(t, s.Empty())

	v, ok = s.Take()
	require.False(t, ok)
	require.Zero(t, v)
	require.Equal(t, 1, woken)
}

func TestSlotPutOccupied(t *testing.T) {
	s := NewSlot[string]()
	s.Put("a", Null)
	require.PanicsWithValue(t, ErrSlotOccupied, func() { s.Put("b", Null) })

	v, ok := s.Take()
	require.True(t, ok)
	require.Equal(t, "a", v)
}

func TestSlotTakeWithoutWaker(t *testing.T) {
	s := NewSlot[int]()
	s.Put(1, nil)
	v, ok := s.Take()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestSlotDiscardDoesNotWake(t *testing.T) {
	s := NewSlot[int]()
	var woken int
	s.Put(1, counter(&woken))
	s.discard()
	require.True(t, s.Empty())
	require.Equal(t, 0, woken)
}

func TestEmissionLifecycle(t *testing.T) {
	s := NewSlot[int]()
	em := s.Emit(7)

	var woken int
	require.Equal(t, Pending, em.Poll(counter(&woken)))
	require.False(t, s.Empty())

	v, ok := s.Take()
	require.True(t, ok)
	require.Equal(t, 7, v)
	require.Equal(t, 1, woken)

	require.Equal(t, Ready, em.Poll(Null))
	require.Equal(t, Ready, em.Poll(Null))
	require.True(t, s.Empty())
}

func TestEmissionReregistersWaker(t *testing.T) {
	s := NewSlot[int]()
	em := s.Emit(7)

	var first, second int
	require.Equal(t, Pending, em.Poll(counter(&first)))
	require.Equal(t, Pending, em.Poll(counter(&second)))

	_, ok := s.Take()
	require.True(t, ok)
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
	require.Equal(t, Ready, em.Poll(Null))
}

func TestEmissionWaitsForPreviousItem(t *testing.T) {
	s := NewSlot[int]()
	var prior, woken int
	s.Put(1, counter(&prior))

	em := s.Emit(2)
	require.Equal(t, Pending, em.Poll(counter(&woken)))

	v, ok := s.Take()
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 0, prior)
	require.Equal(t, 1, woken)

	require.Equal(t, Pending, em.Poll(Null))
	v, ok = s.Take()
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, Ready, em.Poll(Null))
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "pending", Pending.String())
	require.Equal(t, "ready", Ready.String())
}
