package geniter

import "errors"

// ErrSlotOccupied is the panic value of Put on a slot that still holds
// an undrained item.
var ErrSlotOccupied = errors.New("geniter: slot already occupied")

type item[T any] struct {
	value T
	waker Waker
}

// Slot is a single-item mailbox shared by a producer and the consumer
// that drives it. It holds at most one value together with the waker of
// the suspension point that deposited it.
//
// Slot has no locking: the producer and the consumer must never run at
// the same time. The zero value is an empty slot ready for use.
type Slot[T any] struct {
	item *item[T]
}

// NewSlot returns an empty slot.
func NewSlot[T any]() *Slot[T] {
	return new(Slot[T])
}

// Empty reports whether the slot holds no item.
func (s *Slot[T]) Empty() bool {
	return s.item == nil
}

// Put stores v with the waker to notify once v has been taken. It
// panics with ErrSlotOccupied if the slot is not empty.
func (s *Slot[T]) Put(v T, w Waker) {
	if s.item != nil {
		panic(ErrSlotOccupied)
	}
	s.item = &item[T]{value: v, waker: w}
}

// Take removes and returns the stored value, then wakes the waker that
// was stored with it. The second result is false if the slot was empty.
func (s *Slot[T]) Take() (T, bool) {
	it := s.item
	if it == nil {
		var zero T
		return zero, false
	}
	s.item = nil
	if it.waker != nil {
		it.waker.Wake()
	}
	return it.value, true
}

// Emit returns a suspension point that deposits v into s when first
// polled and completes once v has been taken.
func (s *Slot[T]) Emit(v T) *Emission[T] {
	return &Emission[T]{slot: s, value: v, queued: true}
}

// rewake replaces the waker of the pending item.
func (s *Slot[T]) rewake(w Waker) {
	s.item.waker = w
}

// discard drops the pending item without waking its waker.
func (s *Slot[T]) discard() {
	s.item = nil
}
