package geniter

// Emission is the suspension point of one emitted value. It is created
// by Slot.Emit and polled until it reports Ready.
//
// The first poll that finds the slot empty moves the value into it.
// Every later poll reports Pending while the slot is occupied and Ready
// once it has been drained.
type Emission[T any] struct {
	slot   *Slot[T]
	value  T
	queued bool
}

// Poll advances the emission. w is stored with the deposited value, or
// replaces the stored waker if a value is still waiting to be taken, so
// the most recent poller is the one woken by Take.
func (e *Emission[T]) Poll(w Waker) Status {
	if !e.slot.Empty() {
		e.slot.rewake(w)
		return Pending
	}
	if e.queued {
		v := e.value
		var zero T
		e.value, e.queued = zero, false
		e.slot.Put(v, w)
		return Pending
	}
	return Ready
}
