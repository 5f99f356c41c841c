package geniter

// Emitter is handed to a producer body started by New. It is only valid
// inside that body.
type Emitter[T any] struct {
	slot *Slot[T]
	task *task
}

// Emit hands v to the iterator and suspends the body until v has been
// returned by Next. Emit panics with ErrCanceled when called outside
// the running body, and re-raises the cancellation while the body is
// being unwound by Stop, so nothing is deposited once Stop has begun.
func (e *Emitter[T]) Emit(v T) {
	if !e.task.running {
		panic(ErrCanceled)
	}
	if e.task.perr != nil {
		panic(e.task.perr)
	}
	em := e.slot.Emit(v)
	w := e.task.waker
	for em.Poll(w) == Pending {
		w = e.task.suspend()
	}
}
