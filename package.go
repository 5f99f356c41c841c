// Package geniter turns a producer function that emits values into a
// pull-based iterator, using Go's native runtime coroutines to suspend
// the producer between values.
//
// A producer is started with New. Its body receives an Emitter and
// calls Emit for every value; each Emit suspends the body until the
// consumer has collected the value with Next:
//
//	it := geniter.New(func(e *geniter.Emitter[int]) error {
//		e.Emit(42)
//		e.Emit(12)
//		return nil
//	})
//	vs, err := it.Collect() // [42 12], nil
//
// Values are exchanged through a Slot, a single-item mailbox. A value
// sits in the slot from the moment it is emitted until Next takes it,
// and the producer cannot run past its Emit while the slot is occupied.
// No more than one value is ever buffered.
//
// Underneath, the producer is a Future and every Emit is an Emission,
// both polled with a Waker. The Iterator polls with the Null waker and
// re-checks the slot after every poll, so it never waits to be woken.
// Slot, Emission and NewIterator are exported for callers that drive
// the same protocol from a scheduler of their own, where a taken value
// wakes the waker the emission was last polled with.
//
// Everything is single-threaded and cooperative. Producer panics are
// captured with their stack and re-raised from Next. Stop abandons a
// producer early, unwinding its body so deferred calls run; ranging over
// All stops when the loop is broken out of. An iterator from New that is
// dropped without being exhausted or stopped is stopped by a finalizer
// once the garbage collector finds it unreachable.
package geniter
