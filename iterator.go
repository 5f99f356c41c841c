package geniter

import (
	"errors"
	"iter"
	"runtime"
	"slices"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

// ErrReentrant is the panic value of Next or Stop called from inside the
// producer the iterator is driving.
var ErrReentrant = errors.New("geniter: iterator used from its own producer")

// Iterator pulls values out of a producer one at a time. Every call to
// Next polls the producer with the Null waker until a value shows up in
// the slot or the producer finishes; the iterator itself is the
// scheduler, so nothing is ever waited for.
//
// An Iterator must not be used from multiple goroutines at once.
type Iterator[T any] struct {
	slot    *Slot[T]
	fut     Future
	err     error
	emitted int
	busy    bool
	log     *zap.Logger
}

// New starts body on a coroutine and returns an iterator over the values
// it emits. The body does not run until the first call to Next. The
// error it returns is reported by Err once the iterator is exhausted.
//
// An iterator that becomes unreachable before it is exhausted is stopped
// when the garbage collector finalizes it, unwinding the body on the
// finalizer goroutine. Calling Stop explicitly is still preferred.
func New[T any](body func(e *Emitter[T]) error, opts ...Option) *Iterator[T] {
	slot := NewSlot[T]()
	it := NewIterator(slot, spawn(slot, body), opts...)
	runtime.SetFinalizer(it, (*Iterator[T]).finalize)
	return it
}

func (it *Iterator[T]) finalize() {
	if it.fut == nil {
		return
	}
	var pc panics.Catcher
	pc.Try(it.Stop)
	if r := pc.Recovered(); r != nil {
		it.log.Warn("Producer panicked while being finalized",
			zap.Error(newPanicError(r)), zap.ByteString("stack", r.Stack))
	}
}

// NewIterator returns an iterator that drives fut and collects the
// values it deposits into slot. The slot must not be shared with any
// other iterator.
func NewIterator[T any](slot *Slot[T], fut Future, opts ...Option) *Iterator[T] {
	o := newOptions(opts)
	return &Iterator[T]{
		slot: slot,
		fut:  fut,
		log:  o.logger,
	}
}

// Next returns the next emitted value. Once it returns false it keeps
// returning false, and the producer is never polled again.
func (it *Iterator[T]) Next() (T, bool) {
	if it.busy {
		panic(ErrReentrant)
	}
	it.busy = true
	defer func() { it.busy = false }()

	for {
		if v, ok := it.slot.Take(); ok {
			it.emitted++
			return v, true
		}
		if it.fut == nil {
			var zero T
			return zero, false
		}
		// A finishing producer may still have deposited a value, so
		// the slot is checked once more either way.
		it.poll()
	}
}

func (it *Iterator[T]) poll() {
	// The future is forgotten before polling so that a panic
	// propagating out of Poll leaves it discarded.
	fut := it.fut
	it.fut = nil

	status, err := fut.Poll(Null)
	switch {
	case err != nil:
		it.err = err
		it.log.Debug("Producer failed", zap.Int("emitted", it.emitted), zap.Error(err))
	case status == Ready:
		it.log.Debug("Producer finished", zap.Int("emitted", it.emitted))
	default:
		it.fut = fut
	}
}

// Err returns the error the producer finished with, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Stop abandons the producer and any value it has emitted but Next has
// not yet returned. Producers started by New are unwound so their
// deferred calls run. Stop is idempotent; after it, Next returns false.
func (it *Iterator[T]) Stop() {
	if it.busy {
		panic(ErrReentrant)
	}
	// Emptied after unwinding so that nothing deposited on the way out
	// survives, even if unwinding panics.
	defer it.slot.discard()

	fut := it.fut
	it.fut = nil
	if fut != nil {
		it.log.Debug("Iterator stopped", zap.Int("emitted", it.emitted))
		if s, ok := fut.(Stopper); ok {
			s.Stop()
		}
	}
}

// All returns a single-use sequence of the remaining values. Breaking
// out of the range loop stops the iterator.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok {
				return
			}
			if !yield(v) {
				it.Stop()
				return
			}
		}
	}
}

// Collect drains the iterator and returns the values in emission order
// together with the producer's error.
func (it *Iterator[T]) Collect() ([]T, error) {
	return slices.Collect(it.All()), it.Err()
}
