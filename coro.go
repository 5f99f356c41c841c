package geniter

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/sourcegraph/conc/panics"
)

var (
	// ErrCanceled is raised at the suspension point of a producer whose
	// iterator was stopped, and by Emit on a producer that has already
	// finished.
	ErrCanceled = errors.New("geniter: coroutine canceled")
	// ErrResumeFinished is the panic value of polling a producer after it
	// reported Ready.
	ErrResumeFinished = errors.New("geniter: poll of finished coroutine")
	_                 unsafe.Pointer
)

// coroutine represents a native Go coroutine instance. It's an opaque
// struct used by the runtime functions.
type coroutine struct{}

//go:linkname newcoro runtime.newcoro
func newcoro(func(*coroutine)) *coroutine

//go:linkname coroswitch runtime.coroswitch
func coroswitch(*coroutine)

// task runs a producer body on a runtime coroutine. Each Poll switches
// into the body, which runs until its next suspension point or until it
// returns, then switches back.
type task struct {
	c       *coroutine
	waker   Waker
	running bool
	done    bool
	err     error
	perr    error
}

func spawn[T any](slot *Slot[T], body func(*Emitter[T]) error) *task {
	t := new(task)
	e := &Emitter[T]{slot: slot, task: t}
	t.c = newcoro(func(*coroutine) {
		defer func() { t.done = true }()
		if t.perr != nil {
			// Stopped before the first poll.
			return
		}
		var pc panics.Catcher
		pc.Try(func() { t.err = body(e) })
		if r := pc.Recovered(); r != nil && r.Value != any(t.perr) {
			t.perr = newPanicError(r)
		}
	})
	return t
}

// Poll implements Future. A panic raised by the body is re-raised here.
func (t *task) Poll(w Waker) (Status, error) {
	if t.perr != nil {
		panic(t.perr)
	}
	if t.done {
		panic(ErrResumeFinished)
	}
	t.waker = w
	t.resume()
	if t.perr != nil {
		panic(t.perr)
	}
	if t.done {
		return Ready, t.err
	}
	return Pending, nil
}

// Stop unwinds a suspended body by panicking with ErrCanceled at its
// suspension point, so that its deferred calls run. A panic other than
// the cancellation itself escapes from Stop.
func (t *task) Stop() {
	if t.done {
		return
	}
	canceled := fmt.Errorf("%w", ErrCanceled)
	t.perr = canceled
	t.resume()
	if t.perr != canceled {
		panic(t.perr)
	}
}

// resume switches into the body. running is only true while the body
// executes on behalf of Poll or Stop.
func (t *task) resume() {
	t.running = true
	defer func() { t.running = false }()
	coroswitch(t.c)
}

// suspend switches back to the poller and returns the waker of the
// poll that resumed the body.
func (t *task) suspend() Waker {
	if t.done {
		panic(ErrCanceled)
	}
	if t.perr != nil {
		panic(t.perr)
	}
	coroswitch(t.c)
	if t.perr != nil {
		panic(t.perr)
	}
	return t.waker
}
