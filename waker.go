package geniter

//go:generate mockgen -destination=./mocks/mock_geniter.go -package=mocks github.com/webriots/geniter Waker,Future

// Waker is the resumption handle handed to a suspension point when it
// is polled. Waking signals whoever polled last that polling again may
// make progress.
type Waker interface {
	Wake()
}

// NullWaker is a Waker whose Wake does nothing. It is only correct for
// a driver that re-polls unconditionally after every poll, which is
// what Iterator does.
type NullWaker struct{}

// Wake implements Waker.
func (NullWaker) Wake() {}

// Null is the shared NullWaker. All NullWaker values are
// interchangeable.
var Null Waker = NullWaker{}

// WakerFunc adapts a plain function to the Waker interface.
type WakerFunc func()

// Wake implements Waker by calling f.
func (f WakerFunc) Wake() { f() }

// Status is the result of a single poll.
type Status bool

const (
	// Pending means the polled operation is suspended and must be
	// polled again.
	Pending Status = false
	// Ready means the polled operation has completed.
	Ready Status = true
)

func (s Status) String() string {
	if s {
		return "ready"
	}
	return "pending"
}

// Future is a suspendable computation driven by repeated calls to
// Poll. A non-nil error means the computation has permanently finished
// with a failure, and is reported together with Ready.
type Future interface {
	Poll(w Waker) (Status, error)
}

// Stopper is implemented by futures that hold resources which must be
// released when they are abandoned before reporting Ready.
type Stopper interface {
	Stop()
}
