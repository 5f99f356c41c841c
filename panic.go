package geniter

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/sourcegraph/conc/panics"
)

// panicError is a panic recovered from a producer body, re-raised on the
// goroutine that polled the producer.
type panicError struct {
	rec *panics.Recovered
}

func newPanicError(r *panics.Recovered) error {
	return &panicError{rec: r}
}

func (p *panicError) Error() string {
	return fmt.Sprint(p.rec.Value)
}

func (p *panicError) Unwrap() error {
	err, _ := p.rec.Value.(error)
	return err
}

// origin names the function that raised the panic, skipping the runtime
// and the recovery machinery.
func (p *panicError) origin() string {
	frames := runtime.CallersFrames(p.rec.Callers)
	for {
		f, more := frames.Next()
		if f.Function != "" &&
			!strings.HasPrefix(f.Function, "runtime.") &&
			!strings.HasPrefix(f.Function, "github.com/sourcegraph/conc/") {
			return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
		}
		if !more {
			return "unknown"
		}
	}
}

// DebugString describes the panic one producer at a time. A panic that
// escaped a producer nested inside another producer is wrapped once per
// level, level 0 being the outermost, and each level carries the stack
// of the goroutine it was recovered on.
func (p *panicError) DebugString() string {
	var sb strings.Builder
	seen := make(map[error]bool)
	level := 0

	for err := error(p); err != nil && !seen[err]; err = errors.Unwrap(err) {
		seen[err] = true

		pe, ok := err.(*panicError)
		if !ok {
			fmt.Fprintf(&sb, "caused by: %v\n", err)
			continue
		}
		fmt.Fprintf(&sb, "producer %d panicked at %s: %v\n\n%s\n", level, pe.origin(), pe.rec.Value, pe.rec.Stack)
		level++
	}
	return sb.String()
}
