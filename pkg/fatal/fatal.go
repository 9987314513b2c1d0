package fatal

import (
	"github.com/impass-go/impass/pkg/outcome"
)

// Do evaluates block on the calling goroutine and unwraps its outcome.
// On success the unwrapped value is returned; on failure the Reporter
// composes a diagnostic report and terminates the process. There is no
// other control path: no retry, no recovery.
//
// Do introduces no concurrency of its own; whatever blocking the wrapped
// statements perform is untouched.
func Do[T any](block func() (T, error), opts ...Option) T {
	return Unwrap[T](outcome.From(block()), opts...)
}

// Check is Do for blocks that produce no value.
func Check(block func() error, opts ...Option) {
	Do(func() (struct{}, error) {
		return struct{}{}, block()
	}, opts...)
}

// Unwrap is the terminal step shared by both forms: it collapses an
// already-evaluated outcome into its success value or into a fatal report.
// Any WithError implementation will do; Result[T] is the usual one.
func Unwrap[T any](r outcome.WithError[T], opts ...Option) T {
	if r.IsSuccess() {
		return r.Result()
	}

	NewReporter(opts...).Report(r.Err())

	// Reachable only when a test seam replaced the exit function with one
	// that returns.
	var zero T
	return zero
}
