package fatal

import "io"

// Option configures the Reporter used when an outcome fails.
type Option func(*Reporter)

// WithReason attaches the directive's human-readable reason. It is printed
// as the first line of the report, before the error's own display text.
func WithReason(reason string) Option {
	return func(r *Reporter) {
		r.reason = reason
	}
}

// WithOutput redirects the diagnostic stream. The default is stderr.
func WithOutput(w io.Writer) Option {
	return func(r *Reporter) {
		r.out = w
	}
}

// WithExit replaces the process-termination call. The replacement is
// expected not to return; this seam exists for tests only.
func WithExit(exit func(code int)) Option {
	return func(r *Reporter) {
		r.exit = exit
	}
}
