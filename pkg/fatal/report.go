package fatal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/impass-go/impass/pkg/outcome"
)

// DefaultReason heads the report when no directive was supplied.
const DefaultReason = "an unrecoverable error occurred"

// Reporter composes the diagnostic report for a failed outcome and
// terminates the process. It is the sole path by which a failure is
// resolved; Report never returns under the default exit function.
type Reporter struct {
	reason string
	out    io.Writer
	exit   func(code int)
}

func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		out:  os.Stderr,
		exit: os.Exit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the composed report for err to the diagnostic stream and
// exits with a non-zero status. A single status code is used for every
// error kind.
func (r *Reporter) Report(err error) {
	fmt.Fprint(r.out, Compose(r.reason, err))
	r.exit(1)
}

// Compose renders the report text: the reason (or DefaultReason) on the
// first line, then the error's display text and each successive underlying
// cause, outermost to innermost. A chain of n causes yields n+1 listed
// messages.
func Compose(reason string, err error) string {
	if reason == "" {
		reason = DefaultReason
	}
	msgs := outcome.Causes(err)

	var b strings.Builder
	fmt.Fprintf(&b, "fatal: %s\n", reason)
	if len(msgs) > 0 {
		b.WriteString("\nCaused by:\n")
		for i, m := range msgs {
			fmt.Fprintf(&b, "    %d: %s\n", i, m)
		}
	}
	return b.String()
}
