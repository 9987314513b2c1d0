package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/impass-go/impass/internal/rewrite"
)

// diagPrinter serializes diagnostics and rewritten output coming from
// concurrent workers.
type diagPrinter struct {
	mu     sync.Mutex
	errOut io.Writer
	stdOut io.Writer
	errTag func(a ...interface{}) string
	posTag func(a ...interface{}) string
}

func newDiagPrinter(mode string, stdOut io.Writer) *diagPrinter {
	enabled := false
	switch mode {
	case "on":
		enabled = true
	case "off":
	default: // auto
		enabled = term.IsTerminal(int(os.Stderr.Fd()))
	}

	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan)
	if !enabled {
		red.DisableColor()
		cyan.DisableColor()
	}

	return &diagPrinter{
		errOut: os.Stderr,
		stdOut: stdOut,
		errTag: red.Sprint,
		posTag: cyan.Sprint,
	}
}

func (p *diagPrinter) structural(serr *rewrite.StructuralError) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.errOut, "%s %s %s: %s\n",
		p.errTag("error:"), p.posTag(serr.Pos.String()+":"), serr.Code, serr.Msg)
}

func (p *diagPrinter) errorf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.errOut, "%s %s\n", p.errTag("error:"), fmt.Sprintf(format, args...))
}

func (p *diagPrinter) emit(out []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.stdOut.Write(out)
	return err
}

func (p *diagPrinter) listf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.stdOut, format, args...)
}
