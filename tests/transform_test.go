package tests

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impass-go/impass/internal/rewrite"
	"github.com/impass-go/impass/pkg/fatal"
)

// TestGenerateThenRun walks the whole path a user takes: an annotated
// source file goes through the transformation, and the runtime behavior of
// the emitted form is exercised through the same fatal.Do call the
// generated code makes.
func TestGenerateThenRun(t *testing.T) {
	src := `package app

import "strconv"

// loadPort reads the listen port from its textual form.
//impass:fatal reason="listen port must be valid"
func loadPort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return port, nil
}
`

	out, changed, errs := rewrite.Source("app.go", []byte(src))
	require.Empty(t, errs)
	require.True(t, changed)

	// The emitted file parses and declares loadPort(raw string) int.
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "app.go", out, parser.ParseComments)
	require.NoError(t, err)
	require.NotNil(t, file)

	text := string(out)
	assert.Contains(t, text, "func loadPort(raw string) int {")
	assert.Contains(t, text, "fatal.Do(func() (int, error) {")
	assert.Contains(t, text, `fatal.WithReason("listen port must be valid")`)
	assert.Contains(t, text, rewrite.RuntimeImport)
	assert.NotContains(t, text, "//impass:fatal")
	assert.Contains(t, text, "// loadPort reads the listen port from its textual form.")

	// Run time, success: the wrapped statements behave exactly as written.
	var buf bytes.Buffer
	exitCode := -1
	seams := []fatal.Option{
		fatal.WithReason("listen port must be valid"),
		fatal.WithOutput(&buf),
		fatal.WithExit(func(code int) { exitCode = code }),
	}

	loadPort := func(raw string) int {
		return fatal.Do(func() (int, error) {
			port, err := parsePort(raw)
			if err != nil {
				return 0, err
			}
			return port, nil
		}, seams...)
	}

	assert.Equal(t, 8080, loadPort("8080"))
	assert.Equal(t, -1, exitCode, "success must not terminate")
	assert.Zero(t, buf.Len(), "success must print nothing")

	// Run time, failure: report and non-zero exit.
	loadPort("http")
	assert.Equal(t, 1, exitCode)
	report := buf.String()
	assert.True(t, strings.HasPrefix(report, "fatal: listen port must be valid\n"),
		"reason must prefix the report, got %q", report)
	assert.Contains(t, report, "invalid port")
}

func parsePort(raw string) (int, error) {
	switch raw {
	case "8080":
		return 8080, nil
	default:
		return 0, fmt.Errorf("invalid port %q: %w", raw, errors.New("not a number"))
	}
}

// TestRejectionsHappenBeforeExecution pins the build-time / run-time split:
// a structurally bad fragment is refused by the transformation, so no
// process can ever reach its failure path.
func TestRejectionsHappenBeforeExecution(t *testing.T) {
	cases := map[string]struct {
		src  string
		code rewrite.Code
	}{
		"two directives": {
			src: `package app

//impass:fatal reason="one"
func f() (int, error) {
	//impass:fatal reason="two"
	return 1, nil
}
`,
			code: rewrite.CodeAmbiguousDirective,
		},
		"not outcome shaped": {
			src: `package app

//impass:fatal
func f() string { return "" }
`,
			code: rewrite.CodeNotOutcome,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out, changed, errs := rewrite.Source("app.go", []byte(tc.src))
			assert.False(t, changed)
			assert.Equal(t, tc.src, string(out), "rejected source must come back untouched")
			require.Len(t, errs, 1)
			assert.Equal(t, tc.code, errs[0].Code)
		})
	}
}
