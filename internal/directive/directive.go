package directive

import (
	"errors"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// Marker is the comment form recognized on fragments. It follows the
// convention of machine directives like //go:generate: no space after the
// comment slashes, optionally followed by a quoted reason:
//
//	//impass:fatal
//	//impass:fatal reason="primary datastore must open"
const Marker = "//impass:fatal"

var (
	// ErrAmbiguous means more than one marker was found on one fragment.
	ErrAmbiguous = errors.New("ambiguous directive: fragment carries more than one fatal marker")

	// ErrBadReason means the marker's reason argument could not be parsed.
	ErrBadReason = errors.New(`malformed directive: reason must be a quoted string, reason="..."`)
)

// Directive is the optional, at-most-once annotation attached to a fragment
// before transformation. The zero value means no directive is present.
type Directive struct {
	Present bool
	Reason  string
	Pos     token.Pos
}

// IsMarker reports whether a single comment line carries the fatal marker.
func IsMarker(c *ast.Comment) bool {
	if !strings.HasPrefix(c.Text, Marker) {
		return false
	}
	rest := c.Text[len(Marker):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

func parseReason(c *ast.Comment) (string, error) {
	rest := strings.TrimSpace(c.Text[len(Marker):])
	if rest == "" {
		return "", nil
	}
	val, ok := strings.CutPrefix(rest, "reason=")
	if !ok {
		return "", ErrBadReason
	}
	reason, err := strconv.Unquote(strings.TrimSpace(val))
	if err != nil {
		return "", ErrBadReason
	}
	return reason, nil
}
