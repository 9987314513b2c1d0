package outcome

import "reflect"

// MaxChainDepth bounds the cause-chain walk. A chain longer than this is
// assumed to be malformed (cyclic) and the walk truncates instead of
// looping indefinitely.
const MaxChainDepth = 64

// TruncationMarker closes a cause list that hit MaxChainDepth.
const TruncationMarker = "... (cause chain truncated)"

func IsNil(err error) bool {
	if err == nil || (reflect.ValueOf(err).Kind() == reflect.Ptr && reflect.ValueOf(err).IsNil()) {
		return true
	}
	return false
}

// Cause returns the direct underlying cause of err, or nil when err wraps
// nothing. Joined errors contribute their first branch only: the chain
// contract is zero-or-one cause per link.
func Cause(err error) error {
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		return e.Unwrap()
	case interface{ Unwrap() []error }:
		causes := e.Unwrap()
		if len(causes) == 0 {
			return nil
		}
		return causes[0]
	}
	return nil
}

// Causes returns the display text of err followed by the display text of
// every underlying cause, ordered outermost to innermost. The walk stops at
// MaxChainDepth and appends TruncationMarker when the chain is longer.
func Causes(err error) []string {
	if IsNil(err) {
		return []string{}
	}

	msgs := make([]string, 0, 4)
	for depth := 0; !IsNil(err); depth++ {
		if depth == MaxChainDepth {
			msgs = append(msgs, TruncationMarker)
			break
		}
		msgs = append(msgs, err.Error())
		err = Cause(err)
	}
	return msgs
}
