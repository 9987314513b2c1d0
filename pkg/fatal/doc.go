// Package fatal is the runtime half of impass: it collapses a fallible
// block into its success value or into process termination.
//
// The block form takes a closure returning (T, error):
//
//	cfg := fatal.Do(func() (Config, error) {
//		raw, err := os.ReadFile(path)
//		if err != nil {
//			return Config{}, err
//		}
//		return parse(raw)
//	}, fatal.WithReason("configuration must load"))
//
// On success Do yields the unwrapped value. On failure it writes a report
// to stderr -- the reason, the error's display text, and the full chain of
// underlying causes, outermost first -- and exits with status 1.
//
// Functions annotated with //impass:fatal are rewritten by cmd/impass into
// exactly this form, so the generated function form and the handwritten
// block form behave identically.
package fatal
