package stemplate

import (
	"fmt"
	"os"
	"strings"
)

// Engine expands templates. An Engine is immutable after New and safe for
// concurrent use; expansion state lives on the stack of each Expand call.
type Engine struct {
	open     string
	close    string
	maxDepth int
	env      EnvFunc
	loader   Loader
	trim     bool
}

// Loader supplies the content of ${!file.inc} includes. The engine
// enforces the .inc extension before calling Load, so a loader only ever
// sees include names; it is responsible for the I/O and nothing else.
type Loader interface {
	Load(name string) (string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (string, error)

// Load calls f(name).
func (f LoaderFunc) Load(name string) (string, error) {
	return f(name)
}

// New creates an Engine with the given options. It returns an error
// wrapping ErrConfig when the delimiters are unusable or the depth limit
// is negative.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		open:     DefaultOpen,
		close:    DefaultClose,
		maxDepth: DefaultMaxDepth,
		env:      os.LookupEnv,
		trim:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// validate rejects configurations the scanner cannot handle. Delimiters
// that are empty, identical, or contained in one another make spans
// ambiguous.
func (e *Engine) validate() error {
	switch {
	case e.open == "":
		return fmt.Errorf("%w: open delimiter is empty", ErrConfig)
	case e.close == "":
		return fmt.Errorf("%w: close delimiter is empty", ErrConfig)
	case e.open == e.close:
		return fmt.Errorf("%w: delimiters are identical", ErrConfig)
	case strings.Contains(e.open, e.close) || strings.Contains(e.close, e.open):
		return fmt.Errorf("%w: delimiters %q and %q overlap", ErrConfig, e.open, e.close)
	case e.maxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrConfig, e.maxDepth)
	}
	return nil
}

// Expand substitutes every placeholder in template, resolving keys through
// the variable map, then the environment, then per-placeholder defaults.
// Resolved values are themselves expanded, up to the engine's depth limit.
//
// Expansion cannot fail on bad references: unresolved and malformed
// placeholders pass through as literal text, so templates round-trip when
// variables are absent. The error is non-nil only when an include cannot
// be loaded, and is then an *IncludeError.
func (e *Engine) Expand(template string, vars *Vars) (string, error) {
	return e.expand(template, vars, 0)
}

// ExpandEnv substitutes placeholders from the environment and
// per-placeholder defaults alone, with no variable map.
func (e *Engine) ExpandEnv(template string) (string, error) {
	return e.expand(template, nil, 0)
}

// defaultEngine mirrors New() with no options, which cannot fail.
var defaultEngine = &Engine{
	open:     DefaultOpen,
	close:    DefaultClose,
	maxDepth: DefaultMaxDepth,
	env:      os.LookupEnv,
	trim:     true,
}

// Expand renders template with the default engine. See Engine.Expand.
func Expand(template string, vars *Vars) (string, error) {
	return defaultEngine.Expand(template, vars)
}

// ExpandEnv renders template from the environment with the default engine.
// See Engine.ExpandEnv.
func ExpandEnv(template string) (string, error) {
	return defaultEngine.ExpandEnv(template)
}
