package stemplate

// Defaults for engine configuration.
const (
	// DefaultOpen is the default opening delimiter.
	DefaultOpen = "${"

	// DefaultClose is the default closing delimiter.
	DefaultClose = "}"

	// DefaultMaxDepth is the default recursion limit for nested expansion.
	DefaultMaxDepth = 16

	// IncludeExt is the extension include filenames must carry.
	IncludeExt = ".inc"
)

// EnvFunc looks up an environment variable. It mirrors os.LookupEnv: the
// boolean reports whether the variable is set at all, so a set-but-empty
// variable still resolves.
type EnvFunc func(key string) (string, bool)

// Option configures an Engine.
type Option func(*Engine)

// WithDelims sets the opening and closing delimiters. Delimiters may be any
// width but must be non-empty, distinct, and neither may contain the other.
//
// Default: "${" and "}"
//
// Example:
//
//	eng, _ := New(WithDelims("${{", "}}"))
//	result, _ := eng.Expand("${{name}}", vars)
func WithDelims(open, close string) Option {
	return func(e *Engine) {
		e.open = open
		e.close = close
	}
}

// WithMaxDepth sets the recursion limit for nested expansion. When the
// limit is reached, remaining placeholders are left in the output as
// literal text. A limit of 0 disables expansion entirely.
//
// Default: DefaultMaxDepth
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithEnvFunc sets the environment lookup consulted when a key is not in
// the variable map. Passing nil disables environment lookups.
//
// Default: os.LookupEnv
//
// Example:
//
//	eng, _ := New(WithEnvFunc(func(string) (string, bool) { return "", false }))
//	result, _ := eng.Expand("${HOME}", nil)
//	// result: "${HOME}" (environment ignored)
func WithEnvFunc(fn EnvFunc) Option {
	return func(e *Engine) {
		e.env = fn
	}
}

// WithLoader sets the loader that supplies ${!file.inc} include content.
//
// Default: none (include placeholders fail with ErrNoLoader)
//
// Example:
//
//	eng, _ := New(WithLoader(include.Dir("testdata")))
//	result, err := eng.Expand("${!header.inc}", vars)
func WithLoader(l Loader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithTrim controls whitespace trimming of substituted values. When
// enabled, resolved values are trimmed after expansion; literal ${=key}
// substitutions are never trimmed.
//
// Default: true
func WithTrim(enabled bool) Option {
	return func(e *Engine) {
		e.trim = enabled
	}
}
