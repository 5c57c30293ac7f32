// Package stemplate provides string templating with recursive variable
// substitution.
//
// Templates are plain text with ${key} placeholders. Each placeholder
// resolves through the variable map, then the process environment, then an
// inline default, and the resolved value is expanded again so variables can
// reference other variables. Anything that does not resolve stays in the
// output exactly as written, which makes expansion safe to run over text
// whose variables are only partially known.
//
// # Syntax
//
// Plain substitution, with an optional inline default:
//
//	${name}
//	${name:-stranger}
//	${name:=stranger}
//
// A leading modifier changes how the placeholder resolves:
//
//	${=key}          verbatim value, no recursion and no trimming
//	${#key}          next value of a multi-value key, one per occurrence
//	${*key}          fragment fan-out over multi-value keys
//	${?key:-text}    text if key resolves non-empty
//	${?key=want:-text}  text if key resolves to exactly want
//	${!file.inc}     splice an include file
//
// # Multi-value keys
//
// A key holds several values either by repeated Vars.Add calls or as a
// single "a|b|c" pipe list. ${#key} consumes them positionally: the first
// occurrence yields the first value, the next occurrence the second, and
// occurrences past the end yield nothing.
//
// ${*key} treats key's value as a template fragment and instantiates it
// once per index of the multi-value variables the fragment references:
//
//	vars := stemplate.NewVars().
//		Set("pets", "a ${dog} and a ${cat}").
//		Set("dog", "rex|fido").
//		Set("cat", "whiskers|tom")
//	out, _ := stemplate.Expand("${*pets}", vars)
//	// out: "a rex and a whiskers\na fido and a tom"
//
// Instances join with a newline; a non-letter rune after the star, as in
// ${*,pets}, joins with that rune instead.
//
// # Includes
//
// ${!file.inc} splices external content supplied by a Loader (see the
// include subpackage for directory, fs.FS, and caching loaders). Included
// content expands against the same variables as the surrounding text. A
// failed include is the one hard error in expansion; everything else
// degrades to literal text.
//
// # Example
//
//	eng, _ := stemplate.New()
//	out, _ := eng.Expand("Hello ${name:-World}!", nil)
//	// out: "Hello World!"
//
// Package-level Expand and ExpandEnv use a default engine; New with
// options configures delimiters, depth limit, environment lookup, include
// loading, and trimming.
//
// # Subpackages
//
//   - include: loaders for ${!file.inc} content
//   - varfile: variable maps from YAML, TOML, JSON, and dotenv files
package stemplate
