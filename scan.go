package stemplate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// modifier selects the expansion strategy for a placeholder.
type modifier int

const (
	// modPlain substitutes the resolved value and recursively expands it.
	modPlain modifier = iota

	// modLiteral ('=') substitutes the resolved value verbatim.
	modLiteral

	// modFanout ('*') instantiates a fragment once per multi-value index.
	modFanout

	// modInclude ('!') splices the content of an external include file.
	modInclude

	// modCond ('?') substitutes the default text when a test passes.
	modCond

	// modSeq ('#') consumes one value of a multi-value key per occurrence.
	modSeq
)

// placeholder is a single parsed ${...} span.
type placeholder struct {
	mod    modifier
	key    string // trimmed lookup key; empty means malformed
	def    string // default text following ":-" or ":="
	hasDef bool
	joiner string // separator between fan-out instances
	raw    string // the span verbatim, delimiters included
}

// next scans src from offset from and locates the next placeholder. It
// returns the literal text before the span, the parsed placeholder, and
// the offset to resume scanning at. A nil placeholder means the rest of
// src is literal: either no opening delimiter remains, or one is never
// closed and passes through as text.
//
// Scanning does not nest. The first closing delimiter after an opening
// one terminates the span, so "${a${b}" parses as a span with body "a${b"
// (malformed, emitted raw) rather than a nested placeholder.
func (e *Engine) next(src string, from int) (lit string, ph *placeholder, cont int) {
	rel := strings.Index(src[from:], e.open)
	if rel < 0 {
		return src[from:], nil, len(src)
	}
	start := from + rel
	bodyStart := start + len(e.open)

	end := strings.Index(src[bodyStart:], e.close)
	if end < 0 {
		return src[from:], nil, len(src)
	}
	bodyEnd := bodyStart + end

	cont = bodyEnd + len(e.close)
	ph = parseBody(src[bodyStart:bodyEnd])
	ph.raw = src[start:cont]
	return src[from:start], ph, cont
}

// parseBody splits a placeholder body into modifier, key, and default.
// Bodies that reduce to an empty key come back with key == "" and are
// emitted raw by the caller.
func parseBody(body string) *placeholder {
	ph := &placeholder{joiner: "\n"}

	rest := body
	if rest != "" {
		switch rest[0] {
		case '=':
			ph.mod, rest = modLiteral, rest[1:]
		case '*':
			ph.mod, rest = modFanout, rest[1:]
			// A non-letter rune right after '*' overrides the joiner,
			// as in ${*,key} or ${*;key}.
			if r, size := utf8.DecodeRuneInString(rest); size > 0 && !unicode.IsLetter(r) {
				ph.joiner, rest = rest[:size], rest[size:]
			}
		case '!':
			ph.mod, rest = modInclude, rest[1:]
		case '?':
			ph.mod, rest = modCond, rest[1:]
		case '#':
			ph.mod, rest = modSeq, rest[1:]
		}
	}

	if ph.mod == modInclude {
		// Include bodies are a bare filename; a ":-" there is part of it.
		ph.key = strings.TrimSpace(rest)
		return ph
	}

	if at, sep := defaultMarker(rest); at >= 0 {
		ph.key = strings.TrimSpace(rest[:at])
		ph.def = rest[at+len(sep):]
		ph.hasDef = true
	} else {
		ph.key = strings.TrimSpace(rest)
	}
	return ph
}

// defaultMarker finds the first default separator in body. Both ":-" and
// ":=" are accepted; whichever occurs first wins, and later occurrences
// belong to the default text.
func defaultMarker(body string) (int, string) {
	dash := strings.Index(body, ":-")
	eq := strings.Index(body, ":=")
	switch {
	case dash < 0 && eq < 0:
		return -1, ""
	case eq < 0 || (dash >= 0 && dash < eq):
		return dash, ":-"
	default:
		return eq, ":="
	}
}
