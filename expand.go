package stemplate

import (
	"log/slog"
	"strings"
)

// expand runs the scan/resolve/substitute loop over one buffer. Resolved
// values re-enter expand one level deeper, and each level owns its own
// cursor map so positional ${#key} consumption is scoped to the buffer the
// placeholders appear in.
func (e *Engine) expand(src string, vars *Vars, depth int) (string, error) {
	if depth >= e.maxDepth {
		if strings.Contains(src, e.open) {
			slog.Debug("stemplate: expansion depth limit reached, leaving text literal", "max", e.maxDepth)
		}
		return src, nil
	}
	if !strings.Contains(src, e.open) {
		return src, nil
	}

	cursors := make(map[string]int)

	var out strings.Builder
	out.Grow(len(src))

	pos := 0
	for pos < len(src) {
		lit, ph, cont := e.next(src, pos)
		out.WriteString(lit)
		pos = cont
		if ph == nil {
			break
		}
		if ph.key == "" {
			// Malformed placeholder, pass the span through untouched.
			out.WriteString(ph.raw)
			continue
		}

		sub, err := e.substitute(ph, vars, depth, cursors)
		if err != nil {
			return "", err
		}
		out.WriteString(sub)
	}
	return out.String(), nil
}

// substitute produces the replacement text for one placeholder. Unresolved
// placeholders come back as their raw span so the text round-trips; only
// include failures return an error.
func (e *Engine) substitute(ph *placeholder, vars *Vars, depth int, cursors map[string]int) (string, error) {
	switch ph.mod {
	case modLiteral:
		v, ok := e.resolve(ph.key, ph.def, ph.hasDef, vars)
		if !ok {
			return ph.raw, nil
		}
		// Verbatim: no recursion, no trimming.
		return v, nil

	case modSeq:
		values, ok := resolveMulti(ph.key, vars)
		if !ok {
			return ph.raw, nil
		}
		i := cursors[ph.key]
		cursors[ph.key]++
		if i >= len(values) {
			// List exhausted.
			return "", nil
		}
		return values[i], nil

	case modCond:
		return e.conditional(ph, vars, depth)

	case modFanout:
		return e.fanout(ph, vars, depth)

	case modInclude:
		return e.include(ph, vars, depth)

	default:
		v, ok := e.resolve(ph.key, ph.def, ph.hasDef, vars)
		if !ok {
			return ph.raw, nil
		}
		expanded, err := e.expand(v, vars, depth+1)
		if err != nil {
			return "", err
		}
		return e.trimmed(expanded), nil
	}
}

// conditional handles ${?key:-text} and ${?key=want:-text}. The existence
// form passes when key resolves to a non-empty value; the equality form
// passes when the value is exactly want. On a pass the default text is
// substituted and expands like any other value; on a fail the placeholder
// produces nothing.
func (e *Engine) conditional(ph *placeholder, vars *Vars, depth int) (string, error) {
	key, want, isEq := strings.Cut(ph.key, "=")
	key = strings.TrimSpace(key)

	v, ok := vars.Get(key)
	if (!ok || v == "") && e.env != nil {
		if ev, envOK := e.env(key); envOK {
			v, ok = ev, true
		}
	}

	matched := ok && v != ""
	if isEq {
		matched = ok && v == want
	}
	if !matched || !ph.hasDef {
		return "", nil
	}

	expanded, err := e.expand(ph.def, vars, depth+1)
	if err != nil {
		return "", err
	}
	return e.trimmed(expanded), nil
}

// include loads and splices a ${!file.inc} placeholder. The extension is
// enforced here so loaders only ever see include names, and the spliced
// content expands against the same variables as the surrounding text.
func (e *Engine) include(ph *placeholder, vars *Vars, depth int) (string, error) {
	if !strings.HasSuffix(ph.key, IncludeExt) {
		return "", &IncludeError{Name: ph.key, Err: ErrExtension}
	}
	if e.loader == nil {
		return "", &IncludeError{Name: ph.key, Err: ErrNoLoader}
	}

	content, err := e.loader.Load(ph.key)
	if err != nil {
		return "", &IncludeError{Name: ph.key, Err: err}
	}

	expanded, err := e.expand(content, vars, depth+1)
	if err != nil {
		return "", err
	}
	// Include files usually end in a newline; splice them clean.
	return strings.TrimSpace(expanded), nil
}

// fanout handles ${*key}. The key's value is a template fragment, and the
// fragment is instantiated once per index of the multi-value variables it
// references, each instance seeing the single value at its index. The
// instance count is the shortest referenced list, so uneven lists never
// run past their end. Instances join with the placeholder's joiner, a
// newline unless overridden as in ${*,key}.
//
// A fragment referencing no multi-value variables expands once, unchanged.
func (e *Engine) fanout(ph *placeholder, vars *Vars, depth int) (string, error) {
	frag, ok := vars.Get(ph.key)
	if !ok {
		return ph.raw, nil
	}

	type binding struct {
		key    string
		values []string
	}
	var bindings []binding
	count := -1
	for _, k := range vars.Keys() {
		if !strings.Contains(frag, e.open+k+e.close) {
			continue
		}
		values, _ := resolveMulti(k, vars)
		if len(values) < 2 {
			continue
		}
		bindings = append(bindings, binding{key: k, values: values})
		if count < 0 || len(values) < count {
			count = len(values)
		}
	}

	if len(bindings) == 0 {
		expanded, err := e.expand(frag, vars, depth+1)
		if err != nil {
			return "", err
		}
		return e.trimmed(expanded), nil
	}

	scoped := vars.Clone()
	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		for _, b := range bindings {
			scoped.Set(b.key, strings.TrimSpace(b.values[i]))
		}
		expanded, err := e.expand(frag, scoped, depth+1)
		if err != nil {
			return "", err
		}
		parts = append(parts, e.trimmed(expanded))
	}
	return strings.Join(parts, ph.joiner), nil
}

// trimmed applies the engine's trim policy to a substituted value.
func (e *Engine) trimmed(s string) string {
	if !e.trim {
		return s
	}
	return strings.TrimSpace(s)
}
