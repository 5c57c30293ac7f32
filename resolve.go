package stemplate

import "strings"

// source is one step of the lookup chain. Sources are tried in order and
// the first hit wins.
type source interface {
	lookup(key string) (string, bool)
}

// mapSource resolves keys against the variable map. With skipEmpty set, a
// present-but-empty value misses so the chain falls through to the
// environment or the default ("unset or empty" semantics, which apply
// whenever the placeholder carries a default).
type mapSource struct {
	vars      *Vars
	skipEmpty bool
}

func (s mapSource) lookup(key string) (string, bool) {
	v, ok := s.vars.Get(key)
	if !ok {
		return "", false
	}
	if v == "" && s.skipEmpty {
		return "", false
	}
	return v, true
}

// envSource resolves keys against the process environment. A set-but-empty
// variable still hits.
type envSource struct {
	fn EnvFunc
}

func (s envSource) lookup(key string) (string, bool) {
	return s.fn(key)
}

// defaultSource terminates the chain with the placeholder's default text.
type defaultSource struct {
	text string
}

func (s defaultSource) lookup(string) (string, bool) {
	return s.text, true
}

// resolve runs key through the map -> environment -> default chain.
func (e *Engine) resolve(key, def string, hasDef bool, vars *Vars) (string, bool) {
	chain := make([]source, 0, 3)
	chain = append(chain, mapSource{vars: vars, skipEmpty: hasDef})
	if e.env != nil {
		chain = append(chain, envSource{fn: e.env})
	}
	if hasDef {
		chain = append(chain, defaultSource{text: def})
	}

	for _, s := range chain {
		if v, ok := s.lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// resolveMulti returns the ordered value list of a multi-value key. A key
// holding a single value splits on '|', so "a|b|c" and three Add calls are
// equivalent. Only the variable map is consulted: positional modifiers
// have no environment or default fallback.
func resolveMulti(key string, vars *Vars) ([]string, bool) {
	values := vars.Values(key)
	if len(values) == 0 {
		return nil, false
	}
	if len(values) == 1 && strings.Contains(values[0], "|") {
		return strings.Split(values[0], "|"), true
	}
	return values, true
}
