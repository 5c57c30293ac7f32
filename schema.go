package stemplate

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parse extracts the variable keys referenced in template, deduplicated, in
// encounter order. Include placeholders name files rather than variables
// and are omitted. Only the top-level text is scanned: keys that appear
// inside resolved values or include files are not visible until expansion.
func (e *Engine) Parse(template string) []string {
	seen := make(map[string]bool)
	var keys []string

	pos := 0
	for pos < len(template) {
		_, ph, cont := e.next(template, pos)
		pos = cont
		if ph == nil {
			break
		}
		key, ok := variableKey(ph)
		if !ok {
			continue
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Schema describes template's variables as a JSON Schema object: one string
// property per referenced key. Keys the template cannot resolve without the
// variable map are listed as required: every positional ${#key} or ${*key}
// reference, and any plain key with no default. The first default seen for
// a key becomes the property default. The result marshals directly, so a
// template's variable contract can be handed to tooling that validates or
// generates variable maps.
func (e *Engine) Schema(template string) *jsonschema.Schema {
	props := orderedmap.New[string, *jsonschema.Schema]()
	var order []string
	needed := make(map[string]bool)

	pos := 0
	for pos < len(template) {
		_, ph, cont := e.next(template, pos)
		pos = cont
		if ph == nil {
			break
		}
		key, ok := variableKey(ph)
		if !ok {
			continue
		}

		prop, exists := props.Get(key)
		if !exists {
			prop = &jsonschema.Schema{Type: "string"}
			props.Set(key, prop)
			order = append(order, key)
		}

		switch ph.mod {
		case modPlain, modLiteral:
			if ph.hasDef && prop.Default == nil {
				prop.Default = ph.def
			}
			if !ph.hasDef {
				needed[key] = true
			}
		case modSeq, modFanout:
			// Positional lookups have no environment or default fallback.
			needed[key] = true
		}
	}

	var required []string
	for _, key := range order {
		if needed[key] {
			required = append(required, key)
		}
	}

	return &jsonschema.Schema{
		Version:    jsonschema.Version,
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// variableKey reduces a placeholder to the variable it looks up. Malformed
// spans and includes carry no variable; conditionals look up the part
// before the equality test.
func variableKey(ph *placeholder) (string, bool) {
	if ph.key == "" || ph.mod == modInclude {
		return "", false
	}
	key := ph.key
	if ph.mod == modCond {
		key, _, _ = strings.Cut(key, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return "", false
		}
	}
	return key, true
}

// ValidateVars checks that every required variable is present. Returns an
// error wrapping ErrVariable naming the first missing key.
func ValidateVars(required []string, vars *Vars) error {
	for _, key := range required {
		if !vars.Has(key) {
			return fmt.Errorf("%w: %s", ErrVariable, key)
		}
	}
	return nil
}
