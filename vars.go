package stemplate

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Vars holds the variables a template is expanded against. It is an ordered
// multimap: keys iterate in insertion order, and a key may carry several
// values. Value order drives the positional modifiers, so ${#key} consumes
// values in the order they were added and ${*key} instantiates fragments in
// that same order.
//
// A nil *Vars is safe for lookups (every lookup misses); call NewVars before
// adding values.
type Vars struct {
	om *orderedmap.OrderedMap[string, []string]
}

// NewVars creates an empty variable map.
func NewVars() *Vars {
	return &Vars{om: orderedmap.New[string, []string]()}
}

// VarsFromMap builds a variable map from a plain map. Plain maps have no
// order, so keys are inserted sorted to keep results deterministic.
func VarsFromMap(m map[string]string) *Vars {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	v := NewVars()
	for _, k := range keys {
		v.Set(k, m[k])
	}
	return v
}

// Set replaces the values of key. A key that already exists keeps its
// position in the iteration order. Returns v for chaining.
func (v *Vars) Set(key string, values ...string) *Vars {
	v.om.Set(key, append([]string(nil), values...))
	return v
}

// Add appends values to key, creating the key if it is absent.
// Returns v for chaining.
func (v *Vars) Add(key string, values ...string) *Vars {
	existing, _ := v.om.Get(key)
	combined := make([]string, 0, len(existing)+len(values))
	combined = append(combined, existing...)
	combined = append(combined, values...)
	v.om.Set(key, combined)
	return v
}

// Get returns the first value of key.
func (v *Vars) Get(key string) (string, bool) {
	if v == nil || v.om == nil {
		return "", false
	}
	values, ok := v.om.Get(key)
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Values returns a copy of all values of key, in the order they were added.
func (v *Vars) Values(key string) []string {
	if v == nil || v.om == nil {
		return nil
	}
	values, ok := v.om.Get(key)
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// Has reports whether key is present with at least one value.
func (v *Vars) Has(key string) bool {
	if v == nil || v.om == nil {
		return false
	}
	values, ok := v.om.Get(key)
	return ok && len(values) > 0
}

// Del removes key and its values.
func (v *Vars) Del(key string) {
	if v == nil || v.om == nil {
		return
	}
	v.om.Delete(key)
}

// Len returns the number of keys.
func (v *Vars) Len() int {
	if v == nil || v.om == nil {
		return 0
	}
	return v.om.Len()
}

// Keys returns all keys in insertion order.
func (v *Vars) Keys() []string {
	if v == nil || v.om == nil {
		return nil
	}
	keys := make([]string, 0, v.om.Len())
	for pair := v.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns an independent copy of v. Cloning a nil Vars yields a new
// empty map.
func (v *Vars) Clone() *Vars {
	c := NewVars()
	if v == nil || v.om == nil {
		return c
	}
	for pair := v.om.Oldest(); pair != nil; pair = pair.Next() {
		c.om.Set(pair.Key, append([]string(nil), pair.Value...))
	}
	return c
}
