package stemplate

import (
	"reflect"
	"testing"
)

func TestVars_SetGet(t *testing.T) {
	v := NewVars().Set("name", "Alice")

	got, ok := v.Get("name")
	if !ok || got != "Alice" {
		t.Errorf("Get(name) = (%q, %v), want (%q, true)", got, ok, "Alice")
	}

	if _, ok := v.Get("missing"); ok {
		t.Error("Get(missing) should report absent")
	}

	v.Set("name", "Bob")
	got, _ = v.Get("name")
	if got != "Bob" {
		t.Errorf("Get(name) after Set = %q, want %q", got, "Bob")
	}
	if v.Len() != 1 {
		t.Errorf("Len() = %d, want 1", v.Len())
	}
}

func TestVars_AddValues(t *testing.T) {
	v := NewVars().
		Add("host", "db1").
		Add("host", "db2", "db3")

	want := []string{"db1", "db2", "db3"}
	if got := v.Values("host"); !reflect.DeepEqual(got, want) {
		t.Errorf("Values(host) = %v, want %v", got, want)
	}

	// Get returns the first value of a multi-value key.
	if got, _ := v.Get("host"); got != "db1" {
		t.Errorf("Get(host) = %q, want %q", got, "db1")
	}

	// Set collapses the list again.
	v.Set("host", "solo")
	if got := v.Values("host"); !reflect.DeepEqual(got, []string{"solo"}) {
		t.Errorf("Values(host) after Set = %v, want [solo]", got)
	}
}

func TestVars_KeysOrder(t *testing.T) {
	v := NewVars().
		Set("zebra", "1").
		Set("apple", "2").
		Set("mango", "3")

	want := []string{"zebra", "apple", "mango"}
	if got := v.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	// Resetting an existing key keeps its position.
	v.Set("zebra", "9")
	if got := v.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after re-Set = %v, want %v", got, want)
	}

	v.Del("apple")
	want = []string{"zebra", "mango"}
	if got := v.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after Del = %v, want %v", got, want)
	}
}

func TestVars_Has(t *testing.T) {
	v := NewVars().Set("present", "x").Set("empty", "")

	if !v.Has("present") {
		t.Error("Has(present) = false, want true")
	}
	if !v.Has("empty") {
		t.Error("Has(empty) = false, want true")
	}
	if v.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

func TestVars_Clone(t *testing.T) {
	orig := NewVars().
		Set("a", "1").
		Add("list", "x", "y")

	clone := orig.Clone()
	clone.Set("a", "changed")
	clone.Add("list", "z")
	clone.Set("new", "value")

	if got, _ := orig.Get("a"); got != "1" {
		t.Errorf("original mutated: Get(a) = %q, want %q", got, "1")
	}
	if got := orig.Values("list"); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("original mutated: Values(list) = %v, want [x y]", got)
	}
	if orig.Has("new") {
		t.Error("original mutated: gained key from clone")
	}
	if got, _ := clone.Get("a"); got != "changed" {
		t.Errorf("clone Get(a) = %q, want %q", got, "changed")
	}
}

func TestVarsFromMap(t *testing.T) {
	v := VarsFromMap(map[string]string{
		"zebra": "1",
		"apple": "2",
	})

	want := []string{"apple", "zebra"}
	if got := v.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v (sorted)", got, want)
	}
	if got, _ := v.Get("apple"); got != "2" {
		t.Errorf("Get(apple) = %q, want %q", got, "2")
	}
}

func TestVars_NilSafe(t *testing.T) {
	var v *Vars

	if _, ok := v.Get("k"); ok {
		t.Error("nil Get should miss")
	}
	if vals := v.Values("k"); vals != nil {
		t.Errorf("nil Values = %v, want nil", vals)
	}
	if v.Has("k") {
		t.Error("nil Has should be false")
	}
	if v.Len() != 0 {
		t.Errorf("nil Len = %d, want 0", v.Len())
	}
	if keys := v.Keys(); keys != nil {
		t.Errorf("nil Keys = %v, want nil", keys)
	}
	v.Del("k") // must not panic

	c := v.Clone()
	if c == nil || c.Len() != 0 {
		t.Errorf("nil Clone = %v, want empty Vars", c)
	}
}
