// Package varfile loads template variable maps from files.
//
// Variable files are flat mappings of variable names to scalars or lists.
// YAML and TOML documents keep their key order, so positional template
// modifiers see values in the order the file declares them; JSON objects
// are unordered and load with sorted keys.
package varfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/stemplate"
)

// FromFile loads variables from path, picking the format by extension:
// .yaml/.yml, .toml, .json, or .env.
func FromFile(path string) (*stemplate.Vars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variable file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".toml":
		return FromTOML(data)
	case ".json":
		return FromJSON(data)
	case ".env":
		return FromDotenv(data)
	default:
		return nil, fmt.Errorf("unsupported variable file extension %q", ext)
	}
}

// FromYAML parses a YAML mapping of variable names to scalars or sequences.
// Document order is preserved, and sequence items become the successive
// values of one key.
func FromYAML(data []byte) (*stemplate.Vars, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	vars := stemplate.NewVars()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document.
		return vars, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("variable document must be a mapping, got %s", kindName(root.Kind))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		key := keyNode.Value

		switch valNode.Kind {
		case yaml.ScalarNode:
			vars.Set(key, valNode.Value)
		case yaml.SequenceNode:
			for _, item := range valNode.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("variable %q: sequence items must be scalars", key)
				}
				vars.Add(key, item.Value)
			}
		default:
			return nil, fmt.Errorf("variable %q: value must be a scalar or a sequence, got %s", key, kindName(valNode.Kind))
		}
	}
	return vars, nil
}

// FromTOML parses a TOML document of string, number, boolean, datetime, or
// array values. Document order is preserved. Tables are rejected: variable
// maps are flat.
func FromTOML(data []byte) (*stemplate.Vars, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	vars := stemplate.NewVars()
	for _, key := range md.Keys() {
		if len(key) != 1 {
			return nil, fmt.Errorf("variable %q: tables are not supported", key)
		}
		name := key[0]

		switch val := raw[name].(type) {
		case map[string]any:
			return nil, fmt.Errorf("variable %q: tables are not supported", name)
		case []any:
			for _, item := range val {
				s, err := scalar(item)
				if err != nil {
					return nil, fmt.Errorf("variable %q: %w", name, err)
				}
				vars.Add(name, s)
			}
		default:
			s, err := scalar(val)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", name, err)
			}
			vars.Set(name, s)
		}
	}
	return vars, nil
}

// FromJSON parses a JSON object of string, number, boolean, or array
// values. JSON objects carry no order, so keys load sorted.
func FromJSON(data []byte) (*stemplate.Vars, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := stemplate.NewVars()
	for _, name := range names {
		switch val := raw[name].(type) {
		case map[string]any:
			return nil, fmt.Errorf("variable %q: nested objects are not supported", name)
		case []any:
			for _, item := range val {
				s, err := scalar(item)
				if err != nil {
					return nil, fmt.Errorf("variable %q: %w", name, err)
				}
				vars.Add(name, s)
			}
		default:
			s, err := scalar(val)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", name, err)
			}
			vars.Set(name, s)
		}
	}
	return vars, nil
}

// FromDotenv parses dotenv KEY=value content. Dotenv files carry no
// reliable order, so keys load sorted.
func FromDotenv(data []byte) (*stemplate.Vars, error) {
	m, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse dotenv: %w", err)
	}
	return stemplate.VarsFromMap(m), nil
}

// scalar renders a decoded scalar as the string a template sees.
func scalar(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case time.Time:
		return val.Format(time.RFC3339), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// kindName names a yaml.Node kind for error messages.
func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
