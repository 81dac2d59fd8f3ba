// Package manifest turns loosely-typed YAML documents into objects with
// total, typed accessors, so rule code never touches raw maps.
package manifest

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Object is one parsed manifest document. All accessors are total: a
// missing or wrongly-typed field yields the documented default, never a
// panic.
type Object struct {
	root map[string]any
}

func FromMap(m map[string]any) Object {
	return Object{root: m}
}

// Kind returns the object kind, "Unknown" when absent.
func (o Object) Kind() string {
	if k := o.StringAt("kind"); k != "" {
		return k
	}
	return "Unknown"
}

// Name returns metadata.name, "unnamed" when absent.
func (o Object) Name() string {
	if n := o.StringAt("metadata", "name"); n != "" {
		return n
	}
	return "unnamed"
}

// Namespace returns metadata.namespace, empty when absent.
func (o Object) Namespace() string {
	return o.StringAt("metadata", "namespace")
}

// MapAt walks path and returns the mapping found there, nil otherwise.
func (o Object) MapAt(path ...string) map[string]any {
	cur := o.root
	for i, key := range path {
		v, ok := cur[key]
		if !ok {
			return nil
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		if i == len(path)-1 {
			return m
		}
		cur = m
	}
	return cur
}

// ListAt walks path and returns the sequence found there, nil otherwise.
func (o Object) ListAt(path ...string) []any {
	if len(path) == 0 {
		return nil
	}
	parent := o.root
	if len(path) > 1 {
		parent = o.MapAt(path[:len(path)-1]...)
		if parent == nil {
			return nil
		}
	}
	l, _ := parent[path[len(path)-1]].([]any)
	return l
}

// StringAt walks path and returns the string found there, "" otherwise.
func (o Object) StringAt(path ...string) string {
	if len(path) == 0 {
		return ""
	}
	parent := o.root
	if len(path) > 1 {
		parent = o.MapAt(path[:len(path)-1]...)
		if parent == nil {
			return ""
		}
	}
	s, _ := parent[path[len(path)-1]].(string)
	return s
}

// Has reports whether path resolves to any value, including explicit null.
func (o Object) Has(path ...string) bool {
	if len(path) == 0 {
		return false
	}
	parent := o.root
	if len(path) > 1 {
		parent = o.MapAt(path[:len(path)-1]...)
		if parent == nil {
			return false
		}
	}
	_, ok := parent[path[len(path)-1]]
	return ok
}

// Containers returns the container entries of the object. Pod-like objects
// carry them at spec.containers, workload controllers at
// spec.template.spec.containers. The first populated location wins, the
// two are never merged.
func (o Object) Containers() []map[string]any {
	list := o.ListAt("spec", "containers")
	if list == nil {
		list = o.ListAt("spec", "template", "spec", "containers")
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Fragment renders the whole object back to YAML, for use as finding
// evidence.
func (o Object) Fragment() string {
	return Fragment(o.root)
}

// Fragment renders any decoded YAML value back to text. Rendering failures
// degrade to an empty snippet, evidence is best-effort.
func Fragment(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(b), "\n")
}

// Truthy mirrors the permissive boolean reading of dynamic manifests:
// explicit booleans count as themselves, numbers as non-zero, strings and
// collections as non-empty.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// IntEquals reports whether v holds a number equal to want. Non-numeric
// values never match.
func IntEquals(v any, want int64) bool {
	switch t := v.(type) {
	case int:
		return int64(t) == want
	case int64:
		return t == want
	case uint64:
		return t == uint64(want) && want >= 0
	case float64:
		return t == float64(want)
	default:
		return false
	}
}
