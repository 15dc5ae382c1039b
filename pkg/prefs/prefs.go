// Package prefs provides read-only access to the key/value state the
// FetchPet host application shares with its widgets. Readers depend only on
// the Provider interface; the host side writes through Store.
package prefs

import "math"

// Provider is a read-only key/value source. Lookups never fail: a missing,
// unreadable, or wrongly typed entry reports ok=false.
type Provider interface {
	String(key string) (string, bool)
	Int(key string) (int, bool)
}

// Map is an in-memory Provider. Values of type string, int, int64 and
// float64 (whole numbers only) are understood; anything else reads as
// absent.
type Map map[string]any

// String returns the string stored under key.
func (m Map) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the integer stored under key.
func (m Map) Int(key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return toInt(v)
}

// toInt normalizes the numeric types produced by the JSON, TOML and YAML
// decoders into an int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return toInt(int64(n))
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Empty is a Provider with no entries. It stands in when the shared store
// cannot be opened at all.
var Empty Provider = Map(nil)
