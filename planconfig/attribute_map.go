package planconfig

import "fmt"

// AttributeMap is a free-form bag of extension attributes. It mirrors
// go.viam.com/rdk's AttributeMap: typed accessors that panic on a type
// mismatch and return the supplied default when the key is absent.
// Neither New nor Planner.Reconfigure reads one.
type AttributeMap map[string]interface{}

// Bool returns the bool stored at name, or def if absent.
func (am AttributeMap) Bool(name string, def bool) bool {
	v, ok := am[name]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		panic(fmt.Errorf("wanted a bool for %q, got %T", name, v))
	}
	return b
}

// Float64 returns the float64 stored at name, or def if absent.
func (am AttributeMap) Float64(name string, def float64) float64 {
	v, ok := am[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		panic(fmt.Errorf("wanted a float64 for %q, got %T", name, v))
	}
}

// String returns the string stored at name, or "" if absent.
func (am AttributeMap) String(name string) string {
	v, ok := am[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		panic(fmt.Errorf("wanted a string for %q, got %T", name, v))
	}
	return s
}

// Has reports whether name is present in the map.
func (am AttributeMap) Has(name string) bool {
	_, ok := am[name]
	return ok
}
