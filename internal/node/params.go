package node

// Params wraps a raw parameter map with coercing accessors. Values may
// arrive as native Go types (in-process wiring) or as JSON-decoded
// float64/string, so every accessor normalizes.
type Params map[string]any

// String returns a string parameter or def when absent
func (p Params) String(key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Float returns a numeric parameter as float64 or def when absent
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// Int returns a numeric parameter as int or def when absent
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	return def
}
