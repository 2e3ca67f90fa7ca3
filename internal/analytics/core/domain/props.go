package domain

// Props is the untyped event property bag. Values arrive from JSON so numbers
// decode as float64; reads degrade to the given default on a missing key or a
// wrong-typed value, never panic.
type Props map[string]any

func (p Props) GetString(key string, def string) string {
	if p == nil {
		return def
	}
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

func (p Props) GetNumber(key string, def float64) float64 {
	if p == nil {
		return def
	}
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

func (p Props) GetBool(key string, def bool) bool {
	if p == nil {
		return def
	}
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}
