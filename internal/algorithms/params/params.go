package params

import (
	"fmt"
	"math"
)

// Int reads key from params as an int. Missing keys yield def; values
// decoded from YAML or JSON as float64 are accepted when integral.
func Int(params map[string]interface{}, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return def, nil
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%s must be an integer, got: %v", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}

// Float reads key from params as a float64.
func Float(params map[string]interface{}, key string, def float64) (float64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return def, nil
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}

// Level reads key as an 8-bit intensity level.
func Level(params map[string]interface{}, key string, def uint8) (uint8, error) {
	n, err := Int(params, key, int(def))
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%s must be between 0 and 255, got: %d", key, n)
	}
	return uint8(n), nil
}
