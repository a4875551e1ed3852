package models

import (
	"fmt"
	"math"
)

// FormatValue renders one result cell for display. JSON numbers arrive as float64,
// so integral values are printed without a decimal part.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case float32:
		return FormatValue(float64(val))
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
