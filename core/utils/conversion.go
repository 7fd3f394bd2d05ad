package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString coerces a decoded JSON scalar to its cell representation.
// Integral floats render without a decimal point, so numeric ids read
// back from JSON match what the cell held.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool reports whether a cell value is affirmative. Sheet flags are
// free text; "yes", "true" and "1" all count, anything else does not.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return isAffirmative(v)
	case []byte:
		return isAffirmative(string(v))
	default:
		return false
	}
}

func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
