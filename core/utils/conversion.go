package utils

import (
	"strconv"
	"strings"
)

// ParseTimestamp converts a producer timestamp to an integer.
// Anything that is not a base-10 integer yields 0, so a malformed value
// always loses a comparison against a well-formed one.
func ParseTimestamp(val string) int64 {
	i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return 0
	}
	return i
}

// ParseInt converts a decimal string to int, reporting whether it succeeded.
// Integral float notation ("8.0") is accepted because the addon writes
// numbers through Lua's tostring.
func ParseInt(val string) (int, bool) {
	s := strings.TrimSpace(val)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// FormatNumber renders a float as an integer when it has no fractional part.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DefaultString returns def when val is empty.
func DefaultString(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
