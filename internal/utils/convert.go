package utils

import "strconv"

// UintToString formats an ID for cache keys and log fields
func UintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// ParseID parses a positive path parameter ID
func ParseID(s string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
