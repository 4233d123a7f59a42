package util

// BoundedCopy returns at most maxLen bytes of s, truncating silently.
//
// Callers must not assume identifiers survive untruncated beyond the fixed
// width they pass; the truncation contract is part of every bounded field in
// the protocol (node identifiers, message bodies, packet payloads).
func BoundedCopy(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// Clamp constrains v to the inclusive range [lo, hi].
func Clamp[T int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
