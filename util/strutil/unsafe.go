package strutil

import "unsafe"

// View s as []byte without copying, the returned slice must not be written.
func UnsafeStr2Byt(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// View b as string without copying, b must not be written afterwards.
func UnsafeByt2Str(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
