package common

// WipeByteArray overwrites b with zeros so passwords do not linger in memory
// after a request has been built. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// TruncateRunes returns the first n characters of s, counting runes rather
// than bytes so multi-byte text is never cut in half.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
