package summary

const (
	DefaultMaxInputChars = 6000
	TruncationMarker     = "\n\n... [TRUNCATED] ...\n\n"
)

// Compress keeps text within limit characters by dropping the middle: the
// first limit/2 and the last limit-limit/2 characters are joined around
// TruncationMarker. Text that already fits is returned untouched.
func Compress(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultMaxInputChars
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	headLen := limit / 2
	tailLen := limit - headLen
	head := string(runes[:headLen])
	tail := string(runes[len(runes)-tailLen:])
	return head + TruncationMarker + tail
}

// IsTruncated reports whether Compress would cut text at limit.
func IsTruncated(text string, limit int) bool {
	if limit <= 0 {
		limit = DefaultMaxInputChars
	}
	return len([]rune(text)) > limit
}
