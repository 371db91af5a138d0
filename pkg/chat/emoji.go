package chat

// Emoji code point range checked by the parser. This covers the
// Miscellaneous Symbols and Pictographs through Supplemental Symbols and
// Pictographs blocks, the ranges chat exports actually use.
const (
	emojiRangeLow  = 0x1F300
	emojiRangeHigh = 0x1F9FF
)

// isEmojiRune reports whether r falls in the recognized emoji range.
func isEmojiRune(r rune) bool {
	return r >= emojiRangeLow && r <= emojiRangeHigh
}

// ContainsEmoji reports whether s contains at least one emoji code point.
func ContainsEmoji(s string) bool {
	for _, r := range s {
		if isEmojiRune(r) {
			return true
		}
	}

	return false
}

// ExtractEmoji returns every emoji code point in s, one string per
// occurrence, in order of appearance.
func ExtractEmoji(s string) []string {
	var found []string

	for _, r := range s {
		if isEmojiRune(r) {
			found = append(found, string(r))
		}
	}

	return found
}
