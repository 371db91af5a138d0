// Package textutil provides byte-level checks for raw transcript input
// before it reaches the parser.
package textutil

import (
	"bytes"
	"unicode/utf8"
)

// BinarySniffLength is the maximum number of bytes inspected when deciding
// whether input is a text transcript. Matches the heuristic used by Git
// and most editors.
const BinarySniffLength = 8000

// IsBinary reports whether data cannot be an exported chat transcript: a
// null byte or invalid UTF-8 within the first BinarySniffLength bytes.
// Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = trimPartialRune(sniff[:BinarySniffLength])
	}

	if bytes.IndexByte(sniff, 0) >= 0 {
		return true
	}

	return !utf8.Valid(sniff)
}

// trimPartialRune drops a trailing multibyte sequence the sniff window cut
// in half, so truncation alone never flags valid UTF-8 as binary.
func trimPartialRune(sniff []byte) []byte {
	for range utf8.UTFMax - 1 {
		if len(sniff) == 0 {
			break
		}

		if r, size := utf8.DecodeLastRune(sniff); r != utf8.RuneError || size > 1 {
			break
		}

		sniff = sniff[:len(sniff)-1]
	}

	return sniff
}

// CountLines returns the number of newline-delimited transcript lines in
// data. A non-empty buffer without a trailing newline counts the last
// partial line. Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}
