// Package textscan provides byte-level text utilities: binary detection,
// line counting, and identifier-aware word scanning.
package textscan

import (
	"bytes"
	"strings"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// CountLines returns the number of newline-delimited lines in data.
// A non-empty buffer without a trailing newline counts the last partial line.
// Returns 0 for empty data.
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

// ContainsWord returns true if word occurs in text as a whole identifier.
// An occurrence counts only when the bytes immediately before and after it
// are not identifier characters (letters, digits, underscore, or dollar).
// Empty words never match.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}

	for from := 0; ; {
		idx := strings.Index(text[from:], word)
		if idx < 0 {
			return false
		}

		start := from + idx
		end := start + len(word)

		leftOK := start == 0 || !isWordByte(text[start-1])
		rightOK := end == len(text) || !isWordByte(text[end])

		if leftOK && rightOK {
			return true
		}

		from = start + 1
	}
}

// LineAt returns the 1-based line number containing the byte at offset.
// Offsets past the end of text report the last line; negative offsets
// report line 1.
func LineAt(text string, offset int) int {
	if offset < 0 {
		return 1
	}

	if offset > len(text) {
		offset = len(text)
	}

	return strings.Count(text[:offset], "\n") + 1
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == '$':
		return true
	default:
		return false
	}
}
