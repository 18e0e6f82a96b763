package utils

import (
	"bytes"
	"unicode/utf8"
)

const (
	// SniffLength defines the maximum number of bytes inspected when detecting binary content.
	SniffLength = 8000
	// suspiciousByteRatio is the share of control bytes and invalid UTF-8 bytes above
	// which data counts as binary.
	suspiciousByteRatio = 0.3
)

// IsBinary reports whether the provided byte slice appears to contain binary data.
// Only the first SniffLength bytes are inspected. A NUL byte is decisive; otherwise
// control characters and bytes outside valid UTF-8 sequences are counted, so
// mostly-ASCII Latin-1 text stays text. Names are never consulted.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > SniffLength {
		sample = trimIncompleteRune(sample[:SniffLength])
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	suspicious := 0
	for offset := 0; offset < len(sample); {
		decodedRune, width := utf8.DecodeRune(sample[offset:])
		if decodedRune == utf8.RuneError && width == 1 {
			suspicious++
		} else if width == 1 && isSuspiciousControlByte(sample[offset]) {
			suspicious++
		}
		offset += width
	}
	return float64(suspicious)/float64(len(sample)) > suspiciousByteRatio
}

// trimIncompleteRune drops a trailing multi-byte sequence cut off by truncation.
func trimIncompleteRune(sample []byte) []byte {
	for start := len(sample) - 1; start >= 0 && start >= len(sample)-utf8.UTFMax; start-- {
		if !utf8.RuneStart(sample[start]) {
			continue
		}
		if !utf8.FullRune(sample[start:]) {
			return sample[:start]
		}
		return sample
	}
	return sample
}

func isSuspiciousControlByte(byteValue byte) bool {
	if byteValue == 0x7f {
		return true
	}
	if byteValue >= 0x20 {
		return false
	}
	switch byteValue {
	case '\t', '\n', '\r', '\f', '\b', 0x1b:
		return false
	default:
		return true
	}
}
