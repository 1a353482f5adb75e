package fixedlength

import (
	"strings"
	"unicode/utf8"
)

// rawValue is a string that can be indexed either by byte or by codepoint.
type rawValue struct {
	data string
	// Used when codepoint indices are enabled on the layout and data contains
	// a multi-byte character. codepointIndices[n] is the byte offset of the
	// n-th codepoint in data.
	codepointIndices []int
}

func newRawValue(data string, useCodepointIndices bool) rawValue {
	value := rawValue{data: data}
	if !useCodepointIndices {
		return value
	}
	bytesIdx := findFirstMultiByteChar(data)
	if bytesIdx == len(data) {
		return value
	}
	codepointIndices := make([]int, bytesIdx, len(data))
	for i := 0; i < bytesIdx; i++ {
		codepointIndices[i] = i
	}
	for bytesIdx < len(data) {
		// Invalid sequences decode as a single byte and count as one codepoint.
		_, size := utf8.DecodeRuneInString(data[bytesIdx:])
		codepointIndices = append(codepointIndices, bytesIdx)
		bytesIdx += size
	}
	value.codepointIndices = codepointIndices
	return value
}

func (v rawValue) len() int {
	if v.codepointIndices == nil {
		return len(v.data)
	}
	return len(v.codepointIndices)
}

// byteIndex converts a position in characters to a byte offset. Positions at
// or past the end map to len(data).
func (v rawValue) byteIndex(pos int) int {
	if pos >= v.len() {
		return len(v.data)
	}
	if v.codepointIndices == nil {
		return pos
	}
	return v.codepointIndices[pos]
}

// slice returns the characters [start, start+size). A value shorter than
// required yields whatever remains, possibly nothing.
func (v rawValue) slice(start, size int) string {
	if start >= v.len() {
		return ""
	}
	return v.data[v.byteIndex(start):v.byteIndex(start+size)]
}

// fit pads or truncates value to exactly width characters. Right aligned
// values are padded and truncated on the left, everything else on the right.
// noAlignment values are truncated but never padded.
func fit(value rawValue, width int, f format) string {
	n := value.len()
	switch {
	case n > width && f.alignment == right:
		return value.data[value.byteIndex(n-width):]
	case n > width:
		return value.data[:value.byteIndex(width)]
	case n == width || f.alignment == noAlignment:
		return value.data
	}

	var b strings.Builder
	b.Grow(len(value.data) + width - n)
	pad := strings.Repeat(string([]byte{f.padChar}), width-n)
	if f.alignment == right {
		b.WriteString(pad)
		b.WriteString(value.data)
	} else {
		b.WriteString(value.data)
		b.WriteString(pad)
	}
	return b.String()
}

// Scans bytes, looking for multi-byte characters, returns either the index of
// the first multi-byte character or the length of the string if there are none.
func findFirstMultiByteChar(data string) int {
	for i := 0; i < len(data); i++ {
		if data[i]&0x80 == 0x80 {
			return i
		}
	}
	return len(data)
}
