// Package collection implements the ARO collection qualifier plugin: a
// minimal JSON value scanner plus the list/string qualifiers evaluated
// directly over the scanned text, without building a parse tree.
//
// The scanner only knows how to do two things: locate the value that
// follows a literal `"key":` pattern, and extract that value as either a
// quoted string or a bracketed array span. Everything downstream works on
// spans (byte ranges) into the caller's buffer.
package collection

import "errors"

// Error definitions for scan and split operations
var (
	// ErrValueNotArray is returned when the key is absent or its value does
	// not start with '['.
	ErrValueNotArray = errors.New("value is not an array")

	// ErrMalformedArray is returned when array brackets never balance or a
	// quoted string inside the array is unterminated.
	ErrMalformedArray = errors.New("malformed array")
)

// Span is a half-open byte range [Start, End) into a document buffer. It is
// a view; it never owns memory. Start <= End <= len(document) always holds
// for spans produced by this package.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Bytes returns the sub-slice of data the span covers.
func (s Span) Bytes(data []byte) []byte {
	return data[s.Start:s.End]
}

// LocateValue finds the first occurrence of the literal pattern `"key":` in
// data and returns the index of the first non-whitespace byte after the
// colon. The search is a plain substring match: it does not verify that the
// match is a real object key, so a `"key":` sequence inside an unrelated
// quoted string elsewhere in the document will match too. That limitation is
// part of the contract (see DESIGN.md).
func LocateValue(data []byte, key string) (int, bool) {
	// Pattern is "key": — quote, key bytes, quote, colon.
	patLen := len(key) + 3
	if len(data) < patLen {
		return 0, false
	}

	for i := 0; i <= len(data)-patLen; i++ {
		if data[i] != '"' {
			continue
		}
		if data[i+len(key)+1] != '"' || data[i+len(key)+2] != ':' {
			continue
		}
		match := true
		for j := 0; j < len(key); j++ {
			if data[i+1+j] != key[j] {
				match = false
				break
			}
		}
		if !match {
			continue
		}

		pos := i + patLen
		for pos < len(data) && data[pos] <= ' ' {
			pos++
		}
		if pos >= len(data) {
			return 0, false
		}
		return pos, true
	}
	return 0, false
}

// ExtractString returns the raw content of the quoted-string value for key:
// the bytes strictly between the opening '"' and the next unescaped '"'.
// Backslash escape sequences are kept verbatim; no unescaping is performed.
// Returns false if the key is absent, the value is not a quoted string, or
// the string is unterminated.
func ExtractString(data []byte, key string) (string, bool) {
	pos, ok := LocateValue(data, key)
	if !ok || data[pos] != '"' {
		return "", false
	}

	start := pos + 1
	for i := start; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '"':
			return string(data[start:i]), true
		}
	}
	return "", false
}

// ExtractArraySpan returns the span of the array value for key, from the
// opening '[' through the matching ']' inclusive. Bracket depth is tracked
// with string-awareness: brackets inside quoted strings do not count.
// Returns ErrValueNotArray if the key is absent or the value is not an
// array, and ErrMalformedArray if the brackets never balance before the
// buffer ends.
func ExtractArraySpan(data []byte, key string) (Span, error) {
	pos, ok := LocateValue(data, key)
	if !ok || data[pos] != '[' {
		return Span{}, ErrValueNotArray
	}

	depth := 1
	inString := false
	for i := pos + 1; i < len(data); i++ {
		c := data[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return Span{Start: pos, End: i + 1}, nil
			}
		}
	}
	return Span{}, ErrMalformedArray
}
