package collection

// SplitTopLevel walks the interior of an array span and returns the spans of
// its top-level elements in textual order. Depth is tracked for both
// brackets and braces so commas inside nested values never split, and quoted
// strings (including escaped quotes) are opaque. Leading and trailing
// whitespace is trimmed from each element span. An empty array yields an
// empty slice. Returns ErrMalformedArray when depth goes negative, a quoted
// string is unterminated, or nesting never closes.
func SplitTopLevel(data []byte, arr Span) ([]Span, error) {
	lo, hi := arr.Start+1, arr.End-1
	spans := []Span{}
	depth := 0
	inString := false
	start := lo

	for i := lo; i < hi; i++ {
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
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth < 0 {
				return nil, ErrMalformedArray
			}
		case ',':
			if depth == 0 {
				spans = append(spans, trimSpan(data, start, i))
				start = i + 1
			}
		}
	}
	if inString || depth != 0 {
		return nil, ErrMalformedArray
	}

	last := trimSpan(data, start, hi)
	if len(spans) == 0 && last.Len() == 0 {
		return spans, nil
	}
	return append(spans, last), nil
}

// First returns the span of the earliest top-level element, found by a
// single forward scan that stops at the first depth-0 comma. Returns false
// for an empty array and ErrMalformedArray when depth goes negative, a
// quoted string is unterminated, or nesting never closes before the element
// ends.
func First(data []byte, arr Span) (Span, bool, error) {
	lo, hi := arr.Start+1, arr.End-1

	start := lo
	for start < hi && data[start] <= ' ' {
		start++
	}
	if start >= hi {
		return Span{}, false, nil
	}

	end := hi
	depth := 0
	inString := false
scan:
	for i := start; i < hi; i++ {
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
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth < 0 {
				return Span{}, false, ErrMalformedArray
			}
		case ',':
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if end == hi && (inString || depth != 0) {
		return Span{}, false, ErrMalformedArray
	}
	for end > start && data[end-1] <= ' ' {
		end--
	}
	return Span{Start: start, End: end}, true, nil
}

// Last returns the span of the latest top-level element. A backward scan
// would need escape detection in reverse, which is easy to get subtly wrong;
// instead the forward splitter runs once and the final element is taken.
// Returns false for an empty or malformed array.
func Last(data []byte, arr Span) (Span, bool) {
	spans, err := SplitTopLevel(data, arr)
	if err != nil || len(spans) == 0 {
		return Span{}, false
	}
	return spans[len(spans)-1], true
}

// Count returns the number of top-level elements: depth-0 commas plus one
// for a non-empty array, zero for an empty one. Single pass, no span
// materialization.
func Count(data []byte, arr Span) (int, error) {
	lo, hi := arr.Start+1, arr.End-1

	i := lo
	for i < hi && data[i] <= ' ' {
		i++
	}
	if i >= hi {
		return 0, nil
	}

	commas := 0
	depth := 0
	inString := false
	for ; i < hi; i++ {
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
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth < 0 {
				return 0, ErrMalformedArray
			}
		case ',':
			if depth == 0 {
				commas++
			}
		}
	}
	if inString || depth != 0 {
		return 0, ErrMalformedArray
	}
	return commas + 1, nil
}

// trimSpan shrinks [start, end) past any surrounding whitespace.
func trimSpan(data []byte, start, end int) Span {
	for start < end && data[start] <= ' ' {
		start++
	}
	for end > start && data[end-1] <= ' ' {
		end--
	}
	return Span{Start: start, End: end}
}
