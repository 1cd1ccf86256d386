package collection

import (
	"errors"
	"strconv"

	"github.com/tidwall/sjson"
)

//------------------------------------------------------------------------------
// QUALIFIER EVALUATION
//------------------------------------------------------------------------------

// Evaluate runs the named qualifier against an input document and returns
// the result document: a JSON object carrying exactly one of a "result"
// field or an "error" field. The input is read-only; every call is
// independent and the same input always produces byte-identical output.
func Evaluate(name string, doc []byte) []byte {
	q, ok := DefaultRegistry.Lookup(name)
	if !ok {
		return errorDoc("Unknown qualifier: " + name)
	}
	return q.Fn(doc)
}

// ExecuteAction handles the action surface of the plugin ABI. This plugin
// defines no actions, so every call reports that.
func ExecuteAction(name string, doc []byte) []byte {
	return errorDoc("No actions defined")
}

// qualFirst returns the first top-level element of the "value" array.
func qualFirst(doc []byte) []byte {
	arr, err := ExtractArraySpan(doc, "value")
	if errors.Is(err, ErrMalformedArray) {
		return errorDoc("malformed array")
	}
	if err != nil {
		return errorDoc("first requires a non-empty list")
	}
	el, ok, err := First(doc, arr)
	if err != nil {
		return errorDoc("malformed array")
	}
	if !ok {
		return errorDoc("first requires a non-empty list")
	}
	return resultRaw(el.Bytes(doc))
}

// qualLast returns the last top-level element of the "value" array.
func qualLast(doc []byte) []byte {
	arr, err := ExtractArraySpan(doc, "value")
	if errors.Is(err, ErrMalformedArray) {
		return errorDoc("malformed array")
	}
	if err != nil {
		return errorDoc("last requires a non-empty list")
	}
	spans, err := SplitTopLevel(doc, arr)
	if err != nil {
		return errorDoc("malformed array")
	}
	if len(spans) == 0 {
		return errorDoc("last requires a non-empty list")
	}
	return resultRaw(spans[len(spans)-1].Bytes(doc))
}

// qualSize returns the element count of a List or the raw byte length of a
// String. String length is measured on the extracted literal text, escape
// sequences included; no unescaping happens first.
func qualSize(doc []byte) []byte {
	typ, ok := ExtractString(doc, "type")
	if !ok {
		return errorDoc("size requires List or String")
	}

	switch typ {
	case "List":
		arr, err := ExtractArraySpan(doc, "value")
		if errors.Is(err, ErrMalformedArray) {
			return errorDoc("malformed array")
		}
		if err != nil {
			// A List document without an array value counts as zero.
			return resultInt(0)
		}
		n, err := Count(doc, arr)
		if err != nil {
			return errorDoc("malformed array")
		}
		return resultInt(int64(n))
	case "String":
		s, _ := ExtractString(doc, "value")
		return resultInt(int64(len(s)))
	default:
		return errorDoc("size requires List or String")
	}
}

//------------------------------------------------------------------------------
// RESULT DOCUMENT CONSTRUCTION
//------------------------------------------------------------------------------

// resultRaw builds {"result":<raw>} with raw copied verbatim as JSON text.
func resultRaw(raw []byte) []byte {
	out, err := sjson.SetRawBytes([]byte(`{}`), "result", raw)
	if err != nil {
		return errorDoc("internal: " + err.Error())
	}
	return out
}

// resultInt builds {"result":<n>}.
func resultInt(n int64) []byte {
	return resultRaw(strconv.AppendInt(nil, n, 10))
}

// errorDoc builds {"error":<msg>}.
func errorDoc(msg string) []byte {
	out, err := sjson.SetBytes([]byte(`{}`), "error", msg)
	if err != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return out
}
