package collection

import (
	"bytes"
	"errors"
	"math"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

// The aggregate qualifiers still run over splitter spans; gjson is only used
// to classify and order the individual element texts (number vs string),
// never to re-parse the whole document.

// element is one top-level array element: its raw text plus the parsed view
// used for ordering and numeric checks.
type element struct {
	raw []byte
	res gjson.Result
}

// listElements extracts and splits the "value" array for a qualifier that
// requires a list. The second return value is a ready-made error document;
// it is nil on success.
func listElements(doc []byte, op string) ([]element, []byte) {
	arr, err := ExtractArraySpan(doc, "value")
	if errors.Is(err, ErrMalformedArray) {
		return nil, errorDoc("malformed array")
	}
	if err != nil {
		return nil, errorDoc(op + " requires a list")
	}
	spans, err := SplitTopLevel(doc, arr)
	if err != nil {
		return nil, errorDoc("malformed array")
	}

	elems := make([]element, len(spans))
	for i, s := range spans {
		raw := s.Bytes(doc)
		elems[i] = element{raw: raw, res: gjson.ParseBytes(raw)}
	}
	return elems, nil
}

// allNumeric reports whether every element parsed as a JSON number.
func allNumeric(elems []element) bool {
	for _, e := range elems {
		if e.res.Type != gjson.Number {
			return false
		}
	}
	return true
}

// elementLess orders two elements: numerically when both sides of the whole
// collection are numbers, otherwise by string form (the same fallback the
// collection qualifiers have always used for mixed-type lists).
func elementLess(a, b element, numeric bool) bool {
	if numeric {
		return a.res.Num < b.res.Num
	}
	return a.res.String() < b.res.String()
}

// joinArray renders element raw texts back into a single JSON array.
func joinArray(elems []element) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(e.raw)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// qualSort sorts the list ascending and returns the reordered array.
func qualSort(doc []byte) []byte {
	elems, errDoc := listElements(doc, "sort")
	if errDoc != nil {
		return errDoc
	}
	numeric := allNumeric(elems)
	sort.SliceStable(elems, func(i, j int) bool {
		return elementLess(elems[i], elems[j], numeric)
	})
	return resultRaw(joinArray(elems))
}

// qualUnique drops duplicate elements, keeping first occurrences in order.
// Equality is textual: two elements are duplicates when their trimmed raw
// JSON texts match.
func qualUnique(doc []byte) []byte {
	elems, errDoc := listElements(doc, "unique")
	if errDoc != nil {
		return errDoc
	}

	seen := make(map[string]struct{}, len(elems))
	kept := elems[:0]
	for _, e := range elems {
		key := string(e.raw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, e)
	}
	return resultRaw(joinArray(kept))
}

// numericElements filters the list down to its JSON-number elements,
// reporting whether any of them used float syntax.
func numericElements(elems []element) (nums []element, sawFloat bool) {
	for _, e := range elems {
		if e.res.Type != gjson.Number {
			continue
		}
		if bytes.ContainsAny(e.raw, ".eE") {
			sawFloat = true
		}
		nums = append(nums, e)
	}
	return nums, sawFloat
}

// qualSum sums the numeric elements. Non-numeric elements are skipped; a
// list with no numeric elements is an error. All-integer sums that land on
// a whole value render as integers.
func qualSum(doc []byte) []byte {
	elems, errDoc := listElements(doc, "sum")
	if errDoc != nil {
		return errDoc
	}
	nums, sawFloat := numericElements(elems)
	if len(nums) == 0 {
		return errorDoc("sum requires numeric list elements")
	}

	total := 0.0
	for _, e := range nums {
		total += e.res.Num
	}
	if !sawFloat && total == math.Trunc(total) {
		return resultInt(int64(total))
	}
	return resultRaw(strconv.AppendFloat(nil, total, 'g', -1, 64))
}

// qualAvg averages the numeric elements. Averages always render in Go's
// shortest float form, so a whole-valued average prints without a trailing
// ".0" even though the division produces a float.
func qualAvg(doc []byte) []byte {
	elems, errDoc := listElements(doc, "avg")
	if errDoc != nil {
		return errDoc
	}
	nums, _ := numericElements(elems)
	if len(nums) == 0 {
		return errorDoc("avg requires numeric list elements")
	}

	total := 0.0
	for _, e := range nums {
		total += e.res.Num
	}
	avg := total / float64(len(nums))
	return resultRaw(strconv.AppendFloat(nil, avg, 'g', -1, 64))
}

// qualMin returns the minimum element under the sort ordering.
func qualMin(doc []byte) []byte {
	return qualExtremum(doc, "min", func(cand, best element, numeric bool) bool {
		return elementLess(cand, best, numeric)
	})
}

// qualMax returns the maximum element under the sort ordering.
func qualMax(doc []byte) []byte {
	return qualExtremum(doc, "max", func(cand, best element, numeric bool) bool {
		return elementLess(best, cand, numeric)
	})
}

func qualExtremum(doc []byte, op string, better func(cand, best element, numeric bool) bool) []byte {
	elems, errDoc := listElements(doc, op)
	if errDoc != nil {
		return errDoc
	}
	if len(elems) == 0 {
		return errorDoc(op + " requires a non-empty list")
	}

	numeric := allNumeric(elems)
	best := elems[0]
	for _, e := range elems[1:] {
		if better(e, best, numeric) {
			best = e
		}
	}
	return resultRaw(best.raw)
}
