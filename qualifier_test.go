package collection

import (
	"bytes"
	"testing"
)

// TestEvaluate tests the qualifier dispatch table end to end. Expected
// outputs are byte-exact: the result document format is part of the plugin
// contract with the host.
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		op   string
		doc  string
		want string
	}{
		{
			name: "first_of_numbers",
			op:   "first",
			doc:  `{"type":"List","value":[1,2,3]}`,
			want: `{"result":1}`,
		},
		{
			name: "last_of_numbers",
			op:   "last",
			doc:  `{"type":"List","value":[1,2,3]}`,
			want: `{"result":3}`,
		},
		{
			name: "first_of_empty_list",
			op:   "first",
			doc:  `{"type":"List","value":[]}`,
			want: `{"error":"first requires a non-empty list"}`,
		},
		{
			name: "last_of_empty_list",
			op:   "last",
			doc:  `{"type":"List","value":[]}`,
			want: `{"error":"last requires a non-empty list"}`,
		},
		{
			name: "size_of_list_with_comma_strings",
			op:   "size",
			doc:  `{"type":"List","value":["a,b","c"]}`,
			want: `{"result":2}`,
		},
		{
			name: "size_of_string",
			op:   "size",
			doc:  `{"type":"String","value":"hello"}`,
			want: `{"result":5}`,
		},
		{
			name: "unknown_qualifier",
			op:   "bogus",
			doc:  `{"type":"List","value":[1,2,3]}`,
			want: `{"error":"Unknown qualifier: bogus"}`,
		},
		{
			name: "first_of_strings",
			op:   "first",
			doc:  `{"type":"List","value":["apple","banana"]}`,
			want: `{"result":"apple"}`,
		},
		{
			name: "first_of_nested_arrays",
			op:   "first",
			doc:  `{"type":"List","value":[[1,2],[3,4]]}`,
			want: `{"result":[1,2]}`,
		},
		{
			name: "last_of_objects",
			op:   "last",
			doc:  `{"type":"List","value":[{"a":1},{"b":2}]}`,
			want: `{"result":{"b":2}}`,
		},
		{
			name: "first_with_whitespace",
			op:   "first",
			doc:  `{"type":"List","value":[  "x" ,  "y"  ]}`,
			want: `{"result":"x"}`,
		},
		{
			name: "first_value_missing",
			op:   "first",
			doc:  `{"type":"List"}`,
			want: `{"error":"first requires a non-empty list"}`,
		},
		{
			name: "first_value_not_array",
			op:   "first",
			doc:  `{"type":"String","value":"abc"}`,
			want: `{"error":"first requires a non-empty list"}`,
		},
		{
			name: "first_malformed_array",
			op:   "first",
			doc:  `{"type":"List","value":[1,2`,
			want: `{"error":"malformed array"}`,
		},
		{
			name: "first_malformed_nesting",
			op:   "first",
			doc:  `{"type":"List","value":[}]}`,
			want: `{"error":"malformed array"}`,
		},
		{
			name: "last_malformed_nesting",
			op:   "last",
			doc:  `{"type":"List","value":[}]}`,
			want: `{"error":"malformed array"}`,
		},
		{
			name: "size_of_empty_list",
			op:   "size",
			doc:  `{"type":"List","value":[]}`,
			want: `{"result":0}`,
		},
		{
			name: "size_of_empty_string",
			op:   "size",
			doc:  `{"type":"String","value":""}`,
			want: `{"result":0}`,
		},
		{
			name: "size_counts_escape_bytes_literally",
			op:   "size",
			doc:  `{"type":"String","value":"a\"b"}`,
			want: `{"result":4}`,
		},
		{
			name: "size_list_without_value",
			op:   "size",
			doc:  `{"type":"List"}`,
			want: `{"result":0}`,
		},
		{
			name: "size_unrecognized_type",
			op:   "size",
			doc:  `{"type":"Number","value":3}`,
			want: `{"error":"size requires List or String"}`,
		},
		{
			name: "size_missing_type",
			op:   "size",
			doc:  `{"value":[1,2]}`,
			want: `{"error":"size requires List or String"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.op, []byte(tt.doc))
			if string(got) != tt.want {
				t.Errorf("Evaluate(%q, %s) = %s, want %s", tt.op, tt.doc, got, tt.want)
			}
		})
	}
}

// TestEvaluate_Idempotent re-runs every operation on the same input and
// requires byte-identical output.
func TestEvaluate_Idempotent(t *testing.T) {
	doc := []byte(`{"type":"List","value":[3,1,"a,b",[2]]}`)
	for _, op := range []string{"first", "last", "size", "sort", "unique", "sum", "avg", "min", "max", "bogus"} {
		a := Evaluate(op, doc)
		b := Evaluate(op, doc)
		if !bytes.Equal(a, b) {
			t.Errorf("Evaluate(%q) not idempotent: %s vs %s", op, a, b)
		}
	}
}

// TestEvaluate_DoesNotMutateInput verifies the input buffer is read-only.
func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	doc := []byte(`{"type":"List","value":[1,2,3]}`)
	orig := append([]byte(nil), doc...)
	Evaluate("sort", doc)
	Evaluate("first", doc)
	if !bytes.Equal(doc, orig) {
		t.Errorf("input document mutated: %s", doc)
	}
}

// TestExecuteAction verifies the action surface reports that none exist.
func TestExecuteAction(t *testing.T) {
	got := ExecuteAction("anything", []byte(`{}`))
	want := `{"error":"No actions defined"}`
	if string(got) != want {
		t.Errorf("ExecuteAction = %s, want %s", got, want)
	}
}
