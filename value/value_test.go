package value

import (
	"encoding/json"
	"testing"
)

func TestDecodeJSONKinds(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
	}{
		{"null", `null`, Null},
		{"true", `true`, Bool},
		{"false", `false`, Bool},
		{"integer", `42`, Number},
		{"float", `3.14`, Number},
		{"string", `"hello"`, String},
		{"array", `[1, 2]`, Array},
		{"object", `{"a": 1}`, Object},
		{"empty array", `[]`, Array},
		{"empty object", `{}`, Object},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeJSON([]byte(tt.in))
			if err != nil {
				t.Fatalf("DecodeJSON(%q) error = %v", tt.in, err)
			}
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
		})
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ``},
		{"trailing data", `{} {}`},
		{"trailing scalar", `1 2`},
		{"unclosed object", `{"a": 1`},
		{"bare word", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJSON([]byte(tt.in)); err == nil {
				t.Errorf("DecodeJSON(%q) expected error, got nil", tt.in)
			}
		})
	}
}

func TestKeyOrderPreserved(t *testing.T) {
	in := `{"zebra": 1, "alpha": 2, "mid": {"y": true, "a": null}}`
	v, err := DecodeJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}

	var keys []string
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	want := []string{"zebra", "alpha", "mid"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("key[%d] = %q, want %q", i, keys[i], k)
		}
	}

	out := v.EncodeJSON()
	wantOut := `{"zebra":1,"alpha":2,"mid":{"y":true,"a":null}}`
	if out != wantOut {
		t.Errorf("EncodeJSON() = %s, want %s", out, wantOut)
	}
}

func TestNumberLexemePreserved(t *testing.T) {
	tests := []string{`1.50`, `1e3`, `-0.001`, `123456789012345678901234567890`}
	for _, lexeme := range tests {
		v, err := DecodeJSON([]byte(lexeme))
		if err != nil {
			t.Fatalf("DecodeJSON(%q) error = %v", lexeme, err)
		}
		if got := v.EncodeJSON(); got != lexeme {
			t.Errorf("EncodeJSON() = %s, want %s", got, lexeme)
		}
	}
}

func TestDuplicateKeysLastValueWinsFirstPosition(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := v.EncodeJSON(); got != `{"a":3,"b":2}` {
		t.Errorf("EncodeJSON() = %s, want {\"a\":3,\"b\":2}", got)
	}
}

func TestEncodeJSONIndent(t *testing.T) {
	v := NewObject(
		Member{"role", NewString("expert")},
		Member{"n", NewNumber(json.Number("1"))},
		Member{"tags", NewArray(NewString("a"), NewString("b"))},
		Member{"empty", NewObject()},
	)
	want := `{
  "role": "expert",
  "n": 1,
  "tags": [
    "a",
    "b"
  ],
  "empty": {}
}`
	if got := v.EncodeJSONIndent("", "  "); got != want {
		t.Errorf("EncodeJSONIndent() =\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeMatchesMarshalIndent(t *testing.T) {
	// Layout parity check against the standard library for a tree without
	// ordering concerns.
	in := `{"a":[1,{"b":"x"},null],"c":true}`
	v, err := DecodeJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}

	var std interface{}
	if err := json.Unmarshal([]byte(in), &std); err != nil {
		t.Fatal(err)
	}
	want, err := json.MarshalIndent(std, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	if got := v.EncodeJSONIndent("", "  "); got != string(want) {
		t.Errorf("EncodeJSONIndent() =\n%s\nwant:\n%s", got, want)
	}
}

func TestNoHTMLEscaping(t *testing.T) {
	v := NewString("<system> & 'quotes'")
	if got := v.EncodeJSON(); got != `"<system> & 'quotes'"` {
		t.Errorf("EncodeJSON() = %s", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig, err := DecodeJSON([]byte(`{"list": ["x", "y"], "obj": {"k": "v"}}`))
	if err != nil {
		t.Fatal(err)
	}
	clone := orig.Clone()

	// Mutate the clone through its backing slices.
	list, _ := clone.Get("list")
	list.Items()[0] = NewString("changed")

	origList, _ := orig.Get("list")
	if origList.Items()[0].Text() != "x" {
		t.Errorf("mutating clone leaked into original")
	}
	if !Equal(orig, orig.Clone()) {
		t.Errorf("Clone() must be structurally equal to its source")
	}
}

func TestEqual(t *testing.T) {
	a, _ := DecodeJSON([]byte(`{"a": [1, 2], "b": "s"}`))
	b, _ := DecodeJSON([]byte(`{"a": [1, 2], "b": "s"}`))
	c, _ := DecodeJSON([]byte(`{"b": "s", "a": [1, 2]}`))

	if !Equal(a, b) {
		t.Errorf("identical documents must be Equal")
	}
	if Equal(a, c) {
		t.Errorf("key order is observable; reordered documents must not be Equal")
	}
}

func TestDecodeJSONArray(t *testing.T) {
	records, err := DecodeJSONArray([]byte(`[{"a":1},{"b":2}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}

	if _, err := DecodeJSONArray([]byte(`{"a":1}`)); err == nil {
		t.Errorf("non-array top level must error")
	}
}

func TestValueRoundTripThroughEncodingJSON(t *testing.T) {
	in := `{"k":[1,"s",false,null]}`
	v, err := DecodeJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("Marshal = %s, want %s", out, in)
	}

	var back Value
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if !Equal(v, back) {
		t.Errorf("Unmarshal round trip not equal")
	}
}
