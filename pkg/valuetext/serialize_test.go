package valuetext_test

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/goliatone/go-domtemplate/pkg/value"
	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

func TestSerializeStrings(t *testing.T) {
	for _, s := range []string{"", "hi", `with "quotes"`, "line\nbreak"} {
		if got := valuetext.Serialize(s); got != s {
			t.Fatalf("unquoted string mismatch: want %q, got %q", s, got)
		}
		if got := valuetext.Serialize(s, valuetext.WithStringQuote("'")); got != "'"+s+"'" {
			t.Fatalf("quoted string mismatch: want %q, got %q", "'"+s+"'", got)
		}
	}
}

func TestSerializeNullish(t *testing.T) {
	if got := valuetext.Serialize(value.Undefined); got != "undefined" {
		t.Fatalf("undefined: got %q", got)
	}
	if got := valuetext.Serialize(nil); got != "null" {
		t.Fatalf("null: got %q", got)
	}
	if got := valuetext.Serialize(value.Undefined, valuetext.WithNullishText("")); got != "" {
		t.Fatalf("undefined with nullish text: got %q", got)
	}
	if got := valuetext.Serialize(nil, valuetext.WithNullishText("-")); got != "-" {
		t.Fatalf("null with nullish text: got %q", got)
	}
}

func TestSerializeNullishTextStaysAtTopLevel(t *testing.T) {
	opts := []valuetext.Option{valuetext.WithNullishText("-")}

	if got := valuetext.Serialize([]any{nil}, opts...); got != "[null]" {
		t.Fatalf("nested null: got %q", got)
	}
	input := value.NewObject(
		value.Entry{Key: "a", Value: value.Undefined},
		value.Entry{Key: "b", Value: nil},
	)
	if got := valuetext.Serialize(input, opts...); got != `{"a":undefined,"b":null}` {
		t.Fatalf("nested nullish properties: got %q", got)
	}
}

func TestSerializeObjects(t *testing.T) {
	point := value.NewObject(
		value.Entry{Key: "x", Value: big.NewInt(10)},
		value.Entry{Key: "y", Value: 0},
	)

	cases := []struct {
		name  string
		input any
		opts  []valuetext.Option
		want  string
	}{
		{
			name:  "compact object",
			input: point,
			want:  `{"x":10,"y":0}`,
		},
		{
			name:  "spaced object",
			input: point,
			opts:  []valuetext.Option{valuetext.WithSpaces(2)},
			want:  "{\n  \"x\": 10,\n  \"y\": 0\n}",
		},
		{
			name:  "nested indent",
			input: map[string]any{"user": map[string]any{"name": "Bob"}},
			opts:  []valuetext.Option{valuetext.WithSpaces(2)},
			want:  "{\n  \"user\": {\n    \"name\": \"Bob\"\n  }\n}",
		},
		{
			name:  "string indent unit",
			input: []any{"a", []any{1}},
			opts:  []valuetext.Option{valuetext.WithIndent("\t")},
			want:  "[\n\t\"a\",\n\t[\n\t\t1\n\t]\n]",
		},
		{
			name:  "compact array",
			input: []any{"a", big.NewInt(10)},
			want:  `["a",10]`,
		},
		{
			name:  "spaced array",
			input: []any{"a", big.NewInt(10)},
			opts:  []valuetext.Option{valuetext.WithSpaces(2)},
			want:  "[\n  \"a\",\n  10\n]",
		},
		{
			name:  "nested strings ignore outer quote",
			input: []any{"a"},
			opts:  []valuetext.Option{valuetext.WithStringQuote("'")},
			want:  `["a"]`,
		},
		{
			name:  "nested nullish values",
			input: []any{nil, value.Undefined},
			want:  `[null,undefined]`,
		},
		{
			name:  "go maps enumerate sorted keys",
			input: map[string]any{"b": true, "a": 1.5},
			want:  `{"a":1.5,"b":true}`,
		},
		{
			name:  "typed containers",
			input: map[string][]string{"tags": {"x", "y"}},
			want:  `{"tags":["x","y"]}`,
		},
		{
			name:  "empty containers",
			input: []any{[]any{}, map[string]any{}},
			want:  `[[],{}]`,
		},
		{
			name:  "explicit depth",
			input: []any{1},
			opts:  []valuetext.Option{valuetext.WithSpaces(2), valuetext.WithDepth(0)},
			want:  "[\n    1\n  ]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := valuetext.Serialize(tc.input, tc.opts...); got != tc.want {
				t.Fatalf("serialize mismatch\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestSerializeSpacedMatchesCompactOnceWhitespaceIsRemoved(t *testing.T) {
	input := value.NewObject(
		value.Entry{Key: "list", Value: []any{1, "two", map[string]any{"three": 3}}},
		value.Entry{Key: "flag", Value: false},
	)

	compact := valuetext.Serialize(input)
	spaced := valuetext.Serialize(input, valuetext.WithSpaces(4))

	stripped := strings.NewReplacer("\n", "", "    ", "", ": ", ":").Replace(spaced)
	if stripped != compact {
		t.Fatalf("spaced output does not collapse to compact form\ncompact: %q\nspaced:  %q", compact, spaced)
	}
	if strings.ContainsAny(compact, "\n ") {
		t.Fatalf("compact output contains whitespace: %q", compact)
	}
}

func TestSerializeCircularReferences(t *testing.T) {
	root := map[string]any{}
	root["children"] = []any{map[string]any{"parent": root}}

	got := valuetext.Serialize(root, valuetext.WithSpaces(2))
	want := "{\n  \"children\": [\n    {\n      \"parent\": [object Object]\n    }\n  ]\n}"
	if got != want {
		t.Fatalf("circular serialize mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSerializeSelfContainingArray(t *testing.T) {
	list := make([]any, 2)
	list[0] = "a"
	list[1] = list

	if got := valuetext.Serialize(list); got != `["a",a,]` {
		t.Fatalf("self-containing array mismatch: got %q", got)
	}
}

func TestSerializeFlagsRepeatedSubstructures(t *testing.T) {
	shared := map[string]any{"id": 1}
	input := []any{shared, shared}

	if got := valuetext.Serialize(input); got != `[{"id":1},[object Object]]` {
		t.Fatalf("repeated substructure mismatch: got %q", got)
	}

	visited := valuetext.NewVisited()
	valuetext.SerializeValue(input, valuetext.Options{}, visited)
	if visited.Len() != 2 {
		t.Fatalf("expected two recorded containers, got %d", visited.Len())
	}
}

func TestSerializeFlagsSharedEmptyContainers(t *testing.T) {
	empty := map[string]any{}
	input := value.NewObject(
		value.Entry{Key: "a", Value: empty},
		value.Entry{Key: "b", Value: empty},
	)
	if got := valuetext.Serialize(input); got != `{"a":{},"b":[object Object]}` {
		t.Fatalf("shared empty map mismatch: got %q", got)
	}

	emptyObject := value.NewObject()
	if got := valuetext.Serialize([]any{emptyObject, emptyObject}); got != `[{},[object Object]]` {
		t.Fatalf("shared empty object mismatch: got %q", got)
	}

	if got := valuetext.Serialize([]any{map[string]any{}, map[string]any{}}); got != `[{},{}]` {
		t.Fatalf("distinct empty maps mismatch: got %q", got)
	}
}

func TestSerializeSharedVisitedSetAcrossCalls(t *testing.T) {
	shared := map[string]any{"id": 1}
	visited := valuetext.NewVisited()

	first := valuetext.SerializeObject(shared, valuetext.Options{}, visited)
	second := valuetext.SerializeObject(shared, valuetext.Options{}, visited)
	if first != `{"id":1}` || second != "[object Object]" {
		t.Fatalf("unexpected outputs: %q, %q", first, second)
	}
}

func isOdd(n int) bool { return n%2 == 1 }

func TestSerializePrimitives(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	cases := []struct {
		name  string
		input any
		want  string
	}{
		{name: "bigint", input: big.NewInt(10), want: "10"},
		{name: "huge bigint", input: huge, want: "123456789012345678901234567890"},
		{name: "symbol", input: value.NewSymbol("foo"), want: "Symbol(foo)"},
		{name: "true", input: true, want: "true"},
		{name: "integer float", input: 3.0, want: "3"},
		{name: "fraction", input: 0.1, want: "0.1"},
		{name: "large", input: 1e21, want: "1e+21"},
		{name: "small", input: 1e-7, want: "1e-7"},
		{name: "negative zero", input: math.Copysign(0, -1), want: "0"},
		{name: "nan", input: math.NaN(), want: "NaN"},
		{name: "infinity", input: math.Inf(-1), want: "-Infinity"},
		{name: "uint", input: uint8(7), want: "7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := valuetext.Serialize(tc.input); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}

	fn := valuetext.Serialize(isOdd)
	if !strings.HasPrefix(fn, "func ") || !strings.HasSuffix(fn, ".isOdd") {
		t.Fatalf("unexpected function text %q", fn)
	}
}

func TestToStringArraysAndObjects(t *testing.T) {
	if got := valuetext.ToString([]any{1, nil, "b", []any{2, 3}}); got != "1,,b,2,3" {
		t.Fatalf("array join mismatch: %q", got)
	}
	if got := valuetext.ToString(map[string]any{"a": 1}); got != "[object Object]" {
		t.Fatalf("object text mismatch: %q", got)
	}
	if got := valuetext.ToString(value.Undefined); got != "undefined" {
		t.Fatalf("undefined text mismatch: %q", got)
	}
}
