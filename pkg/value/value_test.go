package value_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

func TestKindOf(t *testing.T) {
	var nilMap map[string]string
	cases := []struct {
		name  string
		input any
		want  value.Kind
	}{
		{name: "nil", input: nil, want: value.KindNull},
		{name: "undefined", input: value.Undefined, want: value.KindUndefined},
		{name: "bool", input: true, want: value.KindBool},
		{name: "int", input: 3, want: value.KindNumber},
		{name: "float", input: 1.5, want: value.KindNumber},
		{name: "bigint", input: big.NewInt(10), want: value.KindBigInt},
		{name: "string", input: "hi", want: value.KindString},
		{name: "symbol", input: value.NewSymbol("foo"), want: value.KindSymbol},
		{name: "func", input: func() {}, want: value.KindFunc},
		{name: "array", input: []any{1}, want: value.KindArray},
		{name: "typed slice", input: []string{"a"}, want: value.KindArray},
		{name: "map", input: map[string]any{}, want: value.KindObject},
		{name: "typed map", input: nilMap, want: value.KindObject},
		{name: "object", input: value.NewObject(), want: value.KindObject},
		{name: "int keyed map", input: map[int]string{}, want: value.KindOther},
		{name: "struct", input: struct{}{}, want: value.KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := value.KindOf(tc.input); got != tc.want {
				t.Fatalf("kind mismatch: want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLookupFindsPropertiesHoldingNil(t *testing.T) {
	source := map[string]any{"value": nil}
	if _, ok := value.Lookup(source, "value"); !ok {
		t.Fatalf("expected nil property to be found")
	}
	if _, ok := value.Lookup(source, "name"); ok {
		t.Fatalf("expected missing property to be reported absent")
	}
	if _, ok := value.Lookup([]any{"value"}, "value"); ok {
		t.Fatalf("arrays have no named properties")
	}

	typed := map[string]string{"id": "s"}
	got, ok := value.Lookup(typed, "id")
	if !ok || got != "s" {
		t.Fatalf("typed map lookup: got %v (%v)", got, ok)
	}
}

func TestKeysSortsGoMapsAndKeepsObjectOrder(t *testing.T) {
	keys, ok := value.Keys(map[string]any{"b": 1, "a": 2, "c": 3})
	if !ok {
		t.Fatalf("expected map keys")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, keys); diff != "" {
		t.Fatalf("map keys mismatch (-want +got):\n%s", diff)
	}

	obj := value.NewObject(
		value.Entry{Key: "z", Value: 1},
		value.Entry{Key: "a", Value: 2},
	)
	obj.Set("m", 3)
	obj.Set("z", 4)
	if diff := cmp.Diff([]string{"z", "a", "m"}, obj.Keys()); diff != "" {
		t.Fatalf("object keys mismatch (-want +got):\n%s", diff)
	}
	if got, _ := obj.Get("z"); got != 4 {
		t.Fatalf("expected overwritten value 4, got %v", got)
	}

	if !obj.Delete("a") || obj.Has("a") {
		t.Fatalf("expected a to be deleted")
	}
	if diff := cmp.Diff([]string{"z", "m"}, obj.Keys()); diff != "" {
		t.Fatalf("keys after delete mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentity(t *testing.T) {
	shared := map[string]any{"x": 1}
	a, ok := value.Identity(shared)
	if !ok {
		t.Fatalf("expected map identity")
	}
	b, _ := value.Identity(shared)
	if a != b {
		t.Fatalf("same map should share identity")
	}

	other, _ := value.Identity(map[string]any{"x": 1})
	if a == other {
		t.Fatalf("equal but distinct maps should not share identity")
	}

	empty := map[string]any{}
	e1, ok := value.Identity(empty)
	if !ok {
		t.Fatalf("empty maps carry identity")
	}
	if e2, _ := value.Identity(map[string]any{}); e1 == e2 {
		t.Fatalf("distinct empty maps should not share identity")
	}

	if _, ok := value.Identity([]any{}); ok {
		t.Fatalf("empty slices carry no identity")
	}
	if _, ok := value.Identity("text"); ok {
		t.Fatalf("strings carry no identity")
	}
}

func TestDecodeJSONKeepsOrderAndBigIntegers(t *testing.T) {
	got, err := value.DecodeJSON([]byte(`{"tag":"p","big":123456789012345678901,"n":1.5,"list":[true,null,"x"]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	obj, ok := got.(*value.Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", got)
	}
	if diff := cmp.Diff([]string{"tag", "big", "n", "list"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	bigValue, _ := obj.Get("big")
	if i, ok := bigValue.(*big.Int); !ok || i.String() != "123456789012345678901" {
		t.Fatalf("expected big integer, got %T %v", bigValue, bigValue)
	}

	list, _ := obj.Get("list")
	if diff := cmp.Diff([]any{true, nil, "x"}, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	encoded, err := obj.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"tag":"p","big":123456789012345678901,"n":1.5,"list":[true,null,"x"]}`
	if string(encoded) != want {
		t.Fatalf("marshal mismatch\nwant: %s\n got: %s", want, encoded)
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	if _, err := value.DecodeJSON([]byte(`{} {}`)); err == nil {
		t.Fatalf("expected trailing data error")
	}
}

func TestDecodeYAML(t *testing.T) {
	src := []byte(`
base: &base
  class: card
element:
  tag: section
  attributes:
    <<: *base
    id: main
  content:
    - Hello
    - 42
    - 1.25
    - true
    - ~
    - 123456789012345678901234
`)
	got, err := value.DecodeYAML(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	root := got.(*value.Object)
	if diff := cmp.Diff([]string{"base", "element"}, root.Keys()); diff != "" {
		t.Fatalf("root keys mismatch (-want +got):\n%s", diff)
	}

	element, _ := root.Get("element")
	attrs, _ := value.Lookup(element, "attributes")
	attrObj := attrs.(*value.Object)
	if diff := cmp.Diff([]string{"id", "class"}, attrObj.Keys()); diff != "" {
		t.Fatalf("merged keys mismatch (-want +got):\n%s", diff)
	}

	content, _ := value.Lookup(element, "content")
	items := content.([]any)
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}
	if items[0] != "Hello" || items[1] != int64(42) || items[2] != 1.25 || items[3] != true || items[4] != nil {
		t.Fatalf("unexpected scalars: %#v", items[:5])
	}
	if i, ok := items[5].(*big.Int); !ok || i.String() != "123456789012345678901234" {
		t.Fatalf("expected big integer, got %T", items[5])
	}
}

func TestDecodeYAMLEmptyDocument(t *testing.T) {
	got, err := value.DecodeYAML(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty document, got %#v", got)
	}
}
