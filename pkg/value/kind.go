package value

import (
	"encoding/json"
	"math/big"
	"reflect"
	"sort"
)

// Kind classifies a value by its structural shape.
type Kind int

const (
	KindOther Kind = iota
	KindNull
	KindUndefined
	KindBool
	KindNumber
	KindBigInt
	KindString
	KindSymbol
	KindFunc
	KindArray
	KindObject
)

var kindNames = map[Kind]string{
	KindOther:     "other",
	KindNull:      "null",
	KindUndefined: "undefined",
	KindBool:      "boolean",
	KindNumber:    "number",
	KindBigInt:    "bigint",
	KindString:    "string",
	KindSymbol:    "symbol",
	KindFunc:      "function",
	KindArray:     "array",
	KindObject:    "object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a value that was never assigned. It is distinct from nil,
// which stands for an explicit null.
var Undefined any = undefined{}

// Symbol is an opaque identifier that only compares equal to itself.
type Symbol struct {
	desc *string
}

// NewSymbol creates a unique symbol carrying the supplied description.
func NewSymbol(description string) Symbol {
	return Symbol{desc: &description}
}

// Description returns the text the symbol was created with.
func (s Symbol) Description() string {
	if s.desc == nil {
		return ""
	}
	return *s.desc
}

func (s Symbol) String() string {
	return "Symbol(" + s.Description() + ")"
}

// KindOf reports the structural kind of v.
func KindOf(v any) Kind {
	switch typed := v.(type) {
	case nil:
		return KindNull
	case undefined:
		return KindUndefined
	case bool:
		return KindBool
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr, float32, float64, json.Number:
		return KindNumber
	case *big.Int:
		if typed == nil {
			return KindNull
		}
		return KindBigInt
	case Symbol:
		return KindSymbol
	case *Object:
		if typed == nil {
			return KindNull
		}
		return KindObject
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if rv.IsNil() {
			return KindNull
		}
		return KindFunc
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
	}
	return KindOther
}

// IsNullish reports whether v is nil or Undefined.
func IsNullish(v any) bool {
	kind := KindOf(v)
	return kind == KindNull || kind == KindUndefined
}

// AsArray returns the elements of an array value. Slices other than []any are
// copied into a fresh []any.
func AsArray(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	if KindOf(v) != KindArray {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// IsArray reports whether v is an array value.
func IsArray(v any) bool {
	return KindOf(v) == KindArray
}

// IsObject reports whether v is a keyed object (never an array).
func IsObject(v any) bool {
	return KindOf(v) == KindObject
}

// Keys returns the enumerable keys of an object value in enumeration order.
func Keys(v any) ([]string, bool) {
	switch typed := v.(type) {
	case *Object:
		if typed == nil {
			return nil, false
		}
		return typed.Keys(), true
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys, true
	}
	if KindOf(v) != KindObject {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	return keys, true
}

// Lookup returns the property stored under key. The boolean reports whether
// the property exists, so a property holding nil is still found.
func Lookup(v any, key string) (any, bool) {
	switch typed := v.(type) {
	case *Object:
		return typed.Get(key)
	case map[string]any:
		value, ok := typed[key]
		return value, ok
	}
	if KindOf(v) != KindObject {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	kv := reflect.ValueOf(key).Convert(rv.Type().Key())
	found := rv.MapIndex(kv)
	if !found.IsValid() {
		return nil, false
	}
	return found.Interface(), true
}

// Has reports whether the object value v defines key.
func Has(v any, key string) bool {
	_, ok := Lookup(v, key)
	return ok
}
