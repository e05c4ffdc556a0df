package value

import "reflect"

// Ref identifies a container by reference rather than by content.
type Ref struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// Identity returns the reference identity of an array or object value.
// Every non-nil map has one, empty or not. Scalars, Go arrays (copied by
// value) and zero-length slices have none: zero-length slices may share one
// base pointer, so their pointer says nothing about which value they are.
func Identity(v any) (Ref, bool) {
	if obj, ok := v.(*Object); ok {
		if obj == nil {
			return Ref{}, false
		}
		return Ref{typ: reflect.TypeOf(obj), ptr: reflect.ValueOf(obj).Pointer()}, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return Ref{}, false
		}
		return Ref{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return Ref{}, false
		}
		return Ref{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	case reflect.Pointer:
		if rv.IsNil() {
			return Ref{}, false
		}
		return Ref{typ: rv.Type(), ptr: rv.Pointer()}, true
	}
	return Ref{}, false
}
