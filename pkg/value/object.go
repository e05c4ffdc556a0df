package value

import (
	"bytes"
	"encoding/json"
)

// Entry is a single key/value pair of an Object.
type Entry struct {
	Key   string
	Value any
}

// Object is a string-keyed map that remembers insertion order. Methods are
// safe to call on a nil *Object, which behaves as an empty, read-only object.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject builds an object from entries, keeping their order. Later entries
// overwrite earlier ones with the same key without moving them.
func NewObject(entries ...Entry) *Object {
	obj := &Object{values: make(map[string]any, len(entries))}
	for _, entry := range entries {
		obj.Set(entry.Key, entry.Value)
	}
	return obj
}

// ObjectFromMap copies a Go map into an Object with keys in sorted order.
func ObjectFromMap(source map[string]any) *Object {
	keys, _ := Keys(source)
	obj := &Object{values: make(map[string]any, len(keys))}
	for _, key := range keys {
		obj.Set(key, source[key])
	}
	return obj
}

// Set stores value under key, appending the key when it is new.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

// Has reports whether key is defined.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	for i, existing := range o.keys {
		if existing == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns a copy of the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (o *Object) Range(fn func(key string, value any) bool) {
	if o == nil {
		return
	}
	for _, key := range o.keys {
		if !fn(key, o.values[key]) {
			return
		}
	}
}

// Entries returns the entries in insertion order.
func (o *Object) Entries() []Entry {
	if o == nil {
		return nil
	}
	out := make([]Entry, 0, len(o.keys))
	for _, key := range o.keys {
		out = append(out, Entry{Key: key, Value: o.values[key]})
	}
	return out
}

// Clone returns a shallow copy.
func (o *Object) Clone() *Object {
	return NewObject(o.Entries()...)
}

// Map returns a shallow copy as a plain Go map.
func (o *Object) Map() map[string]any {
	out := make(map[string]any, o.Len())
	o.Range(func(key string, value any) bool {
		out[key] = value
		return true
	})
	return out
}

// MarshalJSON encodes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedValue, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
