// Package value describes the untyped data handled by the text serializer and
// the shorthand extractor. Values are plain Go `any` trees: nil (null),
// Undefined, booleans, numbers (every integer and float kind plus *big.Int),
// strings, Symbol identifiers, functions, arrays (any slice or array kind) and
// objects (`map[string]T` or the insertion-ordered *Object).
//
// Go maps carry no enumeration order, so Keys reports their keys sorted. Use
// *Object (and the DecodeJSON/DecodeYAML helpers that produce it) when the
// authored key order must survive into serialized text.
package value
