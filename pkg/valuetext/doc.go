// Package valuetext converts untyped values into display text.
//
// The default walker renders arrays and objects in a JSON-like layout with
// optional indentation, always double quoting keys and nested strings, while
// top-level strings keep the caller's quoting choice. Objects met a second time
// during one call render through their generic string form instead of being
// descended again, which keeps cyclic graphs finite. JSON mode delegates to a
// strict JSON pass and reports its failures as the returned text.
//
// Neither mode returns an error: every input has a textual rendering.
package valuetext
