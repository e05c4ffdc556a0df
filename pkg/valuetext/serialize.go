package valuetext

import (
	"strings"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

const nestedQuote = `"`

// Serialize renders v using a fresh visited set.
func Serialize(v any, opts ...Option) string {
	return SerializeValue(v, NewOptions(opts...), nil)
}

// SerializeValue renders v as text. A nil visited set starts a new one.
func SerializeValue(v any, opts Options, visited *Visited) string {
	if opts.ViaJSON {
		text, err := StringifyJSON(v, opts)
		if err != nil {
			return err.Error()
		}
		return text
	}

	switch value.KindOf(v) {
	case value.KindString:
		text := v.(string)
		if opts.StringQuote != nil {
			return *opts.StringQuote + text + *opts.StringQuote
		}
		return text
	case value.KindNull, value.KindUndefined:
		if opts.NullishText != nil {
			return *opts.NullishText
		}
		return ToString(v)
	case value.KindArray, value.KindObject:
		if visited == nil {
			visited = NewVisited()
		}
		return SerializeObject(v, opts, visited)
	default:
		return ToString(v)
	}
}

// SerializeObject renders an array or object. A container already in visited
// renders through ToString instead of being entered again.
//
// The first nesting level is depth 0 and is indented by one unit; each level
// below adds one more. Nested strings and keys are always double quoted.
func SerializeObject(source any, opts Options, visited *Visited) string {
	if visited == nil {
		visited = NewVisited()
	}
	if visited.Has(source) {
		return ToString(source)
	}
	visited.Add(source)

	depth := 0
	if opts.Depth != nil {
		depth = *opts.Depth + 1
	}
	quote := nestedQuote
	child := Options{
		StringQuote: &quote,
		Space:       opts.Space,
		Depth:       &depth,
	}

	var propertyOffset, closingOffset, valueGap string
	if opts.Space != nil {
		propertyOffset = "\n" + strings.Repeat(*opts.Space, depth+1)
		closingOffset = "\n" + strings.Repeat(*opts.Space, depth)
		valueGap = " "
	}

	var b strings.Builder
	if items, ok := value.AsArray(source); ok {
		b.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(propertyOffset)
			b.WriteString(SerializeValue(item, child, visited))
		}
		b.WriteString(closingOffset)
		b.WriteByte(']')
		return b.String()
	}

	keys, _ := value.Keys(source)
	b.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		item, _ := value.Lookup(source, key)
		b.WriteString(propertyOffset)
		b.WriteString(`"` + key + `":`)
		b.WriteString(valueGap)
		b.WriteString(SerializeValue(item, child, visited))
	}
	b.WriteString(closingOffset)
	b.WriteByte('}')
	return b.String()
}
