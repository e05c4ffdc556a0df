package valuetext

import (
	"math"
	"strings"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

// ReplacerFunc rewrites a property before it is written in JSON mode. It runs
// with an empty key for the top-level value.
type ReplacerFunc func(key string, value any) any

// Options alters how a value is converted to text. Nil pointer fields are
// unset; the zero value renders compact, unquoted text.
type Options struct {
	// NullishText replaces the rendering of nil and Undefined.
	NullishText *string
	// StringQuote wraps top-level string values on both sides.
	StringQuote *string
	// ViaJSON delegates to the strict JSON pass.
	ViaJSON bool
	// Replacer and ReplacerKeys only apply in JSON mode.
	Replacer     ReplacerFunc
	ReplacerKeys []string
	// Space is the indent unit repeated once per nesting level.
	Space *string
	// Depth is the nesting level of the enclosing container. Callers normally
	// leave it unset.
	Depth *int
}

// Option configures Options.
type Option func(*Options)

// NewOptions applies opts to the zero Options.
func NewOptions(opts ...Option) Options {
	var out Options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&out)
	}
	return out
}

// WithNullishText sets the literal used for nil and Undefined.
func WithNullishText(text string) Option {
	return func(o *Options) {
		o.NullishText = &text
	}
}

// WithStringQuote wraps top-level strings in quote.
func WithStringQuote(quote string) Option {
	return func(o *Options) {
		o.StringQuote = &quote
	}
}

// WithJSON switches to the strict JSON pass.
func WithJSON() Option {
	return func(o *Options) {
		o.ViaJSON = true
	}
}

// WithReplacer registers a JSON mode replacer function.
func WithReplacer(fn ReplacerFunc) Option {
	return func(o *Options) {
		o.Replacer = fn
	}
}

// WithReplacerKeys limits JSON mode object properties to keys, in that order.
func WithReplacerKeys(keys ...string) Option {
	return func(o *Options) {
		o.ReplacerKeys = append([]string{}, keys...)
	}
}

// WithSpaces indents each nesting level by n spaces.
func WithSpaces(n int) Option {
	if n < 0 {
		n = 0
	}
	return WithIndent(strings.Repeat(" ", n))
}

// WithIndent indents each nesting level with unit.
func WithIndent(unit string) Option {
	return func(o *Options) {
		o.Space = &unit
	}
}

// WithDepth sets the nesting level of the enclosing container.
func WithDepth(depth int) Option {
	return func(o *Options) {
		o.Depth = &depth
	}
}

// OptionsFromMap binds an already resolved option map using the keys
// nullishText, stringQuote, viaJSON, replacer, space and depth. Any non-null
// viaJSON value enables JSON mode. A numeric space means that many spaces, a
// string space is used literally. Unknown keys and non-object input are
// ignored.
func OptionsFromMap(source any) Options {
	var out Options
	if !value.IsObject(source) {
		return out
	}

	if raw, ok := value.Lookup(source, "nullishText"); ok && !value.IsNullish(raw) {
		text := ToString(raw)
		out.NullishText = &text
	}
	if raw, ok := value.Lookup(source, "stringQuote"); ok && !value.IsNullish(raw) {
		quote := ToString(raw)
		out.StringQuote = &quote
	}
	if raw, ok := value.Lookup(source, "viaJSON"); ok && !value.IsNullish(raw) {
		out.ViaJSON = true
	}
	if raw, ok := value.Lookup(source, "replacer"); ok {
		switch typed := raw.(type) {
		case ReplacerFunc:
			out.Replacer = typed
		case func(string, any) any:
			out.Replacer = typed
		default:
			if items, ok := value.AsArray(raw); ok {
				keys := make([]string, 0, len(items))
				for _, item := range items {
					switch value.KindOf(item) {
					case value.KindString, value.KindNumber:
						keys = append(keys, ToString(item))
					}
				}
				out.ReplacerKeys = keys
			}
		}
	}
	if raw, ok := value.Lookup(source, "space"); ok {
		switch value.KindOf(raw) {
		case value.KindString:
			unit := ToString(raw)
			out.Space = &unit
		case value.KindNumber:
			if n, ok := toInt(raw); ok {
				WithSpaces(n)(&out)
			}
		}
	}
	if raw, ok := value.Lookup(source, "depth"); ok {
		if n, ok := toInt(raw); ok {
			out.Depth = &n
		}
	}
	return out
}

func toInt(v any) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, true
	case int8:
		return int(typed), true
	case int16:
		return int(typed), true
	case int32:
		return int(typed), true
	case int64:
		return int(typed), true
	case uint:
		return int(typed), true
	case uint8:
		return int(typed), true
	case uint16:
		return int(typed), true
	case uint32:
		return int(typed), true
	case uint64:
		return int(typed), true
	case float32:
		return floatToInt(float64(typed))
	case float64:
		return floatToInt(typed)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
