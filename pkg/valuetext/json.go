package valuetext

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

// maxGapLength caps the JSON indent unit.
const maxGapLength = 10

var (
	// ErrCircular reports a container that contains itself in JSON mode.
	ErrCircular = errors.New("valuetext: converting circular structure to JSON")
	// ErrBigInt reports a *big.Int in JSON mode, which has no JSON number form.
	ErrBigInt = errors.New("valuetext: do not know how to serialize a BigInt")
)

// StringifyJSON runs the strict JSON pass using the Replacer, ReplacerKeys
// and Space settings of opts. Undefined values, functions and symbols are
// dropped from objects and written as null inside arrays; non-finite numbers
// become null. A top-level value with no JSON form yields an empty string.
func StringifyJSON(v any, opts Options) (string, error) {
	w := &jsonWriter{
		replacer: opts.Replacer,
		stack:    make(map[value.Ref]bool),
	}
	if opts.ReplacerKeys != nil {
		w.allow = opts.ReplacerKeys
	}
	if opts.Space != nil {
		w.gap = truncateRunes(*opts.Space, maxGapLength)
	}

	text, ok, err := w.property("", v, "")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return text, nil
}

type jsonWriter struct {
	replacer ReplacerFunc
	allow    []string
	gap      string
	stack    map[value.Ref]bool
}

// property renders one member value. The boolean is false when the value has
// no JSON form and must be skipped by the caller.
func (w *jsonWriter) property(key string, v any, indent string) (string, bool, error) {
	if w.replacer != nil {
		v = w.replacer(key, v)
	}

	switch value.KindOf(v) {
	case value.KindNull:
		return "null", true, nil
	case value.KindBool:
		return strconv.FormatBool(v.(bool)), true, nil
	case value.KindString:
		return quoteJSON(v.(string)), true, nil
	case value.KindNumber:
		return jsonNumber(v), true, nil
	case value.KindBigInt:
		return "", false, ErrBigInt
	case value.KindArray:
		text, err := w.array(v, indent)
		return text, err == nil, err
	case value.KindObject:
		text, err := w.object(v, indent)
		return text, err == nil, err
	case value.KindUndefined, value.KindFunc, value.KindSymbol:
		return "", false, nil
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return "", false, fmt.Errorf("valuetext: marshal %T: %w", v, err)
	}
	return string(encoded), true, nil
}

func (w *jsonWriter) enter(v any) (func(), error) {
	ref, ok := value.Identity(v)
	if !ok {
		return func() {}, nil
	}
	if w.stack[ref] {
		return nil, ErrCircular
	}
	w.stack[ref] = true
	return func() { delete(w.stack, ref) }, nil
}

func (w *jsonWriter) array(v any, stepback string) (string, error) {
	leave, err := w.enter(v)
	if err != nil {
		return "", err
	}
	defer leave()

	indent := stepback + w.gap
	items, _ := value.AsArray(v)
	parts := make([]string, 0, len(items))
	for i, item := range items {
		text, ok, err := w.property(strconv.Itoa(i), item, indent)
		if err != nil {
			return "", err
		}
		if !ok {
			text = "null"
		}
		parts = append(parts, text)
	}
	return w.wrap("[", "]", parts, indent, stepback), nil
}

func (w *jsonWriter) object(v any, stepback string) (string, error) {
	leave, err := w.enter(v)
	if err != nil {
		return "", err
	}
	defer leave()

	indent := stepback + w.gap
	keys := w.allow
	if keys == nil {
		keys, _ = value.Keys(v)
	}

	separator := ":"
	if w.gap != "" {
		separator = ": "
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		item, found := value.Lookup(v, key)
		if !found {
			continue
		}
		text, ok, err := w.property(key, item, indent)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		parts = append(parts, quoteJSON(key)+separator+text)
	}
	return w.wrap("{", "}", parts, indent, stepback), nil
}

func (w *jsonWriter) wrap(open, closing string, parts []string, indent, stepback string) string {
	if len(parts) == 0 {
		return open + closing
	}
	if w.gap == "" {
		return open + strings.Join(parts, ",") + closing
	}
	return open + "\n" + indent + strings.Join(parts, ",\n"+indent) + "\n" + stepback + closing
}

func jsonNumber(v any) string {
	switch typed := v.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return "null"
		}
	case float32:
		f := float64(typed)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "null"
		}
	case *big.Int:
		return typed.String()
	}
	return ToString(v)
}

// quoteJSON quotes s as a JSON string without HTML escaping.
func quoteJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20:
			fmt.Fprintf(&b, `\u%04x`, r)
		case r == utf8.RuneError && size == 1:
			b.WriteString("\ufffd")
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
