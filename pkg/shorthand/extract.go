package shorthand

import (
	"github.com/goliatone/go-domtemplate/pkg/value"
	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

type rule struct {
	name  string
	match func(source any) bool
	build func(source any) Node
}

// rules is evaluated in order; set in init because the builders recurse back
// into Extract.
var rules []rule

func init() {
	rules = []rule{
		{name: "fragment", match: value.IsArray, build: arrayFragment},
		{name: "element", match: hasProperties("tag"), build: element},
		{name: "attribute", match: hasProperties("name", "value"), build: attribute},
		{name: "cdata", match: hasProperties("cData"), build: cData},
		{name: "comment", match: hasProperties("comment"), build: comment},
		{name: "processing-instruction", match: hasProperties("target", "data"), build: processingInstruction},
		{name: "content-fragment", match: hasArrayProperty("content"), build: contentFragment},
	}
}

// Extract classifies source. The boolean is false when source matches no rule.
func Extract(source any) (Node, bool) {
	for _, r := range rules {
		if r.match(source) {
			return r.build(source), true
		}
	}
	if text, ok := source.(string); ok {
		return Text(text), true
	}
	return nil, false
}

// Classify names the rule Extract would apply to source.
func Classify(source any) (string, bool) {
	for _, r := range rules {
		if r.match(source) {
			return r.name, true
		}
	}
	if _, ok := source.(string); ok {
		return "text", true
	}
	return "", false
}

// ExtractContent extracts every item and drops the ones with no shorthand,
// keeping the order of the rest.
func ExtractContent(items []any) []Node {
	out := make([]Node, 0, len(items))
	for _, item := range items {
		if node, ok := Extract(item); ok {
			out = append(out, node)
		}
	}
	return out
}

// ExtractAttributes stringifies every property of an object. Arrays and
// non-object values yield an empty map.
func ExtractAttributes(source any) map[string]string {
	keys, ok := value.Keys(source)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		item, _ := value.Lookup(source, key)
		out[key] = Stringify(item)
	}
	return out
}

// Stringify renders objects and arrays as compact JSON and every other value
// through valuetext.ToString.
func Stringify(source any) string {
	switch value.KindOf(source) {
	case value.KindArray, value.KindObject:
		return valuetext.SerializeValue(source, valuetext.Options{ViaJSON: true}, nil)
	default:
		return valuetext.ToString(source)
	}
}

func hasProperties(keys ...string) func(any) bool {
	return func(source any) bool {
		if !value.IsObject(source) {
			return false
		}
		for _, key := range keys {
			if !value.Has(source, key) {
				return false
			}
		}
		return true
	}
}

func hasArrayProperty(key string) func(any) bool {
	return func(source any) bool {
		if !value.IsObject(source) {
			return false
		}
		item, ok := value.Lookup(source, key)
		return ok && value.IsArray(item)
	}
}

func arrayFragment(source any) Node {
	items, _ := value.AsArray(source)
	return Fragment{Content: ExtractContent(items)}
}

func contentFragment(source any) Node {
	item, _ := value.Lookup(source, "content")
	items, _ := value.AsArray(item)
	return Fragment{Content: ExtractContent(items)}
}

func element(source any) Node {
	tag, _ := value.Lookup(source, "tag")
	out := Element{Tag: valuetext.ToString(tag)}
	if attrs, ok := value.Lookup(source, "attributes"); ok {
		out.Attributes = ExtractAttributes(attrs)
	}
	if content, ok := value.Lookup(source, "content"); ok {
		if items, ok := value.AsArray(content); ok {
			out.Content = ExtractContent(items)
		}
	}
	return out
}

func attribute(source any) Node {
	name, _ := value.Lookup(source, "name")
	raw, _ := value.Lookup(source, "value")
	out := Attribute{Name: valuetext.ToString(name)}
	if !value.IsNullish(raw) {
		text := valuetext.ToString(raw)
		out.Value = &text
	}
	return out
}

func cData(source any) Node {
	raw, _ := value.Lookup(source, "cData")
	return CData{CData: Stringify(raw)}
}

func comment(source any) Node {
	raw, _ := value.Lookup(source, "comment")
	return Comment{Comment: Stringify(raw)}
}

func processingInstruction(source any) Node {
	target, _ := value.Lookup(source, "target")
	data, _ := value.Lookup(source, "data")
	return ProcessingInstruction{
		Target: valuetext.ToString(target),
		Data:   Stringify(data),
	}
}
