package shorthand

import (
	"sort"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

// ToValue converts a node back into the untyped shorthand it describes.
// Attribute maps are written with sorted keys.
func ToValue(node Node) any {
	switch typed := node.(type) {
	case Text:
		return string(typed)
	case Element:
		out := value.NewObject(value.Entry{Key: "tag", Value: typed.Tag})
		if typed.Attributes != nil {
			out.Set("attributes", attributesValue(typed.Attributes))
		}
		if typed.Content != nil {
			out.Set("content", contentValue(typed.Content))
		}
		return out
	case Attribute:
		var raw any
		if typed.Value != nil {
			raw = *typed.Value
		}
		return value.NewObject(
			value.Entry{Key: "name", Value: typed.Name},
			value.Entry{Key: "value", Value: raw},
		)
	case CData:
		return value.NewObject(value.Entry{Key: "cData", Value: typed.CData})
	case Comment:
		return value.NewObject(value.Entry{Key: "comment", Value: typed.Comment})
	case ProcessingInstruction:
		return value.NewObject(
			value.Entry{Key: "target", Value: typed.Target},
			value.Entry{Key: "data", Value: typed.Data},
		)
	case Fragment:
		return value.NewObject(value.Entry{Key: "content", Value: contentValue(typed.Content)})
	}
	return nil
}

func attributesValue(attrs map[string]string) *value.Object {
	keys := SortedKeys(attrs)
	out := value.NewObject()
	for _, key := range keys {
		out.Set(key, attrs[key])
	}
	return out
}

func contentValue(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, ToValue(node))
	}
	return out
}

// SortedKeys returns the attribute names in lexical order.
func SortedKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Walk visits node and its content depth first. Returning false from fn skips
// the children of the node just visited.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Children returns the content of elements and fragments.
func Children(node Node) []Node {
	switch typed := node.(type) {
	case Element:
		return typed.Content
	case Fragment:
		return typed.Content
	}
	return nil
}
