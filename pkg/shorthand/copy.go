package shorthand

import (
	"github.com/goliatone/go-domtemplate/pkg/value"
)

// OmitProperties copies the properties of source except the excluded keys.
// Non-object input yields an empty object.
func OmitProperties(source any, exclusions []string) *value.Object {
	out := value.NewObject()
	keys, ok := value.Keys(source)
	if !ok {
		return out
	}
	skip := make(map[string]struct{}, len(exclusions))
	for _, key := range exclusions {
		skip[key] = struct{}{}
	}
	for _, key := range keys {
		if _, excluded := skip[key]; excluded {
			continue
		}
		item, _ := value.Lookup(source, key)
		out.Set(key, item)
	}
	return out
}

// OmitNestedAttributes copies a shorthand template with the excluded
// attributes removed from it and from every node in its content. Arrays are
// copied item by item; other values are returned unchanged.
func OmitNestedAttributes(source any, exclusions []string) any {
	if items, ok := value.AsArray(source); ok {
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = OmitNestedAttributes(item, exclusions)
		}
		return out
	}

	keys, ok := value.Keys(source)
	if !ok {
		return source
	}

	out := value.NewObject()
	for _, key := range keys {
		item, _ := value.Lookup(source, key)
		switch key {
		case "attributes":
			item = OmitProperties(item, exclusions)
		case "content":
			if items, ok := value.AsArray(item); ok {
				copied := make([]any, len(items))
				for i, child := range items {
					copied[i] = OmitNestedAttributes(child, exclusions)
				}
				item = copied
			}
		}
		out.Set(key, item)
	}
	return out
}

// CloneNamed copies an element template for reuse: every nested "id"
// attribute is dropped so the copy does not clash with the original, then the
// supplied attributes are merged over the copy's root attributes.
func CloneNamed(source any, attributes any) any {
	copied := OmitNestedAttributes(source, []string{"id"})
	obj, ok := copied.(*value.Object)
	if !ok || !obj.Has("tag") || !value.IsObject(attributes) {
		return copied
	}

	current, _ := obj.Get("attributes")
	merged, ok := current.(*value.Object)
	if !ok {
		merged = value.NewObject()
	}
	keys, _ := value.Keys(attributes)
	for _, key := range keys {
		item, _ := value.Lookup(attributes, key)
		merged.Set(key, item)
	}
	obj.Set("attributes", merged)
	return obj
}
