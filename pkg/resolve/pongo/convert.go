package pongo

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

// copies maps every container handed to pongo2 back to the value it was
// converted from. Filters and raw lookups read through it so they see ordered
// objects and the original reference graph. Entries hold the copy alive until
// released, so a copy's address is never reused while it is registered.
var copies sync.Map // value.Ref -> copyEntry

type copyEntry struct {
	copy     any
	original any
}

// originalOf returns the value v was converted from, or v itself.
func originalOf(v any) any {
	ref, ok := value.Identity(v)
	if !ok {
		return v
	}
	if entry, found := copies.Load(ref); found {
		return entry.(copyEntry).original
	}
	return v
}

// converter turns ordered objects into maps pongo2 can traverse. Each source
// container is converted once, so shared and cyclic references keep their
// shape in the copy.
type converter struct {
	seen map[value.Ref]any
	refs []value.Ref
}

func newConverter() *converter {
	return &converter{seen: make(map[value.Ref]any)}
}

// release forgets every copy registered by c.
func (c *converter) release() {
	for _, ref := range c.refs {
		copies.Delete(ref)
	}
	c.refs = nil
}

func (c *converter) context(scope map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(scope))
	for key, item := range scope {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = c.convert(item)
	}
	return out
}

func (c *converter) convert(item any) any {
	if isCallable(item) {
		return item
	}
	switch typed := item.(type) {
	case *value.Object:
		if typed == nil {
			return nil
		}
		if done, ok := c.lookup(typed); ok {
			return done
		}
		out := make(map[string]any, typed.Len())
		c.remember(typed, out)
		typed.Range(func(key string, v any) bool {
			out[key] = c.convert(v)
			return true
		})
		return out
	case map[string]any:
		if typed == nil {
			return typed
		}
		if done, ok := c.lookup(typed); ok {
			return done
		}
		out := make(map[string]any, len(typed))
		c.remember(typed, out)
		for key, v := range typed {
			out[key] = c.convert(v)
		}
		return out
	case []any:
		if typed == nil {
			return typed
		}
		if done, ok := c.lookup(typed); ok {
			return done
		}
		out := make([]any, len(typed))
		c.remember(typed, out)
		for i, v := range typed {
			out[i] = c.convert(v)
		}
		return out
	default:
		return item
	}
}

func (c *converter) lookup(source any) (any, bool) {
	ref, ok := value.Identity(source)
	if !ok {
		return nil, false
	}
	done, found := c.seen[ref]
	return done, found
}

func (c *converter) remember(source, copied any) {
	if ref, ok := value.Identity(source); ok {
		c.seen[ref] = copied
	}
	if ref, ok := value.Identity(copied); ok {
		copies.Store(ref, copyEntry{copy: copied, original: source})
		c.refs = append(c.refs, ref)
	}
}
