// Package resolve defines the seam between template resolution and the
// shorthand pipeline. Resolvers turn a template plus a scope into an already
// resolved value; the shorthand extractor and text serializer never interpret
// template markers themselves.
package resolve

import (
	"context"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

// Context holds the named values a template is resolved against.
type Context map[string]any

// Resolver resolves template values against a scope.
type Resolver interface {
	ResolveValue(ctx context.Context, template any, scope Context) (any, error)
	// LocalScope derives a child scope whose writes do not reach parent.
	LocalScope(parent Context) Context
}

// Passthrough treats every template as already resolved.
type Passthrough struct{}

var _ Resolver = Passthrough{}

// ResolveValue returns template unchanged.
func (Passthrough) ResolveValue(ctx context.Context, template any, _ Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return template, nil
}

// LocalScope returns a shallow copy of parent.
func (Passthrough) LocalScope(parent Context) Context {
	return Clone(parent)
}

// Clone returns a shallow copy of scope. The result is never nil.
func Clone(scope Context) Context {
	out := make(Context, len(scope))
	for key, item := range scope {
		out[key] = item
	}
	return out
}

// ValueMap copies an object value into a plain map. Other values yield nil.
func ValueMap(source any) map[string]any {
	keys, ok := value.Keys(source)
	if !ok {
		return nil
	}
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		out[key], _ = value.Lookup(source, key)
	}
	return out
}
