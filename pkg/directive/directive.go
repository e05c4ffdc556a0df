// Package directive provides template directives that external resolvers can
// dispatch to, such as value-to-text conversion and element duplication.
package directive

import (
	"context"

	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/value"
)

// Directive computes a value from its parameters within a scope.
type Directive interface {
	Execute(ctx context.Context, params map[string]any, scope resolve.Context, r resolve.Resolver) (any, error)
}

// Names used by Defaults.
const (
	ValueTextName        = "valueText"
	WrappedValueTextName = "wrappedValueText"
	CopyContentName      = "copyContent"
	MarkupContentName    = "markupContent"
)

// Defaults returns a fresh set of the built-in directives keyed by name.
func Defaults() map[string]Directive {
	return map[string]Directive{
		ValueTextName:        ValueText{},
		WrappedValueTextName: WrappedValueText{},
		CopyContentName:      ContentDuplication{},
		MarkupContentName:    MarkupContent{},
	}
}

// param returns the named parameter, or value.Undefined when it is missing.
func param(params map[string]any, name string) any {
	if item, ok := params[name]; ok {
		return item
	}
	return value.Undefined
}

func resolveParam(ctx context.Context, params map[string]any, name string, scope resolve.Context, r resolve.Resolver) (any, error) {
	raw := param(params, name)
	if raw == value.Undefined {
		return raw, nil
	}
	return r.ResolveValue(ctx, raw, scope)
}
