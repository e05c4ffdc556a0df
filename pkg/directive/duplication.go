package directive

import (
	"context"
	"fmt"

	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/shorthand"
	"github.com/goliatone/go-domtemplate/pkg/value"
)

// ContentDuplicationParams are the resolved parameters of ContentDuplication.
type ContentDuplicationParams struct {
	// Source is the element, or template for it, to copy.
	Source any
	// Attributes overwrite the copy's root attributes. Nil when absent.
	Attributes any
	// Data holds local variables for resolving Source. Nil when absent.
	Data any
}

// ContentDuplication copies an element shorthand with every "id" attribute
// removed. Supplied attributes overwrite the copy's root attributes and
// supplied data is visible while the copy is resolved.
type ContentDuplication struct{}

// ProcessParams resolves the directive parameters. A non-object data value
// is wrapped as {"value": data}.
func (ContentDuplication) ProcessParams(ctx context.Context, params map[string]any, scope resolve.Context, r resolve.Resolver) (ContentDuplicationParams, error) {
	var bound ContentDuplicationParams

	source, err := resolveParam(ctx, params, "source", scope, r)
	if err != nil {
		return bound, fmt.Errorf("directive: resolve source: %w", err)
	}
	bound.Source = source

	attributes, err := resolveParam(ctx, params, "attributes", scope, r)
	if err != nil {
		return bound, fmt.Errorf("directive: resolve attributes: %w", err)
	}
	if value.IsObject(attributes) {
		bound.Attributes = attributes
	}

	data, err := resolveParam(ctx, params, "data", scope, r)
	if err != nil {
		return bound, fmt.Errorf("directive: resolve data: %w", err)
	}
	switch {
	case value.IsNullish(data):
	case value.IsObject(data):
		bound.Data = data
	default:
		bound.Data = value.NewObject(value.Entry{Key: "value", Value: data})
	}
	return bound, nil
}

// Execute returns the renamed copy, or value.Undefined when the source is
// nullish.
func (d ContentDuplication) Execute(ctx context.Context, params map[string]any, scope resolve.Context, r resolve.Resolver) (any, error) {
	bound, err := d.ProcessParams(ctx, params, scope, r)
	if err != nil {
		return nil, err
	}
	if value.IsNullish(bound.Source) {
		return value.Undefined, nil
	}
	copied, err := d.ResolveCopy(ctx, bound.Source, scope, r, bound.Data)
	if err != nil {
		return nil, err
	}
	return shorthand.CloneNamed(copied, bound.Attributes), nil
}

// ResolveCopy resolves source again, inside a local scope holding data when
// data is set.
func (ContentDuplication) ResolveCopy(ctx context.Context, source any, scope resolve.Context, r resolve.Resolver, data any) (any, error) {
	target := scope
	if keys, ok := value.Keys(data); ok {
		target = r.LocalScope(scope)
		for _, key := range keys {
			target[key], _ = value.Lookup(data, key)
		}
	}
	resolved, err := r.ResolveValue(ctx, source, target)
	if err != nil {
		return nil, fmt.Errorf("directive: resolve copy: %w", err)
	}
	return resolved, nil
}
