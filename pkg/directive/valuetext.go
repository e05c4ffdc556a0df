package directive

import (
	"context"
	"fmt"

	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

// ValueTextParams are the resolved parameters of ValueText.
type ValueTextParams struct {
	Value   any
	Options valuetext.Options
}

// ValueText converts its "value" parameter to text using the "options"
// parameter (viaJSON, replacer, space, nullishText, stringQuote, depth).
type ValueText struct{}

// ProcessParams resolves the directive parameters.
func (ValueText) ProcessParams(ctx context.Context, params map[string]any, scope resolve.Context, r resolve.Resolver) (ValueTextParams, error) {
	resolved, err := resolveParam(ctx, params, "value", scope, r)
	if err != nil {
		return ValueTextParams{}, fmt.Errorf("directive: resolve value: %w", err)
	}
	options, err := resolveParam(ctx, params, "options", scope, r)
	if err != nil {
		return ValueTextParams{}, fmt.Errorf("directive: resolve options: %w", err)
	}
	return ValueTextParams{
		Value:   resolved,
		Options: valuetext.OptionsFromMap(options),
	}, nil
}

// Execute returns the value text as a string.
func (d ValueText) Execute(ctx context.Context, params map[string]any, scope resolve.Context, r resolve.Resolver) (any, error) {
	bound, err := d.ProcessParams(ctx, params, scope, r)
	if err != nil {
		return nil, err
	}
	return valuetext.SerializeValue(bound.Value, bound.Options, nil), nil
}

// WrappedValueText behaves like ValueText but returns a one element array,
// ready to be used as element content.
type WrappedValueText struct {
	ValueText
}

// Execute returns []any{text}.
func (d WrappedValueText) Execute(ctx context.Context, params map[string]any, scope resolve.Context, r resolve.Resolver) (any, error) {
	bound, err := d.ProcessParams(ctx, params, scope, r)
	if err != nil {
		return nil, err
	}
	return []any{valuetext.SerializeValue(bound.Value, bound.Options, nil)}, nil
}
