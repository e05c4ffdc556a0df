package directive

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-domtemplate/pkg/markup"
	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/value"
	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

// MarkupContent converts its "source" parameter from Markdown (the default
// "format") or HTML into an array of shorthand values.
type MarkupContent struct{}

// Execute returns the converted content. A nullish source yields an empty
// array.
func (MarkupContent) Execute(ctx context.Context, params map[string]any, scope resolve.Context, r resolve.Resolver) (any, error) {
	source, err := resolveParam(ctx, params, "source", scope, r)
	if err != nil {
		return nil, fmt.Errorf("directive: resolve source: %w", err)
	}
	format, err := resolveParam(ctx, params, "format", scope, r)
	if err != nil {
		return nil, fmt.Errorf("directive: resolve format: %w", err)
	}
	if value.IsNullish(source) {
		return []any{}, nil
	}

	text := valuetext.ToString(source)
	name := "markdown"
	if !value.IsNullish(format) {
		name = strings.ToLower(strings.TrimSpace(valuetext.ToString(format)))
	}
	switch name {
	case "markdown", "md":
		return markup.FromMarkdown([]byte(text))
	case "html":
		return markup.FromHTML(text)
	default:
		return nil, fmt.Errorf("directive: unknown markup format %q", name)
	}
}
