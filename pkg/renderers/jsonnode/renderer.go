// Package jsonnode renders shorthand nodes back into their JSON shorthand
// form, which is useful for inspecting what a template resolved to.
package jsonnode

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-domtemplate/pkg/render"
	"github.com/goliatone/go-domtemplate/pkg/shorthand"
	"github.com/goliatone/go-domtemplate/pkg/value"
	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

type Option func(*Renderer)

// WithIndent sets the indent width. Zero renders compact JSON.
func WithIndent(spaces int) Option {
	return func(r *Renderer) {
		if spaces < 0 {
			spaces = 0
		}
		r.indent = spaces
	}
}

type Renderer struct {
	indent int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer with a two space indent.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: 2}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render serializes the node. With a theme the payload becomes
// {"node": ..., "theme": {...}}.
func (r *Renderer) Render(ctx context.Context, node shorthand.Node, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload any = shorthand.ToValue(node)
	if opts.Theme != nil {
		payload = value.NewObject(
			value.Entry{Key: "node", Value: payload},
			value.Entry{Key: "theme", Value: themeValue(opts.Theme)},
		)
	}

	text, err := valuetext.StringifyJSON(payload, valuetext.NewOptions(valuetext.WithJSON(), valuetext.WithSpaces(r.indent)))
	if err != nil {
		return nil, fmt.Errorf("jsonnode: encode node: %w", err)
	}
	return []byte(text), nil
}

func themeValue(cfg *theme.RendererConfig) *value.Object {
	out := value.NewObject(value.Entry{Key: "name", Value: cfg.Theme})
	if cfg.Variant != "" {
		out.Set("variant", cfg.Variant)
	}
	if len(cfg.Tokens) > 0 {
		tokens := make(map[string]any, len(cfg.Tokens))
		for key, token := range cfg.Tokens {
			tokens[key] = token
		}
		out.Set("tokens", tokens)
	}
	return out
}
