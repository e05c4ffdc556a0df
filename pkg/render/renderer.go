package render

import (
	"context"

	"github.com/goliatone/go-domtemplate/pkg/shorthand"
)

// Renderer converts an extracted shorthand node into bytes (HTML, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, node shorthand.Node, options RenderOptions) ([]byte, error)
}
