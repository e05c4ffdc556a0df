package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request settings renderers can use without
// changing the node they were handed.
type RenderOptions struct {
	// Theme carries the resolved theme selection. Renderers decide how tokens
	// and assets surface in their output; nil means no theme.
	Theme *theme.RendererConfig
	// Sanitize asks markup renderers to pass their output through an HTML
	// sanitizer before returning it.
	Sanitize bool
}
