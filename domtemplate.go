// Package domtemplate renders DOM node shorthand produced by resolving
// templates against data. The root package re-exports the common entry
// points; the pkg/ tree holds the individual stages.
package domtemplate

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-domtemplate/pkg/orchestrator"
	"github.com/goliatone/go-domtemplate/pkg/render"
	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/shorthand"
	"github.com/goliatone/go-domtemplate/pkg/templates"
	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

// Context holds the named values a template is resolved against.
type Context = resolve.Context

// Node is an extracted DOM node shorthand.
type Node = shorthand.Node

// RenderOptions describes per-request renderer settings.
type RenderOptions = render.RenderOptions

// TextOption configures ValueText.
type TextOption = valuetext.Option

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderTemplate resolves template against scope and renders the resulting
// node with the named renderer ("html" when empty). It returns (nil, nil)
// when the resolved template describes no node.
func RenderTemplate(ctx context.Context, template any, scope Context, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).RenderTemplate(ctx, orchestrator.Request{
		Template: template,
		Scope:    scope,
		Renderer: rendererName,
	})
}

// ExtractShorthand recognises the node shorthand a value describes.
func ExtractShorthand(source any) (Node, bool) {
	return shorthand.Extract(source)
}

// ValueText converts any value to display text.
func ValueText(v any, options ...TextOption) string {
	return valuetext.Serialize(v, options...)
}

// EmbeddedTemplates exposes the built-in templates so callers can reuse or
// extend them without importing the templates package directly.
func EmbeddedTemplates() fs.FS {
	return templates.EmbeddedFS()
}

// LoadTemplates loads every JSON/YAML template file in fsys.
func LoadTemplates(fsys fs.FS) (*templates.Store, error) {
	return templates.LoadFS(fsys)
}
