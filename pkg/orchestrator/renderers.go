package orchestrator

import (
	"context"

	"github.com/goliatone/go-domtemplate/pkg/resolve"
)

// DefaultDataKey is the scope key DataRenderer stores data under.
const DefaultDataKey = "data"

// ContextRenderer renders one template against many scopes.
type ContextRenderer struct {
	Template any
	// Request carries renderer and theme choices applied to every render.
	Request Request

	orchestrator *Orchestrator
}

// NewContextRenderer binds template to o. A nil orchestrator uses New().
func NewContextRenderer(template any, o *Orchestrator) *ContextRenderer {
	if o == nil {
		o = New()
	}
	return &ContextRenderer{Template: template, orchestrator: o}
}

// ResolveContextView resolves the bound template against scope.
func (c *ContextRenderer) ResolveContextView(ctx context.Context, scope resolve.Context) (any, error) {
	return c.orchestrator.ResolveTemplate(ctx, c.Template, scope)
}

// RenderContext renders the bound template against scope, returning (nil,
// nil) when the resolved value describes no node.
func (c *ContextRenderer) RenderContext(ctx context.Context, scope resolve.Context) ([]byte, error) {
	resolved, err := c.ResolveContextView(ctx, scope)
	if err != nil {
		return nil, err
	}
	return c.renderResolved(ctx, resolved)
}

func (c *ContextRenderer) renderResolved(ctx context.Context, resolved any) ([]byte, error) {
	node, ok := c.orchestrator.ExtractShorthand(resolved)
	if !ok {
		return nil, nil
	}
	return c.orchestrator.render(ctx, node, c.Request)
}

// DataRenderer renders one template for many data values, each placed under
// DataKey in a copy of BaseContext. An empty DataKey leaves the data out of
// the scope entirely.
type DataRenderer struct {
	ContextRenderer
	BaseContext resolve.Context
	DataKey     string
}

// NewDataRenderer binds template and base scope to o using DefaultDataKey.
func NewDataRenderer(template any, base resolve.Context, o *Orchestrator) *DataRenderer {
	return &DataRenderer{
		ContextRenderer: *NewContextRenderer(template, o),
		BaseContext:     base,
		DataKey:         DefaultDataKey,
	}
}

// ResolveDataView resolves the bound template with data in scope.
func (d *DataRenderer) ResolveDataView(ctx context.Context, data any) (any, error) {
	scope := resolve.Clone(d.BaseContext)
	if d.DataKey != "" {
		scope[d.DataKey] = data
	}
	return d.ResolveContextView(ctx, scope)
}

// RenderData renders the bound template with data in scope.
func (d *DataRenderer) RenderData(ctx context.Context, data any) ([]byte, error) {
	resolved, err := d.ResolveDataView(ctx, data)
	if err != nil {
		return nil, err
	}
	return d.renderResolved(ctx, resolved)
}
