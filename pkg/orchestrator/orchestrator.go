package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-domtemplate/pkg/render"
	"github.com/goliatone/go-domtemplate/pkg/renderers/dom"
	"github.com/goliatone/go-domtemplate/pkg/renderers/jsonnode"
	"github.com/goliatone/go-domtemplate/pkg/resolve"
	"github.com/goliatone/go-domtemplate/pkg/resolve/pongo"
	"github.com/goliatone/go-domtemplate/pkg/shorthand"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithResolver injects the resolver used to turn templates into values.
func WithResolver(resolver resolve.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
// defaultTheme and defaultVariant apply when a request names neither.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithSanitize turns output sanitising on for every request.
func WithSanitize(enabled bool) Option {
	return func(o *Orchestrator) {
		o.sanitize = enabled
	}
}

// WithLogger receives debug traces, e.g. when a resolved template describes
// no node. Logs are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates resolving a template, extracting its shorthand
// and rendering the node. Missing collaborators default to the pongo2
// resolver and the html and json renderers.
type Orchestrator struct {
	resolver        resolve.Resolver
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	sanitize        bool
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one template render.
type Request struct {
	// Template is the value handed to the resolver.
	Template any
	// Scope holds the values the template is resolved against.
	Scope resolve.Context
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string
	// RenderOptions are passed through to the renderer. A nil Theme is filled
	// from the theme selector.
	RenderOptions render.RenderOptions
}

// RenderTemplate resolves, extracts and renders req.Template. When the
// resolved value describes no node it returns (nil, nil).
func (o *Orchestrator) RenderTemplate(ctx context.Context, req Request) ([]byte, error) {
	resolved, err := o.ResolveTemplate(ctx, req.Template, req.Scope)
	if err != nil {
		return nil, err
	}
	node, ok := o.ExtractShorthand(resolved)
	if !ok {
		return nil, nil
	}
	return o.render(ctx, node, req)
}

// ResolveTemplate runs the resolver over template.
func (o *Orchestrator) ResolveTemplate(ctx context.Context, template any, scope resolve.Context) (any, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if scope == nil {
		scope = resolve.Context{}
	}
	resolved, err := o.resolver.ResolveValue(ctx, template, scope)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve template: %w", err)
	}
	return resolved, nil
}

// ExtractShorthand recognises the node a resolved value describes.
func (o *Orchestrator) ExtractShorthand(source any) (shorthand.Node, bool) {
	node, ok := shorthand.Extract(source)
	if !ok {
		o.logger.Debug("resolved template describes no node", slog.String("type", fmt.Sprintf("%T", source)))
		return nil, false
	}
	return node, true
}

// RenderShorthand renders an extracted node with the named renderer and the
// default theme.
func (o *Orchestrator) RenderShorthand(ctx context.Context, node shorthand.Node, rendererName string) ([]byte, error) {
	return o.render(ctx, node, Request{Renderer: rendererName})
}

// Renderer reports the renderer a request would use.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

func (o *Orchestrator) render(ctx context.Context, node shorthand.Node, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	opts.Sanitize = opts.Sanitize || o.sanitize
	if opts.Theme == nil {
		cfg, err := o.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, node, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
		if variant == "" {
			variant = o.defaultVariant
		}
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return render.ThemeConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.resolver == nil {
		resolver, err := pongo.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default resolver: %w", err)
		} else {
			o.resolver = resolver
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry(dom.New(), jsonnode.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
