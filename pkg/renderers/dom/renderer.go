// Package dom renders shorthand nodes as HTML markup through an
// golang.org/x/net/html node tree.
package dom

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/goliatone/go-domtemplate/pkg/render"
	"github.com/goliatone/go-domtemplate/pkg/shorthand"
)

// AssetScheme marks src and href values resolved through the theme's asset
// resolver, e.g. "theme-asset:stylesheet".
const AssetScheme = "theme-asset:"

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *bluemonday.Policy
)

type Option func(*config)

type config struct {
	policy *bluemonday.Policy
}

// WithPolicy overrides the sanitizer used when RenderOptions.Sanitize is set.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

type Renderer struct {
	policy *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) *Renderer {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.policy == nil {
		cfg.policy = sanitizer()
	}
	return &Renderer{policy: cfg.policy}
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the node tree, decorates top-level elements with theme data
// and serializes the result.
func (r *Renderer) Render(ctx context.Context, node shorthand.Node, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nodes, err := Build(node)
	if err != nil {
		return nil, err
	}
	if opts.Theme != nil {
		applyTheme(nodes, opts.Theme)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("dom: render %s: %w", describe(n), err)
		}
	}

	if opts.Sanitize {
		return r.policy.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

func applyTheme(nodes []*html.Node, cfg *theme.RendererConfig) {
	style := render.CSSVarsStyle(cfg.CSSVars)
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		if cfg.Theme != "" {
			setAttr(n, "data-theme", cfg.Theme)
		}
		if cfg.Variant != "" {
			setAttr(n, "data-theme-variant", cfg.Variant)
		}
		if style != "" {
			if existing, ok := getAttr(n, "style"); ok && strings.TrimSpace(existing) != "" {
				setAttr(n, "style", style+" "+existing)
			} else {
				setAttr(n, "style", style)
			}
		}
	}
	if cfg.AssetURL == nil {
		return
	}
	for _, n := range nodes {
		resolveAssets(n, cfg.AssetURL)
	}
}

func resolveAssets(n *html.Node, assetURL func(string) string) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if attr.Key != "src" && attr.Key != "href" {
				continue
			}
			if key, ok := strings.CutPrefix(attr.Val, AssetScheme); ok {
				n.Attr[i].Val = assetURL(key)
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		resolveAssets(child, assetURL)
	}
}

func sanitizer() *bluemonday.Policy {
	defaultPolicyOnce.Do(func() {
		defaultPolicy = bluemonday.UGCPolicy()
	})
	return defaultPolicy
}

func describe(n *html.Node) string {
	if n.Type == html.ElementNode {
		return "<" + n.Data + ">"
	}
	return "node"
}
