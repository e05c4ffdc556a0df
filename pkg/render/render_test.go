package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-domtemplate/pkg/render"
	"github.com/goliatone/go-domtemplate/pkg/shorthand"
)

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(context.Context, shorthand.Node, render.RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry(namedRenderer{name: "HTML"})
	registry.MustRegister(namedRenderer{name: "json"})

	if err := registry.Register(namedRenderer{name: " html "}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("renderer names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("Json") {
		t.Fatalf("lookups should ignore case")
	}
	if got := registry.MustGet("html").Name(); got != "HTML" {
		t.Fatalf("expected registered renderer, got %q", got)
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#123456",
			"surface": "#fff",
		},
		Templates: map[string]string{
			"page": "themes/acme/page.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"card": "themes/acme/dark/card.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vendor": "vendor.dark.js",
					},
				},
			},
		},
	}
}

func TestThemeConfigMergesVariant(t *testing.T) {
	cfg := render.ThemeConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: acmeManifest()})
	if cfg == nil {
		t.Fatalf("expected theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection names: %s/%s", cfg.Theme, cfg.Variant)
	}
	if diff := cmp.Diff(map[string]string{"brand": "#654321", "surface": "#fff"}, cfg.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"--brand": "#654321", "--surface": "#fff"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if cfg.Partials["page"] != "themes/acme/page.tmpl" || cfg.Partials["card"] != "themes/acme/dark/card.tmpl" {
		t.Fatalf("partials not merged: %#v", cfg.Partials)
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.AssetURL("vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("unexpected vendor asset url: %s", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
	if got := cfg.AssetURL("https://cdn.example.com/x.css"); got != "https://cdn.example.com/x.css" {
		t.Fatalf("absolute urls should pass through, got %s", got)
	}
}

func TestThemeConfigNil(t *testing.T) {
	if render.ThemeConfig(nil) != nil {
		t.Fatalf("nil selection should yield nil config")
	}
	cfg := render.ThemeConfig(&theme.Selection{Theme: "bare"})
	if cfg == nil || len(cfg.Tokens) != 0 || cfg.Theme != "bare" {
		t.Fatalf("unexpected config for manifest-less selection: %#v", cfg)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := render.CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if got != "--a: 1; --b: 2;" {
		t.Fatalf("unexpected style %q", got)
	}
	if render.CSSVarsStyle(nil) != "" {
		t.Fatalf("empty vars should render empty style")
	}
}

func TestStaticSelector(t *testing.T) {
	selector, err := render.NewStaticSelector("", "dark", acmeManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if selection.Theme != "acme" || selection.Variant != "dark" {
		t.Fatalf("unexpected default selection %s/%s", selection.Theme, selection.Variant)
	}

	if _, err := selector.Select("missing", ""); !errors.Is(err, render.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select("acme", "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := render.NewStaticSelector("", "", acmeManifest(), acmeManifest()); err == nil {
		t.Fatalf("expected duplicate manifest error")
	}
}

func TestParseManifest(t *testing.T) {
	manifest, err := render.ParseManifest([]byte(`
name: acme
version: 1.0.0
tokens:
  brand: "#123456"
assets:
  prefix: /assets/acme
  files:
    stylesheet: theme.css
variants:
  dark:
    tokens:
      brand: "#000000"
`))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if manifest.Name != "acme" || manifest.Tokens["brand"] != "#123456" {
		t.Fatalf("unexpected manifest %#v", manifest)
	}
	if manifest.Variants["dark"].Tokens["brand"] != "#000000" {
		t.Fatalf("variant tokens not decoded: %#v", manifest.Variants)
	}
	if manifest.Assets.Files["stylesheet"] != "theme.css" {
		t.Fatalf("asset files not decoded: %#v", manifest.Assets)
	}

	if _, err := render.ParseManifest([]byte("version: 1")); err == nil {
		t.Fatalf("expected missing name error")
	}
}
