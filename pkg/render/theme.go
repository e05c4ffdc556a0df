package render

import (
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig flattens a theme selection into renderer configuration. Variant
// tokens, templates and asset files override the manifest's. Every token is
// also exposed as a CSS custom property named "--<token>".
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	variant, hasVariant := manifest.Variants[selection.Variant]
	mergeStrings(cfg.Tokens, manifest.Tokens)
	mergeStrings(cfg.Partials, manifest.Templates)
	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	mergeStrings(files, manifest.Assets.Files)
	if hasVariant {
		mergeStrings(cfg.Tokens, variant.Tokens)
		mergeStrings(cfg.Partials, variant.Templates)
		mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for key, token := range cfg.Tokens {
		cfg.CSSVars["--"+key] = token
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

// CSSVarsStyle renders CSS custom properties as an inline style declaration
// list, sorted by property name.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok {
			file = key
		}
		if file == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		if strings.Contains(prefix, "://") {
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		}
		return path.Join(prefix, file)
	}
}

func mergeStrings(dst, src map[string]string) {
	for key, item := range src {
		dst[key] = item
	}
}
