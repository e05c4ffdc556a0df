// Package markup converts HTML and Markdown sources into shorthand values so
// authored content can be merged into resolved templates.
package markup

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

// FromHTML parses an HTML fragment into shorthand values: strings for text,
// objects for elements and comments. Whitespace-only text between top-level
// nodes is dropped.
func FromHTML(source string) ([]any, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(source), body)
	if err != nil {
		return nil, fmt.Errorf("markup: parse html: %w", err)
	}
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		if converted, ok := toValue(n); ok {
			out = append(out, converted)
		}
	}
	return out, nil
}

// FromMarkdown renders Markdown with the common extensions and converts the
// result with FromHTML.
func FromMarkdown(source []byte) ([]any, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return FromHTML(string(markdown.ToHTML(source, p, renderer)))
}

func toValue(n *html.Node) (any, bool) {
	switch n.Type {
	case html.TextNode:
		return n.Data, true
	case html.CommentNode:
		return value.NewObject(value.Entry{Key: "comment", Value: n.Data}), true
	case html.ElementNode:
		out := value.NewObject(value.Entry{Key: "tag", Value: n.Data})
		if len(n.Attr) > 0 {
			attrs := value.NewObject()
			for _, attr := range n.Attr {
				key := attr.Key
				if attr.Namespace != "" {
					key = attr.Namespace + ":" + key
				}
				attrs.Set(key, attr.Val)
			}
			out.Set("attributes", attrs)
		}
		if n.FirstChild != nil {
			content := []any{}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if converted, ok := toValue(child); ok {
					content = append(content, converted)
				}
			}
			out.Set("content", content)
		}
		return out, true
	default:
		return nil, false
	}
}
