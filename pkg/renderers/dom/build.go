package dom

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-domtemplate/pkg/shorthand"
)

// ErrDetachedAttribute is returned when an attribute node has no element to
// attach to.
var ErrDetachedAttribute = errors.New("dom: attribute node outside an element")

// ErrInvalidName is returned for tag, attribute or instruction target names
// the HTML serializer would write out unescaped into markup.
var ErrInvalidName = errors.New("dom: invalid name")

// Build converts a shorthand node into HTML nodes. A fragment yields its
// children; every other node yields exactly one node. Attribute nodes found in
// element content are applied to that element.
func Build(node shorthand.Node) ([]*html.Node, error) {
	switch typed := node.(type) {
	case nil:
		return nil, nil
	case shorthand.Fragment:
		return buildAll(typed.Content)
	case shorthand.Attribute:
		return nil, fmt.Errorf("%w: %q", ErrDetachedAttribute, typed.Name)
	default:
		built, err := buildNode(node)
		if err != nil {
			return nil, err
		}
		return []*html.Node{built}, nil
	}
}

func buildAll(nodes []shorthand.Node) ([]*html.Node, error) {
	out := make([]*html.Node, 0, len(nodes))
	for _, child := range nodes {
		built, err := Build(child)
		if err != nil {
			return nil, err
		}
		out = append(out, built...)
	}
	return out, nil
}

func buildNode(node shorthand.Node) (*html.Node, error) {
	switch typed := node.(type) {
	case shorthand.Text:
		return &html.Node{Type: html.TextNode, Data: string(typed)}, nil
	case shorthand.Comment:
		return &html.Node{Type: html.CommentNode, Data: typed.Comment}, nil
	case shorthand.CData:
		return &html.Node{Type: html.RawNode, Data: cdataSection(typed.CData)}, nil
	case shorthand.ProcessingInstruction:
		if err := checkName("instruction target", typed.Target); err != nil {
			return nil, err
		}
		if strings.Contains(typed.Data, "?>") {
			return nil, fmt.Errorf("%w: instruction data contains %q", ErrInvalidName, "?>")
		}
		return &html.Node{Type: html.RawNode, Data: "<?" + typed.Target + " " + typed.Data + "?>"}, nil
	case shorthand.Element:
		return buildElement(typed)
	default:
		return nil, fmt.Errorf("dom: unsupported node %T", node)
	}
}

func buildElement(el shorthand.Element) (*html.Node, error) {
	tag := strings.TrimSpace(el.Tag)
	if tag == "" {
		return nil, errors.New("dom: element tag is required")
	}
	if err := checkName("tag", tag); err != nil {
		return nil, err
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, key := range shorthand.SortedKeys(el.Attributes) {
		if err := checkName("attribute", key); err != nil {
			return nil, err
		}
		setAttr(out, key, el.Attributes[key])
	}

	for _, child := range el.Content {
		switch typed := child.(type) {
		case shorthand.Attribute:
			if err := checkName("attribute", typed.Name); err != nil {
				return nil, err
			}
			val := ""
			if typed.Value != nil {
				val = *typed.Value
			}
			setAttr(out, typed.Name, val)
			continue
		case shorthand.Fragment:
			children, err := buildAll(typed.Content)
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				out.AppendChild(c)
			}
			continue
		}
		built, err := buildNode(child)
		if err != nil {
			return nil, err
		}
		out.AppendChild(built)
	}
	return out, nil
}

func checkName(kind, name string) error {
	if name == "" || strings.ContainsFunc(name, invalidNameRune) {
		return fmt.Errorf("%w: %s %q", ErrInvalidName, kind, name)
	}
	return nil
}

func invalidNameRune(r rune) bool {
	if unicode.IsSpace(r) || unicode.IsControl(r) {
		return true
	}
	return strings.ContainsRune(`<>"'/=`, r)
}

// setAttr replaces an existing attribute or appends a new one.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// cdataSection splits any "]]>" so the section cannot end early.
func cdataSection(text string) string {
	return "<![CDATA[" + strings.ReplaceAll(text, "]]>", "]]]]><![CDATA[>") + "]]>"
}
