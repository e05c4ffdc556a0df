package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxSafeInteger is the largest integer a float64 holds without rounding.
var maxSafeInteger = big.NewInt(1<<53 - 1)

// DecodeJSON parses a JSON document into a value tree. Objects become *Object
// so their key order is preserved; integers too large for a float64 are kept
// as *big.Int.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	out, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("value: decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("value: decode json: unexpected data after top-level value")
	}
	return out, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch typed := tok.(type) {
	case json.Delim:
		switch typed {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			items := make([]any, 0)
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return items, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(typed))
	case json.Number:
		return numberFromJSON(typed)
	default:
		return typed, nil
	}
}

func numberFromJSON(n json.Number) (any, error) {
	raw := n.String()
	if !strings.ContainsAny(raw, ".eE") {
		if i, ok := new(big.Int).SetString(raw, 10); ok && new(big.Int).Abs(i).Cmp(maxSafeInteger) > 0 {
			return i, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %q: %w", raw, err)
	}
	return f, nil
}

// DecodeYAML parses a YAML document into a value tree. Mappings become *Object
// in document order, sequences []any, and scalars are typed by their resolved
// tag: integers as int64 (or *big.Int when they overflow), floats as float64.
func DecodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("value: decode yaml: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	out, err := FromYAMLNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("value: decode yaml: %w", err)
	}
	return out, nil
}

// FromYAMLNode converts a parsed yaml.Node into a value tree.
func FromYAMLNode(node *yaml.Node) (any, error) {
	return fromYAMLNode(node, make(map[*yaml.Node]bool))
}

func fromYAMLNode(node *yaml.Node, expanding map[*yaml.Node]bool) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0], expanding)
	case yaml.AliasNode:
		if expanding[node.Alias] {
			return nil, fmt.Errorf("line %d: recursive alias %q", node.Line, node.Value)
		}
		expanding[node.Alias] = true
		defer delete(expanding, node.Alias)
		return fromYAMLNode(node.Alias, expanding)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromYAMLNode(child, expanding)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.MappingNode:
		return mappingFromYAML(node, expanding)
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
}

func mappingFromYAML(node *yaml.Node, expanding map[*yaml.Node]bool) (*Object, error) {
	obj := NewObject()
	var merged []*Object

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.ShortTag() == "!!merge" {
			value, err := fromYAMLNode(valueNode, expanding)
			if err != nil {
				return nil, err
			}
			switch typed := value.(type) {
			case *Object:
				merged = append(merged, typed)
			case []any:
				for _, item := range typed {
					if source, ok := item.(*Object); ok {
						merged = append(merged, source)
					}
				}
			default:
				return nil, fmt.Errorf("line %d: merge value must be a mapping", valueNode.Line)
			}
			continue
		}

		value, err := fromYAMLNode(valueNode, expanding)
		if err != nil {
			return nil, err
		}
		obj.Set(keyNode.Value, value)
	}

	for _, source := range merged {
		source.Range(func(key string, value any) bool {
			if !obj.Has(key) {
				obj.Set(key, value)
			}
			return true
		})
	}
	return obj, nil
}

func scalarFromYAML(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var out bool
		if err := node.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	case "!!int":
		var out int64
		if err := node.Decode(&out); err == nil {
			return out, nil
		}
		if i, ok := new(big.Int).SetString(node.Value, 0); ok {
			return i, nil
		}
		return nil, fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
	case "!!float":
		if node.Style&yaml.TaggedStyle == 0 && isIntegerLiteral(node.Value) {
			if i, ok := new(big.Int).SetString(node.Value, 10); ok {
				return i, nil
			}
		}
		var out float64
		if err := node.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return node.Value, nil
	}
}

// isIntegerLiteral matches plain decimal integers that yaml resolves as floats
// once they overflow 64 bits.
func isIntegerLiteral(raw string) bool {
	digits := strings.TrimLeft(raw, "+-")
	if digits == "" || len(raw)-len(digits) > 1 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
