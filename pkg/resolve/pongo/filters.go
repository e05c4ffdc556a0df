package pongo

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-domtemplate/pkg/valuetext"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("valuetext") {
		_ = pongo2.RegisterFilter("valuetext", filterValueText)
	}
	if !pongo2.FilterExists("jsontext") {
		_ = pongo2.RegisterFilter("jsontext", filterJSONText)
	}
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

// filterValueText renders the input as value text. An integer parameter sets
// the indent width, a string parameter the indent unit.
func filterValueText(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(valuetext.SerializeValue(originalOf(in.Interface()), indentOptions(param), nil)), nil
}

// filterJSONText renders the input in JSON mode. A value JSON cannot encode
// renders as the failure text.
func filterJSONText(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	opts := indentOptions(param)
	opts.ViaJSON = true
	return pongo2.AsValue(valuetext.SerializeValue(originalOf(in.Interface()), opts, nil)), nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func indentOptions(param *pongo2.Value) valuetext.Options {
	var opts []valuetext.Option
	switch {
	case param == nil || param.IsNil():
	case param.IsInteger():
		opts = append(opts, valuetext.WithSpaces(param.Integer()))
	case param.IsString():
		opts = append(opts, valuetext.WithIndent(param.String()))
	}
	return valuetext.NewOptions(opts...)
}
