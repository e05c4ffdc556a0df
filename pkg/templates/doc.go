// Package templates loads named DOM templates from JSON and YAML files.
//
// Each file holds a mapping of template name to template value. Values are
// decoded with key order preserved so resolved elements keep the attribute
// and content order the author wrote.
package templates
