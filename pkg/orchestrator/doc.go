// Package orchestrator wires the resolve → extract → render pipeline that
// turns a DOM template plus a scope into rendered output. ContextRenderer and
// DataRenderer bind a template once and render it for many scopes.
package orchestrator
