// Package observability records mission activity as structured JSON Lines
// events and derives play metrics from them on demand. The log is an audit
// trail only; player progress is never rebuilt from it.
package observability
