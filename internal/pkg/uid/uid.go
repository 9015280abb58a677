// Package uid provides unique identifier generators.
//
// Two shapes are offered: NumberID for compact sortable numeric IDs (database
// primary keys) and StringID for opaque string IDs (correlation IDs, tokens).
package uid

// NumberID generates unique numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
