// Package adapter translates raw source payloads into normalized content
// items. One adapter per supported raw format; selection is a pure lookup on
// the declared source type.
package adapter

import (
	"content_catalog/internal/domain"
)

// Adapter produces normalized content item candidates from one raw format,
// using the source's field-mapping instructions. Candidates may still fail
// record validation downstream; the adapter only guarantees each one carries
// a content URL.
type Adapter interface {
	Type() domain.SourceType
	ParseAndProject(payload []byte, mappings *domain.FieldMappings) ([]domain.ContentItem, error)
}

// Registry maps source types to their adapters.
type Registry struct {
	adapters map[domain.SourceType]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domain.SourceType]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Type()] = a
	}
	return r
}

// DefaultRegistry returns a registry covering every supported source type.
func DefaultRegistry() *Registry {
	return NewRegistry(NewCSV(), NewRSSITunes(FeedConfig{}))
}

// Get returns the adapter for t. An unrecognized type is a configuration
// error, never silently defaulted.
func (r *Registry) Get(t domain.SourceType) (Adapter, error) {
	a, ok := r.adapters[t]
	if !ok {
		return nil, &domain.ConfigError{Reason: "no adapter registered for source type " + string(t)}
	}
	return a, nil
}
