package capability

import (
	"errors"
	"fmt"
)

// ErrUnknownPackage is returned when a namespace identifier does not match any
// registered package. Callers surface it so a typo in a persisted settings
// value stays diagnosable.
var ErrUnknownPackage = errors.New("unknown capability package")

// Registry enumerates the available capability packages. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	packages []Package
	index    map[string]int
}

// NewRegistry creates a registry from the given packages, preserving
// declaration order.
func NewRegistry(packages ...Package) (*Registry, error) {
	index := make(map[string]int, len(packages))
	for i, pkg := range packages {
		if pkg.Namespace == "" {
			return nil, fmt.Errorf("package at position %d has an empty namespace", i)
		}
		if _, exists := index[pkg.Namespace]; exists {
			return nil, fmt.Errorf("duplicate package namespace %q", pkg.Namespace)
		}
		index[pkg.Namespace] = i
	}
	return &Registry{packages: packages, index: index}, nil
}

// DefaultRegistry returns the curated registry shipped with the application:
// rand, fs, url, ml and sci.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(
		RandPackage(),
		FSPackage(),
		URLPackage(),
		MLPackage(),
		SciPackage(),
	)
	if err != nil {
		// The curated set is defined in this package; a collision here is a
		// programming error.
		panic(err)
	}
	return reg
}

// List returns all packages in declaration order.
func (r *Registry) List() []Package {
	out := make([]Package, len(r.packages))
	copy(out, r.packages)
	return out
}

// Namespaces returns the namespace identifiers in declaration order.
func (r *Registry) Namespaces() []string {
	out := make([]string, 0, len(r.packages))
	for _, pkg := range r.packages {
		out = append(out, pkg.Namespace)
	}
	return out
}

// Resolve looks up a package by namespace identifier.
func (r *Registry) Resolve(namespace string) (Package, error) {
	i, ok := r.index[namespace]
	if !ok {
		return Package{}, fmt.Errorf("%w: %q", ErrUnknownPackage, namespace)
	}
	return r.packages[i], nil
}

// Descriptors returns UI-facing rows for every package, marking those whose
// namespace appears in enabled as selected.
func (r *Registry) Descriptors(enabled []string) []Descriptor {
	selected := make(map[string]bool, len(enabled))
	for _, ns := range enabled {
		selected[ns] = true
	}
	out := make([]Descriptor, 0, len(r.packages))
	for _, pkg := range r.packages {
		out = append(out, Descriptor{
			Name:        pkg.Namespace,
			Description: pkg.Description,
			Repository:  pkg.Repository,
			Selected:    selected[pkg.Namespace],
		})
	}
	return out
}
