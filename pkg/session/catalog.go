package session

import (
	"sort"

	"github.com/cmccomb/pastrami/pkg/capability"
	"github.com/cmccomb/pastrami/pkg/engine"
)

// buildCatalog derives the completion catalog for a set of mounted packages:
// the base-language keywords, each namespace identifier bare and with its
// scope separator, and every namespace-qualified function name. The result is
// deduplicated and sorted lexicographically so the editor gets a stable,
// diff-friendly list.
func buildCatalog(packages []capability.Package) []string {
	entries := make(map[string]struct{})

	for _, kw := range engine.Keywords() {
		entries[kw] = struct{}{}
	}
	for _, pkg := range packages {
		entries[pkg.Namespace] = struct{}{}
		entries[pkg.Namespace+capability.ScopeSeparator] = struct{}{}
		for _, name := range pkg.Functions() {
			entries[pkg.Namespace+capability.ScopeSeparator+name] = struct{}{}
		}
	}

	out := make([]string, 0, len(entries))
	for entry := range entries {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}
