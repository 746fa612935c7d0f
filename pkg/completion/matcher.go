// Package completion implements the matching rule the editor applies to the
// completion catalog. The catalog itself is derived by the session manager;
// this package only answers "which entries complete this query".
package completion

import (
	"strings"

	"github.com/cmccomb/pastrami/pkg/capability"
)

// Match filters catalog entries against a query. When the query contains the
// scope separator, entries must share the query's namespace prefix and the
// match is a prefix match on the last scope-separated segment, so rand::r
// completes to rand::rand but never to fs::read. Without a separator the
// whole entry is prefix-matched. Catalog order is preserved.
func Match(catalog []string, query string) []string {
	if query == "" {
		out := make([]string, len(catalog))
		copy(out, catalog)
		return out
	}

	sep := strings.LastIndex(query, capability.ScopeSeparator)
	if sep < 0 {
		return matchBare(catalog, query)
	}

	prefix := query[:sep+len(capability.ScopeSeparator)]
	segment := query[sep+len(capability.ScopeSeparator):]

	var out []string
	for _, entry := range catalog {
		if !strings.HasPrefix(entry, prefix) {
			continue
		}
		rest := entry[len(prefix):]
		if rest == "" && segment != "" {
			continue
		}
		if strings.HasPrefix(rest, segment) {
			out = append(out, entry)
		}
	}
	return out
}

func matchBare(catalog []string, query string) []string {
	var out []string
	for _, entry := range catalog {
		if strings.HasPrefix(entry, query) {
			out = append(out, entry)
		}
	}
	return out
}
