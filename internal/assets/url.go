// Package assets resolves stored media references to displayable URLs.
// Resolution happens at render time only; the stored field value is never
// rewritten, which keeps records compatible with every client that saved
// them.
package assets

import "strings"

// Resolver joins relative image paths to a configured base URL.
type Resolver struct {
	baseURL string
}

// NewResolver creates a resolver for the given asset base URL.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// ResolveImage maps a stored image value to a displayable URL.
//
// Absolute http(s) URLs pass through verbatim. Anything else is treated as a
// relative path: a leading slash is stripped and an "uploads/" segment is
// prefixed when missing, then the result is joined to the base URL. This
// normalization is load-bearing for previously stored records and must not
// change.
func (r *Resolver) ResolveImage(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	path := strings.TrimPrefix(value, "/")
	if !strings.Contains(path, "uploads/") {
		path = "uploads/" + path
	}
	return r.baseURL + "/" + path
}
