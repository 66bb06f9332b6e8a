// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Draw         = "/draw"
	Reset        = "/reset"
	Health       = "/up"
	StaticPrefix = "/static/"
	APIPrefix    = "/api/"
	APIDraws     = "/api/draws"
)

// Static returns the URL for an embedded static asset.
func Static(name string) string {
	return StaticPrefix + strings.TrimLeft(strings.TrimSpace(name), "/")
}

// WithLanguage returns path with the lang query parameter set.
func WithLanguage(path string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = Root
	}
	query := url.Values{}
	query.Set("lang", tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
