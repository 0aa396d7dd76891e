package uricomposer

import "strings"

// Placeholder is the host stored in catalog picture URIs that must be
// replaced with the real catalog base URL.
const Placeholder = "http://catalogbaseurltobereplaced"

// Composer rewrites catalog picture URIs.
type Composer struct {
	baseURL string
}

// New creates a Composer. An empty baseURL leaves URIs untouched.
func New(baseURL string) *Composer {
	return &Composer{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// ComposePicURI replaces the placeholder host in uri with the catalog base URL.
func (c *Composer) ComposePicURI(uri string) string {
	if c == nil || c.baseURL == "" {
		return uri
	}

	return strings.ReplaceAll(uri, Placeholder, c.baseURL)
}
