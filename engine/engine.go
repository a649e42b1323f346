// Package engine provides the fetch layer that resolves a URL to raw markup.
package engine

import "context"

// Engine is the interface all fetch engines implement. The extraction core
// treats a fetch error and blank markup uniformly as a connection failure; it
// does not distinguish a timeout from a 404 from a network error.
type Engine interface {
	// Name returns the engine identifier (e.g. "http", "fake").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
}

// FetchResult is the output of a successful fetch.
type FetchResult struct {
	HTML       string
	StatusCode int
	FinalURL   string
	EngineName string
}
