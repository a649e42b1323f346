package engine

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory Engine for tests. Responses are keyed by exact URL,
// with "*" as a catch-all. A registered empty string is a valid response and
// surfaces downstream as blank markup, which is how connection failures are
// exercised without a network.
type Fake struct {
	Responses map[string]string

	mu sync.Mutex

	// Fetched records every requested URL. Pages of one traversal may be
	// fetched concurrently, so ordering is only meaningful for serial use.
	Fetched []string
}

// NewFake creates a Fake engine serving the given URL→HTML responses.
func NewFake(responses map[string]string) *Fake {
	return &Fake{Responses: responses}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Fetch(_ context.Context, req *FetchRequest) (*FetchResult, error) {
	f.mu.Lock()
	f.Fetched = append(f.Fetched, req.URL)
	f.mu.Unlock()

	html, ok := f.Responses[req.URL]
	if !ok {
		html, ok = f.Responses["*"]
	}
	if !ok {
		return nil, fmt.Errorf("fake engine: no response registered for %s", req.URL)
	}

	return &FetchResult{
		HTML:       html,
		StatusCode: 200,
		FinalURL:   req.URL,
		EngineName: f.Name(),
	}, nil
}
