package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// Query is a keyword search against the retailer.
type Query struct {
	Keywords string `json:"keywords"`
}

// QueryFromKeywords builds a Query for the given keywords.
func QueryFromKeywords(keywords string) Query {
	return Query{Keywords: keywords}
}

func (q Query) String() string {
	return q.Keywords
}

// CacheKey derives a deterministic key for memoizing fetches of this query.
func (q Query) CacheKey() string {
	sum := sha256.Sum256([]byte(q.Keywords))
	return hex.EncodeToString(sum[:])
}

// Results is one page (or a merged set of pages) of search results.
type Results struct {
	// Query is the originating query; absent for single-item lookups.
	Query    *Query    `json:"query,omitempty"`
	Products []Product `json:"products"`

	// Raw is the source markup, retained for diagnostics only.
	Raw []byte `json:"-"`
}

// Merge combines same-query result pages into one, concatenating product
// sequences in argument order and de-duplicating by identifier. The first
// occurrence wins: a product repeated on a later page keeps its
// earliest-seen position and earliest-seen field values.
func (r Results) Merge(others ...Results) Results {
	merged := Results{Query: r.Query}
	seen := make(map[string]struct{}, len(r.Products))

	add := func(products []Product) {
		for _, p := range products {
			if _, ok := seen[p.Identifier]; ok {
				continue
			}
			seen[p.Identifier] = struct{}{}
			merged.Products = append(merged.Products, p)
		}
	}

	add(r.Products)
	for _, other := range others {
		add(other.Products)
	}
	return merged
}
