// Package extract builds product records from fetched retailer markup,
// reconciling embedded structured data with markup-derived fallbacks.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cast"
)

// Block is one embedded schema.org structured-data object. The underlying
// JSON is duck-typed, so accessors coerce and return absence for missing or
// mis-typed keys instead of failing. All accessors are safe on a nil Block.
type Block map[string]any

// String returns the value at key coerced to a non-empty string.
func (b Block) String(key string) (string, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

// Float returns the value at key coerced to a float64. JSON-LD prices arrive
// as numbers or as numeric strings depending on the page build.
func (b Block) Float(key string) (float64, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Child returns a nested object at key, e.g. "offers" or "brand".
func (b Block) Child(key string) Block {
	v, ok := b[key]
	if !ok || v == nil {
		return nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil
	}
	return Block(m)
}

// ProductBlock scans the document for embedded structured-data blocks and
// returns the last one whose declared type is "product" (case-insensitive).
// Pages may embed more than one block; last write wins. Returns nil when no
// product block exists, which every Block accessor tolerates.
func ProductBlock(doc *goquery.Document) Block {
	var found Block
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var raw map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return
		}
		block := Block(raw)
		if t, ok := block.String("@type"); ok && strings.EqualFold(t, "product") {
			found = block
		}
	})
	return found
}
