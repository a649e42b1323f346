package extract

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// detailContainerSelector scopes the diagnostic payload of a detail page to
// the product detail region.
const detailContainerSelector = ".ar-product-detail-container"

// fragment parses rawHTML, matches elements against the given CSS selector,
// and returns the concatenated outer HTML of all matched elements.
//
// If nothing matches, the original rawHTML is returned unchanged so the
// diagnostic payload still has something to show.
func fragment(rawHTML string, selector string) string {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return rawHTML
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	matches := cascadia.QueryAll(doc, sel)
	if len(matches) == 0 {
		return rawHTML
	}

	var buf bytes.Buffer
	for _, node := range matches {
		if err := html.Render(&buf, node); err != nil {
			return rawHTML
		}
	}
	return buf.String()
}
