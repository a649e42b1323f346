package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// attempt runs fn and degrades any error to absence. Field extraction is
// best-effort throughout: a missing or malformed fragment must never abort
// the record it belongs to.
func attempt[T any](fn func() (T, error)) (T, bool) {
	v, err := fn()
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// firstText returns the trimmed text of the first element matching selector.
func firstText(sel *goquery.Selection, selector string) (string, error) {
	match := sel.Find(selector).First()
	if match.Length() == 0 {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	return strings.TrimSpace(match.Text()), nil
}

// firstAttr returns the named attribute of the first element matching selector.
func firstAttr(sel *goquery.Selection, selector, attr string) (string, error) {
	match := sel.Find(selector).First()
	if match.Length() == 0 {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	v, ok := match.Attr(attr)
	if !ok {
		return "", fmt.Errorf("element %q has no attribute %q", selector, attr)
	}
	return v, nil
}

// parsePriceText parses a rendered price like "$2.70", " $1,234.50 " or
// "Was $3.00" into a decimal amount.
func parsePriceText(text string) (float64, error) {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = strings.NewReplacer("was", "", "$", "", ",", "", " ", "").Replace(cleaned)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, fmt.Errorf("negative price %q", text)
	}
	return amount, nil
}
