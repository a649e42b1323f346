package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shelfwatch/shelfwatch/models"
	"github.com/shelfwatch/shelfwatch/units"
)

// Search page selectors.
const (
	selTile            = ".shelfProductTile.tile"
	selTileDescription = ".shelfProductTile-descriptionLink"
	selTileDollars     = ".price .price-dollars"
	selTileCents       = ".price .price-cents"
	selTileWasPrice    = ".price-was"
	selTileCupPrice    = ".shelfProductTile-cupPrice"
	selTileImage       = ".shelfProductTile-image"
	selCurrentPage     = ".page-indicator .current-page"
	selPageCount       = ".page-indicator .page-count"
)

var wasPricePattern = regexp.MustCompile(`\$(\d+\.\d+)`)

// SearchPage is the outcome of extracting one search-results page.
type SearchPage struct {
	Products []models.Product

	// Page and LastPage come from the pagination indicator. Both default to
	// 1 when either is missing or unparsable, a degraded but non-fatal
	// outcome.
	Page     int
	LastPage int
}

// Search enumerates every product tile on a search-results page in document
// order. A tile that fails extraction is silently skipped: result grids embed
// recipe cards, adverts and other non-product decoration between tiles, and
// one malformed tile must not affect the rest.
func Search(baseURI, rawHTML string) SearchPage {
	page := SearchPage{Products: []models.Product{}, Page: 1, LastPage: 1}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return page
	}

	doc.Find(selTile).Each(func(_ int, tile *goquery.Selection) {
		if p, ok := searchTile(baseURI, tile); ok {
			page.Products = append(page.Products, p)
		}
	})

	current, okCurrent := attempt(func() (int, error) { return intText(doc.Selection, selCurrentPage) })
	last, okLast := attempt(func() (int, error) { return intText(doc.Selection, selPageCount) })
	if okCurrent && okLast {
		page.Page, page.LastPage = current, last
	}

	return page
}

// searchTile extracts one product from its tile fragment. ok=false on any
// missing required part, which classifies the tile as non-product content.
func searchTile(baseURI string, tile *goquery.Selection) (models.Product, bool) {
	name, err := firstText(tile, selTileDescription)
	if err != nil || name == "" {
		return models.Product{}, false
	}

	href, err := firstAttr(tile, selTileDescription, "href")
	if err != nil {
		return models.Product{}, false
	}
	url := baseURI + href

	identifier, ok := identifierFromURL(url)
	if !ok {
		return models.Product{}, false
	}

	// The listing renders dollars and cents as separate elements; they are
	// concatenated exactly as rendered and parsed as one decimal.
	dollars, err := firstText(tile, selTileDollars)
	if err != nil {
		return models.Product{}, false
	}
	cents, err := firstText(tile, selTileCents)
	if err != nil {
		return models.Product{}, false
	}
	amount, err := strconv.ParseFloat(dollars+"."+cents, 64)
	if err != nil || amount < 0 {
		return models.Product{}, false
	}

	var wasAmount *float64
	if text, found := attempt(func() (string, error) { return firstText(tile, selTileWasPrice) }); found {
		if m := wasPricePattern.FindStringSubmatch(text); m != nil {
			if was, err := strconv.ParseFloat(m[1], 64); err == nil {
				wasAmount = &was
			}
		}
	}

	price := &models.Price{Amount: amount, WasAmount: wasAmount, Currency: models.CurrencyAUD}

	var unitPrice *models.UnitPrice
	if text, found := attempt(func() (string, error) { return firstText(tile, selTileCupPrice) }); found {
		if up, ok := units.DetermineUnitPrice(nil, nil, text, models.CurrencyAUD); ok {
			unitPrice = &up
		}
	}

	image, err := firstAttr(tile, selTileImage, "src")
	if err != nil {
		return models.Product{}, false
	}

	raw, _ := goquery.OuterHtml(tile)

	return models.Product{
		Identifier: identifier,
		SKU:        identifier,
		Name:       name,
		URL:        url,
		Price:      price,
		Status:     models.StatusAvailable,
		UnitPrice:  unitPrice,
		Images:     []string{image},
		Raw:        []byte(raw),
	}, true
}

// identifierFromURL takes the integer path segment between the detail-path
// prefix and the next slash. Non-integer segments disqualify the tile.
func identifierFromURL(url string) (string, bool) {
	_, after, found := strings.Cut(url, detailPathPrefix)
	if !found {
		return "", false
	}
	segment, _, _ := strings.Cut(after, "/")
	if _, err := strconv.ParseInt(segment, 10, 64); err != nil {
		return "", false
	}
	return segment, true
}

func intText(sel *goquery.Selection, selector string) (int, error) {
	text, err := firstText(sel, selector)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(text))
}
