package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shelfwatch/shelfwatch/models"
	"github.com/shelfwatch/shelfwatch/units"
)

// Detail page selectors.
const (
	selDetailTitle       = "title"
	selDetailDescription = ".ar-product-detail-container .viewMore-content"
	selDetailPrice       = ".ar-product-price .price.price--large"
	selDetailWasPrice    = ".shelfProductTile-price .price-was"
	selDetailCupPrice    = ".shelfProductTile-cupPrice"
	selDetailIngredients = ".ingredients .viewMore .viewMore-content"
	selDetailMainImage   = ".image-gallery img.main-image"
	selDetailThumbnail   = ".image-gallery .thumbnails .thumbnail .thumbnail-image"
	selDetailHiddenCart  = ".ar-add-to-cart .hide a.cartControls-addButton"

	// detailPathPrefix is the fixed URL path segment preceding a product
	// identifier on a detail page link.
	detailPathPrefix = "/shop/productdetails/"
)

// Detail builds one Product from a single fetched detail page. For every
// field the structured-data value wins when present and well-formed, with the
// markup-derived value as fallback; either source failing degrades the field
// to absent. Extraction is deterministic: the same identifier and markup
// always yield an identical Product.
func Detail(identifier, baseURI, rawHTML string) (models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return models.Product{}, err
	}

	block := ProductBlock(doc)
	offers := block.Child("offers")

	// Name: structured-data name, else the title element with the trailing
	// " | <site>" suffix stripped.
	name, ok := block.String("name")
	if !ok {
		if title, found := attempt(func() (string, error) { return firstText(doc.Selection, selDetailTitle) }); found {
			if idx := strings.Index(title, " | "); idx >= 0 {
				title = title[:idx]
			}
			name = strings.TrimSpace(title)
		}
	}

	description, ok := block.String("description")
	if !ok {
		description, _ = attempt(func() (string, error) { return firstText(doc.Selection, selDetailDescription) })
	}

	gtin, _ := block.String("gtin13")

	var brand *models.Brand
	if brandName, found := block.Child("brand").String("name"); found {
		brand = &models.Brand{Name: brandName, Identifier: brandName}
	}

	currencyCode, _ := offers.String("priceCurrency")
	currency := models.ParseCurrency(currencyCode)

	price := detailPrice(doc, offers, currency)

	images := detailImages(doc)

	availability, _ := offers.String("availability")
	addToCartHidden := doc.Find(selDetailHiddenCart).Length() > 0
	status := ResolveStatus(availability, addToCartHidden)

	ingredients, _ := attempt(func() (string, error) { return firstText(doc.Selection, selDetailIngredients) })

	var unitAmount *models.UnitAmount
	if ua, found := units.ParseAmount(name); found {
		unitAmount = &ua
	}

	cupPrice, _ := attempt(func() (string, error) { return firstText(doc.Selection, selDetailCupPrice) })
	var unitPrice *models.UnitPrice
	if up, found := units.DetermineUnitPrice(price, unitAmount, cupPrice, currency); found {
		unitPrice = &up
	}

	return models.Product{
		Identifier:  identifier,
		SKU:         identifier,
		Name:        name,
		Description: description,
		URL:         canonicalURL(doc, baseURI, identifier),
		Price:       price,
		Status:      status,
		Brand:       brand,
		GTIN:        gtin,
		UnitAmount:  unitAmount,
		UnitPrice:   unitPrice,
		Ingredients: ingredients,
		Images:      images,
		Raw:         []byte(fragment(rawHTML, detailContainerSelector)),
	}, nil
}

// detailPrice assembles the current and previous price. The current amount
// prefers the structured offer; the was-price has no structured equivalent
// and is sourced from markup regardless of where the current amount came
// from. A missing or malformed price never aborts the record.
func detailPrice(doc *goquery.Document, offers Block, currency models.Currency) *models.Price {
	amount, ok := offers.Float("price")
	if !ok {
		amount, ok = attempt(func() (float64, error) {
			text, err := firstText(doc.Selection, selDetailPrice)
			if err != nil {
				return 0, err
			}
			return parsePriceText(text)
		})
	}
	if !ok {
		return nil
	}

	var wasAmount *float64
	if was, found := attempt(func() (float64, error) {
		text, err := firstText(doc.Selection, selDetailWasPrice)
		if err != nil {
			return 0, err
		}
		return parsePriceText(text)
	}); found {
		wasAmount = &was
	}

	return &models.Price{Amount: amount, WasAmount: wasAmount, Currency: currency}
}

// detailImages collects gallery images in discovery order: the primary image
// first, thumbnails after, upgraded from their /medium/ rendition, with
// duplicates removed.
func detailImages(doc *goquery.Document) []string {
	images := []string{}
	seen := make(map[string]struct{})
	add := func(src string) {
		if src == "" {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		images = append(images, src)
	}

	doc.Find(selDetailMainImage).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src)
	})
	doc.Find(selDetailThumbnail).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(strings.Replace(src, "/medium/", "/large/", 1))
	})
	return images
}

// canonicalURL resolves the detail URL with its slug by locating the first
// in-page link under the identifier's detail path whose trailing segment is
// longer than a bare slash (which guards against matching the path prefix
// itself). Falls back to the slugless detail URL.
func canonicalURL(doc *goquery.Document, baseURI, identifier string) string {
	prefix := detailPathPrefix + identifier + "/"
	slug := ""
	doc.Find(`[href^="` + prefix + `"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		segment := strings.TrimPrefix(href, prefix)
		if len(segment) > 1 {
			slug = segment
			return false
		}
		return true
	})
	if slug == "" {
		return baseURI + detailPathPrefix + identifier
	}
	return baseURI + prefix + slug
}
