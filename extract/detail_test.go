package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shelfwatch/shelfwatch/models"
)

const testBaseURI = "https://www.woolworths.com.au"

// detailFixture mirrors a real detail page: a JSON-LD product block plus the
// human-oriented markup the fallback paths read.
const detailFixture = `<!DOCTYPE html>
<html>
<head>
<title>John West Tuna Olive Oil Blend 95G | Woolworths</title>
<script type="application/ld+json">{"@context":"http://schema.org","@type":"BreadcrumbList","itemListElement":[]}</script>
<script type="application/ld+json">{"@context":"http://schema.org","@type":"Product","name":"John West Tuna Olive Oil Blend 95G","description":"Succulent chunk style tuna in an olive oil blend.","sku":"257360","gtin13":"9300605001123","brand":{"@type":"Brand","name":"John West"},"offers":{"@type":"Offer","price":2.7,"priceCurrency":"AUD","availability":"http://schema.org/InStock"}}</script>
</head>
<body>
<a href="/shop/productdetails/257360/">detail</a>
<a href="/shop/productdetails/257360/john-west-tuna-olive-oil-blend-95g">John West Tuna Olive Oil Blend 95G</a>
<div class="ar-product-detail-container">
  <div class="viewMore-content">Succulent chunk style tuna, from the page body.</div>
</div>
<div class="ar-product-price"><span class="price price--large">$2.70</span></div>
<span class="shelfProductTile-cupPrice">$28.42 / 1KG</span>
<div class="ar-add-to-cart"><a class="cartControls-addButton">Add to cart</a></div>
<div class="image-gallery">
  <img class="main-image" src="https://cdn0.woolworths.media/content/wowproductimages/large/257360.jpg">
  <div class="thumbnails">
    <div class="thumbnail"><img class="thumbnail-image" src="https://cdn0.woolworths.media/content/wowproductimages/medium/257360.jpg"></div>
    <div class="thumbnail"><img class="thumbnail-image" src="https://cdn0.woolworths.media/content/wowproductimages/medium/257360_1.jpg"></div>
    <div class="thumbnail"><img class="thumbnail-image" src="https://cdn0.woolworths.media/content/wowproductimages/medium/257360_2.jpg"></div>
    <div class="thumbnail"><img class="thumbnail-image" src="https://cdn0.woolworths.media/content/wowproductimages/medium/257360_5.jpg"></div>
    <div class="thumbnail"><img class="thumbnail-image" src="https://cdn0.woolworths.media/content/wowproductimages/medium/257360_6.jpg"></div>
  </div>
</div>
<div class="ingredients"><div class="viewMore"><div class="viewMore-content">Purse seine caught skipjack tuna (65%), water, olive oil (10%), sunflower oil, salt.</div></div></div>
</body>
</html>`

func TestDetail_StructuredDataWins(t *testing.T) {
	product, err := Detail("257360", testBaseURI, detailFixture)
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}

	if product.Identifier != "257360" || product.SKU != "257360" {
		t.Errorf("Identifier/SKU = %q/%q, want 257360", product.Identifier, product.SKU)
	}
	if product.Name != "John West Tuna Olive Oil Blend 95G" {
		t.Errorf("Name = %q", product.Name)
	}
	if product.Description != "Succulent chunk style tuna in an olive oil blend." {
		t.Errorf("Description = %q, want the structured-data value, not the page body", product.Description)
	}
	if product.Status != models.StatusAvailable {
		t.Errorf("Status = %v, want Available", product.Status)
	}
	if product.GTIN != "9300605001123" {
		t.Errorf("GTIN = %q", product.GTIN)
	}
	if product.Brand == nil || product.Brand.Name != "John West" || product.Brand.Identifier != "John West" {
		t.Errorf("Brand = %+v, want John West", product.Brand)
	}

	if product.Price == nil {
		t.Fatal("Price is absent")
	}
	if product.Price.Amount != 2.7 {
		t.Errorf("Price.Amount = %v, want 2.7", product.Price.Amount)
	}
	if product.Price.Currency != models.CurrencyAUD {
		t.Errorf("Price.Currency = %v, want AUD", product.Price.Currency)
	}
	if product.Price.WasAmount != nil {
		t.Errorf("Price.WasAmount = %v, want absent", *product.Price.WasAmount)
	}

	if product.UnitAmount == nil || *product.UnitAmount != (models.UnitAmount{Amount: 95, Unit: models.UnitGram}) {
		t.Errorf("UnitAmount = %+v, want 95 g", product.UnitAmount)
	}
	if product.UnitPrice == nil {
		t.Fatal("UnitPrice is absent")
	}
	if product.UnitPrice.Price.Amount != 28.42 {
		t.Errorf("UnitPrice.Price.Amount = %v, want 28.42", product.UnitPrice.Price.Amount)
	}
	if product.UnitPrice.UnitAmount != (models.UnitAmount{Amount: 1, Unit: models.UnitKilogram}) {
		t.Errorf("UnitPrice.UnitAmount = %+v, want 1 kg", product.UnitPrice.UnitAmount)
	}

	if !strings.Contains(product.Ingredients, "skipjack tuna") {
		t.Errorf("Ingredients = %q", product.Ingredients)
	}

	wantImages := []string{
		"https://cdn0.woolworths.media/content/wowproductimages/large/257360.jpg",
		"https://cdn0.woolworths.media/content/wowproductimages/large/257360_1.jpg",
		"https://cdn0.woolworths.media/content/wowproductimages/large/257360_2.jpg",
		"https://cdn0.woolworths.media/content/wowproductimages/large/257360_5.jpg",
		"https://cdn0.woolworths.media/content/wowproductimages/large/257360_6.jpg",
	}
	if !reflect.DeepEqual(product.Images, wantImages) {
		t.Errorf("Images = %v, want %v", product.Images, wantImages)
	}

	wantURL := testBaseURI + "/shop/productdetails/257360/john-west-tuna-olive-oil-blend-95g"
	if product.URL != wantURL {
		t.Errorf("URL = %q, want %q", product.URL, wantURL)
	}

	if !strings.Contains(string(product.Raw), "ar-product-detail-container") {
		t.Error("Raw should retain the detail container markup")
	}
}

func TestDetail_Idempotent(t *testing.T) {
	first, err := Detail("257360", testBaseURI, detailFixture)
	if err != nil {
		t.Fatalf("first Detail: %v", err)
	}
	second, err := Detail("257360", testBaseURI, detailFixture)
	if err != nil {
		t.Fatalf("second Detail: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Detail is not idempotent for identical identifier and markup")
	}
}

func TestDetail_MarkupFallback(t *testing.T) {
	html := `<html>
	<head><title> Homebrand Penne 500G | Woolworths </title></head>
	<body>
	<div class="ar-product-price"><span class="price price--large">$1.20</span></div>
	<div class="shelfProductTile-price"><span class="price-was">Was $1.50</span></div>
	<div class="ar-add-to-cart"><div class="hide"><a class="cartControls-addButton">Add to cart</a></div></div>
	</body></html>`

	product, err := Detail("12345", testBaseURI, html)
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}

	if product.Name != "Homebrand Penne 500G" {
		t.Errorf("Name = %q, want the title with the site suffix stripped", product.Name)
	}
	if product.Price == nil || product.Price.Amount != 1.20 {
		t.Errorf("Price = %+v, want 1.20 from the DOM", product.Price)
	}
	if product.Price.WasAmount == nil || *product.Price.WasAmount != 1.50 {
		t.Errorf("WasAmount = %v, want 1.50", product.Price.WasAmount)
	}
	// No structured availability and a hidden add-to-cart control.
	if product.Status != models.StatusUnavailable {
		t.Errorf("Status = %v, want Unavailable via DOM heuristic", product.Status)
	}
	if product.Brand != nil || product.GTIN != "" {
		t.Errorf("Brand/GTIN = %+v/%q, want absent with no structured data", product.Brand, product.GTIN)
	}
	if product.UnitAmount == nil || *product.UnitAmount != (models.UnitAmount{Amount: 500, Unit: models.UnitGram}) {
		t.Errorf("UnitAmount = %+v, want 500 g from the title", product.UnitAmount)
	}
	// Computed from price and package amount with no cup-price string.
	if product.UnitPrice == nil || product.UnitPrice.Price.Amount != 2.40 {
		t.Errorf("UnitPrice = %+v, want 2.40 per kg", product.UnitPrice)
	}
	if product.URL != testBaseURI+"/shop/productdetails/12345" {
		t.Errorf("URL = %q, want the slugless fallback", product.URL)
	}
}

func TestDetail_MissingFieldsDegradeToAbsent(t *testing.T) {
	html := `<html><head><title>Mystery Item | Woolworths</title></head><body></body></html>`

	product, err := Detail("99999", testBaseURI, html)
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}

	if product.Name != "Mystery Item" {
		t.Errorf("Name = %q", product.Name)
	}
	if product.Price != nil {
		t.Errorf("Price = %+v, want absent", product.Price)
	}
	if product.UnitAmount != nil || product.UnitPrice != nil {
		t.Error("unit fields should be absent")
	}
	if product.Description != "" || product.Ingredients != "" {
		t.Error("text fields should be absent")
	}
	if len(product.Images) != 0 {
		t.Errorf("Images = %v, want empty", product.Images)
	}
	// No hidden wrapper in the page, so the cart control is not marked hidden.
	if product.Status != models.StatusAvailable {
		t.Errorf("Status = %v, want Available", product.Status)
	}
}
