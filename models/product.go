package models

// Unit is a package measurement unit.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMillilitre Unit = "mL"
	UnitLitre      Unit = "L"
	UnitEach       Unit = "ea"
)

// Status is the canonical availability state of a product.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"

	// StatusCancelled means discontinued or delisted, as opposed to merely
	// out of stock.
	StatusCancelled Status = "cancelled"
)

// Currency is an ISO 4217 currency code.
type Currency string

// CurrencyAUD is the retailer's home currency.
const CurrencyAUD Currency = "AUD"

// ParseCurrency coerces a currency code string, defaulting to the retailer's
// home currency for unknown or empty codes.
func ParseCurrency(code string) Currency {
	switch code {
	case "AUD":
		return CurrencyAUD
	default:
		return CurrencyAUD
	}
}

// Price is a listed price, optionally with a previous/strikethrough price.
type Price struct {
	Amount    float64  `json:"amount"`
	WasAmount *float64 `json:"was_amount,omitempty"`
	Currency  Currency `json:"currency"`
}

// UnitAmount is a package's declared quantity, e.g. 95 g.
// Amount is always > 0 when the value is present.
type UnitAmount struct {
	Amount float64 `json:"amount"`
	Unit   Unit    `json:"unit"`
}

// UnitPrice is a price normalized to a standard reference quantity
// (per 1 kg, per 1 L or per 1 ea) for cross-product comparison.
// UnitAmount.Amount is always 1 after normalization.
type UnitPrice struct {
	Price      Price      `json:"price"`
	UnitAmount UnitAmount `json:"unit_amount"`
}

// Brand identifies a product's brand. Identifier equals Name when the
// retailer exposes no separate brand code.
type Brand struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// Product is one extracted product record. Products are value objects:
// constructed once per extraction call and never mutated afterwards.
type Product struct {
	// Identifier is the retailer SKU, stable across fetches.
	Identifier string `json:"identifier"`
	SKU        string `json:"sku"`

	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url"`
	Price       *Price      `json:"price,omitempty"`
	Status      Status      `json:"status"`
	Brand       *Brand      `json:"brand,omitempty"`
	GTIN        string      `json:"gtin,omitempty"`
	UnitAmount  *UnitAmount `json:"unit_amount,omitempty"`
	UnitPrice   *UnitPrice  `json:"unit_price,omitempty"`
	Ingredients string      `json:"ingredients,omitempty"`

	// Images is ordered by discovery: primary image first, thumbnails after,
	// duplicates removed.
	Images []string `json:"images"`

	// Raw is the source markup the record was extracted from. Retained for
	// diagnostics only; never parsed downstream.
	Raw []byte `json:"-"`
}
