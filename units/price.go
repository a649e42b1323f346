package units

import (
	"math"
	"regexp"
	"strconv"

	"github.com/shelfwatch/shelfwatch/models"
)

// A retailer-rendered cup price such as "$2.00 / 1KG", "$1.50 / 100G" or
// "$0.85 per 100mL". The quantity defaults to 1 when omitted.
var unitPricePattern = regexp.MustCompile(`(?i)\$\s?(\d+(?:\.\d+)?)\s?(?:/|per)\s?(\d+(?:[.,]\d+)?)?\s?(kg|g|ml|l|ea|each)\b`)

// DetermineUnitPrice derives a canonical price per standard reference
// quantity (per 1 kg, 1 L or 1 ea) from whatever information is available.
//
// A parseable unitPriceText wins outright: it is retailer-computed and
// authoritative. Failing that, the unit price is computed from price scaled
// by unitAmount to the standard reference quantity. ok=false means
// insufficient information, which is a normal outcome rather than a failure.
func DetermineUnitPrice(price *models.Price, unitAmount *models.UnitAmount, unitPriceText string, currency models.Currency) (models.UnitPrice, bool) {
	if currency == "" {
		currency = models.CurrencyAUD
	}

	if unitPriceText != "" {
		if up, ok := parseUnitPrice(unitPriceText, currency); ok {
			return up, true
		}
	}

	if price != nil && unitAmount != nil && unitAmount.Amount > 0 {
		amount := round2(price.Amount * referenceAmount(unitAmount.Unit) / unitAmount.Amount)
		return models.UnitPrice{
			Price:      models.Price{Amount: amount, Currency: currency},
			UnitAmount: models.UnitAmount{Amount: 1, Unit: standardUnit(unitAmount.Unit)},
		}, true
	}

	return models.UnitPrice{}, false
}

func parseUnitPrice(text string, currency models.Currency) (models.UnitPrice, bool) {
	m := unitPricePattern.FindStringSubmatch(text)
	if m == nil {
		return models.UnitPrice{}, false
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil || amount < 0 {
		return models.UnitPrice{}, false
	}

	quantity := 1.0
	if m[2] != "" {
		quantity, err = parseDecimal(m[2])
		if err != nil || quantity <= 0 {
			return models.UnitPrice{}, false
		}
	}

	unit, ok := unitFromToken(m[3])
	if !ok {
		return models.UnitPrice{}, false
	}

	return models.UnitPrice{
		Price:      models.Price{Amount: round2(amount * referenceAmount(unit) / quantity), Currency: currency},
		UnitAmount: models.UnitAmount{Amount: 1, Unit: standardUnit(unit)},
	}, true
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
