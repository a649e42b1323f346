// Package units parses free-text quantity and price-per-unit expressions into
// normalized amounts, and derives comparable per-unit pricing.
package units

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shelfwatch/shelfwatch/models"
)

var (
	// A numeric token immediately followed by a known unit abbreviation,
	// anywhere in the text ("John West Tuna Olive Oil Blend 95G", "1kg").
	amountPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s?(kg|g|ml|l)\b`)

	// An NxM pack multiplier with no unit token ("Pack 6x4").
	multiplierPattern = regexp.MustCompile(`(?i)\b(\d+)\s?x\s?(\d+)\b`)
)

// ParseAmount scans text for a package quantity. Absence is a normal outcome:
// unmatched, partial or ambiguous input returns ok=false, never an error.
func ParseAmount(text string) (models.UnitAmount, bool) {
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		amount, err := parseDecimal(m[1])
		if err != nil || amount <= 0 {
			return models.UnitAmount{}, false
		}
		unit, ok := unitFromToken(m[2])
		if !ok {
			return models.UnitAmount{}, false
		}
		return models.UnitAmount{Amount: amount, Unit: unit}, true
	}

	// No unit token: an NxM multiplier carries "each" semantics.
	if m := multiplierPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		per, _ := strconv.Atoi(m[2])
		if n > 0 && per > 0 {
			return models.UnitAmount{Amount: float64(n * per), Unit: models.UnitEach}, true
		}
	}

	return models.UnitAmount{}, false
}

// parseDecimal parses a number that may use a comma decimal separator,
// depending on the locale of the source text.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

func unitFromToken(token string) (models.Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "g":
		return models.UnitGram, true
	case "kg":
		return models.UnitKilogram, true
	case "ml":
		return models.UnitMillilitre, true
	case "l":
		return models.UnitLitre, true
	case "ea", "each":
		return models.UnitEach, true
	default:
		return "", false
	}
}

// referenceAmount is the multiplier from a unit to its standard reference
// quantity: 1000 for g→kg and mL→L, 1 for units already standard.
func referenceAmount(u models.Unit) float64 {
	switch u {
	case models.UnitGram, models.UnitMillilitre:
		return 1000
	default:
		return 1
	}
}

// standardUnit is the reference unit pricing is normalized to.
func standardUnit(u models.Unit) models.Unit {
	switch u {
	case models.UnitGram:
		return models.UnitKilogram
	case models.UnitMillilitre:
		return models.UnitLitre
	default:
		return u
	}
}
