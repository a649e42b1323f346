package extract

import (
	"strings"

	"github.com/shelfwatch/shelfwatch/models"
)

// availabilityByCode translates schema.org availability codes to canonical
// statuses. Codes not present here are unmapped and fall through to the DOM
// heuristic.
var availabilityByCode = map[string]models.Status{
	"BackOrder":           models.StatusUnavailable,
	"Discontinued":        models.StatusCancelled,
	"InStock":             models.StatusAvailable,
	"InStoreOnly":         models.StatusAvailable,
	"LimitedAvailability": models.StatusAvailable,
	"OnlineOnly":          models.StatusAvailable,
	"OutOfStock":          models.StatusUnavailable,
	"PreOrder":            models.StatusUnavailable,
	"PreSale":             models.StatusAvailable,
	"SoldOut":             models.StatusUnavailable,
}

// ResolveStatus maps a structured-data availability code to a Status. The
// code may carry a schema.org URL prefix (the retailer has been seen emitting
// misspelled variants, so any URL-style prefix is stripped).
//
// When the code is absent or unmapped, the add-to-cart control is the
// fallback cue: hidden means unavailable, visible means available. This is a
// best-effort heuristic, not authoritative.
func ResolveStatus(code string, addToCartHidden bool) models.Status {
	if idx := strings.LastIndex(code, "/"); idx >= 0 {
		code = code[idx+1:]
	}
	if status, ok := availabilityByCode[code]; ok {
		return status
	}
	if addToCartHidden {
		return models.StatusUnavailable
	}
	return models.StatusAvailable
}
