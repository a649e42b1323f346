package units

import (
	"testing"

	"github.com/shelfwatch/shelfwatch/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.UnitAmount
		ok   bool
	}{
		{"trailing grams uppercase", "John West Tuna Olive Oil Blend 95G", models.UnitAmount{Amount: 95, Unit: models.UnitGram}, true},
		{"bare kilograms", "1kg", models.UnitAmount{Amount: 1, Unit: models.UnitKilogram}, true},
		{"embedded kilograms", "Whiskas 1+ Years Adult Dry Cat Food Tuna 6.5kg Bag", models.UnitAmount{Amount: 6.5, Unit: models.UnitKilogram}, true},
		{"millilitres", "Soy Sauce 250mL", models.UnitAmount{Amount: 250, Unit: models.UnitMillilitre}, true},
		{"litres", "Orange Juice 2L", models.UnitAmount{Amount: 2, Unit: models.UnitLitre}, true},
		{"spaced unit", "Milk 1 L", models.UnitAmount{Amount: 1, Unit: models.UnitLitre}, true},
		{"comma decimal separator", "Kase 1,5kg", models.UnitAmount{Amount: 1.5, Unit: models.UnitKilogram}, true},
		{"pack multiplier", "Dine Fresh & Fine Gravy Salmon 50g X 6 Pack", models.UnitAmount{Amount: 50, Unit: models.UnitGram}, true},
		{"multiplier without unit", "Snack Pack 6x4", models.UnitAmount{Amount: 24, Unit: models.UnitEach}, true},
		{"no quantity at all", "Reusable Shopping Bag", models.UnitAmount{}, false},
		{"unit without number", "sold per kg", models.UnitAmount{}, false},
		{"empty", "", models.UnitAmount{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseAmount_NeverGuesses(t *testing.T) {
	// Ambiguous or malformed input resolves to absence, not a guess.
	for _, text := range []string{"xx", "0x0", "g", "kgkg", "a x b"} {
		if got, ok := ParseAmount(text); ok {
			t.Errorf("ParseAmount(%q) = %+v, want absent", text, got)
		}
	}
}
