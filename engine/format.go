package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every displayed price.
const CurrencySymbol = "₹"

// FormatPrice renders v with two decimals and the currency glyph.
func FormatPrice(v float64) string {
	return CurrencySymbol + decimal.NewFromFloat(v).StringFixed(2)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// SeriesNamer supplies display names for chart series by index.
type SeriesNamer interface {
	SeriesName(i int) (string, bool)
}

// LegendName returns the name of chart series i from the first source that has
// one, or a placeholder ("Crop A", "Crop B", ...).
func LegendName(i int, sources ...SeriesNamer) string {
	for _, s := range sources {
		if s == nil {
			continue
		}
		if name, ok := s.SeriesName(i); ok {
			return name
		}
	}
	if i >= 0 && i < 26 {
		return fmt.Sprintf("Crop %c", 'A'+i)
	}
	return fmt.Sprintf("Crop %d", i+1)
}
