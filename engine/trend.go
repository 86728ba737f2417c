package engine

import (
	"fmt"
	"math"
	"strings"

	"go-agroadvisor/models"
)

// MinPrice is the floor applied to every synthesized price.
const MinPrice = 0.01

// chartSlots is the number of crop columns a ChartRow carries.
const chartSlots = 3

// Synthesize builds a simulated daily price series per crop: a per-crop base
// price plus a sine trend and small noise. It is a chart placeholder, not a
// forecast. Repeated names overwrite the earlier series in place.
func Synthesize(src Source, cropNames []string, days int) models.MarketTrendSeries {
	if days < 0 {
		days = 0
	}
	out := models.MarketTrendSeries{Source: models.TrendSimulated, Series: []models.CropSeries{}}
	pos := make(map[string]int, len(cropNames))

	for i, name := range cropNames {
		base := 15 + float64(i)*5 + RandomInRange(src, 0, 10)
		prices := make([]float64, days)
		for d := 0; d < days; d++ {
			p := base + math.Sin(float64(d)*0.5+float64(i))*2 + RandomInRange(src, -0.1, 0.1)
			prices[d] = round2(math.Max(p, MinPrice))
		}

		if j, ok := pos[name]; ok {
			out.Series[j].Prices = prices
			continue
		}
		pos[name] = len(out.Series)
		out.Series = append(out.Series, models.CropSeries{Crop: name, Prices: prices})
	}
	return out
}

// FromRealTrends adapts provider data into a MarketTrendSeries tagged as real.
// Names must be non-empty and unique, prices positive and series equal in length.
func FromRealTrends(series []models.CropSeries) (models.MarketTrendSeries, error) {
	out := models.MarketTrendSeries{Source: models.TrendReal, Series: make([]models.CropSeries, 0, len(series))}
	seen := make(map[string]bool, len(series))
	for _, s := range series {
		name := strings.TrimSpace(s.Crop)
		if name == "" {
			return models.MarketTrendSeries{}, &InputError{Field: "crop", Reason: "required"}
		}
		if seen[name] {
			return models.MarketTrendSeries{}, &InputError{Field: "crop", Value: name, Reason: "duplicate series"}
		}
		seen[name] = true
		for d, p := range s.Prices {
			if !(p > 0) || math.IsInf(p, 0) {
				return models.MarketTrendSeries{}, &InputError{
					Field:  fmt.Sprintf("%s[%d]", name, d),
					Value:  fmt.Sprint(p),
					Reason: "price must be positive",
				}
			}
		}
		out.Series = append(out.Series, models.CropSeries{Crop: name, Prices: append([]float64(nil), s.Prices...)})
	}
	if _, err := seriesLength(out); err != nil {
		return models.MarketTrendSeries{}, err
	}
	return out, nil
}

func seriesLength(m models.MarketTrendSeries) (int, error) {
	if len(m.Series) == 0 {
		return 0, nil
	}
	n := len(m.Series[0].Prices)
	for _, s := range m.Series[1:] {
		if len(s.Prices) != n {
			return 0, fmt.Errorf("%w: %s has %d points, %s has %d",
				ErrSeriesLengthMismatch, m.Series[0].Crop, n, s.Crop, len(s.Prices))
		}
	}
	return n, nil
}

// ToChartRows reshapes a series into one row per day with the first three crops
// in c1..c3. Unequal series lengths fail with ErrSeriesLengthMismatch.
func ToChartRows(m models.MarketTrendSeries) ([]models.ChartRow, error) {
	n, err := seriesLength(m)
	if err != nil {
		return nil, err
	}
	rows := make([]models.ChartRow, n)
	for d := 0; d < n; d++ {
		row := models.ChartRow{Day: d + 1}
		slots := []**float64{&row.C1, &row.C2, &row.C3}
		for i := 0; i < len(m.Series) && i < chartSlots; i++ {
			v := m.Series[i].Prices[d]
			*slots[i] = &v
		}
		rows[d] = row
	}
	return rows, nil
}

// FallbackSeries returns three fixed curves around 25, 30 and 20 for when no
// crop context exists at all.
func FallbackSeries(days int) []models.ChartRow {
	if days < 0 {
		days = 0
	}
	rows := make([]models.ChartRow, days)
	for d := 0; d < days; d++ {
		x := float64(d)
		c1 := round2(25 + math.Sin(x*0.3)*3)
		c2 := round2(30 + math.Cos(x*0.4+1)*2.5)
		c3 := round2(20 + math.Sin(x*0.5+2)*1.5)
		rows[d] = models.ChartRow{Day: d + 1, C1: &c1, C2: &c2, C3: &c3}
	}
	return rows
}
