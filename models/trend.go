package models

// TrendSource tells simulated series apart from provider data.
type TrendSource string

const (
	TrendSimulated TrendSource = "simulated"
	TrendReal      TrendSource = "real"
)

// CropSeries is one crop's daily price sequence.
type CropSeries struct {
	Crop   string    `json:"crop"`
	Prices []float64 `json:"prices"`
}

// MarketTrendSeries maps crop names to daily prices, keeping insertion order.
type MarketTrendSeries struct {
	Source TrendSource  `json:"source"`
	Series []CropSeries `json:"series"`
}

// Names returns the crop names in insertion order.
func (m MarketTrendSeries) Names() []string {
	names := make([]string, len(m.Series))
	for i, s := range m.Series {
		names[i] = s.Crop
	}
	return names
}

// Prices returns the series for crop.
func (m MarketTrendSeries) Prices(crop string) ([]float64, bool) {
	for _, s := range m.Series {
		if s.Crop == crop {
			return s.Prices, true
		}
	}
	return nil, false
}

// SeriesName names chart series i after the i-th crop in the map.
func (m MarketTrendSeries) SeriesName(i int) (string, bool) {
	if i < 0 || i >= len(m.Series) || m.Series[i].Crop == "" {
		return "", false
	}
	return m.Series[i].Crop, true
}

// ChartRow is one day of a chart: up to three crop values.
type ChartRow struct {
	Day int      `json:"day"`
	C1  *float64 `json:"c1"`
	C2  *float64 `json:"c2"`
	C3  *float64 `json:"c3"`
}
