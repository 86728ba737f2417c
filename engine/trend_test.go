package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-agroadvisor/models"
)

func TestSynthesizePositivityAndShape(t *testing.T) {
	names := []string{"Rice", "Wheat", "Maize", "Cotton"}
	for seed := int64(1); seed <= 20; seed++ {
		series := Synthesize(NewSource(seed), names, 30)
		assert.Equal(t, models.TrendSimulated, series.Source)
		require.Equal(t, names, series.Names())
		for _, s := range series.Series {
			require.Len(t, s.Prices, 30)
			for _, p := range s.Prices {
				assert.GreaterOrEqual(t, p, MinPrice)
				assert.Equal(t, p, round2(p))
			}
		}
	}
}

func TestSynthesizeBasePriceBands(t *testing.T) {
	series := Synthesize(NewSource(11), []string{"A", "B", "C"}, 50)
	for i, s := range series.Series {
		lo := 15 + float64(i)*5 - 2.1
		hi := 15 + float64(i)*5 + 10 + 2.1
		for _, p := range s.Prices {
			assert.GreaterOrEqual(t, p, lo-0.01, s.Crop)
			assert.LessOrEqual(t, p, hi+0.01, s.Crop)
		}
	}
}

func TestSynthesizeDuplicateNamesOverwriteInPlace(t *testing.T) {
	series := Synthesize(NewSource(1), []string{"Rice", "Wheat", "Rice"}, 5)
	assert.Equal(t, []string{"Rice", "Wheat"}, series.Names())
}

func TestSynthesizeNoDays(t *testing.T) {
	series := Synthesize(NewSource(1), []string{"Rice"}, 0)
	rows, err := ToChartRows(series)
	require.NoError(t, err)
	assert.Empty(t, rows)

	series = Synthesize(NewSource(1), []string{"Rice"}, -3)
	assert.Empty(t, series.Series[0].Prices)
}

func TestToChartRowsLength(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		for _, days := range []int{1, 7, 30} {
			t.Run(fmt.Sprintf("%d crops %d days", n, days), func(t *testing.T) {
				names := make([]string, n)
				for i := range names {
					names[i] = fmt.Sprintf("crop-%d", i)
				}
				series := Synthesize(NewSource(int64(n*100+days)), names, days)
				rows, err := ToChartRows(series)
				require.NoError(t, err)
				require.Len(t, rows, days)

				for d, row := range rows {
					assert.Equal(t, d+1, row.Day)
					slots := []*float64{row.C1, row.C2, row.C3}
					for i, v := range slots {
						if i < n {
							require.NotNil(t, v)
							assert.Equal(t, series.Series[i].Prices[d], *v)
						} else {
							assert.Nil(t, v)
						}
					}
				}
			})
		}
	}
}

func TestToChartRowsMismatch(t *testing.T) {
	_, err := ToChartRows(models.MarketTrendSeries{Series: []models.CropSeries{
		{Crop: "Rice", Prices: []float64{1, 2, 3}},
		{Crop: "Wheat", Prices: []float64{1, 2}},
	}})
	assert.ErrorIs(t, err, ErrSeriesLengthMismatch)
}

func TestFromRealTrends(t *testing.T) {
	adapted, err := FromRealTrends([]models.CropSeries{
		{Crop: " Rice ", Prices: []float64{30.5, 31}},
		{Crop: "Onion", Prices: []float64{22, 21.75}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TrendReal, adapted.Source)
	assert.Equal(t, []string{"Rice", "Onion"}, adapted.Names())

	rows, err := ToChartRows(adapted)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 31.0, *rows[1].C1)
	assert.Nil(t, rows[1].C3)

	_, err = FromRealTrends([]models.CropSeries{{Crop: "Rice", Prices: []float64{1, 0}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FromRealTrends([]models.CropSeries{{Crop: "", Prices: []float64{1}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FromRealTrends([]models.CropSeries{
		{Crop: "Rice", Prices: []float64{1}},
		{Crop: "Wheat", Prices: []float64{1, 2}},
	})
	assert.ErrorIs(t, err, ErrSeriesLengthMismatch)
}

func TestFallbackSeries(t *testing.T) {
	rows := FallbackSeries(30)
	require.Len(t, rows, 30)
	assert.Equal(t, rows, FallbackSeries(30))

	for _, r := range rows {
		require.NotNil(t, r.C1)
		require.NotNil(t, r.C2)
		require.NotNil(t, r.C3)
		assert.InDelta(t, 25, *r.C1, 3.01)
		assert.InDelta(t, 30, *r.C2, 2.51)
		assert.InDelta(t, 20, *r.C3, 1.51)
	}
	assert.Empty(t, FallbackSeries(0))
}
