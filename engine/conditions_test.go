package engine

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-agroadvisor/models"
)

func newTestEngine(t *testing.T, profiles []models.CropProfile, opts ...Option) *Engine {
	t.Helper()
	kb, err := NewKnowledgeBase(profiles)
	require.NoError(t, err)
	locs, err := DefaultLocationTable()
	require.NoError(t, err)
	return NewEngine(kb, locs, opts...)
}

func leadingInt(t *testing.T, s string) int {
	t.Helper()
	s = strings.TrimPrefix(s, CurrencySymbol)
	end := strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '.' })
	if end >= 0 {
		s = s[:end]
	}
	f, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err, s)
	return int(f)
}

func TestRecommendByConditionsKeralaExample(t *testing.T) {
	e := newTestEngine(t, []models.CropProfile{
		testProfile("Rice", []string{"monsoon", "post-monsoon"}, []string{"loamy", "clay"}),
		testProfile("Wheat", []string{"winter", "post-monsoon"}, []string{"loamy", "sandy"}),
	})

	recs := e.RecommendByConditions(NewSource(42), "Loamy", "post-monsoon", "Kerala")
	require.Len(t, recs, 2)

	crops := []string{recs[0].Crop, recs[1].Crop}
	assert.ElementsMatch(t, []string{"Rice", "Wheat"}, crops)
	assert.GreaterOrEqual(t, recs[0].SuitabilityScore, recs[1].SuitabilityScore)

	for _, r := range recs {
		assert.GreaterOrEqual(t, r.SuitabilityScore, 70)
		assert.LessOrEqual(t, r.SuitabilityScore, 100)

		// yield 3000-5000 scaled by 1.2*1.3, profit/price scaled by 1.1
		yield := leadingInt(t, r.ExpectedYield)
		assert.GreaterOrEqual(t, yield, int(3000*1.2*1.3)-1)
		assert.LessOrEqual(t, yield, int(5000*1.2*1.3))
		profit := leadingInt(t, r.ProfitEstimate)
		assert.GreaterOrEqual(t, profit, int(20000*1.1)-1)
		assert.LessOrEqual(t, profit, int(40000*1.1))
		price := leadingInt(t, r.MarketPrice)
		assert.GreaterOrEqual(t, price, int(20*1.1)-1)
		assert.LessOrEqual(t, price, int(30*1.1))
	}
}

func TestRecommendByConditionsRangesWithoutAdjustment(t *testing.T) {
	kb, err := DefaultKnowledgeBase()
	require.NoError(t, err)
	e := newTestEngine(t, kb.Profiles())

	for seed := int64(1); seed <= 200; seed++ {
		recs := e.RecommendByConditions(NewSource(seed), "loamy", "rabi", "Default")
		require.NotEmpty(t, recs)
		for _, r := range recs {
			p, ok := kb.Lookup(r.Crop)
			require.True(t, ok)

			yield := leadingInt(t, r.ExpectedYield)
			assert.True(t, p.YieldRange.Contains(float64(yield)), "%s yield %d", r.Crop, yield)
			profit := leadingInt(t, r.ProfitEstimate)
			assert.True(t, p.ProfitRange.Contains(float64(profit)), "%s profit %d", r.Crop, profit)
			price := leadingInt(t, r.MarketPrice)
			assert.True(t, p.MarketPriceRange.Contains(float64(price)), "%s price %d", r.Crop, price)

			require.NotNil(t, r.Variety)
			assert.Contains(t, p.Varieties, *r.Variety)
		}
	}
}

func TestRecommendByConditionsRankingAndTruncation(t *testing.T) {
	var profiles []models.CropProfile
	for i := 0; i < 20; i++ {
		profiles = append(profiles, testProfile(fmt.Sprintf("Crop%02d", i), []string{"kharif"}, []string{"black"}))
	}
	e := newTestEngine(t, profiles)

	for seed := int64(1); seed <= 10; seed++ {
		recs := e.RecommendByConditions(NewSource(seed), "BLACK", " Kharif ", "Punjab")
		require.Len(t, recs, DefaultMaxResults)
		for i := 1; i < len(recs); i++ {
			assert.GreaterOrEqual(t, recs[i-1].SuitabilityScore, recs[i].SuitabilityScore)
		}
	}
}

func TestWithMaxResultsClampsToDefault(t *testing.T) {
	var profiles []models.CropProfile
	for i := 0; i < 20; i++ {
		profiles = append(profiles, testProfile(fmt.Sprintf("Crop%02d", i), []string{"kharif"}, []string{"black"}))
	}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"above cap", 20, DefaultMaxResults},
		{"zero", 0, DefaultMaxResults},
		{"negative", -3, DefaultMaxResults},
		{"below cap", 3, 3},
		{"at cap", DefaultMaxResults, DefaultMaxResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, profiles, WithMaxResults(tt.n))
			assert.Equal(t, tt.want, e.MaxResults())
			recs := e.RecommendByConditions(NewSource(11), "black", "kharif", "Punjab")
			assert.Len(t, recs, tt.want)
		})
	}
}

func TestRecommendByConditionsNoMatch(t *testing.T) {
	kb, err := DefaultKnowledgeBase()
	require.NoError(t, err)
	e := newTestEngine(t, kb.Profiles())

	recs := e.RecommendByConditions(NewSource(7), "volcanic", "monsoon", "Kerala")
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendByConditionsUnknownLocation(t *testing.T) {
	profiles := []models.CropProfile{testProfile("Rice", []string{"monsoon"}, []string{"clay"})}
	e := newTestEngine(t, profiles)

	unknown := e.RecommendByConditions(NewSource(3), "clay", "monsoon", "Atlantis")
	def := e.RecommendByConditions(NewSource(3), "clay", "monsoon", "Default")
	require.Len(t, unknown, 1)
	require.Len(t, def, 1)
	assert.Equal(t, def[0].ExpectedYield, unknown[0].ExpectedYield)
	assert.Equal(t, def[0].ProfitEstimate, unknown[0].ProfitEstimate)
	assert.Equal(t, def[0].MarketPrice, unknown[0].MarketPrice)
}

func TestRecommendByConditionsDeterministicForSeed(t *testing.T) {
	kb, err := DefaultKnowledgeBase()
	require.NoError(t, err)
	e := newTestEngine(t, kb.Profiles())

	a := e.RecommendByConditions(NewSource(99), "loamy", "kharif", "Maharashtra")
	b := e.RecommendByConditions(NewSource(99), "loamy", "kharif", "Maharashtra")
	assert.Equal(t, a, b)
}

func TestRecommendByConditionsDerivedFields(t *testing.T) {
	kb, err := DefaultKnowledgeBase()
	require.NoError(t, err)
	e := newTestEngine(t, kb.Profiles())

	for seed := int64(1); seed <= 50; seed++ {
		recs := e.RecommendByConditions(NewSource(seed), "loamy", "winter", "Punjab")
		require.NotEmpty(t, recs)
		checkDerivedFields(t, recs)
	}
}

func checkDerivedFields(t *testing.T, recs models.Recommendations) {
	t.Helper()
	for _, r := range recs {
		inv := leadingInt(t, r.Investment)
		assert.GreaterOrEqual(t, inv, 10000)
		assert.LessOrEqual(t, inv, 60000)

		roi := leadingInt(t, r.ExpectedROI)
		assert.GreaterOrEqual(t, roi, 120)
		assert.LessOrEqual(t, roi, 300)
		assert.True(t, strings.HasSuffix(r.ExpectedROI, "%"))

		harvest := leadingInt(t, r.HarvestTime)
		assert.GreaterOrEqual(t, harvest, 90)
		assert.LessOrEqual(t, harvest, 210)

		assert.True(t, r.RiskLevel.Valid())
		assert.Contains(t, []models.Demand{models.DemandHigh, models.DemandMedium}, r.MarketDemand)
		assert.Contains(t, []models.ExportPotential{models.ExportYes, models.ExportNo}, r.ExportPotential)
		assert.Equal(t, "October - November", r.PlantingWindow)
		assert.True(t,
			strings.HasPrefix(r.Reason, "Well suited for winter season in") ||
				strings.HasPrefix(r.Reason, "High yield potential of") ||
				strings.HasPrefix(r.Reason, "Thrives in loamy soil"),
			r.Reason)
	}
}

func TestRiskLevel(t *testing.T) {
	assert.Equal(t, models.LevelHigh, riskLevel(0.71))
	assert.Equal(t, models.LevelMedium, riskLevel(0.7))
	assert.Equal(t, models.LevelMedium, riskLevel(0.41))
	assert.Equal(t, models.LevelLow, riskLevel(0.4))
	assert.Equal(t, models.LevelLow, riskLevel(0))
}
