package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-agroadvisor/models"
)

func TestDefaultKnowledgeBase(t *testing.T) {
	kb, err := DefaultKnowledgeBase()
	require.NoError(t, err)
	require.Greater(t, kb.Len(), 8)

	for _, p := range kb.Profiles() {
		assert.True(t, p.YieldRange.Valid(), "%s yield range", p.Name)
		assert.True(t, p.ProfitRange.Valid(), "%s profit range", p.Name)
		assert.True(t, p.MarketPriceRange.Valid(), "%s price range", p.Name)
		assert.NotEmpty(t, p.Varieties, p.Name)
		assert.True(t, p.WaterRequirement.Valid(), p.Name)
		assert.True(t, p.PestResistance.Valid(), p.Name)
	}

	rice, ok := kb.Lookup("rice")
	require.True(t, ok)
	assert.Equal(t, "Rice", rice.Name)
	assert.Equal(t, models.LevelHigh, rice.WaterRequirement)
}

func TestKnowledgeBaseProfilesAreCopies(t *testing.T) {
	kb, err := DefaultKnowledgeBase()
	require.NoError(t, err)

	profiles := kb.Profiles()
	profiles[0].Varieties[0] = "mutated"
	profiles[0].Name = "mutated"

	again := kb.Profiles()
	assert.NotEqual(t, "mutated", again[0].Name)
	assert.NotEqual(t, "mutated", again[0].Varieties[0])
}

func TestNewKnowledgeBaseRejectsInvalidProfiles(t *testing.T) {
	valid := testProfile("Rice", []string{"monsoon"}, []string{"loamy"})

	t.Run("inverted range", func(t *testing.T) {
		p := valid
		p.YieldRange = models.Range{Min: 10, Max: 1}
		_, err := NewKnowledgeBase([]models.CropProfile{p})
		assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
	})

	t.Run("duplicate name", func(t *testing.T) {
		dup := valid
		dup.Name = "RICE"
		_, err := NewKnowledgeBase([]models.CropProfile{valid, dup})
		assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
	})

	t.Run("no varieties", func(t *testing.T) {
		p := valid
		p.Varieties = nil
		_, err := NewKnowledgeBase([]models.CropProfile{p})
		assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
	})
}

func TestLoadKnowledgeBaseYAML(t *testing.T) {
	doc := `
crops:
  - name: Millet
    varieties: [Pusa Composite]
    seasons: [kharif]
    soil_types: [sandy]
    yield: {min: 1000, max: 2000}
    profit: {min: 10000, max: 15000}
    price: {min: 20, max: 30}
    water: low
    temperature: 25-35°C
    growing_period: 80 days
    fertilizer: Low NPK
    pest_resistance: HIGH
`
	kb, err := LoadKnowledgeBase(strings.NewReader(doc))
	require.NoError(t, err)
	p, ok := kb.Lookup("Millet")
	require.True(t, ok)
	assert.Equal(t, models.LevelLow, p.WaterRequirement)
	assert.Equal(t, models.LevelHigh, p.PestResistance)

	_, err = LoadKnowledgeBase(strings.NewReader("crops:\n  - name: X\n    unknown_field: 1\n"))
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)

	_, err = LoadKnowledgeBase(strings.NewReader("crops:\n  - name: X\n    water: Extreme\n"))
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
}

func TestLocationTable(t *testing.T) {
	table, err := DefaultLocationTable()
	require.NoError(t, err)

	kerala, ok := table.Lookup("Kerala")
	require.True(t, ok)
	assert.Equal(t, 1.2, kerala.Rainfall)
	assert.Equal(t, 1.3, kerala.Humidity)
	assert.Equal(t, 1.1, kerala.Temperature)

	// Lookups are case-sensitive and fall back to the default region.
	fallback, ok := table.Lookup("kerala")
	assert.False(t, ok)
	assert.Equal(t, table.Default(), fallback.Region)

	for _, r := range table.Regions() {
		assert.True(t, r.Valid(), r.Region)
	}
}

func TestNewLocationTableValidation(t *testing.T) {
	_, err := NewLocationTable([]models.LocationAdjustment{
		{Region: "A", Rainfall: 1, Humidity: 1, Temperature: 1},
	}, "B")
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)

	_, err = NewLocationTable([]models.LocationAdjustment{
		{Region: "A", Rainfall: 0, Humidity: 1, Temperature: 1},
	}, "A")
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
}

func testProfile(name string, seasons, soils []string) models.CropProfile {
	return models.CropProfile{
		Name:             name,
		Varieties:        []string{name + " A", name + " B"},
		Seasons:          seasons,
		SoilTypes:        soils,
		YieldRange:       models.Range{Min: 3000, Max: 5000},
		ProfitRange:      models.Range{Min: 20000, Max: 40000},
		MarketPriceRange: models.Range{Min: 20, Max: 30},
		WaterRequirement: models.LevelMedium,
		TemperatureRange: "20-30°C",
		GrowingPeriod:    "120 days",
		FertilizerNeeds:  "Balanced NPK",
		PestResistance:   models.LevelMedium,
	}
}
