package models

import (
	"fmt"
	"strings"
)

// Level is the shared Low/Medium/High scale used for water needs, resistance,
// risk and the soil nutrient classes.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// UnmarshalText accepts the level names case-insensitively.
func (l *Level) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "low":
		*l = LevelLow
	case "medium":
		*l = LevelMedium
	case "high":
		*l = LevelHigh
	default:
		return fmt.Errorf("unknown level %q", string(text))
	}
	return nil
}

// Demand is the expected market demand for a crop.
type Demand string

const (
	DemandMedium Demand = "Medium"
	DemandHigh   Demand = "High"
)

// ExportPotential is rendered as Yes/No on the cards.
type ExportPotential string

const (
	ExportYes ExportPotential = "Yes"
	ExportNo  ExportPotential = "No"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Valid reports whether the bounds are ordered.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// CropProfile is one knowledge-base entry.
type CropProfile struct {
	Name             string   `json:"name" yaml:"name"`
	Varieties        []string `json:"varieties" yaml:"varieties"`
	Seasons          []string `json:"seasons" yaml:"seasons"`
	SoilTypes        []string `json:"soilTypes" yaml:"soil_types"`
	YieldRange       Range    `json:"yieldRange" yaml:"yield"`       // kg/ha
	ProfitRange      Range    `json:"profitRange" yaml:"profit"`     // per acre
	MarketPriceRange Range    `json:"marketPriceRange" yaml:"price"` // per kg
	WaterRequirement Level    `json:"waterRequirement" yaml:"water"`
	TemperatureRange string   `json:"temperatureRange" yaml:"temperature"`
	GrowingPeriod    string   `json:"growingPeriod" yaml:"growing_period"`
	FertilizerNeeds  string   `json:"fertilizerNeeds" yaml:"fertilizer"`
	PestResistance   Level    `json:"pestResistance" yaml:"pest_resistance"`
}

// HasSeason matches season case-insensitively.
func (p CropProfile) HasSeason(season string) bool {
	return containsFold(p.Seasons, season)
}

// HasSoil matches soilType case-insensitively.
func (p CropProfile) HasSoil(soilType string) bool {
	return containsFold(p.SoilTypes, soilType)
}

func containsFold(values []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}
