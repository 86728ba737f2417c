package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go-agroadvisor/models"
)

// DefaultMaxResults caps the condition-based result list.
const DefaultMaxResults = 8

// Bounds for the derived display fields of a condition-based record.
const (
	minScore      = 70
	maxScore      = 100
	minInvestment = 10000
	maxInvestment = 60000
	minROI        = 120
	maxROI        = 300
	minHarvestDay = 90
	maxHarvestDay = 210
)

var plantingWindows = map[string]string{
	"kharif":       "June - July",
	"monsoon":      "June - July",
	"rabi":         "October - November",
	"winter":       "October - November",
	"post-monsoon": "September - October",
	"zaid":         "March - April",
	"summer":       "March - April",
	"spring":       "February - March",
}

// Engine runs the condition-based recommender over an injected knowledge base
// and location table. An Engine holds no mutable state.
type Engine struct {
	kb         *KnowledgeBase
	locations  *LocationTable
	maxResults int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxResults lowers the result cap. Values outside 1..DefaultMaxResults
// are clamped into that range.
func WithMaxResults(n int) Option {
	return func(e *Engine) {
		switch {
		case n < 1:
			e.maxResults = DefaultMaxResults
		case n > DefaultMaxResults:
			e.maxResults = DefaultMaxResults
		default:
			e.maxResults = n
		}
	}
}

// MaxResults returns the effective result cap.
func (e *Engine) MaxResults() int { return e.maxResults }

// NewEngine creates an engine over kb and locations.
func NewEngine(kb *KnowledgeBase, locations *LocationTable, opts ...Option) *Engine {
	e := &Engine{kb: kb, locations: locations, maxResults: DefaultMaxResults}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KnowledgeBase returns the crop catalog the engine reads.
func (e *Engine) KnowledgeBase() *KnowledgeBase { return e.kb }

// Locations returns the location table the engine reads.
func (e *Engine) Locations() *LocationTable { return e.locations }

// RecommendByConditions ranks the crops compatible with season and soilType,
// adjusted for location. No match yields an empty list; an unknown location
// uses the default multipliers.
func (e *Engine) RecommendByConditions(src Source, soilType, season, location string) models.Recommendations {
	adj, _ := e.locations.Lookup(location)
	matches := e.kb.Match(season, soilType)

	recs := make(models.Recommendations, 0, len(matches))
	for _, p := range matches {
		recs = append(recs, conditionRecord(src, p, adj, soilType, season, location))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SuitabilityScore > recs[j].SuitabilityScore
	})
	if len(recs) > e.maxResults {
		recs = recs[:e.maxResults]
	}
	return recs
}

func conditionRecord(src Source, p models.CropProfile, adj models.LocationAdjustment, soilType, season, location string) models.RecommendationRecord {
	variety := pick(src, p.Varieties)

	yield := int(math.Floor(RandomInRange(src, p.YieldRange.Min, p.YieldRange.Max) * adj.Rainfall * adj.Humidity))
	profit := int(math.Floor(RandomInRange(src, p.ProfitRange.Min, p.ProfitRange.Max) * adj.Temperature))
	price := int(math.Floor(RandomInRange(src, p.MarketPriceRange.Min, p.MarketPriceRange.Max) * adj.Temperature))

	reasons := [...]string{
		fmt.Sprintf("Well suited for %s season in %s", season, location),
		fmt.Sprintf("High yield potential of %d kg/ha", yield),
		fmt.Sprintf("Thrives in %s soil", strings.ToLower(strings.TrimSpace(soilType))),
	}
	reason := reasons[src.Intn(len(reasons))]

	score := RandomInt(src, minScore, maxScore)
	risk := riskLevel(src.Float64())
	investment := RandomInt(src, minInvestment, maxInvestment)
	roi := RandomInt(src, minROI, maxROI)
	harvest := RandomInt(src, minHarvestDay, maxHarvestDay)

	demand := models.DemandMedium
	if src.Float64() > 0.5 {
		demand = models.DemandHigh
	}
	export := models.ExportNo
	if src.Float64() < 0.4 {
		export = models.ExportYes
	}

	return models.RecommendationRecord{
		Crop:             p.Name,
		Variety:          &variety,
		Season:           season,
		Reason:           reason,
		ExpectedYield:    fmt.Sprintf("%d kg/ha", yield),
		ProfitEstimate:   FormatPrice(float64(profit)) + "/acre",
		MarketPrice:      FormatPrice(float64(price)) + "/kg",
		WaterRequirement: p.WaterRequirement,
		TemperatureRange: p.TemperatureRange,
		GrowingPeriod:    p.GrowingPeriod,
		FertilizerNeeds:  p.FertilizerNeeds,
		PestResistance:   p.PestResistance,
		SuitabilityScore: score,
		RiskLevel:        risk,
		Investment:       FormatPrice(float64(investment)),
		ExpectedROI:      fmt.Sprintf("%d%%", roi),
		PlantingWindow:   plantingWindow(season),
		HarvestTime:      fmt.Sprintf("%d days", harvest),
		MarketDemand:     demand,
		ExportPotential:  export,
	}
}

// riskLevel maps a uniform draw to roughly 30% High, 30% Medium, 40% Low.
func riskLevel(u float64) models.Level {
	switch {
	case u > 0.7:
		return models.LevelHigh
	case u > 0.4:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

func plantingWindow(season string) string {
	if w, ok := plantingWindows[strings.ToLower(strings.TrimSpace(season))]; ok {
		return w
	}
	return "As per local calendar"
}
