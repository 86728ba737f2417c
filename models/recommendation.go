package models

// RecommendationRecord is the card shown for one recommended crop. Both
// recommenders produce this shape.
type RecommendationRecord struct {
	Crop             string          `json:"crop"`
	Variety          *string         `json:"variety"`
	Season           string          `json:"season,omitempty"`
	Reason           string          `json:"reason"`
	ExpectedYield    string          `json:"expectedYield"`
	ProfitEstimate   string          `json:"profitEstimate"`
	MarketPrice      string          `json:"marketPrice"`
	WaterRequirement Level           `json:"waterRequirement"`
	TemperatureRange string          `json:"temperatureRange"`
	GrowingPeriod    string          `json:"growingPeriod"`
	FertilizerNeeds  string          `json:"fertilizerNeeds"`
	PestResistance   Level           `json:"pestResistance"`
	SuitabilityScore int             `json:"suitabilityScore"`
	RiskLevel        Level           `json:"riskLevel"`
	Investment       string          `json:"investmentRequired"`
	ExpectedROI      string          `json:"expectedROI"`
	PlantingWindow   string          `json:"plantingWindow"`
	HarvestTime      string          `json:"harvestTime"`
	MarketDemand     Demand          `json:"marketDemand"`
	ExportPotential  ExportPotential `json:"exportPotential"`
}

// VarietyName returns the variety or an empty string.
func (r RecommendationRecord) VarietyName() string {
	if r.Variety == nil {
		return ""
	}
	return *r.Variety
}

// Recommendations is an ordered result list; position is the ranking.
type Recommendations []RecommendationRecord

// SeriesName names chart series i after the i-th recommended crop.
func (rs Recommendations) SeriesName(i int) (string, bool) {
	if i < 0 || i >= len(rs) || rs[i].Crop == "" {
		return "", false
	}
	return rs[i].Crop, true
}

// CropNames returns up to n crop names in ranking order, skipping repeats.
func (rs Recommendations) CropNames(n int) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, n)
	for _, r := range rs {
		if len(names) == n {
			break
		}
		if seen[r.Crop] {
			continue
		}
		seen[r.Crop] = true
		names = append(names, r.Crop)
	}
	return names
}
