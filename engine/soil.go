package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"go-agroadvisor/models"
)

// threshold classifies v as Low below low, Medium below medium, else High.
type threshold struct {
	low, medium float64
}

func (t threshold) classify(v float64) models.Level {
	switch {
	case v < t.low:
		return models.LevelLow
	case v < t.medium:
		return models.LevelMedium
	default:
		return models.LevelHigh
	}
}

// Hand-picked cut-offs; not taken from an agronomic reference.
var (
	nitrogenThreshold   = threshold{30, 60}
	phosphorusThreshold = threshold{15, 30}
	potassiumThreshold  = threshold{20, 40}
	moistureThreshold   = threshold{50, 150}
	humidityThreshold   = threshold{40, 70}
)

// Classify turns a reading into Low/Medium/High levels. Rainfall is treated as
// soil moisture.
func Classify(r models.SoilReading) models.SoilLevels {
	return models.SoilLevels{
		Nitrogen:   nitrogenThreshold.classify(r.Nitrogen),
		Phosphorus: phosphorusThreshold.classify(r.Phosphorus),
		Potassium:  potassiumThreshold.classify(r.Potassium),
		Moisture:   moistureThreshold.classify(r.Rainfall),
		Humidity:   humidityThreshold.classify(r.Humidity),
	}
}

// ParseSoilReading validates raw form values. Every field is required and must
// be a finite, non-negative number.
func ParseSoilReading(raw models.RawSoilReading) (models.SoilReading, error) {
	var r models.SoilReading
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"N", raw.Nitrogen, &r.Nitrogen},
		{"P", raw.Phosphorus, &r.Phosphorus},
		{"K", raw.Potassium, &r.Potassium},
		{"rainfall", raw.Rainfall, &r.Rainfall},
		{"humidity", raw.Humidity, &r.Humidity},
	}

	for _, f := range fields {
		v, err := parseReading(f.name, f.raw)
		if err != nil {
			return models.SoilReading{}, err
		}
		*f.dst = v
	}
	return r, nil
}

func parseReading(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &InputError{Field: field, Value: raw, Reason: "required"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputError{Field: field, Value: raw, Reason: "not a number"}
	}
	if v < 0 {
		return 0, &InputError{Field: field, Value: raw, Reason: "must not be negative"}
	}
	return v, nil
}

// ValidateSoilReading checks an already-numeric reading.
func ValidateSoilReading(r models.SoilReading) error {
	values := []struct {
		name string
		v    float64
	}{
		{"N", r.Nitrogen},
		{"P", r.Phosphorus},
		{"K", r.Potassium},
		{"rainfall", r.Rainfall},
		{"humidity", r.Humidity},
	}
	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &InputError{Field: f.name, Value: strconv.FormatFloat(f.v, 'g', -1, 64), Reason: "not a number"}
		}
		if f.v < 0 {
			return &InputError{Field: f.name, Value: strconv.FormatFloat(f.v, 'g', -1, 64), Reason: "must not be negative"}
		}
	}
	return nil
}

// SoilRule appends Record when Applies holds for the classified levels.
type SoilRule struct {
	Name    string
	Applies func(models.SoilLevels) bool
	Record  models.RecommendationRecord
}

// SoilAnalysis is the result of the soil-chemistry recommender.
type SoilAnalysis struct {
	Levels          models.SoilLevels      `json:"levels"`
	Recommendations models.Recommendations `json:"recommendations"`
}

// RecommendBySoil parses raw readings and runs the soil rules. Any missing,
// blank, non-numeric or negative field fails with ErrInvalidInput and no records.
func RecommendBySoil(raw models.RawSoilReading) (SoilAnalysis, error) {
	r, err := ParseSoilReading(raw)
	if err != nil {
		return SoilAnalysis{}, err
	}
	return RecommendBySoilReading(r)
}

// RecommendBySoilReading runs the soil rules over a numeric reading.
func RecommendBySoilReading(r models.SoilReading) (SoilAnalysis, error) {
	if err := ValidateSoilReading(r); err != nil {
		return SoilAnalysis{}, err
	}
	levels := Classify(r)
	return SoilAnalysis{Levels: levels, Recommendations: ApplySoilRules(levels, SoilRules())}, nil
}

// ApplySoilRules evaluates rules in order. Rules are independent: any number
// may fire, and records are not de-duplicated. The result is stably sorted by
// score, highest first.
func ApplySoilRules(levels models.SoilLevels, rules []SoilRule) models.Recommendations {
	recs := models.Recommendations{}
	for _, rule := range rules {
		if rule.Applies(levels) {
			recs = append(recs, copyRecord(rule.Record))
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SuitabilityScore > recs[j].SuitabilityScore
	})
	return recs
}

func copyRecord(r models.RecommendationRecord) models.RecommendationRecord {
	if r.Variety != nil {
		v := *r.Variety
		r.Variety = &v
	}
	return r
}

func always(models.SoilLevels) bool { return true }

// SoilRules returns the rule set in evaluation order.
func SoilRules() []SoilRule {
	return []SoilRule{
		{
			Name:    "nitrogen-high",
			Applies: func(l models.SoilLevels) bool { return l.Nitrogen == models.LevelHigh },
			Record: soilRecord("Rice", "IR-64", "Kharif",
				"High nitrogen content supports vigorous vegetative growth",
				"4500-5500 kg/ha", 35000, 28, models.LevelHigh, "20-35°C", "120-150 days",
				"Low additional nitrogen needed", models.LevelMedium, 95, models.LevelLow,
				25000, 180, "June - July", "October - November", models.DemandHigh, models.ExportYes),
		},
		{
			Name: "phosphorus-medium-or-high",
			Applies: func(l models.SoilLevels) bool {
				return l.Phosphorus == models.LevelMedium || l.Phosphorus == models.LevelHigh
			},
			Record: soilRecord("Wheat", "HD-2967", "Rabi",
				"Adequate phosphorus promotes strong root development and grain filling",
				"4000-5000 kg/ha", 30000, 24, models.LevelMedium, "10-25°C", "110-130 days",
				"Balanced NPK with reduced phosphorus", models.LevelHigh, 92, models.LevelLow,
				20000, 160, "October - November", "March - April", models.DemandHigh, models.ExportYes),
		},
		{
			Name:    "potassium-high",
			Applies: func(l models.SoilLevels) bool { return l.Potassium == models.LevelHigh },
			Record: soilRecord("Potato", "Kufri Jyoti", "Rabi",
				"High potassium improves tuber size and quality",
				"25000-30000 kg/ha", 50000, 15, models.LevelMedium, "15-25°C", "90-120 days",
				"Nitrogen and phosphorus top-up", models.LevelMedium, 90, models.LevelMedium,
				45000, 210, "October - November", "January - February", models.DemandHigh, models.ExportNo),
		},
		{
			Name: "moisture-and-humidity-high",
			Applies: func(l models.SoilLevels) bool {
				return l.Moisture == models.LevelHigh && l.Humidity == models.LevelHigh
			},
			Record: soilRecord("Sugarcane", "Co-86032", "Annual",
				"Abundant moisture and humidity suit a long-duration water-intensive crop",
				"70000-90000 kg/ha", 75000, 3.5, models.LevelHigh, "20-35°C", "10-12 months",
				"Heavy nitrogen and potash", models.LevelMedium, 88, models.LevelMedium,
				60000, 200, "February - March", "December - March", models.DemandHigh, models.ExportNo),
		},
		{
			Name: "balanced-npk",
			Applies: func(l models.SoilLevels) bool {
				return l.Nitrogen == models.LevelMedium && l.Phosphorus == models.LevelMedium && l.Potassium == models.LevelMedium
			},
			Record: soilRecord("Maize", "DHM-117", "Kharif",
				"Balanced nutrient profile suits a versatile cereal",
				"5000-6000 kg/ha", 28000, 20, models.LevelMedium, "18-32°C", "90-110 days",
				"Nitrogen in split doses", models.LevelMedium, 86, models.LevelLow,
				18000, 170, "June - July", "September - October", models.DemandMedium, models.ExportYes),
		},
		{
			Name: "any-nutrient-low",
			Applies: func(l models.SoilLevels) bool {
				return l.Nitrogen == models.LevelLow || l.Phosphorus == models.LevelLow || l.Potassium == models.LevelLow
			},
			Record: soilRecord("Chili", "Guntur Sannam", "Kharif",
				"Tolerates low-nutrient soils while giving high value per acre",
				"1800-2200 kg/ha", 55000, 120, models.LevelMedium, "20-30°C", "150-180 days",
				"Supplement the deficient nutrient before planting", models.LevelLow, 84, models.LevelMedium,
				35000, 220, "June - July", "December - February", models.DemandHigh, models.ExportYes),
		},
		{
			Name:    "baseline-tomato",
			Applies: always,
			Record: soilRecord("Tomato", "Pusa Ruby", "Rabi",
				"Adaptable vegetable with steady local demand",
				"30000-40000 kg/ha", 60000, 25, models.LevelMedium, "18-30°C", "90-120 days",
				"Balanced NPK with calcium", models.LevelLow, 80, models.LevelHigh,
				40000, 200, "October - November", "January - March", models.DemandHigh, models.ExportNo),
		},
		{
			Name:    "baseline-onion",
			Applies: always,
			Record: soilRecord("Onion", "Nasik Red", "Rabi",
				"Stores well and diversifies income across the season",
				"22000-28000 kg/ha", 45000, 22, models.LevelMedium, "13-25°C", "120-150 days",
				"Moderate NPK with sulphur", models.LevelMedium, 78, models.LevelMedium,
				30000, 190, "November - December", "April - May", models.DemandMedium, models.ExportYes),
		},
	}
}

func soilRecord(
	crop, variety, season, reason, yield string,
	profit, price float64,
	water models.Level,
	temperature, period, fertilizer string,
	resistance models.Level,
	score int,
	risk models.Level,
	investment float64,
	roi int,
	planting, harvest string,
	demand models.Demand,
	export models.ExportPotential,
) models.RecommendationRecord {
	return models.RecommendationRecord{
		Crop:             crop,
		Variety:          &variety,
		Season:           season,
		Reason:           reason,
		ExpectedYield:    yield,
		ProfitEstimate:   FormatPrice(profit) + "/acre",
		MarketPrice:      FormatPrice(price) + "/kg",
		WaterRequirement: water,
		TemperatureRange: temperature,
		GrowingPeriod:    period,
		FertilizerNeeds:  fertilizer,
		PestResistance:   resistance,
		SuitabilityScore: score,
		RiskLevel:        risk,
		Investment:       FormatPrice(investment),
		ExpectedROI:      strconv.Itoa(roi) + "%",
		PlantingWindow:   planting,
		HarvestTime:      harvest,
		MarketDemand:     demand,
		ExportPotential:  export,
	}
}
