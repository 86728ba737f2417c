package models

// LocationAdjustment holds the per-region multipliers applied to knowledge-base ranges.
type LocationAdjustment struct {
	Region      string  `json:"region" yaml:"region"`
	Rainfall    float64 `json:"rainfall" yaml:"rainfall"`
	Humidity    float64 `json:"humidity" yaml:"humidity"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// Valid reports whether all multipliers are positive.
func (a LocationAdjustment) Valid() bool {
	return a.Rainfall > 0 && a.Humidity > 0 && a.Temperature > 0
}
