package models

// SoilReading is a parsed soil-test result.
type SoilReading struct {
	Nitrogen   float64 `json:"N"`
	Phosphorus float64 `json:"P"`
	Potassium  float64 `json:"K"`
	Rainfall   float64 `json:"rainfall"` // mm
	Humidity   float64 `json:"humidity"` // %
}

// RawSoilReading carries the readings as typed into the form, before validation.
type RawSoilReading struct {
	Nitrogen   string `json:"N"`
	Phosphorus string `json:"P"`
	Potassium  string `json:"K"`
	Rainfall   string `json:"rainfall"`
	Humidity   string `json:"humidity"`
}

// SoilLevels is the qualitative classification of a SoilReading.
type SoilLevels struct {
	Nitrogen   Level `json:"nitrogen"`
	Phosphorus Level `json:"phosphorus"`
	Potassium  Level `json:"potassium"`
	Moisture   Level `json:"moisture"`
	Humidity   Level `json:"humidity"`
}
