package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"go-agroadvisor/models"
)

//go:embed data/crops.yaml
var defaultCropsYAML []byte

// KnowledgeBase is an immutable crop catalog. It is safe to share between
// goroutines once loaded.
type KnowledgeBase struct {
	profiles []models.CropProfile
	index    map[string]int
}

type cropFile struct {
	Crops []models.CropProfile `yaml:"crops"`
}

// NewKnowledgeBase validates profiles and builds a catalog from them.
func NewKnowledgeBase(profiles []models.CropProfile) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		profiles: make([]models.CropProfile, 0, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		if err := validateProfile(p); err != nil {
			return nil, err
		}
		key := strings.ToLower(p.Name)
		if _, dup := kb.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate crop %q", ErrInvalidKnowledgeBase, p.Name)
		}
		kb.index[key] = len(kb.profiles)
		kb.profiles = append(kb.profiles, cloneProfile(p))
	}
	return kb, nil
}

func validateProfile(p models.CropProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: crop without a name", ErrInvalidKnowledgeBase)
	}
	if len(p.Varieties) == 0 {
		return fmt.Errorf("%w: %s has no varieties", ErrInvalidKnowledgeBase, p.Name)
	}
	ranges := map[string]models.Range{
		"yield":  p.YieldRange,
		"profit": p.ProfitRange,
		"price":  p.MarketPriceRange,
	}
	for name, r := range ranges {
		if !r.Valid() {
			return fmt.Errorf("%w: %s %s range %v > %v", ErrInvalidKnowledgeBase, p.Name, name, r.Min, r.Max)
		}
	}
	if !p.WaterRequirement.Valid() || !p.PestResistance.Valid() {
		return fmt.Errorf("%w: %s has an unknown water or resistance level", ErrInvalidKnowledgeBase, p.Name)
	}
	return nil
}

func cloneProfile(p models.CropProfile) models.CropProfile {
	p.Varieties = append([]string(nil), p.Varieties...)
	p.Seasons = append([]string(nil), p.Seasons...)
	p.SoilTypes = append([]string(nil), p.SoilTypes...)
	return p
}

// LoadKnowledgeBase reads a YAML catalog of the form `crops: [...]`.
func LoadKnowledgeBase(r io.Reader) (*KnowledgeBase, error) {
	var f cropFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode crops: %v", ErrInvalidKnowledgeBase, err)
	}
	return NewKnowledgeBase(f.Crops)
}

// LoadKnowledgeBaseFile loads a catalog from path. An empty path loads the
// built-in catalog.
func LoadKnowledgeBaseFile(path string) (*KnowledgeBase, error) {
	if path == "" {
		return DefaultKnowledgeBase()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}
	defer f.Close()
	return LoadKnowledgeBase(f)
}

// DefaultKnowledgeBase returns the built-in catalog.
func DefaultKnowledgeBase() (*KnowledgeBase, error) {
	return LoadKnowledgeBase(bytes.NewReader(defaultCropsYAML))
}

// Len returns the number of profiles.
func (kb *KnowledgeBase) Len() int {
	return len(kb.profiles)
}

// Profiles returns a copy of all profiles in catalog order.
func (kb *KnowledgeBase) Profiles() []models.CropProfile {
	out := make([]models.CropProfile, len(kb.profiles))
	for i, p := range kb.profiles {
		out[i] = cloneProfile(p)
	}
	return out
}

// Lookup finds a profile by name, case-insensitively.
func (kb *KnowledgeBase) Lookup(name string) (models.CropProfile, bool) {
	i, ok := kb.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.CropProfile{}, false
	}
	return cloneProfile(kb.profiles[i]), true
}

// Match returns the profiles compatible with both season and soilType.
func (kb *KnowledgeBase) Match(season, soilType string) []models.CropProfile {
	var out []models.CropProfile
	for _, p := range kb.profiles {
		if p.HasSeason(season) && p.HasSoil(soilType) {
			out = append(out, p)
		}
	}
	return out
}
