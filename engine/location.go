package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"go-agroadvisor/models"
)

//go:embed data/locations.yaml
var defaultLocationsYAML []byte

// LocationTable maps region names to adjustment multipliers. Lookups are
// case-sensitive; unknown regions get the default region's multipliers.
type LocationTable struct {
	regions       []models.LocationAdjustment
	index         map[string]int
	defaultRegion string
}

type locationFile struct {
	Default string                      `yaml:"default"`
	Regions []models.LocationAdjustment `yaml:"regions"`
}

// NewLocationTable validates adjustments and builds a table. defaultRegion must
// be one of the regions.
func NewLocationTable(adjustments []models.LocationAdjustment, defaultRegion string) (*LocationTable, error) {
	t := &LocationTable{
		regions:       make([]models.LocationAdjustment, 0, len(adjustments)),
		index:         make(map[string]int, len(adjustments)),
		defaultRegion: defaultRegion,
	}
	for _, a := range adjustments {
		if a.Region == "" {
			return nil, fmt.Errorf("%w: region without a name", ErrInvalidKnowledgeBase)
		}
		if !a.Valid() {
			return nil, fmt.Errorf("%w: region %s has a non-positive multiplier", ErrInvalidKnowledgeBase, a.Region)
		}
		if _, dup := t.index[a.Region]; dup {
			return nil, fmt.Errorf("%w: duplicate region %q", ErrInvalidKnowledgeBase, a.Region)
		}
		t.index[a.Region] = len(t.regions)
		t.regions = append(t.regions, a)
	}
	if _, ok := t.index[defaultRegion]; !ok {
		return nil, fmt.Errorf("%w: default region %q not in table", ErrInvalidKnowledgeBase, defaultRegion)
	}
	return t, nil
}

// LoadLocationTable reads a YAML table of the form `default: X` / `regions: [...]`.
func LoadLocationTable(r io.Reader) (*LocationTable, error) {
	var f locationFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode locations: %v", ErrInvalidKnowledgeBase, err)
	}
	return NewLocationTable(f.Regions, f.Default)
}

// LoadLocationTableFile loads a table from path. An empty path loads the
// built-in table.
func LoadLocationTableFile(path string) (*LocationTable, error) {
	if path == "" {
		return DefaultLocationTable()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open location table: %w", err)
	}
	defer f.Close()
	return LoadLocationTable(f)
}

// DefaultLocationTable returns the built-in table.
func DefaultLocationTable() (*LocationTable, error) {
	return LoadLocationTable(bytes.NewReader(defaultLocationsYAML))
}

// Lookup returns the adjustment for region and whether the region was known.
// On a miss the default region's adjustment is returned.
func (t *LocationTable) Lookup(region string) (models.LocationAdjustment, bool) {
	if i, ok := t.index[region]; ok {
		return t.regions[i], true
	}
	return t.regions[t.index[t.defaultRegion]], false
}

// Default returns the name of the fallback region.
func (t *LocationTable) Default() string {
	return t.defaultRegion
}

// Regions returns a copy of all adjustments in table order.
func (t *LocationTable) Regions() []models.LocationAdjustment {
	return append([]models.LocationAdjustment(nil), t.regions...)
}
