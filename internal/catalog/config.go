package catalog

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// rawCatalog mirrors the YAML document. Optional scalars are pointers so a
// missing value can be told apart from zero.
type rawCatalog struct {
	Tiers      []rawTier     `yaml:"tiers"`
	Affinities []rawAffinity `yaml:"affinities"`
	Stats      *rawStats     `yaml:"stats"`
	Eggs       []rawEgg      `yaml:"eggs"`
	Fusion     *rawFusion    `yaml:"fusion"`
}

type rawTier struct {
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"display_name"`
	Multiplier  float64 `yaml:"multiplier"`
}

type rawAffinity struct {
	Name          string   `yaml:"name"`
	DisplayName   string   `yaml:"display_name"`
	Emoji         string   `yaml:"emoji"`
	Species       string   `yaml:"species"`
	StrongAgainst []string `yaml:"strong_against"`
	WeakAgainst   []string `yaml:"weak_against"`
	Abilities     []string `yaml:"abilities"`
}

type rawStats struct {
	BaseMin *int `yaml:"base_min"`
	BaseMax *int `yaml:"base_max"`
}

type rawEgg struct {
	Name  string    `yaml:"name"`
	Drops []rawDrop `yaml:"drops"`
}

type rawDrop struct {
	Tier   string `yaml:"tier"`
	Weight int    `yaml:"weight"`
}

type rawFusion struct {
	BaseChance   *int             `yaml:"base_chance"`
	PerRankBonus *int             `yaml:"per_rank_bonus"`
	Floor        *int             `yaml:"floor"`
	Ceiling      *int             `yaml:"ceiling"`
	Requirements []rawRequirement `yaml:"requirements"`
}

type rawRequirement struct {
	Target    string `yaml:"target"`
	Materials int    `yaml:"materials"`
	Cost      int    `yaml:"cost"`
}

// LoadDefault compiles the embedded default catalog.
func LoadDefault() (*Catalog, error) {
	return FromYAML(defaultsYAML)
}

// Load compiles the embedded defaults merged with an optional override
// file. An empty path loads the defaults alone.
func Load(overridePath string) (*Catalog, error) {
	base, err := parseYAML(defaultsYAML)
	if err != nil {
		return nil, err
	}
	if overridePath == "" {
		return compile(base)
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, errors.WrapWithMetadata(errors.CodeCatalogSourceInvalid, "read catalog override", map[string]string{
			"path": overridePath,
		}, err)
	}
	override, err := parseYAML(data)
	if err != nil {
		return nil, err
	}
	return compile(mergeRaw(base, override))
}

// FromYAML compiles a complete catalog document. Callers embedding their
// own tables use this directly; it applies no defaults.
func FromYAML(data []byte) (*Catalog, error) {
	raw, err := parseYAML(data)
	if err != nil {
		return nil, err
	}
	return compile(raw)
}

func parseYAML(data []byte) (rawCatalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return rawCatalog{}, errors.Wrap(errors.CodeCatalogSourceInvalid, "parse catalog yaml", err)
	}
	return raw, nil
}

// mergeRaw overlays an override document on a base one. A top-level section
// present in the override replaces the base section wholesale; absent
// sections keep their base values.
func mergeRaw(base, override rawCatalog) rawCatalog {
	out := base
	if len(override.Tiers) > 0 {
		out.Tiers = override.Tiers
	}
	if len(override.Affinities) > 0 {
		out.Affinities = override.Affinities
	}
	if override.Stats != nil {
		out.Stats = override.Stats
	}
	if len(override.Eggs) > 0 {
		out.Eggs = override.Eggs
	}
	if override.Fusion != nil {
		out.Fusion = override.Fusion
	}
	return out
}
