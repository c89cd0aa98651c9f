// Package catalog loads and validates the probability tables the game runs
// on: tier multipliers, affinity charts, egg drop tables, stat ranges, and
// fusion rules. A Catalog is immutable once loaded; a catalog that fails
// validation never reaches the resolvers.
package catalog

import (
	"strings"

	"github.com/emberhatch/menagerie/internal/creature"
)

// TierConfig describes one rarity tier.
type TierConfig struct {
	DisplayName string
	Multiplier  float64
}

// AffinityConfig describes one elemental alignment.
type AffinityConfig struct {
	DisplayName   string
	Emoji         string
	Species       string
	StrongAgainst []creature.Affinity
	WeakAgainst   []creature.Affinity
	Abilities     []string
}

// DropEntry is one tier bucket in an egg's drop table. Entries keep their
// declaration order from the source document; weighted draws break ties in
// that order.
type DropEntry struct {
	Tier   creature.Tier
	Weight int
}

// EggConfig is one purchasable egg type and its drop table.
type EggConfig struct {
	Name  string
	Drops []DropEntry
}

// StatRange bounds the base roll for each of the four stats before the
// tier multiplier applies.
type StatRange struct {
	BaseMin int
	BaseMax int
}

// FusionRequirement gates fusion into one target tier.
type FusionRequirement struct {
	Materials int
	Cost      int
}

// FusionRules hold the success-chance parameters and per-tier requirements.
// Chances are whole percentages.
type FusionRules struct {
	BaseChance   int
	PerRankBonus int
	Floor        int
	Ceiling      int
	Requirements map[creature.Tier]FusionRequirement
}

// Catalog is the compiled, validated probability table set.
type Catalog struct {
	tiers      map[creature.Tier]TierConfig
	affinities map[creature.Affinity]AffinityConfig
	eggs       map[string]EggConfig
	eggOrder   []string
	stats      StatRange
	fusion     FusionRules
}

// CanonicalEggType normalizes an egg type name for lookups.
func CanonicalEggType(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Tier returns the configuration for a rarity tier.
func (c *Catalog) Tier(t creature.Tier) (TierConfig, bool) {
	cfg, ok := c.tiers[t]
	return cfg, ok
}

// Multiplier returns the stat multiplier for a tier, or 1 when the tier is
// not configured. Validation guarantees every real tier is configured, so
// the fallback only covers zero values.
func (c *Catalog) Multiplier(t creature.Tier) float64 {
	if cfg, ok := c.tiers[t]; ok {
		return cfg.Multiplier
	}
	return 1
}

// Affinity returns the configuration for an alignment. Slices are copies;
// mutating them does not touch the catalog.
func (c *Catalog) Affinity(a creature.Affinity) (AffinityConfig, bool) {
	cfg, ok := c.affinities[a]
	if !ok {
		return AffinityConfig{}, false
	}
	out := cfg
	out.StrongAgainst = append([]creature.Affinity(nil), cfg.StrongAgainst...)
	out.WeakAgainst = append([]creature.Affinity(nil), cfg.WeakAgainst...)
	out.Abilities = append([]string(nil), cfg.Abilities...)
	return out, true
}

// Advantage rates an attacker's affinity against a defender's on the
// configured chart.
func (c *Catalog) Advantage(attacker, defender creature.Affinity) creature.Advantage {
	cfg, ok := c.affinities[attacker]
	if !ok {
		return creature.AdvantageNeutral
	}
	for _, a := range cfg.StrongAgainst {
		if a == defender {
			return creature.AdvantageStrong
		}
	}
	for _, a := range cfg.WeakAgainst {
		if a == defender {
			return creature.AdvantageWeak
		}
	}
	return creature.AdvantageNeutral
}

// Egg returns the drop table for an egg type. The name is canonicalized
// before lookup. The returned drop slice is a copy.
func (c *Catalog) Egg(name string) (EggConfig, bool) {
	cfg, ok := c.eggs[CanonicalEggType(name)]
	if !ok {
		return EggConfig{}, false
	}
	out := cfg
	out.Drops = append([]DropEntry(nil), cfg.Drops...)
	return out, true
}

// EggTypes returns every configured egg type in declaration order.
func (c *Catalog) EggTypes() []string {
	return append([]string(nil), c.eggOrder...)
}

// Stats returns the base stat roll range.
func (c *Catalog) Stats() StatRange {
	return c.stats
}

// Fusion returns the fusion rules. The requirements map is a copy.
func (c *Catalog) Fusion() FusionRules {
	out := c.fusion
	out.Requirements = make(map[creature.Tier]FusionRequirement, len(c.fusion.Requirements))
	for tier, req := range c.fusion.Requirements {
		out.Requirements[tier] = req
	}
	return out
}
