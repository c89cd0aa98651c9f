// Package hatchery turns eggs into creatures. Every hatch runs on its own
// seeded stream, so a recorded seed replays to the identical creature.
package hatchery

import (
	"math"

	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/platform/errors"
	"github.com/emberhatch/menagerie/internal/random"
)

// Generator hatches eggs against one validated catalog.
type Generator struct {
	cat    *catalog.Catalog
	policy random.SeedPolicy
}

// NewGenerator returns a Generator backed by the catalog. Client seeds are
// honored only for replay rolls.
func NewGenerator(cat *catalog.Catalog) *Generator {
	return NewGeneratorWithPolicy(cat, random.AllowReplaySeeds)
}

// NewGeneratorWithPolicy returns a Generator with an explicit client-seed
// policy.
func NewGeneratorWithPolicy(cat *catalog.Catalog, policy random.SeedPolicy) *Generator {
	return &Generator{cat: cat, policy: policy}
}

// HatchRequest asks for one egg to hatch.
type HatchRequest struct {
	EggType string
	Rng     *random.Request
}

// HatchResult is the hatched creature plus the roll that produced it.
type HatchResult struct {
	Creature creature.Creature
	Roll     random.Roll
}

// Hatch resolves one egg into a creature.
//
// # Determinism
//
// The stream is consumed in a fixed order: one weighted draw for the tier,
// one uniform draw for the affinity, four uniform draws for attack,
// defense, speed, and health, and one uniform draw for the ability. The
// same seed against the same catalog always hatches the same creature.
//
// An unknown egg type fails before any randomness is consumed.
func (g *Generator) Hatch(req HatchRequest) (HatchResult, error) {
	egg, ok := g.cat.Egg(req.EggType)
	if !ok {
		return HatchResult{}, errors.WithMetadata(errors.CodeEggTypeUnknown, "unknown egg type", map[string]string{
			"EggType": catalog.CanonicalEggType(req.EggType),
		})
	}

	seed, source, mode, err := random.ResolveSeed(req.Rng, random.NewSeed, g.policy)
	if err != nil {
		return HatchResult{}, err
	}

	hatched, err := g.roll(random.NewSeeded(seed), egg)
	if err != nil {
		return HatchResult{}, err
	}

	return HatchResult{
		Creature: hatched,
		Roll: random.Roll{
			Seed:   seed,
			Source: source,
			Mode:   mode,
			Algo:   random.RngAlgoMathRandV1,
		},
	}, nil
}

// HatchWithSource resolves one egg against a caller-owned stream. The caller
// controls seeding and stream reuse; Hatch wraps this with per-call seed
// resolution. Useful for hatching long sequences without reseeding.
func (g *Generator) HatchWithSource(eggType string, src random.Source) (creature.Creature, error) {
	egg, ok := g.cat.Egg(eggType)
	if !ok {
		return creature.Creature{}, errors.WithMetadata(errors.CodeEggTypeUnknown, "unknown egg type", map[string]string{
			"EggType": catalog.CanonicalEggType(eggType),
		})
	}
	return g.roll(src, egg)
}

// roll performs the draws for one hatch against an already validated egg.
func (g *Generator) roll(src random.Source, egg catalog.EggConfig) (creature.Creature, error) {
	entries := make([]random.Weighted[creature.Tier], 0, len(egg.Drops))
	for _, drop := range egg.Drops {
		entries = append(entries, random.Weighted[creature.Tier]{Value: drop.Tier, Weight: drop.Weight})
	}
	tier, err := random.DrawWeighted(src, entries)
	if err != nil {
		return creature.Creature{}, err
	}

	affinities := creature.Affinities()
	idx, err := random.IntInRange(src, 0, len(affinities)-1)
	if err != nil {
		return creature.Creature{}, err
	}
	affinity := affinities[idx]

	stats, err := g.rollStats(src, tier)
	if err != nil {
		return creature.Creature{}, err
	}

	affinityCfg, ok := g.cat.Affinity(affinity)
	if !ok {
		return creature.Creature{}, errors.WithMetadata(errors.CodeCatalogAffinityMissing, "affinity missing from catalog", map[string]string{
			"Affinity": affinity.String(),
		})
	}
	abilityIdx, err := random.IntInRange(src, 0, len(affinityCfg.Abilities)-1)
	if err != nil {
		return creature.Creature{}, err
	}

	return creature.Creature{
		Name:     g.Name(tier, affinity),
		Species:  affinityCfg.Species,
		Tier:     tier,
		Affinity: affinity,
		Level:    1,
		Stats:    stats,
		Ability:  affinityCfg.Abilities[abilityIdx],
	}, nil
}

// rollStats draws the four stats, each within the tier-scaled base range.
func (g *Generator) rollStats(src random.Source, tier creature.Tier) (creature.Stats, error) {
	bounds := g.cat.Stats()
	multiplier := g.cat.Multiplier(tier)
	lo := int(math.Round(float64(bounds.BaseMin) * multiplier))
	hi := int(math.Round(float64(bounds.BaseMax) * multiplier))

	var stats creature.Stats
	for _, target := range []*int{&stats.Attack, &stats.Defense, &stats.Speed, &stats.Health} {
		value, err := random.IntInRange(src, lo, hi)
		if err != nil {
			return creature.Stats{}, err
		}
		*target = value
	}
	return stats, nil
}
