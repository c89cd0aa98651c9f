// Package fusion resolves attempts to fuse creatures into a higher tier.
// Validation happens before any randomness: a rejected attempt never
// consumes a stream value, while a valid attempt consumes exactly one.
package fusion

import (
	"strconv"

	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/platform/errors"
	"github.com/emberhatch/menagerie/internal/random"
)

// Resolver runs fusion attempts against one validated catalog.
type Resolver struct {
	cat    *catalog.Catalog
	policy random.SeedPolicy
}

// NewResolver returns a Resolver backed by the catalog. Client seeds are
// honored only for replay rolls.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return NewResolverWithPolicy(cat, random.AllowReplaySeeds)
}

// NewResolverWithPolicy returns a Resolver with an explicit client-seed
// policy.
func NewResolverWithPolicy(cat *catalog.Catalog, policy random.SeedPolicy) *Resolver {
	return &Resolver{cat: cat, policy: policy}
}

// FuseRequest asks to fuse materials into one creature of the target tier.
type FuseRequest struct {
	TargetTier creature.Tier
	Materials  []creature.Creature
	Rng        *random.Request
}

// FuseResult reports one fusion attempt. Materials are consumed and the
// cost is owed whether or not the attempt succeeded; the caller applies
// both.
type FuseResult struct {
	Success     bool
	Chance      int
	TargetTier  creature.Tier
	ConsumedIDs []string
	Cost        int
	Roll        random.Roll
}

// Requirements returns the material count and cost gating fusion into the
// target tier.
func (r *Resolver) Requirements(target creature.Tier) (catalog.FusionRequirement, error) {
	rules := r.cat.Fusion()
	req, ok := rules.Requirements[target]
	if !target.Valid() || target == creature.TierCommon || !ok {
		return catalog.FusionRequirement{}, errors.WithMetadata(errors.CodeFusionTargetInvalid, "tier is not a fusion target", map[string]string{
			"Tier": target.String(),
		})
	}
	return req, nil
}

// SuccessChance computes the clamped success percentage for fusing the
// materials into the target tier. It validates the same way Execute does
// and consumes no randomness.
func (r *Resolver) SuccessChance(target creature.Tier, materials []creature.Creature) (int, error) {
	if _, err := r.validate(target, materials); err != nil {
		return 0, err
	}
	return r.chance(target, materials), nil
}

// Execute runs one fusion attempt.
//
// The request is validated in full before the seed resolves, so a rejected
// attempt consumes no randomness. A valid attempt draws once; the attempt
// succeeds when the draw lands under the clamped success chance. Materials
// are consumed either way.
func (r *Resolver) Execute(req FuseRequest) (FuseResult, error) {
	requirement, err := r.validate(req.TargetTier, req.Materials)
	if err != nil {
		return FuseResult{}, err
	}

	seed, source, mode, err := random.ResolveSeed(req.Rng, random.NewSeed, r.policy)
	if err != nil {
		return FuseResult{}, err
	}

	result := r.fuse(random.NewSeeded(seed), req.TargetTier, req.Materials, requirement)
	result.Roll = random.Roll{
		Seed:   seed,
		Source: source,
		Mode:   mode,
		Algo:   random.RngAlgoMathRandV1,
	}
	return result, nil
}

// fuse draws once against the clamped chance for already validated input.
func (r *Resolver) fuse(src random.Source, target creature.Tier, materials []creature.Creature, requirement catalog.FusionRequirement) FuseResult {
	chance := r.chance(target, materials)
	success := random.Uniform(src) < float64(chance)/100

	consumed := make([]string, 0, len(materials))
	for i, material := range materials {
		id := material.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		consumed = append(consumed, id)
	}

	return FuseResult{
		Success:     success,
		Chance:      chance,
		TargetTier:  target,
		ConsumedIDs: consumed,
		Cost:        requirement.Cost,
	}
}

// chance is base + the sum of material tier ranks times the per-rank
// bonus, clamped to the configured floor and ceiling.
func (r *Resolver) chance(target creature.Tier, materials []creature.Creature) int {
	rules := r.cat.Fusion()

	chance := rules.BaseChance
	for _, material := range materials {
		chance += material.Tier.Rank() * rules.PerRankBonus
	}
	if chance < rules.Floor {
		chance = rules.Floor
	}
	if chance > rules.Ceiling {
		chance = rules.Ceiling
	}
	return chance
}

func (r *Resolver) validate(target creature.Tier, materials []creature.Creature) (catalog.FusionRequirement, error) {
	requirement, err := r.Requirements(target)
	if err != nil {
		return catalog.FusionRequirement{}, err
	}

	for i, material := range materials {
		if !material.Tier.Valid() {
			return catalog.FusionRequirement{}, errors.WithMetadata(errors.CodeFusionMaterialInvalid, "fusion material has an invalid tier", map[string]string{
				"Index": strconv.Itoa(i),
			})
		}
	}

	if len(materials) != requirement.Materials {
		return catalog.FusionRequirement{}, errors.WithMetadata(errors.CodeFusionInsufficientMaterials, "fusion material count does not match requirement", map[string]string{
			"Tier": target.String(),
			"Need": strconv.Itoa(requirement.Materials),
			"Have": strconv.Itoa(len(materials)),
		})
	}

	minTier := target - 1
	for i, material := range materials {
		if material.Tier < minTier {
			label := material.ID
			if label == "" {
				label = strconv.Itoa(i)
			}
			return catalog.FusionRequirement{}, errors.WithMetadata(errors.CodeFusionMaterialTierTooLow, "fusion material tier is below the minimum", map[string]string{
				"Material": label,
				"MinTier":  minTier.String(),
				"Tier":     target.String(),
			})
		}
	}

	return requirement, nil
}
