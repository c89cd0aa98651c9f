package catalog

import (
	"strconv"
	"strings"

	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/platform/errors"
)

// compile turns a raw document into a validated Catalog. Any violation is
// fatal; a partially valid catalog is never returned.
func compile(raw rawCatalog) (*Catalog, error) {
	tiers, err := compileTiers(raw.Tiers)
	if err != nil {
		return nil, err
	}
	affinities, err := compileAffinities(raw.Affinities)
	if err != nil {
		return nil, err
	}
	stats, err := compileStats(raw.Stats)
	if err != nil {
		return nil, err
	}
	eggs, eggOrder, err := compileEggs(raw.Eggs)
	if err != nil {
		return nil, err
	}
	fusion, err := compileFusion(raw.Fusion)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		tiers:      tiers,
		affinities: affinities,
		eggs:       eggs,
		eggOrder:   eggOrder,
		stats:      stats,
		fusion:     fusion,
	}, nil
}

func compileTiers(raw []rawTier) (map[creature.Tier]TierConfig, error) {
	tiers := make(map[creature.Tier]TierConfig, len(raw))

	for _, entry := range raw {
		tier, err := creature.ParseTier(entry.Name)
		if err != nil {
			return nil, err
		}
		if _, exists := tiers[tier]; exists {
			return nil, errors.WithMetadata(errors.CodeCatalogSourceInvalid, "tier is defined more than once", map[string]string{
				"Tier": tier.String(),
			})
		}
		if strings.TrimSpace(entry.DisplayName) == "" {
			return nil, errors.WithMetadata(errors.CodeCatalogSourceInvalid, "tier display name is required", map[string]string{
				"Tier": tier.String(),
			})
		}
		if entry.Multiplier < 1 {
			return nil, errors.WithMetadata(errors.CodeCatalogMultiplierInvalid, "tier multiplier must be at least 1", map[string]string{
				"Tier": tier.String(),
			})
		}
		tiers[tier] = TierConfig{
			DisplayName: strings.TrimSpace(entry.DisplayName),
			Multiplier:  entry.Multiplier,
		}
	}

	for _, tier := range creature.Tiers() {
		if _, ok := tiers[tier]; !ok {
			return nil, errors.WithMetadata(errors.CodeCatalogTierMissing, "tier is not configured", map[string]string{
				"Tier": tier.String(),
			})
		}
	}

	// Multipliers must never shrink as rarity climbs.
	ladder := creature.Tiers()
	for i := 1; i < len(ladder); i++ {
		if tiers[ladder[i]].Multiplier < tiers[ladder[i-1]].Multiplier {
			return nil, errors.WithMetadata(errors.CodeCatalogMultiplierInvalid, "tier multiplier regresses below the tier beneath it", map[string]string{
				"Tier": ladder[i].String(),
			})
		}
	}

	return tiers, nil
}

func compileAffinities(raw []rawAffinity) (map[creature.Affinity]AffinityConfig, error) {
	affinities := make(map[creature.Affinity]AffinityConfig, len(raw))

	for _, entry := range raw {
		affinity, err := creature.ParseAffinity(entry.Name)
		if err != nil {
			return nil, err
		}
		if _, exists := affinities[affinity]; exists {
			return nil, errors.WithMetadata(errors.CodeCatalogSourceInvalid, "affinity is defined more than once", map[string]string{
				"Affinity": affinity.String(),
			})
		}
		if strings.TrimSpace(entry.DisplayName) == "" {
			return nil, errors.WithMetadata(errors.CodeCatalogSourceInvalid, "affinity display name is required", map[string]string{
				"Affinity": affinity.String(),
			})
		}
		if strings.TrimSpace(entry.Species) == "" {
			return nil, errors.WithMetadata(errors.CodeCatalogSpeciesMissing, "affinity species is required", map[string]string{
				"Affinity": affinity.String(),
			})
		}

		abilities := make([]string, 0, len(entry.Abilities))
		for _, ability := range entry.Abilities {
			trimmed := strings.TrimSpace(ability)
			if trimmed == "" {
				continue
			}
			abilities = append(abilities, trimmed)
		}
		if len(abilities) == 0 {
			return nil, errors.WithMetadata(errors.CodeCatalogAbilityPoolEmpty, "affinity has no abilities", map[string]string{
				"Affinity": affinity.String(),
			})
		}

		strong, err := compileAdvantageList(affinity, entry.StrongAgainst)
		if err != nil {
			return nil, err
		}
		weak, err := compileAdvantageList(affinity, entry.WeakAgainst)
		if err != nil {
			return nil, err
		}
		for _, s := range strong {
			for _, w := range weak {
				if s == w {
					return nil, errors.WithMetadata(errors.CodeCatalogAdvantageConflict, "affinity is both strong and weak against the same target", map[string]string{
						"Affinity": affinity.String(),
						"Other":    s.String(),
					})
				}
			}
		}

		affinities[affinity] = AffinityConfig{
			DisplayName:   strings.TrimSpace(entry.DisplayName),
			Emoji:         strings.TrimSpace(entry.Emoji),
			Species:       strings.TrimSpace(entry.Species),
			StrongAgainst: strong,
			WeakAgainst:   weak,
			Abilities:     abilities,
		}
	}

	for _, affinity := range creature.Affinities() {
		if _, ok := affinities[affinity]; !ok {
			return nil, errors.WithMetadata(errors.CodeCatalogAffinityMissing, "affinity is not configured", map[string]string{
				"Affinity": affinity.String(),
			})
		}
	}

	// Strength must be one-directional: if fire is strong against air, air
	// cannot also be strong against fire.
	for _, affinity := range creature.Affinities() {
		for _, target := range affinities[affinity].StrongAgainst {
			for _, back := range affinities[target].StrongAgainst {
				if back == affinity {
					return nil, errors.WithMetadata(errors.CodeCatalogAdvantageSymmetric, "affinities are strong against each other", map[string]string{
						"Affinity": affinity.String(),
						"Other":    target.String(),
					})
				}
			}
		}
	}

	return affinities, nil
}

func compileAdvantageList(owner creature.Affinity, names []string) ([]creature.Affinity, error) {
	out := make([]creature.Affinity, 0, len(names))
	for _, name := range names {
		target, err := creature.ParseAffinity(name)
		if err != nil {
			return nil, err
		}
		if target == owner {
			return nil, errors.WithMetadata(errors.CodeCatalogAdvantageSelf, "affinity references itself on the advantage chart", map[string]string{
				"Affinity": owner.String(),
			})
		}
		for _, existing := range out {
			if existing == target {
				return nil, errors.WithMetadata(errors.CodeCatalogSourceInvalid, "advantage target listed more than once", map[string]string{
					"Affinity": owner.String(),
					"Other":    target.String(),
				})
			}
		}
		out = append(out, target)
	}
	return out, nil
}

func compileStats(raw *rawStats) (StatRange, error) {
	if raw == nil || raw.BaseMin == nil || raw.BaseMax == nil {
		return StatRange{}, errors.New(errors.CodeCatalogStatRangeInvalid, "stats section with base_min and base_max is required")
	}
	min, max := *raw.BaseMin, *raw.BaseMax
	if min < 1 || max < min {
		return StatRange{}, errors.WithMetadata(errors.CodeCatalogStatRangeInvalid, "stat range must satisfy 1 <= base_min <= base_max", map[string]string{
			"Min": strconv.Itoa(min),
			"Max": strconv.Itoa(max),
		})
	}
	return StatRange{BaseMin: min, BaseMax: max}, nil
}

func compileEggs(raw []rawEgg) (map[string]EggConfig, []string, error) {
	if len(raw) == 0 {
		return nil, nil, errors.New(errors.CodeCatalogSourceInvalid, "at least one egg type is required")
	}

	eggs := make(map[string]EggConfig, len(raw))
	order := make([]string, 0, len(raw))

	for _, entry := range raw {
		name := CanonicalEggType(entry.Name)
		if name == "" {
			return nil, nil, errors.New(errors.CodeCatalogSourceInvalid, "egg type name is required")
		}
		if _, exists := eggs[name]; exists {
			return nil, nil, errors.WithMetadata(errors.CodeCatalogEggDuplicate, "egg type is defined more than once", map[string]string{
				"EggType": name,
			})
		}
		if len(entry.Drops) == 0 {
			return nil, nil, errors.WithMetadata(errors.CodeCatalogDropTableEmpty, "egg type has no drop entries", map[string]string{
				"EggType": name,
			})
		}

		drops := make([]DropEntry, 0, len(entry.Drops))
		seen := make(map[creature.Tier]bool, len(entry.Drops))
		sum := 0
		for _, drop := range entry.Drops {
			tier, err := creature.ParseTier(drop.Tier)
			if err != nil {
				return nil, nil, err
			}
			if seen[tier] {
				return nil, nil, errors.WithMetadata(errors.CodeCatalogDropTierDuplicate, "tier appears more than once in drop table", map[string]string{
					"EggType": name,
					"Tier":    tier.String(),
				})
			}
			seen[tier] = true
			if drop.Weight < 1 {
				return nil, nil, errors.WithMetadata(errors.CodeCatalogDropWeightInvalid, "drop weight must be a positive integer", map[string]string{
					"EggType": name,
					"Tier":    tier.String(),
				})
			}
			sum += drop.Weight
			drops = append(drops, DropEntry{Tier: tier, Weight: drop.Weight})
		}
		if sum != 100 {
			return nil, nil, errors.WithMetadata(errors.CodeCatalogDropSumInvalid, "drop weights must sum to exactly 100", map[string]string{
				"EggType": name,
				"Sum":     strconv.Itoa(sum),
			})
		}

		eggs[name] = EggConfig{Name: name, Drops: drops}
		order = append(order, name)
	}

	return eggs, order, nil
}

func compileFusion(raw *rawFusion) (FusionRules, error) {
	if raw == nil {
		return FusionRules{}, errors.New(errors.CodeCatalogFusionRuleInvalid, "fusion section is required")
	}
	if raw.BaseChance == nil || raw.PerRankBonus == nil || raw.Floor == nil || raw.Ceiling == nil {
		return FusionRules{}, errors.New(errors.CodeCatalogFusionRuleInvalid, "fusion base_chance, per_rank_bonus, floor, and ceiling are required")
	}

	rules := FusionRules{
		BaseChance:   *raw.BaseChance,
		PerRankBonus: *raw.PerRankBonus,
		Floor:        *raw.Floor,
		Ceiling:      *raw.Ceiling,
		Requirements: make(map[creature.Tier]FusionRequirement, len(raw.Requirements)),
	}

	if rules.BaseChance < 0 || rules.BaseChance > 100 {
		return FusionRules{}, errors.WithMetadata(errors.CodeCatalogFusionRuleInvalid, "fusion base chance must be within 0..100", map[string]string{
			"Value": strconv.Itoa(rules.BaseChance),
		})
	}
	if rules.PerRankBonus < 0 {
		return FusionRules{}, errors.WithMetadata(errors.CodeCatalogFusionRuleInvalid, "fusion per-rank bonus cannot be negative", map[string]string{
			"Value": strconv.Itoa(rules.PerRankBonus),
		})
	}
	if rules.Floor < 0 || rules.Floor > rules.Ceiling || rules.Ceiling > 100 {
		return FusionRules{}, errors.WithMetadata(errors.CodeCatalogFusionRuleInvalid, "fusion clamp must satisfy 0 <= floor <= ceiling <= 100", map[string]string{
			"Floor":   strconv.Itoa(rules.Floor),
			"Ceiling": strconv.Itoa(rules.Ceiling),
		})
	}

	for _, req := range raw.Requirements {
		tier, err := creature.ParseTier(req.Target)
		if err != nil {
			return FusionRules{}, err
		}
		if tier == creature.TierCommon {
			return FusionRules{}, errors.New(errors.CodeCatalogFusionRuleInvalid, "fusion cannot target the lowest tier")
		}
		if _, exists := rules.Requirements[tier]; exists {
			return FusionRules{}, errors.WithMetadata(errors.CodeCatalogFusionRuleInvalid, "fusion requirement is defined more than once", map[string]string{
				"Tier": tier.String(),
			})
		}
		if req.Materials < 2 {
			return FusionRules{}, errors.WithMetadata(errors.CodeCatalogFusionRuleInvalid, "fusion needs at least two materials", map[string]string{
				"Tier": tier.String(),
			})
		}
		if req.Cost < 0 {
			return FusionRules{}, errors.WithMetadata(errors.CodeCatalogFusionRuleInvalid, "fusion cost cannot be negative", map[string]string{
				"Tier": tier.String(),
			})
		}
		rules.Requirements[tier] = FusionRequirement{Materials: req.Materials, Cost: req.Cost}
	}

	for _, tier := range creature.Tiers() {
		if tier == creature.TierCommon {
			continue
		}
		if _, ok := rules.Requirements[tier]; !ok {
			return FusionRules{}, errors.WithMetadata(errors.CodeCatalogFusionRuleInvalid, "fusion requirement is missing for tier", map[string]string{
				"Tier": tier.String(),
			})
		}
	}

	return rules, nil
}
