package hatchery

import "github.com/emberhatch/menagerie/internal/creature"

// Name builds the display name for a hatched creature. The name derives
// from the tier and affinity alone, so replaying a hatch reproduces it.
func (g *Generator) Name(tier creature.Tier, affinity creature.Affinity) string {
	tierName := tier.String()
	if cfg, ok := g.cat.Tier(tier); ok {
		tierName = cfg.DisplayName
	}
	speciesName := affinity.String()
	if cfg, ok := g.cat.Affinity(affinity); ok {
		speciesName = cfg.Species
	}
	return tierName + " " + speciesName
}
