package hatchery

import (
	"sort"

	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/platform/errors"
)

// PreviewEntry is one tier's exact drop percentage for an egg type.
type PreviewEntry struct {
	Tier    creature.Tier
	Percent int
}

// Preview reports the configured drop percentages for an egg type, sorted
// by descending percentage. Ties keep the drop table's declaration order.
// Preview reads configuration only; it consumes no randomness.
func (g *Generator) Preview(eggType string) ([]PreviewEntry, error) {
	egg, ok := g.cat.Egg(eggType)
	if !ok {
		return nil, errors.WithMetadata(errors.CodeEggTypeUnknown, "unknown egg type", map[string]string{
			"EggType": catalog.CanonicalEggType(eggType),
		})
	}

	entries := make([]PreviewEntry, 0, len(egg.Drops))
	for _, drop := range egg.Drops {
		entries = append(entries, PreviewEntry{Tier: drop.Tier, Percent: drop.Weight})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percent > entries[j].Percent
	})
	return entries, nil
}
