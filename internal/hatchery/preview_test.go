package hatchery

import (
	"testing"

	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/platform/errors"
)

func TestPreviewReportsExactConfiguredPercentages(t *testing.T) {
	g := defaultGenerator(t)

	entries, err := g.Preview("BASIC")
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}

	want := []PreviewEntry{
		{Tier: creature.TierCommon, Percent: 50},
		{Tier: creature.TierUncommon, Percent: 30},
		{Tier: creature.TierRare, Percent: 15},
		{Tier: creature.TierEpic, Percent: 4},
		{Tier: creature.TierLegendary, Percent: 1},
	}
	if len(entries) != len(want) {
		t.Fatalf("Preview returned %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestPreviewSortsDescending(t *testing.T) {
	g := defaultGenerator(t)

	for _, eggType := range g.cat.EggTypes() {
		entries, err := g.Preview(eggType)
		if err != nil {
			t.Fatalf("Preview(%q) returned error: %v", eggType, err)
		}

		sum := 0
		for i, entry := range entries {
			sum += entry.Percent
			if i > 0 && entries[i-1].Percent < entry.Percent {
				t.Errorf("%s preview out of order at %d: %d before %d", eggType, i, entries[i-1].Percent, entry.Percent)
			}
		}
		if sum != 100 {
			t.Errorf("%s preview percentages sum to %d, want 100", eggType, sum)
		}
	}
}

func TestPreviewTiesKeepDeclarationOrder(t *testing.T) {
	doc := `
tiers:
  - {name: common, display_name: Common, multiplier: 1.0}
  - {name: uncommon, display_name: Uncommon, multiplier: 1.2}
  - {name: rare, display_name: Rare, multiplier: 1.5}
  - {name: epic, display_name: Epic, multiplier: 2.0}
  - {name: legendary, display_name: Legendary, multiplier: 2.5}
  - {name: godly, display_name: Godly, multiplier: 3.0}
affinities:
  - {name: fire, display_name: Fire, species: Emberwing, strong_against: [air], weak_against: [water], abilities: [Flame Burst]}
  - {name: water, display_name: Water, species: Tidefin, strong_against: [fire], weak_against: [earth], abilities: [Tidal Crash]}
  - {name: earth, display_name: Earth, species: Mossback, strong_against: [water], weak_against: [air], abilities: [Quake Stomp]}
  - {name: air, display_name: Air, species: Zephyrix, strong_against: [earth], weak_against: [fire], abilities: [Gale Slash]}
  - {name: light, display_name: Light, species: Lumina, strong_against: [dark], weak_against: [], abilities: [Radiant Lance]}
  - {name: dark, display_name: Dark, species: Duskmaw, strong_against: [], weak_against: [light], abilities: [Umbral Fang]}
stats:
  base_min: 10
  base_max: 50
eggs:
  - name: SPLIT
    drops:
      - {tier: uncommon, weight: 40}
      - {tier: common, weight: 40}
      - {tier: rare, weight: 20}
fusion:
  base_chance: 70
  per_rank_bonus: 5
  floor: 30
  ceiling: 95
  requirements:
    - {target: uncommon, materials: 2, cost: 100}
    - {target: rare, materials: 2, cost: 300}
    - {target: epic, materials: 2, cost: 900}
    - {target: legendary, materials: 3, cost: 2700}
    - {target: godly, materials: 4, cost: 8100}
`
	cat, err := catalog.FromYAML([]byte(doc))
	if err != nil {
		t.Fatalf("FromYAML returned error: %v", err)
	}
	g := NewGenerator(cat)

	entries, err := g.Preview("SPLIT")
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}

	want := []PreviewEntry{
		{Tier: creature.TierUncommon, Percent: 40},
		{Tier: creature.TierCommon, Percent: 40},
		{Tier: creature.TierRare, Percent: 20},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v (ties must keep declaration order)", i, entries[i], want[i])
		}
	}
}

func TestPreviewUnknownEggType(t *testing.T) {
	g := defaultGenerator(t)

	_, err := g.Preview("CURSED")
	if err == nil {
		t.Fatal("Preview succeeded, want error")
	}
	if !errors.IsCode(err, errors.CodeEggTypeUnknown) {
		t.Fatalf("Preview error code = %v, want %v", errors.GetCode(err), errors.CodeEggTypeUnknown)
	}
}
