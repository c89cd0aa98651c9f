package catalog

import (
	"strings"
	"testing"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

const validTiersYAML = `tiers:
  - {name: common, display_name: Common, multiplier: 1.0}
  - {name: uncommon, display_name: Uncommon, multiplier: 1.2}
  - {name: rare, display_name: Rare, multiplier: 1.5}
  - {name: epic, display_name: Epic, multiplier: 2.0}
  - {name: legendary, display_name: Legendary, multiplier: 2.5}
  - {name: godly, display_name: Godly, multiplier: 3.0}
`

const validAffinitiesYAML = `affinities:
  - {name: fire, display_name: Fire, species: Emberwing, strong_against: [air], weak_against: [water], abilities: [Flame Burst]}
  - {name: water, display_name: Water, species: Tidefin, strong_against: [fire], weak_against: [earth], abilities: [Tidal Crash]}
  - {name: earth, display_name: Earth, species: Mossback, strong_against: [water], weak_against: [air], abilities: [Quake Stomp]}
  - {name: air, display_name: Air, species: Zephyrix, strong_against: [earth], weak_against: [fire], abilities: [Gale Slash]}
  - {name: light, display_name: Light, species: Lumina, strong_against: [dark], weak_against: [], abilities: [Radiant Lance]}
  - {name: dark, display_name: Dark, species: Duskmaw, strong_against: [], weak_against: [light], abilities: [Umbral Fang]}
`

const validStatsYAML = `stats:
  base_min: 10
  base_max: 50
`

const validEggsYAML = `eggs:
  - name: BASIC
    drops:
      - {tier: common, weight: 50}
      - {tier: uncommon, weight: 30}
      - {tier: rare, weight: 15}
      - {tier: epic, weight: 4}
      - {tier: legendary, weight: 1}
`

const validFusionYAML = `fusion:
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

type catalogDoc struct {
	tiers      string
	affinities string
	stats      string
	eggs       string
	fusion     string
}

func (d catalogDoc) yaml() []byte {
	sections := []string{d.tiers, d.affinities, d.stats, d.eggs, d.fusion}
	for i, section := range sections {
		if section == "" {
			switch i {
			case 0:
				sections[i] = validTiersYAML
			case 1:
				sections[i] = validAffinitiesYAML
			case 2:
				sections[i] = validStatsYAML
			case 3:
				sections[i] = validEggsYAML
			case 4:
				sections[i] = validFusionYAML
			}
		}
	}
	return []byte(strings.Join(sections, "\n"))
}

func TestFromYAMLAcceptsValidDocument(t *testing.T) {
	if _, err := FromYAML(catalogDoc{}.yaml()); err != nil {
		t.Fatalf("FromYAML returned error: %v", err)
	}
}

func TestFromYAMLRejectsInvalidDocuments(t *testing.T) {
	tcs := []struct {
		name string
		doc  catalogDoc
		code errors.Code
	}{
		{
			name: "unknown tier name",
			doc: catalogDoc{tiers: `tiers:
  - {name: mythic, display_name: Mythic, multiplier: 1.0}
`},
			code: errors.CodeCatalogTierUnknown,
		},
		{
			name: "missing tier",
			doc: catalogDoc{tiers: `tiers:
  - {name: common, display_name: Common, multiplier: 1.0}
  - {name: uncommon, display_name: Uncommon, multiplier: 1.2}
  - {name: rare, display_name: Rare, multiplier: 1.5}
  - {name: epic, display_name: Epic, multiplier: 2.0}
  - {name: legendary, display_name: Legendary, multiplier: 2.5}
`},
			code: errors.CodeCatalogTierMissing,
		},
		{
			name: "multiplier below one",
			doc: catalogDoc{tiers: strings.Replace(validTiersYAML,
				"{name: common, display_name: Common, multiplier: 1.0}",
				"{name: common, display_name: Common, multiplier: 0.9}", 1)},
			code: errors.CodeCatalogMultiplierInvalid,
		},
		{
			name: "multiplier regresses",
			doc: catalogDoc{tiers: strings.Replace(validTiersYAML,
				"{name: epic, display_name: Epic, multiplier: 2.0}",
				"{name: epic, display_name: Epic, multiplier: 1.4}", 1)},
			code: errors.CodeCatalogMultiplierInvalid,
		},
		{
			name: "duplicate tier",
			doc: catalogDoc{tiers: validTiersYAML +
				"  - {name: common, display_name: Common, multiplier: 1.0}\n"},
			code: errors.CodeCatalogSourceInvalid,
		},
		{
			name: "missing affinity",
			doc: catalogDoc{affinities: strings.Replace(validAffinitiesYAML,
				"  - {name: dark, display_name: Dark, species: Duskmaw, strong_against: [], weak_against: [light], abilities: [Umbral Fang]}\n",
				"", 1)},
			code: errors.CodeCatalogAffinityMissing,
		},
		{
			name: "affinity strong against itself",
			doc: catalogDoc{affinities: strings.Replace(validAffinitiesYAML,
				"{name: fire, display_name: Fire, species: Emberwing, strong_against: [air], weak_against: [water], abilities: [Flame Burst]}",
				"{name: fire, display_name: Fire, species: Emberwing, strong_against: [fire], weak_against: [water], abilities: [Flame Burst]}", 1)},
			code: errors.CodeCatalogAdvantageSelf,
		},
		{
			name: "mutual strength",
			doc: catalogDoc{affinities: strings.Replace(validAffinitiesYAML,
				"{name: air, display_name: Air, species: Zephyrix, strong_against: [earth], weak_against: [fire], abilities: [Gale Slash]}",
				"{name: air, display_name: Air, species: Zephyrix, strong_against: [fire], weak_against: [], abilities: [Gale Slash]}", 1)},
			code: errors.CodeCatalogAdvantageSymmetric,
		},
		{
			name: "strong and weak against same target",
			doc: catalogDoc{affinities: strings.Replace(validAffinitiesYAML,
				"{name: fire, display_name: Fire, species: Emberwing, strong_against: [air], weak_against: [water], abilities: [Flame Burst]}",
				"{name: fire, display_name: Fire, species: Emberwing, strong_against: [air], weak_against: [air], abilities: [Flame Burst]}", 1)},
			code: errors.CodeCatalogAdvantageConflict,
		},
		{
			name: "empty ability pool",
			doc: catalogDoc{affinities: strings.Replace(validAffinitiesYAML,
				"abilities: [Umbral Fang]",
				"abilities: []", 1)},
			code: errors.CodeCatalogAbilityPoolEmpty,
		},
		{
			name: "missing species",
			doc: catalogDoc{affinities: strings.Replace(validAffinitiesYAML,
				"species: Duskmaw, ",
				"", 1)},
			code: errors.CodeCatalogSpeciesMissing,
		},
		{
			name: "missing stats section",
			doc: catalogDoc{stats: "\n"},
			code: errors.CodeCatalogStatRangeInvalid,
		},
		{
			name: "inverted stat range",
			doc: catalogDoc{stats: `stats:
  base_min: 50
  base_max: 10
`},
			code: errors.CodeCatalogStatRangeInvalid,
		},
		{
			name: "empty drop table",
			doc: catalogDoc{eggs: `eggs:
  - name: HOLLOW
    drops: []
`},
			code: errors.CodeCatalogDropTableEmpty,
		},
		{
			name: "zero drop weight",
			doc: catalogDoc{eggs: strings.Replace(validEggsYAML,
				"{tier: legendary, weight: 1}",
				"{tier: legendary, weight: 0}", 1)},
			code: errors.CodeCatalogDropWeightInvalid,
		},
		{
			name: "duplicate drop tier",
			doc: catalogDoc{eggs: strings.Replace(validEggsYAML,
				"{tier: uncommon, weight: 30}",
				"{tier: common, weight: 30}", 1)},
			code: errors.CodeCatalogDropTierDuplicate,
		},
		{
			name: "drop weights sum below one hundred",
			doc: catalogDoc{eggs: strings.Replace(validEggsYAML,
				"{tier: common, weight: 50}",
				"{tier: common, weight: 49}", 1)},
			code: errors.CodeCatalogDropSumInvalid,
		},
		{
			name: "duplicate egg type",
			doc:  catalogDoc{eggs: validEggsYAML + strings.Replace(validEggsYAML, "eggs:\n", "", 1)},
			code: errors.CodeCatalogEggDuplicate,
		},
		{
			name: "missing fusion section",
			doc:  catalogDoc{fusion: "\n"},
			code: errors.CodeCatalogFusionRuleInvalid,
		},
		{
			name: "single material fusion",
			doc: catalogDoc{fusion: strings.Replace(validFusionYAML,
				"{target: rare, materials: 2, cost: 300}",
				"{target: rare, materials: 1, cost: 300}", 1)},
			code: errors.CodeCatalogFusionRuleInvalid,
		},
		{
			name: "fusion targeting lowest tier",
			doc: catalogDoc{fusion: validFusionYAML +
				"    - {target: common, materials: 2, cost: 50}\n"},
			code: errors.CodeCatalogFusionRuleInvalid,
		},
		{
			name: "fusion requirement missing for a tier",
			doc: catalogDoc{fusion: strings.Replace(validFusionYAML,
				"    - {target: godly, materials: 4, cost: 8100}\n",
				"", 1)},
			code: errors.CodeCatalogFusionRuleInvalid,
		},
		{
			name: "fusion ceiling above one hundred",
			doc: catalogDoc{fusion: strings.Replace(validFusionYAML,
				"ceiling: 95",
				"ceiling: 120", 1)},
			code: errors.CodeCatalogFusionRuleInvalid,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromYAML(tc.doc.yaml())
			if err == nil {
				t.Fatal("FromYAML succeeded, want error")
			}
			if !errors.IsCode(err, tc.code) {
				t.Fatalf("FromYAML error code = %v, want %v", errors.GetCode(err), tc.code)
			}
		})
	}
}

func TestFromYAMLRejectsMalformedDocument(t *testing.T) {
	_, err := FromYAML([]byte("tiers: [not: valid: yaml"))
	if err == nil {
		t.Fatal("FromYAML succeeded, want error")
	}
	if !errors.IsCode(err, errors.CodeCatalogSourceInvalid) {
		t.Fatalf("FromYAML error code = %v, want %v", errors.GetCode(err), errors.CodeCatalogSourceInvalid)
	}
}
