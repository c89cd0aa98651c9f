package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown = "UNKNOWN"

	CodeCatalogSourceInvalid      = "CATALOG_SOURCE_INVALID"
	CodeCatalogTierUnknown        = "CATALOG_TIER_UNKNOWN"
	CodeCatalogTierMissing        = "CATALOG_TIER_MISSING"
	CodeCatalogMultiplierInvalid  = "CATALOG_MULTIPLIER_INVALID"
	CodeCatalogAffinityUnknown    = "CATALOG_AFFINITY_UNKNOWN"
	CodeCatalogAffinityMissing    = "CATALOG_AFFINITY_MISSING"
	CodeCatalogAdvantageSelf      = "CATALOG_ADVANTAGE_SELF"
	CodeCatalogAdvantageSymmetric = "CATALOG_ADVANTAGE_SYMMETRIC"
	CodeCatalogAdvantageConflict  = "CATALOG_ADVANTAGE_CONFLICT"
	CodeCatalogAbilityPoolEmpty   = "CATALOG_ABILITY_POOL_EMPTY"
	CodeCatalogSpeciesMissing     = "CATALOG_SPECIES_MISSING"
	CodeCatalogEggDuplicate       = "CATALOG_EGG_DUPLICATE"
	CodeCatalogDropTableEmpty     = "CATALOG_DROP_TABLE_EMPTY"
	CodeCatalogDropWeightInvalid  = "CATALOG_DROP_WEIGHT_INVALID"
	CodeCatalogDropTierDuplicate  = "CATALOG_DROP_TIER_DUPLICATE"
	CodeCatalogDropSumInvalid     = "CATALOG_DROP_SUM_INVALID"
	CodeCatalogStatRangeInvalid   = "CATALOG_STAT_RANGE_INVALID"
	CodeCatalogFusionRuleInvalid  = "CATALOG_FUSION_RULE_INVALID"

	CodeDrawEntriesMissing = "DRAW_ENTRIES_MISSING"
	CodeDrawWeightNegative = "DRAW_WEIGHT_NEGATIVE"
	CodeDrawWeightSumZero  = "DRAW_WEIGHT_SUM_ZERO"
	CodeDrawRangeInvalid   = "DRAW_RANGE_INVALID"

	CodeEggTypeUnknown = "EGG_TYPE_UNKNOWN"

	CodeRosterEmpty         = "ROSTER_EMPTY"
	CodeRosterMemberInvalid = "ROSTER_MEMBER_INVALID"

	CodeFusionTargetInvalid         = "FUSION_TARGET_INVALID"
	CodeFusionInsufficientMaterials = "FUSION_INSUFFICIENT_MATERIALS"
	CodeFusionMaterialTierTooLow    = "FUSION_MATERIAL_TIER_TOO_LOW"
	CodeFusionMaterialInvalid       = "FUSION_MATERIAL_INVALID"

	CodeSeedOutOfRange  = "SEED_OUT_OF_RANGE"
	CodeRollModeInvalid = "ROLL_MODE_INVALID"

	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeFilterInvalid    = "FILTER_INVALID"
	CodePageTokenInvalid = "PAGE_TOKEN_INVALID"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Catalog errors
		CodeCatalogSourceInvalid:      "Game catalog could not be read",
		CodeCatalogTierUnknown:        "Unknown tier {{.Tier}} in game catalog",
		CodeCatalogTierMissing:        "Tier {{.Tier}} is missing from the game catalog",
		CodeCatalogMultiplierInvalid:  "Stat multiplier for tier {{.Tier}} is invalid",
		CodeCatalogAffinityUnknown:    "Unknown affinity {{.Affinity}} in game catalog",
		CodeCatalogAffinityMissing:    "Affinity {{.Affinity}} is missing from the game catalog",
		CodeCatalogAdvantageSelf:      "Affinity {{.Affinity}} cannot be strong or weak against itself",
		CodeCatalogAdvantageSymmetric: "Affinities {{.Affinity}} and {{.Other}} cannot both be strong against each other",
		CodeCatalogAdvantageConflict:  "Affinity {{.Affinity}} cannot be both strong and weak against {{.Other}}",
		CodeCatalogAbilityPoolEmpty:   "Affinity {{.Affinity}} has no abilities configured",
		CodeCatalogSpeciesMissing:     "Affinity {{.Affinity}} has no species name configured",
		CodeCatalogEggDuplicate:       "Egg type {{.EggType}} is defined more than once",
		CodeCatalogDropTableEmpty:     "Egg type {{.EggType}} has no drop entries",
		CodeCatalogDropWeightInvalid:  "Drop weight for tier {{.Tier}} in egg type {{.EggType}} is invalid",
		CodeCatalogDropTierDuplicate:  "Tier {{.Tier}} appears more than once in egg type {{.EggType}}",
		CodeCatalogDropSumInvalid:     "Drop weights for egg type {{.EggType}} sum to {{.Sum}}, expected 100",
		CodeCatalogStatRangeInvalid:   "Base stat range is invalid",
		CodeCatalogFusionRuleInvalid:  "Fusion rules are invalid",

		// Draw errors
		CodeDrawEntriesMissing: "At least one weighted entry must be provided",
		CodeDrawWeightNegative: "Weighted entries cannot carry negative weights",
		CodeDrawWeightSumZero:  "Weighted entries must have a positive total weight",
		CodeDrawRangeInvalid:   "Draw range minimum cannot exceed maximum",

		// Hatchery errors
		CodeEggTypeUnknown: "Unknown egg type: {{.EggType}}",

		// Battle errors
		CodeRosterEmpty:         "The {{.Side}} roster needs at least one creature",
		CodeRosterMemberInvalid: "A creature in the {{.Side}} roster is invalid",

		// Fusion errors
		CodeFusionTargetInvalid:         "Creatures cannot be fused into tier {{.Tier}}",
		CodeFusionInsufficientMaterials: "Fusion to {{.Tier}} needs {{.Need}} materials, got {{.Have}}",
		CodeFusionMaterialTierTooLow:    "Material {{.Material}} is below tier {{.MinTier}} required for fusion to {{.Tier}}",
		CodeFusionMaterialInvalid:       "A fusion material is invalid",

		// Random/seed errors
		CodeSeedOutOfRange:  "Random seed is out of valid range",
		CodeRollModeInvalid: "Roll mode must be live or replay",

		// Storage errors
		CodeNotFound:         "The requested resource was not found",
		CodeAlreadyExists:    "The resource already exists",
		CodeFilterInvalid:    "The outcome filter expression is invalid",
		CodePageTokenInvalid: "The page token is invalid or expired",
	},
}
