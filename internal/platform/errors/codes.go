// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog configuration errors. These are fatal at load time; a process
	// must not serve rolls from a catalog that failed validation.
	CodeCatalogSourceInvalid      Code = "CATALOG_SOURCE_INVALID"
	CodeCatalogTierUnknown        Code = "CATALOG_TIER_UNKNOWN"
	CodeCatalogTierMissing        Code = "CATALOG_TIER_MISSING"
	CodeCatalogMultiplierInvalid  Code = "CATALOG_MULTIPLIER_INVALID"
	CodeCatalogAffinityUnknown    Code = "CATALOG_AFFINITY_UNKNOWN"
	CodeCatalogAffinityMissing    Code = "CATALOG_AFFINITY_MISSING"
	CodeCatalogAdvantageSelf      Code = "CATALOG_ADVANTAGE_SELF"
	CodeCatalogAdvantageSymmetric Code = "CATALOG_ADVANTAGE_SYMMETRIC"
	CodeCatalogAdvantageConflict  Code = "CATALOG_ADVANTAGE_CONFLICT"
	CodeCatalogAbilityPoolEmpty   Code = "CATALOG_ABILITY_POOL_EMPTY"
	CodeCatalogSpeciesMissing     Code = "CATALOG_SPECIES_MISSING"
	CodeCatalogEggDuplicate       Code = "CATALOG_EGG_DUPLICATE"
	CodeCatalogDropTableEmpty     Code = "CATALOG_DROP_TABLE_EMPTY"
	CodeCatalogDropWeightInvalid  Code = "CATALOG_DROP_WEIGHT_INVALID"
	CodeCatalogDropTierDuplicate  Code = "CATALOG_DROP_TIER_DUPLICATE"
	CodeCatalogDropSumInvalid     Code = "CATALOG_DROP_SUM_INVALID"
	CodeCatalogStatRangeInvalid   Code = "CATALOG_STAT_RANGE_INVALID"
	CodeCatalogFusionRuleInvalid  Code = "CATALOG_FUSION_RULE_INVALID"

	// Draw primitive contract errors. A weighted draw over empty or
	// zero-weight entries must fail loudly, never fall back to uniform.
	CodeDrawEntriesMissing Code = "DRAW_ENTRIES_MISSING"
	CodeDrawWeightNegative Code = "DRAW_WEIGHT_NEGATIVE"
	CodeDrawWeightSumZero  Code = "DRAW_WEIGHT_SUM_ZERO"
	CodeDrawRangeInvalid   Code = "DRAW_RANGE_INVALID"

	// Hatchery errors
	CodeEggTypeUnknown Code = "EGG_TYPE_UNKNOWN"

	// Battle errors
	CodeRosterEmpty         Code = "ROSTER_EMPTY"
	CodeRosterMemberInvalid Code = "ROSTER_MEMBER_INVALID"

	// Fusion errors
	CodeFusionTargetInvalid         Code = "FUSION_TARGET_INVALID"
	CodeFusionInsufficientMaterials Code = "FUSION_INSUFFICIENT_MATERIALS"
	CodeFusionMaterialTierTooLow    Code = "FUSION_MATERIAL_TIER_TOO_LOW"
	CodeFusionMaterialInvalid       Code = "FUSION_MATERIAL_INVALID"

	// Random/seed errors
	CodeSeedOutOfRange  Code = "SEED_OUT_OF_RANGE"
	CodeRollModeInvalid Code = "ROLL_MODE_INVALID"

	// Storage errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeAlreadyExists    Code = "ALREADY_EXISTS"
	CodeFilterInvalid    Code = "FILTER_INVALID"
	CodePageTokenInvalid Code = "PAGE_TOKEN_INVALID"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeRosterEmpty,
		CodeRosterMemberInvalid,
		CodeFusionTargetInvalid,
		CodeFusionMaterialInvalid,
		CodeSeedOutOfRange,
		CodeRollModeInvalid,
		CodeFilterInvalid,
		CodePageTokenInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeFusionInsufficientMaterials,
		CodeFusionMaterialTierTooLow:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeEggTypeUnknown:
		return codes.NotFound

	// AlreadyExists - uniqueness violations
	case CodeAlreadyExists:
		return codes.AlreadyExists

	// Catalog and draw configuration faults are internal: the caller sent
	// nothing wrong, the process configuration did.
	default:
		return codes.Internal
	}
}
