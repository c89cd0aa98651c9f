// Package creature defines the core value types of the menagerie: tiers,
// affinities, stats, and the power formula battles are scored with.
package creature

import (
	"strings"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

// Tier is a creature rarity tier. Tiers are ordered; a higher tier always
// carries a stat multiplier at least as large as the tier below it.
type Tier int

const (
	TierUnspecified Tier = iota
	TierCommon
	TierUncommon
	TierRare
	TierEpic
	TierLegendary
	TierGodly
)

func (t Tier) String() string {
	switch t {
	case TierCommon:
		return "common"
	case TierUncommon:
		return "uncommon"
	case TierRare:
		return "rare"
	case TierEpic:
		return "epic"
	case TierLegendary:
		return "legendary"
	case TierGodly:
		return "godly"
	default:
		return "unspecified"
	}
}

// Rank is the zero-based position of the tier in the rarity ladder.
// Fusion bonuses scale on rank, so common is 0 and godly is 5.
func (t Tier) Rank() int {
	return int(t) - 1
}

// Valid reports whether the tier names a real rarity.
func (t Tier) Valid() bool {
	return t >= TierCommon && t <= TierGodly
}

// Tiers returns every rarity in ascending order.
func Tiers() []Tier {
	return []Tier{TierCommon, TierUncommon, TierRare, TierEpic, TierLegendary, TierGodly}
}

// ParseTier maps a wire value to a Tier.
func ParseTier(value string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "common":
		return TierCommon, nil
	case "uncommon":
		return TierUncommon, nil
	case "rare":
		return TierRare, nil
	case "epic":
		return TierEpic, nil
	case "legendary":
		return TierLegendary, nil
	case "godly":
		return TierGodly, nil
	default:
		return TierUnspecified, errors.WithMetadata(errors.CodeCatalogTierUnknown, "unknown tier", map[string]string{
			"Tier": value,
		})
	}
}
