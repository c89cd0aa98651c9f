package creature

import (
	"strings"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

// Affinity is a creature's elemental alignment. The advantage chart in the
// catalog decides how affinities fare against each other in battle.
type Affinity int

const (
	AffinityUnspecified Affinity = iota
	AffinityFire
	AffinityWater
	AffinityEarth
	AffinityAir
	AffinityLight
	AffinityDark
)

func (a Affinity) String() string {
	switch a {
	case AffinityFire:
		return "fire"
	case AffinityWater:
		return "water"
	case AffinityEarth:
		return "earth"
	case AffinityAir:
		return "air"
	case AffinityLight:
		return "light"
	case AffinityDark:
		return "dark"
	default:
		return "unspecified"
	}
}

// Valid reports whether the affinity names a real alignment.
func (a Affinity) Valid() bool {
	return a >= AffinityFire && a <= AffinityDark
}

// Affinities returns every alignment in declaration order. Hatch draws pick
// uniformly over this slice, so the order is part of the replay contract.
func Affinities() []Affinity {
	return []Affinity{AffinityFire, AffinityWater, AffinityEarth, AffinityAir, AffinityLight, AffinityDark}
}

// ParseAffinity maps a wire value to an Affinity.
func ParseAffinity(value string) (Affinity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fire":
		return AffinityFire, nil
	case "water":
		return AffinityWater, nil
	case "earth":
		return AffinityEarth, nil
	case "air":
		return AffinityAir, nil
	case "light":
		return AffinityLight, nil
	case "dark":
		return AffinityDark, nil
	default:
		return AffinityUnspecified, errors.WithMetadata(errors.CodeCatalogAffinityUnknown, "unknown affinity", map[string]string{
			"Affinity": value,
		})
	}
}
