package random

import (
	"strconv"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

// Weighted pairs a value with its relative draw weight. A zero weight keeps
// the entry in the table but makes it unreachable.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// Uniform draws the next float in [0, 1) from the stream.
func Uniform(src Source) float64 {
	return src.Float64()
}

// DrawWeighted selects one entry in proportion to its weight, consuming
// exactly one value from the stream.
//
// # Determinism
//
// The scan walks entries in slice order and returns the first entry whose
// cumulative weight exceeds the scaled draw, so equal-weight entries tie
// in declaration order and the same stream position always selects the
// same entry.
//
// An empty slice, a negative weight, or a zero total weight is a
// configuration fault and returns an error; the draw never degrades to a
// uniform pick over the entries.
func DrawWeighted[T any](src Source, entries []Weighted[T]) (T, error) {
	var zero T
	if len(entries) == 0 {
		return zero, errors.New(errors.CodeDrawEntriesMissing, "weighted draw requires at least one entry")
	}

	total := 0
	for i, entry := range entries {
		if entry.Weight < 0 {
			return zero, errors.WithMetadata(errors.CodeDrawWeightNegative, "weighted draw weight is negative", map[string]string{
				"Index":  strconv.Itoa(i),
				"Weight": strconv.Itoa(entry.Weight),
			})
		}
		total += entry.Weight
	}
	if total <= 0 {
		return zero, errors.New(errors.CodeDrawWeightSumZero, "weighted draw weights sum to zero")
	}

	x := Uniform(src) * float64(total)
	cumulative := 0
	last := zero
	for _, entry := range entries {
		if entry.Weight == 0 {
			continue
		}
		cumulative += entry.Weight
		if x < float64(cumulative) {
			return entry.Value, nil
		}
		last = entry.Value
	}

	// Float rounding can push the scaled draw to exactly the total weight;
	// the final reachable entry owns that edge.
	return last, nil
}

// IntInRange draws an integer in [min, max], inclusive on both ends,
// consuming exactly one value from the stream.
func IntInRange(src Source, min, max int) (int, error) {
	if min > max {
		return 0, errors.WithMetadata(errors.CodeDrawRangeInvalid, "draw range minimum exceeds maximum", map[string]string{
			"Min": strconv.Itoa(min),
			"Max": strconv.Itoa(max),
		})
	}

	span := max - min + 1
	value := min + int(Uniform(src)*float64(span))
	if value > max {
		value = max
	}
	return value, nil
}
