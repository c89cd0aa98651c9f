// Package arena resolves battles between creature rosters. Battles are
// deterministic given their stream: power math decides the winner, and the
// single draw only flavors the result as a critical finish.
package arena

import (
	"math"
	"strconv"

	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/platform/errors"
	"github.com/emberhatch/menagerie/internal/random"
)

// criticalChance is the cosmetic critical-finish probability.
const criticalChance = 0.10

// Side names one of the two battle rosters.
type Side int

const (
	SideAttacker Side = iota
	SideDefender
)

func (s Side) String() string {
	if s == SideAttacker {
		return "attacker"
	}
	return "defender"
}

// Resolver scores battles against one validated catalog.
type Resolver struct {
	cat    *catalog.Catalog
	policy random.SeedPolicy
}

// NewResolver returns a Resolver backed by the catalog. Client seeds are
// honored only for replay rolls.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return NewResolverWithPolicy(cat, random.AllowReplaySeeds)
}

// NewResolverWithPolicy returns a Resolver with an explicit client-seed
// policy.
func NewResolverWithPolicy(cat *catalog.Catalog, policy random.SeedPolicy) *Resolver {
	return &Resolver{cat: cat, policy: policy}
}

// BattleRequest pits an attacking roster against a defending one.
type BattleRequest struct {
	Attackers []creature.Creature
	Defenders []creature.Creature
	Rng       *random.Request
}

// BattleResult reports the outcome and the numbers behind it.
type BattleResult struct {
	Winner           Side
	AttackerPower    int
	DefenderPower    int
	AdjustedAttacker int
	Advantage        creature.Advantage
	AttackerAffinity creature.Affinity
	DefenderAffinity creature.Affinity
	Critical         bool
	Roll             random.Roll
}

// Resolve runs one battle.
//
// Both rosters are validated before any randomness is consumed; a rejected
// battle never advances a stream. The winner comes from power math alone.
// Each roster's power is the sum of its members' power, the advantage
// multiplier between the two primary affinities (the first member on each
// side) applies once to the attacker's aggregate, and the attacker wins
// only on a strictly greater adjusted total. The one draw decides the
// cosmetic critical flag and nothing else.
func (r *Resolver) Resolve(req BattleRequest) (BattleResult, error) {
	if err := validateRoster(SideAttacker, req.Attackers); err != nil {
		return BattleResult{}, err
	}
	if err := validateRoster(SideDefender, req.Defenders); err != nil {
		return BattleResult{}, err
	}

	seed, source, mode, err := random.ResolveSeed(req.Rng, random.NewSeed, r.policy)
	if err != nil {
		return BattleResult{}, err
	}

	result := r.duel(random.NewSeeded(seed), req)
	result.Roll = random.Roll{
		Seed:   seed,
		Source: source,
		Mode:   mode,
		Algo:   random.RngAlgoMathRandV1,
	}
	return result, nil
}

// duel scores two already validated rosters, consuming exactly one draw.
func (r *Resolver) duel(src random.Source, req BattleRequest) BattleResult {
	attackerPower := r.aggregatePower(req.Attackers)
	defenderPower := r.aggregatePower(req.Defenders)

	attackerAffinity := req.Attackers[0].Affinity
	defenderAffinity := req.Defenders[0].Affinity
	advantage := r.cat.Advantage(attackerAffinity, defenderAffinity)
	adjusted := int(math.Round(float64(attackerPower) * advantage.Multiplier()))

	winner := SideDefender
	if adjusted > defenderPower {
		winner = SideAttacker
	}

	critical := random.Uniform(src) < criticalChance

	return BattleResult{
		Winner:           winner,
		AttackerPower:    attackerPower,
		DefenderPower:    defenderPower,
		AdjustedAttacker: adjusted,
		Advantage:        advantage,
		AttackerAffinity: attackerAffinity,
		DefenderAffinity: defenderAffinity,
		Critical:         critical,
	}
}

func (r *Resolver) aggregatePower(roster []creature.Creature) int {
	total := 0
	for _, member := range roster {
		total += creature.Power(member, r.cat.Multiplier(member.Tier))
	}
	return total
}

func validateRoster(side Side, roster []creature.Creature) error {
	if len(roster) == 0 {
		return errors.WithMetadata(errors.CodeRosterEmpty, "battle roster is empty", map[string]string{
			"Side": side.String(),
		})
	}
	for i, member := range roster {
		if !member.Tier.Valid() || !member.Affinity.Valid() {
			return errors.WithMetadata(errors.CodeRosterMemberInvalid, "roster member has invalid tier or affinity", map[string]string{
				"Side":  side.String(),
				"Index": strconv.Itoa(i),
			})
		}
	}
	return nil
}
