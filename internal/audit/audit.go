// Package audit re-executes recorded outcomes and measures hatch
// distributions against the configured odds.
//
// Replay rebuilds the original engine request from the recorded payload,
// pins the stored seed, and compares every result field against what was
// handed out at the time. Divergence means the catalog, the engine, or the
// ledger row changed since the outcome was recorded.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"github.com/emberhatch/menagerie/internal/arena"
	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/fusion"
	"github.com/emberhatch/menagerie/internal/hatchery"
	"github.com/emberhatch/menagerie/internal/ledger"
	"github.com/emberhatch/menagerie/internal/mcp/domain"
	"github.com/emberhatch/menagerie/internal/random"
)

// OutcomeSource loads recorded outcomes. ledger.Store satisfies it.
type OutcomeSource interface {
	GetOutcome(ctx context.Context, id string) (ledger.Outcome, error)
}

// Verifier replays recorded outcomes and checks hatch distributions
// against one validated catalog. It accepts pinned seeds unconditionally,
// independent of the seed policy the serving process ran with.
type Verifier struct {
	cat       *catalog.Catalog
	source    OutcomeSource
	generator *hatchery.Generator
	battles   *arena.Resolver
	fusions   *fusion.Resolver
}

// NewVerifier returns a Verifier over the catalog and outcome source. The
// source may be nil when only distribution checks are needed.
func NewVerifier(cat *catalog.Catalog, source OutcomeSource) *Verifier {
	return &Verifier{
		cat:       cat,
		source:    source,
		generator: hatchery.NewGenerator(cat),
		battles:   arena.NewResolver(cat),
		fusions:   fusion.NewResolver(cat),
	}
}

// ReplayReport is the result of re-executing one recorded outcome.
type ReplayReport struct {
	OutcomeID  string
	Kind       ledger.Kind
	Seed       int64
	Mismatches []string
}

// Match reports whether the re-execution reproduced the recorded outcome
// exactly.
func (r ReplayReport) Match() bool { return len(r.Mismatches) == 0 }

// Replay re-executes a recorded outcome from its stored seed and reports
// every field that diverges from what was recorded. Divergence is not an
// error; records that cannot be re-executed at all are.
func (v *Verifier) Replay(ctx context.Context, outcomeID string) (ReplayReport, error) {
	if v.source == nil {
		return ReplayReport{}, fmt.Errorf("outcome source is not configured")
	}

	outcome, err := v.source.GetOutcome(ctx, outcomeID)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("load outcome: %w", err)
	}
	if outcome.Algo != random.RngAlgoMathRandV1 {
		return ReplayReport{}, fmt.Errorf("outcome %s was rolled with rng algo %q, replay supports %q",
			outcome.ID, outcome.Algo, random.RngAlgoMathRandV1)
	}

	report := ReplayReport{OutcomeID: outcome.ID, Kind: outcome.Kind, Seed: outcome.Seed}
	switch outcome.Kind {
	case ledger.KindHatch:
		report.Mismatches, err = v.replayHatch(outcome)
	case ledger.KindBattle:
		report.Mismatches, err = v.replayBattle(outcome)
	case ledger.KindFusion:
		report.Mismatches, err = v.replayFusion(outcome)
	default:
		return ReplayReport{}, fmt.Errorf("outcome %s has unknown kind %q", outcome.ID, outcome.Kind)
	}
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay %s outcome %s: %w", outcome.Kind, outcome.ID, err)
	}
	return report, nil
}

func (v *Verifier) replayHatch(outcome ledger.Outcome) ([]string, error) {
	var record domain.HatchRecord
	if err := json.Unmarshal([]byte(outcome.Payload), &record); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	hatched, err := v.generator.Hatch(hatchery.HatchRequest{
		EggType: record.Request.EggType,
		Rng:     replayRng(outcome.Seed),
	})
	if err != nil {
		return nil, fmt.Errorf("re-execute: %w", err)
	}

	mismatches := provenanceMismatches(outcome, record.Result.Rng)
	if outcome.EggType != record.Result.EggType {
		mismatches = append(mismatches, fmt.Sprintf("payload egg type = %q, outcome row has %q", record.Result.EggType, outcome.EggType))
	}
	if outcome.Tier != record.Result.Creature.Tier || outcome.Affinity != record.Result.Creature.Affinity {
		mismatches = append(mismatches, fmt.Sprintf("payload creature is %s %s, outcome row has %s %s",
			record.Result.Creature.Tier, record.Result.Creature.Affinity, outcome.Tier, outcome.Affinity))
	}
	if got := domain.NewCreaturePayload(hatched.Creature, v.cat); got != record.Result.Creature {
		mismatches = append(mismatches, fmt.Sprintf("re-executed creature = %+v, recorded %+v", got, record.Result.Creature))
	}
	return mismatches, nil
}

func (v *Verifier) replayBattle(outcome ledger.Outcome) ([]string, error) {
	var record domain.BattleRecord
	if err := json.Unmarshal([]byte(outcome.Payload), &record); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	attackers, err := domain.RosterFromInputs(record.Request.Attackers)
	if err != nil {
		return nil, fmt.Errorf("rebuild attackers: %w", err)
	}
	defenders, err := domain.RosterFromInputs(record.Request.Defenders)
	if err != nil {
		return nil, fmt.Errorf("rebuild defenders: %w", err)
	}

	battle, err := v.battles.Resolve(arena.BattleRequest{
		Attackers: attackers,
		Defenders: defenders,
		Rng:       replayRng(outcome.Seed),
	})
	if err != nil {
		return nil, fmt.Errorf("re-execute: %w", err)
	}

	mismatches := provenanceMismatches(outcome, record.Result.Rng)
	if outcome.Winner != record.Result.Winner {
		mismatches = append(mismatches, fmt.Sprintf("payload winner = %q, outcome row has %q", record.Result.Winner, outcome.Winner))
	}
	if got := battle.Winner.String(); got != record.Result.Winner {
		mismatches = append(mismatches, fmt.Sprintf("re-executed winner = %q, recorded %q", got, record.Result.Winner))
	}
	if battle.AttackerPower != record.Result.AttackerPower ||
		battle.DefenderPower != record.Result.DefenderPower ||
		battle.AdjustedAttacker != record.Result.AdjustedAttacker {
		mismatches = append(mismatches, fmt.Sprintf("re-executed powers = %d/%d/%d, recorded %d/%d/%d",
			battle.AttackerPower, battle.DefenderPower, battle.AdjustedAttacker,
			record.Result.AttackerPower, record.Result.DefenderPower, record.Result.AdjustedAttacker))
	}
	if got := battle.Advantage.String(); got != record.Result.Advantage {
		mismatches = append(mismatches, fmt.Sprintf("re-executed advantage = %q, recorded %q", got, record.Result.Advantage))
	}
	if got, want := battle.AttackerAffinity.String(), record.Result.AttackerAffinity; got != want {
		mismatches = append(mismatches, fmt.Sprintf("re-executed attacker affinity = %q, recorded %q", got, want))
	}
	if got, want := battle.DefenderAffinity.String(), record.Result.DefenderAffinity; got != want {
		mismatches = append(mismatches, fmt.Sprintf("re-executed defender affinity = %q, recorded %q", got, want))
	}
	if battle.Critical != record.Result.Critical {
		mismatches = append(mismatches, fmt.Sprintf("re-executed critical = %v, recorded %v", battle.Critical, record.Result.Critical))
	}
	return mismatches, nil
}

func (v *Verifier) replayFusion(outcome ledger.Outcome) ([]string, error) {
	var record domain.FusionRecord
	if err := json.Unmarshal([]byte(outcome.Payload), &record); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	target, err := creature.ParseTier(record.Request.TargetTier)
	if err != nil {
		return nil, fmt.Errorf("rebuild target tier: %w", err)
	}
	materials, err := domain.MaterialsFromInputs(record.Request.Materials)
	if err != nil {
		return nil, fmt.Errorf("rebuild materials: %w", err)
	}

	fused, err := v.fusions.Execute(fusion.FuseRequest{
		TargetTier: target,
		Materials:  materials,
		Rng:        replayRng(outcome.Seed),
	})
	if err != nil {
		return nil, fmt.Errorf("re-execute: %w", err)
	}

	mismatches := provenanceMismatches(outcome, record.Result.Rng)
	if outcome.Tier != record.Result.TargetTier {
		mismatches = append(mismatches, fmt.Sprintf("payload target tier = %q, outcome row has %q", record.Result.TargetTier, outcome.Tier))
	}
	if outcome.Success != record.Result.Success {
		mismatches = append(mismatches, fmt.Sprintf("payload success = %v, outcome row has %v", record.Result.Success, outcome.Success))
	}
	if fused.Success != record.Result.Success {
		mismatches = append(mismatches, fmt.Sprintf("re-executed success = %v, recorded %v", fused.Success, record.Result.Success))
	}
	if fused.Chance != record.Result.Chance {
		mismatches = append(mismatches, fmt.Sprintf("re-executed chance = %d, recorded %d", fused.Chance, record.Result.Chance))
	}
	if fused.Cost != record.Result.Cost {
		mismatches = append(mismatches, fmt.Sprintf("re-executed cost = %d, recorded %d", fused.Cost, record.Result.Cost))
	}
	if !equalStrings(fused.ConsumedIDs, record.Result.ConsumedIDs) {
		mismatches = append(mismatches, fmt.Sprintf("re-executed consumed ids = %v, recorded %v", fused.ConsumedIDs, record.Result.ConsumedIDs))
	}
	return mismatches, nil
}

// provenanceMismatches cross-checks the roll provenance columns against the
// copy embedded in the recorded payload. The two are written together, so
// any disagreement means the row was altered after the fact.
func provenanceMismatches(outcome ledger.Outcome, recorded *domain.RngResult) []string {
	if recorded == nil {
		return []string{"rng details missing from the recorded payload"}
	}
	var mismatches []string
	if recorded.SeedUsed != outcome.Seed {
		mismatches = append(mismatches, fmt.Sprintf("payload seed = %d, outcome row has %d", recorded.SeedUsed, outcome.Seed))
	}
	if recorded.SeedSource != outcome.SeedSource {
		mismatches = append(mismatches, fmt.Sprintf("payload seed source = %q, outcome row has %q", recorded.SeedSource, outcome.SeedSource))
	}
	if recorded.RollMode != outcome.RollMode {
		mismatches = append(mismatches, fmt.Sprintf("payload roll mode = %q, outcome row has %q", recorded.RollMode, outcome.RollMode))
	}
	if recorded.RngAlgo != outcome.Algo {
		mismatches = append(mismatches, fmt.Sprintf("payload rng algo = %q, outcome row has %q", recorded.RngAlgo, outcome.Algo))
	}
	return mismatches
}

// replayRng pins a stored seed for re-execution.
func replayRng(seed int64) *random.Request {
	return &random.Request{Mode: random.RollModeReplay, Seed: &seed}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TierShare is one tier's configured odds next to the share observed in a
// distribution run. Shares are percentages.
type TierShare struct {
	Tier     string
	Expected int
	Observed float64
}

// Drift is the absolute distance between the configured and observed
// shares, in percentage points.
func (s TierShare) Drift() float64 { return math.Abs(s.Observed - float64(s.Expected)) }

// DistributionReport summarizes one egg type's empirical tier distribution
// over a deterministic batch of hatches.
type DistributionReport struct {
	EggType string
	Hatches int
	Shares  []TierShare
}

// MaxDrift returns the largest drift across the configured tiers.
func (r DistributionReport) MaxDrift() float64 {
	largest := 0.0
	for _, share := range r.Shares {
		if d := share.Drift(); d > largest {
			largest = d
		}
	}
	return largest
}

// WithinTolerance reports whether every tier stayed within tolerance
// percentage points of its configured odds.
func (r DistributionReport) WithinTolerance(tolerance float64) bool {
	return r.MaxDrift() <= tolerance
}

// CheckDistribution hatches the egg type repeatedly under seeds derived
// from baseSeed and compares the observed tier shares against the
// configured odds. The same base seed always produces the same report, so
// a drift finding can be reproduced exactly.
func (v *Verifier) CheckDistribution(eggType string, hatches int, baseSeed int64) (DistributionReport, error) {
	if hatches < 1 {
		return DistributionReport{}, fmt.Errorf("hatch count %d is not positive", hatches)
	}

	entries, err := v.generator.Preview(eggType)
	if err != nil {
		return DistributionReport{}, fmt.Errorf("preview odds: %w", err)
	}

	counts := make(map[string]int, len(entries))
	seeds := rand.New(rand.NewSource(baseSeed))
	for i := 0; i < hatches; i++ {
		hatched, err := v.generator.Hatch(hatchery.HatchRequest{
			EggType: eggType,
			Rng:     replayRng(seeds.Int63()),
		})
		if err != nil {
			return DistributionReport{}, fmt.Errorf("hatch %d of %d: %w", i+1, hatches, err)
		}
		counts[hatched.Creature.Tier.String()]++
	}

	report := DistributionReport{EggType: catalog.CanonicalEggType(eggType), Hatches: hatches}
	tallied := 0
	for _, entry := range entries {
		tier := entry.Tier.String()
		tallied += counts[tier]
		report.Shares = append(report.Shares, TierShare{
			Tier:     tier,
			Expected: entry.Percent,
			Observed: float64(counts[tier]) * 100 / float64(hatches),
		})
	}
	if tallied != hatches {
		return DistributionReport{}, fmt.Errorf("%d of %d hatches landed outside the configured tiers", hatches-tallied, hatches)
	}
	return report, nil
}
