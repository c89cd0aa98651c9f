package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/arena"
	"github.com/emberhatch/menagerie/internal/ledger"
)

// BattleResolveInput represents the MCP tool input for resolving a battle.
type BattleResolveInput struct {
	Attackers []CreatureInput `json:"attackers" jsonschema:"attacking roster, first member sets the primary affinity"`
	Defenders []CreatureInput `json:"defenders" jsonschema:"defending roster, first member sets the primary affinity"`
	Rng       *RngRequest     `json:"rng,omitempty" jsonschema:"optional rng configuration"`
}

// BattleResolveResult represents the MCP tool output for resolving a battle.
type BattleResolveResult struct {
	OutcomeID        string     `json:"outcome_id,omitempty" jsonschema:"ledger identifier for this battle"`
	Winner           string     `json:"winner" jsonschema:"winning side (attacker or defender)"`
	AttackerPower    int        `json:"attacker_power" jsonschema:"attacker aggregate power before advantage"`
	DefenderPower    int        `json:"defender_power" jsonschema:"defender aggregate power"`
	AdjustedAttacker int        `json:"adjusted_attacker_power" jsonschema:"attacker power after the advantage multiplier"`
	Advantage        string     `json:"advantage" jsonschema:"attacker advantage (strong, weak, neutral)"`
	AttackerAffinity string     `json:"attacker_affinity" jsonschema:"attacker primary affinity"`
	DefenderAffinity string     `json:"defender_affinity" jsonschema:"defender primary affinity"`
	Critical         bool       `json:"critical" jsonschema:"cosmetic critical finish flag"`
	Rng              *RngResult `json:"rng" jsonschema:"rng details"`
}

// BattleResolveTool defines the MCP tool schema for resolving battles.
func BattleResolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "battle_resolve",
		Description: "Resolves a battle between two rosters and records the outcome",
	}
}

// BattleResolveHandler resolves one battle and records the outcome before
// returning it.
func BattleResolveHandler(resolver *arena.Resolver, recorder Recorder, locale string) mcp.ToolHandlerFor[BattleResolveInput, BattleResolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BattleResolveInput) (*mcp.CallToolResult, BattleResolveResult, error) {
		attackers, err := RosterFromInputs(input.Attackers)
		if err != nil {
			return nil, BattleResolveResult{}, toolError("battle resolve", locale, err)
		}
		defenders, err := RosterFromInputs(input.Defenders)
		if err != nil {
			return nil, BattleResolveResult{}, toolError("battle resolve", locale, err)
		}

		rng, err := rngRequestToRandom(input.Rng)
		if err != nil {
			return nil, BattleResolveResult{}, toolError("battle resolve", locale, err)
		}

		battle, err := resolver.Resolve(arena.BattleRequest{
			Attackers: attackers,
			Defenders: defenders,
			Rng:       rng,
		})
		if err != nil {
			return nil, BattleResolveResult{}, toolError("battle resolve", locale, err)
		}

		result := BattleResolveResult{
			Winner:           battle.Winner.String(),
			AttackerPower:    battle.AttackerPower,
			DefenderPower:    battle.DefenderPower,
			AdjustedAttacker: battle.AdjustedAttacker,
			Advantage:        battle.Advantage.String(),
			AttackerAffinity: battle.AttackerAffinity.String(),
			DefenderAffinity: battle.DefenderAffinity.String(),
			Critical:         battle.Critical,
			Rng:              rngResultFromRoll(battle.Roll),
		}

		outcomeID, err := recordOutcome(ctx, recorder, ledger.Outcome{
			Kind:       ledger.KindBattle,
			Winner:     result.Winner,
			Seed:       battle.Roll.Seed,
			SeedSource: string(battle.Roll.Source),
			RollMode:   battle.Roll.Mode.String(),
			Algo:       battle.Roll.Algo,
		}, BattleRecord{Request: input, Result: result})
		if err != nil {
			return nil, BattleResolveResult{}, toolError("battle resolve", locale, err)
		}

		result.OutcomeID = outcomeID
		return nil, result, nil
	}
}
