package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/hatchery"
	"github.com/emberhatch/menagerie/internal/ledger"
)

// EggPreviewInput represents the MCP tool input for previewing egg odds.
type EggPreviewInput struct {
	EggType string `json:"egg_type" jsonschema:"egg type to preview (basic, premium, legendary)"`
}

// TierOdds represents one tier's drop percentage in a preview.
type TierOdds struct {
	Tier    string `json:"tier" jsonschema:"tier name"`
	Percent int    `json:"percent" jsonschema:"configured drop percentage"`
}

// EggPreviewResult represents the MCP tool output for previewing egg odds.
// Odds are sorted by descending percentage and always sum to 100.
type EggPreviewResult struct {
	EggType string     `json:"egg_type" jsonschema:"canonical egg type"`
	Odds    []TierOdds `json:"odds" jsonschema:"drop percentages per tier, descending"`
}

// EggHatchInput represents the MCP tool input for hatching an egg.
type EggHatchInput struct {
	EggType string      `json:"egg_type" jsonschema:"egg type to hatch (basic, premium, legendary)"`
	Rng     *RngRequest `json:"rng,omitempty" jsonschema:"optional rng configuration"`
}

// EggHatchResult represents the MCP tool output for hatching an egg.
// OutcomeID is absent from the recorded payload; the ledger row carries it.
type EggHatchResult struct {
	OutcomeID string          `json:"outcome_id,omitempty" jsonschema:"ledger identifier for this hatch"`
	EggType   string          `json:"egg_type" jsonschema:"canonical egg type"`
	Creature  CreaturePayload `json:"creature" jsonschema:"the hatched creature"`
	Rng       *RngResult      `json:"rng" jsonschema:"rng details"`
}

// EggPreviewTool defines the MCP tool schema for previewing egg odds.
func EggPreviewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "egg_preview",
		Description: "Shows the exact tier drop percentages for an egg type",
	}
}

// EggHatchTool defines the MCP tool schema for hatching eggs.
func EggHatchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "egg_hatch",
		Description: "Hatches an egg into a creature and records the outcome",
	}
}

// EggPreviewHandler reports configured drop odds. Previews read the catalog
// only, so nothing is recorded in the ledger.
func EggPreviewHandler(generator *hatchery.Generator, locale string) mcp.ToolHandlerFor[EggPreviewInput, EggPreviewResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EggPreviewInput) (*mcp.CallToolResult, EggPreviewResult, error) {
		entries, err := generator.Preview(input.EggType)
		if err != nil {
			return nil, EggPreviewResult{}, toolError("egg preview", locale, err)
		}

		odds := make([]TierOdds, 0, len(entries))
		for _, entry := range entries {
			odds = append(odds, TierOdds{Tier: entry.Tier.String(), Percent: entry.Percent})
		}

		return nil, EggPreviewResult{
			EggType: catalog.CanonicalEggType(input.EggType),
			Odds:    odds,
		}, nil
	}
}

// EggHatchHandler hatches one egg and records the outcome before returning
// it. A hatch that cannot be recorded is not handed out.
func EggHatchHandler(generator *hatchery.Generator, cat *catalog.Catalog, recorder Recorder, locale string) mcp.ToolHandlerFor[EggHatchInput, EggHatchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EggHatchInput) (*mcp.CallToolResult, EggHatchResult, error) {
		rng, err := rngRequestToRandom(input.Rng)
		if err != nil {
			return nil, EggHatchResult{}, toolError("egg hatch", locale, err)
		}

		hatched, err := generator.Hatch(hatchery.HatchRequest{EggType: input.EggType, Rng: rng})
		if err != nil {
			return nil, EggHatchResult{}, toolError("egg hatch", locale, err)
		}

		result := EggHatchResult{
			EggType:  catalog.CanonicalEggType(input.EggType),
			Creature: NewCreaturePayload(hatched.Creature, cat),
			Rng:      rngResultFromRoll(hatched.Roll),
		}

		outcomeID, err := recordOutcome(ctx, recorder, ledger.Outcome{
			Kind:       ledger.KindHatch,
			EggType:    result.EggType,
			Tier:       hatched.Creature.Tier.String(),
			Affinity:   hatched.Creature.Affinity.String(),
			Seed:       hatched.Roll.Seed,
			SeedSource: string(hatched.Roll.Source),
			RollMode:   hatched.Roll.Mode.String(),
			Algo:       hatched.Roll.Algo,
		}, HatchRecord{Request: input, Result: result})
		if err != nil {
			return nil, EggHatchResult{}, toolError("egg hatch", locale, err)
		}

		result.OutcomeID = outcomeID
		return nil, result, nil
	}
}
