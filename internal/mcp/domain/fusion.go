package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/fusion"
	"github.com/emberhatch/menagerie/internal/ledger"
)

// FusionPreviewInput represents the MCP tool input for previewing a fusion.
type FusionPreviewInput struct {
	TargetTier string                `json:"target_tier" jsonschema:"tier to fuse into (uncommon and above)"`
	Materials  []FusionMaterialInput `json:"materials,omitempty" jsonschema:"optional materials to compute the success chance for"`
}

// FusionPreviewResult represents the MCP tool output for previewing a
// fusion. SuccessChance is present only when materials were supplied.
type FusionPreviewResult struct {
	TargetTier        string `json:"target_tier" jsonschema:"tier to fuse into"`
	MaterialsRequired int    `json:"materials_required" jsonschema:"number of materials the fusion consumes"`
	Cost              int    `json:"cost" jsonschema:"currency cost charged per attempt"`
	SuccessChance     *int   `json:"success_chance,omitempty" jsonschema:"clamped success percentage for the supplied materials"`
}

// FusionExecuteInput represents the MCP tool input for executing a fusion.
type FusionExecuteInput struct {
	TargetTier string                `json:"target_tier" jsonschema:"tier to fuse into (uncommon and above)"`
	Materials  []FusionMaterialInput `json:"materials" jsonschema:"materials to consume"`
	Rng        *RngRequest           `json:"rng,omitempty" jsonschema:"optional rng configuration"`
}

// FusionExecuteResult represents the MCP tool output for executing a
// fusion. Materials are consumed and the cost is owed whether or not the
// attempt succeeded.
type FusionExecuteResult struct {
	OutcomeID   string     `json:"outcome_id,omitempty" jsonschema:"ledger identifier for this attempt"`
	TargetTier  string     `json:"target_tier" jsonschema:"tier the attempt fused into"`
	Success     bool       `json:"success" jsonschema:"whether the attempt succeeded"`
	Chance      int        `json:"chance" jsonschema:"clamped success percentage the attempt rolled against"`
	ConsumedIDs []string   `json:"consumed_ids" jsonschema:"identifiers of the consumed materials"`
	Cost        int        `json:"cost" jsonschema:"currency cost charged for the attempt"`
	Rng         *RngResult `json:"rng" jsonschema:"rng details"`
}

// FusionPreviewTool defines the MCP tool schema for previewing fusions.
func FusionPreviewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fusion_preview",
		Description: "Shows fusion requirements and the success chance for given materials",
	}
}

// FusionExecuteTool defines the MCP tool schema for executing fusions.
func FusionExecuteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fusion_execute",
		Description: "Attempts a fusion, consumes the materials, and records the outcome",
	}
}

// FusionPreviewHandler reports fusion requirements and, when materials are
// supplied, the clamped success chance. Previews consume no randomness, so
// nothing is recorded in the ledger.
func FusionPreviewHandler(resolver *fusion.Resolver, locale string) mcp.ToolHandlerFor[FusionPreviewInput, FusionPreviewResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FusionPreviewInput) (*mcp.CallToolResult, FusionPreviewResult, error) {
		target, err := creature.ParseTier(input.TargetTier)
		if err != nil {
			return nil, FusionPreviewResult{}, toolError("fusion preview", locale, err)
		}

		requirement, err := resolver.Requirements(target)
		if err != nil {
			return nil, FusionPreviewResult{}, toolError("fusion preview", locale, err)
		}

		result := FusionPreviewResult{
			TargetTier:        target.String(),
			MaterialsRequired: requirement.Materials,
			Cost:              requirement.Cost,
		}

		if len(input.Materials) > 0 {
			materials, err := MaterialsFromInputs(input.Materials)
			if err != nil {
				return nil, FusionPreviewResult{}, toolError("fusion preview", locale, err)
			}
			chance, err := resolver.SuccessChance(target, materials)
			if err != nil {
				return nil, FusionPreviewResult{}, toolError("fusion preview", locale, err)
			}
			result.SuccessChance = &chance
		}

		return nil, result, nil
	}
}

// FusionExecuteHandler runs one fusion attempt and records the outcome
// before returning it.
func FusionExecuteHandler(resolver *fusion.Resolver, recorder Recorder, locale string) mcp.ToolHandlerFor[FusionExecuteInput, FusionExecuteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FusionExecuteInput) (*mcp.CallToolResult, FusionExecuteResult, error) {
		target, err := creature.ParseTier(input.TargetTier)
		if err != nil {
			return nil, FusionExecuteResult{}, toolError("fusion execute", locale, err)
		}

		materials, err := MaterialsFromInputs(input.Materials)
		if err != nil {
			return nil, FusionExecuteResult{}, toolError("fusion execute", locale, err)
		}

		rng, err := rngRequestToRandom(input.Rng)
		if err != nil {
			return nil, FusionExecuteResult{}, toolError("fusion execute", locale, err)
		}

		fused, err := resolver.Execute(fusion.FuseRequest{
			TargetTier: target,
			Materials:  materials,
			Rng:        rng,
		})
		if err != nil {
			return nil, FusionExecuteResult{}, toolError("fusion execute", locale, err)
		}

		result := FusionExecuteResult{
			TargetTier:  fused.TargetTier.String(),
			Success:     fused.Success,
			Chance:      fused.Chance,
			ConsumedIDs: fused.ConsumedIDs,
			Cost:        fused.Cost,
			Rng:         rngResultFromRoll(fused.Roll),
		}

		outcomeID, err := recordOutcome(ctx, recorder, ledger.Outcome{
			Kind:       ledger.KindFusion,
			Tier:       result.TargetTier,
			Success:    fused.Success,
			Seed:       fused.Roll.Seed,
			SeedSource: string(fused.Roll.Source),
			RollMode:   fused.Roll.Mode.String(),
			Algo:       fused.Roll.Algo,
		}, FusionRecord{Request: input, Result: result})
		if err != nil {
			return nil, FusionExecuteResult{}, toolError("fusion execute", locale, err)
		}

		result.OutcomeID = outcomeID
		return nil, result, nil
	}
}
