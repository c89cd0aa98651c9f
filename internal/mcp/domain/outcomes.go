package domain

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/ledger"
	"github.com/emberhatch/menagerie/internal/platform/pagination"
	"github.com/emberhatch/menagerie/internal/platform/timeouts"
)

const (
	defaultListOutcomesPageSize = 20
	maxListOutcomesPageSize     = 100
)

// OutcomeGetInput represents the MCP tool input for fetching one outcome.
type OutcomeGetInput struct {
	ID string `json:"id" jsonschema:"outcome identifier returned by a resolution tool"`
}

// OutcomePayload represents one recorded outcome in tool output.
type OutcomePayload struct {
	ID         string `json:"id" jsonschema:"outcome identifier"`
	Kind       string `json:"kind" jsonschema:"outcome kind (hatch, battle, fusion)"`
	EggType    string `json:"egg_type,omitempty" jsonschema:"egg type for hatch outcomes"`
	Tier       string `json:"tier,omitempty" jsonschema:"hatched or target tier"`
	Affinity   string `json:"affinity,omitempty" jsonschema:"hatched affinity"`
	Winner     string `json:"winner,omitempty" jsonschema:"winning side for battle outcomes"`
	Success    bool   `json:"success" jsonschema:"whether a fusion attempt succeeded"`
	Seed       int64  `json:"seed" jsonschema:"seed the resolution ran on"`
	SeedSource string `json:"seed_source" jsonschema:"seed source (server or client)"`
	RollMode   string `json:"roll_mode" jsonschema:"roll mode (live or replay)"`
	RngAlgo    string `json:"rng_algo" jsonschema:"rng algorithm identifier"`
	Payload    string `json:"payload" jsonschema:"complete recorded result as JSON"`
	CreatedAt  string `json:"created_at" jsonschema:"recording time in RFC 3339"`
}

// OutcomeListInput represents the MCP tool input for listing outcomes.
type OutcomeListInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum outcomes per page, defaults to 20"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	Filter    string `json:"filter,omitempty" jsonschema:"AIP-160 filter over kind, egg_type, tier, affinity, winner, success, seed, seed_source, roll_mode, created_at"`
}

// OutcomeListResult represents the MCP tool output for listing outcomes.
type OutcomeListResult struct {
	Outcomes      []OutcomePayload `json:"outcomes" jsonschema:"recorded outcomes in chronological order"`
	NextPageToken string           `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last page"`
}

// OutcomeGetTool defines the MCP tool schema for fetching one outcome.
func OutcomeGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "outcome_get",
		Description: "Fetches one recorded outcome with its roll provenance",
	}
}

// OutcomeListTool defines the MCP tool schema for listing outcomes.
func OutcomeListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "outcome_list",
		Description: "Lists recorded outcomes with filtering and pagination",
	}
}

// OutcomeGetHandler fetches one recorded outcome by identifier.
func OutcomeGetHandler(store ledger.Store, locale string) mcp.ToolHandlerFor[OutcomeGetInput, OutcomePayload] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OutcomeGetInput) (*mcp.CallToolResult, OutcomePayload, error) {
		readCtx, cancel := context.WithTimeout(ctx, timeouts.StorageRead)
		defer cancel()

		outcome, err := store.GetOutcome(readCtx, input.ID)
		if err != nil {
			return nil, OutcomePayload{}, toolError("outcome get", locale, err)
		}
		return nil, outcomePayload(outcome), nil
	}
}

// OutcomeListHandler lists recorded outcomes one page at a time.
func OutcomeListHandler(store ledger.Store, locale string) mcp.ToolHandlerFor[OutcomeListInput, OutcomeListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OutcomeListInput) (*mcp.CallToolResult, OutcomeListResult, error) {
		readCtx, cancel := context.WithTimeout(ctx, timeouts.StorageRead)
		defer cancel()

		page, err := store.ListOutcomes(readCtx, ledger.Query{
			PageSize: pagination.ClampPageSize(input.PageSize, pagination.PageSizeConfig{
				Default: defaultListOutcomesPageSize,
				Max:     maxListOutcomesPageSize,
			}),
			PageToken: input.PageToken,
			Filter:    input.Filter,
		})
		if err != nil {
			return nil, OutcomeListResult{}, toolError("outcome list", locale, err)
		}

		outcomes := make([]OutcomePayload, 0, len(page.Outcomes))
		for _, outcome := range page.Outcomes {
			outcomes = append(outcomes, outcomePayload(outcome))
		}
		return nil, OutcomeListResult{
			Outcomes:      outcomes,
			NextPageToken: page.NextPageToken,
		}, nil
	}
}

// outcomePayload maps a ledger record into tool output.
func outcomePayload(outcome ledger.Outcome) OutcomePayload {
	return OutcomePayload{
		ID:         outcome.ID,
		Kind:       string(outcome.Kind),
		EggType:    outcome.EggType,
		Tier:       outcome.Tier,
		Affinity:   outcome.Affinity,
		Winner:     outcome.Winner,
		Success:    outcome.Success,
		Seed:       outcome.Seed,
		SeedSource: outcome.SeedSource,
		RollMode:   outcome.RollMode,
		RngAlgo:    outcome.Algo,
		Payload:    outcome.Payload,
		CreatedAt:  outcome.CreatedAt.UTC().Format(time.RFC3339),
	}
}
