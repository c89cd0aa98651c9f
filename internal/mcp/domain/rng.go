package domain

import (
	"github.com/emberhatch/menagerie/internal/random"
)

// RngRequest represents optional RNG configuration for deterministic rolls.
type RngRequest struct {
	Seed     *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic replay rolls"`
	RollMode string `json:"roll_mode,omitempty" jsonschema:"roll mode (live or replay)"`
}

// RngResult represents RNG details used for a roll.
type RngResult struct {
	SeedUsed   int64  `json:"seed_used" jsonschema:"seed value used by the server"`
	RngAlgo    string `json:"rng_algo" jsonschema:"rng algorithm identifier"`
	SeedSource string `json:"seed_source" jsonschema:"seed source (server or client)"`
	RollMode   string `json:"roll_mode" jsonschema:"roll mode applied"`
}

// rngRequestToRandom maps the wire RNG request into the engine request.
func rngRequestToRandom(input *RngRequest) (*random.Request, error) {
	if input == nil {
		return nil, nil
	}
	mode, err := random.ParseRollMode(input.RollMode)
	if err != nil {
		return nil, err
	}
	return &random.Request{Mode: mode, Seed: input.Seed}, nil
}

// rngResultFromRoll maps recorded roll provenance into the wire result.
func rngResultFromRoll(roll random.Roll) *RngResult {
	return &RngResult{
		SeedUsed:   roll.Seed,
		RngAlgo:    roll.Algo,
		SeedSource: string(roll.Source),
		RollMode:   roll.Mode.String(),
	}
}
