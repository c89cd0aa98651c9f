package domain

import (
	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
)

// CreatureInput represents one roster creature supplied by an MCP client.
type CreatureInput struct {
	ID       string `json:"id,omitempty" jsonschema:"optional creature identifier"`
	Name     string `json:"name,omitempty" jsonschema:"optional display name"`
	Tier     string `json:"tier" jsonschema:"creature tier (common, uncommon, rare, epic, legendary, godly)"`
	Affinity string `json:"affinity" jsonschema:"creature affinity (fire, water, earth, air, light, dark)"`
	Level    int    `json:"level,omitempty" jsonschema:"creature level, defaults to 1"`
	Attack   int    `json:"attack" jsonschema:"attack stat"`
	Defense  int    `json:"defense" jsonschema:"defense stat"`
	Speed    int    `json:"speed" jsonschema:"speed stat"`
	Health   int    `json:"health" jsonschema:"health stat"`
}

// FusionMaterialInput represents one fusion material. Only the tier feeds
// the fusion math; the identifier ties the consumed material back to the
// caller's collection.
type FusionMaterialInput struct {
	ID   string `json:"id,omitempty" jsonschema:"optional creature identifier echoed back as consumed"`
	Tier string `json:"tier" jsonschema:"material tier (common, uncommon, rare, epic, legendary, godly)"`
}

// CreaturePayload represents a hatched creature in tool output.
type CreaturePayload struct {
	Name     string `json:"name" jsonschema:"generated display name"`
	Species  string `json:"species" jsonschema:"species for the affinity"`
	Tier     string `json:"tier" jsonschema:"rolled tier"`
	Affinity string `json:"affinity" jsonschema:"rolled affinity"`
	Level    int    `json:"level" jsonschema:"creature level"`
	Attack   int    `json:"attack" jsonschema:"attack stat"`
	Defense  int    `json:"defense" jsonschema:"defense stat"`
	Speed    int    `json:"speed" jsonschema:"speed stat"`
	Health   int    `json:"health" jsonschema:"health stat"`
	Ability  string `json:"ability" jsonschema:"rolled ability"`
	Power    int    `json:"power" jsonschema:"combat power at the creature's tier and level"`
}

// RosterFromInputs maps wire roster creatures into engine creatures. An
// empty roster passes through so the engine reports it as invalid.
func RosterFromInputs(inputs []CreatureInput) ([]creature.Creature, error) {
	roster := make([]creature.Creature, 0, len(inputs))
	for _, input := range inputs {
		member, err := creatureFromInput(input)
		if err != nil {
			return nil, err
		}
		roster = append(roster, member)
	}
	return roster, nil
}

// MaterialsFromInputs maps wire fusion materials into engine creatures.
func MaterialsFromInputs(inputs []FusionMaterialInput) ([]creature.Creature, error) {
	materials := make([]creature.Creature, 0, len(inputs))
	for _, input := range inputs {
		material, err := materialFromInput(input)
		if err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}
	return materials, nil
}

// creatureFromInput maps a wire roster creature into an engine creature.
func creatureFromInput(input CreatureInput) (creature.Creature, error) {
	tier, err := creature.ParseTier(input.Tier)
	if err != nil {
		return creature.Creature{}, err
	}
	affinity, err := creature.ParseAffinity(input.Affinity)
	if err != nil {
		return creature.Creature{}, err
	}
	level := input.Level
	if level < 1 {
		level = 1
	}
	return creature.Creature{
		ID:       input.ID,
		Name:     input.Name,
		Tier:     tier,
		Affinity: affinity,
		Level:    level,
		Stats: creature.Stats{
			Attack:  input.Attack,
			Defense: input.Defense,
			Speed:   input.Speed,
			Health:  input.Health,
		},
	}, nil
}

// materialFromInput maps a wire fusion material into an engine creature.
func materialFromInput(input FusionMaterialInput) (creature.Creature, error) {
	tier, err := creature.ParseTier(input.Tier)
	if err != nil {
		return creature.Creature{}, err
	}
	return creature.Creature{ID: input.ID, Tier: tier}, nil
}

// NewCreaturePayload maps an engine creature into tool output.
func NewCreaturePayload(c creature.Creature, cat *catalog.Catalog) CreaturePayload {
	return CreaturePayload{
		Name:     c.Name,
		Species:  c.Species,
		Tier:     c.Tier.String(),
		Affinity: c.Affinity.String(),
		Level:    c.Level,
		Attack:   c.Stats.Attack,
		Defense:  c.Stats.Defense,
		Speed:    c.Stats.Speed,
		Health:   c.Stats.Health,
		Ability:  c.Ability,
		Power:    creature.Power(c, cat.Multiplier(c.Tier)),
	}
}
