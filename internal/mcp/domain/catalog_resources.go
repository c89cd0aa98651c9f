package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/hatchery"
)

// EggCatalogEntry represents one egg type in the egg catalog resource.
type EggCatalogEntry struct {
	Name  string     `json:"name"`
	Drops []TierOdds `json:"drops"`
}

// EggCatalogPayload represents the egg catalog resource content.
type EggCatalogPayload struct {
	Eggs []EggCatalogEntry `json:"eggs"`
}

// TierCatalogEntry represents one tier in the tier catalog resource.
type TierCatalogEntry struct {
	Name            string  `json:"name"`
	DisplayName     string  `json:"display_name"`
	Rank            int     `json:"rank"`
	Multiplier      float64 `json:"multiplier"`
	FusionMaterials int     `json:"fusion_materials,omitempty"`
	FusionCost      int     `json:"fusion_cost,omitempty"`
	FusionTarget    bool    `json:"fusion_target"`
}

// TierCatalogPayload represents the tier catalog resource content.
type TierCatalogPayload struct {
	Tiers []TierCatalogEntry `json:"tiers"`
}

// AffinityCatalogEntry represents one affinity in the affinity catalog
// resource.
type AffinityCatalogEntry struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	Emoji         string   `json:"emoji"`
	Species       string   `json:"species"`
	StrongAgainst []string `json:"strong_against"`
	WeakAgainst   []string `json:"weak_against"`
	Abilities     []string `json:"abilities"`
}

// AffinityCatalogPayload represents the affinity catalog resource content.
type AffinityCatalogPayload struct {
	Affinities []AffinityCatalogEntry `json:"affinities"`
}

// EggOddsPayload represents the per-egg odds resource content.
type EggOddsPayload struct {
	EggType string     `json:"egg_type"`
	Odds    []TierOdds `json:"odds"`
}

// EggCatalogResource defines the MCP resource for the egg catalog.
func EggCatalogResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "catalog_eggs",
		Title:       "Egg Catalog",
		Description: "Readable egg types with their exact tier drop percentages",
		MIMEType:    "application/json",
		URI:         "menagerie://catalog/eggs",
	}
}

// TierCatalogResource defines the MCP resource for the tier catalog.
func TierCatalogResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "catalog_tiers",
		Title:       "Tier Catalog",
		Description: "Readable rarity tiers with stat multipliers and fusion requirements",
		MIMEType:    "application/json",
		URI:         "menagerie://catalog/tiers",
	}
}

// AffinityCatalogResource defines the MCP resource for the affinity catalog.
func AffinityCatalogResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "catalog_affinities",
		Title:       "Affinity Catalog",
		Description: "Readable affinities with species, abilities, and the advantage chart",
		MIMEType:    "application/json",
		URI:         "menagerie://catalog/affinities",
	}
}

// EggOddsResourceTemplate defines the MCP resource template for per-egg odds.
func EggOddsResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "catalog_egg_odds",
		Title:       "Egg Odds",
		Description: "Exact tier odds for one egg type. URI format: menagerie://catalog/eggs/{egg}",
		MIMEType:    "application/json",
		URITemplate: "menagerie://catalog/eggs/{egg}",
	}
}

// EggCatalogResourceHandler returns a readable egg catalog resource.
func EggCatalogResourceHandler(cat *catalog.Catalog) mcp.ResourceHandler {
	return catalogResourceHandler(cat, EggCatalogResource().URI, func(cat *catalog.Catalog) any {
		payload := EggCatalogPayload{}
		for _, name := range cat.EggTypes() {
			egg, ok := cat.Egg(name)
			if !ok {
				continue
			}
			entry := EggCatalogEntry{Name: egg.Name}
			for _, drop := range egg.Drops {
				entry.Drops = append(entry.Drops, TierOdds{Tier: drop.Tier.String(), Percent: drop.Weight})
			}
			payload.Eggs = append(payload.Eggs, entry)
		}
		return payload
	})
}

// TierCatalogResourceHandler returns a readable tier catalog resource.
func TierCatalogResourceHandler(cat *catalog.Catalog) mcp.ResourceHandler {
	return catalogResourceHandler(cat, TierCatalogResource().URI, func(cat *catalog.Catalog) any {
		rules := cat.Fusion()
		payload := TierCatalogPayload{}
		for _, tier := range creature.Tiers() {
			cfg, ok := cat.Tier(tier)
			if !ok {
				continue
			}
			entry := TierCatalogEntry{
				Name:        tier.String(),
				DisplayName: cfg.DisplayName,
				Rank:        tier.Rank(),
				Multiplier:  cfg.Multiplier,
			}
			if requirement, ok := rules.Requirements[tier]; ok {
				entry.FusionTarget = true
				entry.FusionMaterials = requirement.Materials
				entry.FusionCost = requirement.Cost
			}
			payload.Tiers = append(payload.Tiers, entry)
		}
		return payload
	})
}

// AffinityCatalogResourceHandler returns a readable affinity catalog resource.
func AffinityCatalogResourceHandler(cat *catalog.Catalog) mcp.ResourceHandler {
	return catalogResourceHandler(cat, AffinityCatalogResource().URI, func(cat *catalog.Catalog) any {
		payload := AffinityCatalogPayload{}
		for _, affinity := range creature.Affinities() {
			cfg, ok := cat.Affinity(affinity)
			if !ok {
				continue
			}
			payload.Affinities = append(payload.Affinities, AffinityCatalogEntry{
				Name:          affinity.String(),
				DisplayName:   cfg.DisplayName,
				Emoji:         cfg.Emoji,
				Species:       cfg.Species,
				StrongAgainst: affinityNames(cfg.StrongAgainst),
				WeakAgainst:   affinityNames(cfg.WeakAgainst),
				Abilities:     cfg.Abilities,
			})
		}
		return payload
	})
}

// EggOddsResourceHandler returns the odds table for the egg type named in
// the request URI.
func EggOddsResourceHandler(generator *hatchery.Generator) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if generator == nil {
			return nil, fmt.Errorf("hatchery generator is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("egg type is required; use URI format menagerie://catalog/eggs/{egg}")
		}
		uri := req.Params.URI

		eggType, err := parseEggTypeFromResourceURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse egg type from URI: %w", err)
		}

		entries, err := generator.Preview(eggType)
		if err != nil {
			return nil, fmt.Errorf("egg odds failed: %w", err)
		}

		payload := EggOddsPayload{EggType: catalog.CanonicalEggType(eggType)}
		for _, entry := range entries {
			payload.Odds = append(payload.Odds, TierOdds{Tier: entry.Tier.String(), Percent: entry.Percent})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal egg odds resource: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// parseEggTypeFromResourceURI extracts the egg type from a URI of the form
// menagerie://catalog/eggs/{egg}. The egg type segment must be present and
// must not span multiple path segments.
func parseEggTypeFromResourceURI(uri string) (string, error) {
	prefix := "menagerie://catalog/eggs/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("URI must start with %q", prefix)
	}

	eggType := strings.TrimPrefix(uri, prefix)
	eggType = strings.TrimSpace(eggType)
	if eggType == "" {
		return "", fmt.Errorf("egg type is required in URI")
	}
	if strings.Contains(eggType, "/") {
		return "", fmt.Errorf("egg type must be a single URI segment")
	}
	return eggType, nil
}

// catalogResourceHandler serves one catalog view as indented JSON. Catalog
// resources are read-only snapshots of validated configuration.
func catalogResourceHandler(cat *catalog.Catalog, wantURI string, build func(*catalog.Catalog) any) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if cat == nil {
			return nil, fmt.Errorf("catalog is not configured")
		}

		uri := wantURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != wantURI {
			return nil, fmt.Errorf("invalid URI: expected %s, got %q", wantURI, uri)
		}

		data, err := json.MarshalIndent(build(cat), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal catalog resource: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

func affinityNames(affinities []creature.Affinity) []string {
	names := make([]string, 0, len(affinities))
	for _, affinity := range affinities {
		names = append(names, affinity.String())
	}
	return names
}
