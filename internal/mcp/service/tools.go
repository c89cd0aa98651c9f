package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/arena"
	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/fusion"
	"github.com/emberhatch/menagerie/internal/hatchery"
	"github.com/emberhatch/menagerie/internal/ledger"
	"github.com/emberhatch/menagerie/internal/mcp/domain"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
	AddResourceTemplate(*mcp.ResourceTemplate, mcp.ResourceHandler)
}

func registerHatcheryTools(registrar mcpRegistrationTarget, generator *hatchery.Generator, cat *catalog.Catalog, recorder domain.Recorder, locale string) error {
	if err := registerTool(registrar, domain.EggPreviewTool(), domain.EggPreviewHandler(generator, locale)); err != nil {
		return err
	}
	return registerTool(registrar, domain.EggHatchTool(), domain.EggHatchHandler(generator, cat, recorder, locale))
}

func registerArenaTools(registrar mcpRegistrationTarget, resolver *arena.Resolver, recorder domain.Recorder, locale string) error {
	return registerTool(registrar, domain.BattleResolveTool(), domain.BattleResolveHandler(resolver, recorder, locale))
}

func registerFusionTools(registrar mcpRegistrationTarget, resolver *fusion.Resolver, recorder domain.Recorder, locale string) error {
	if err := registerTool(registrar, domain.FusionPreviewTool(), domain.FusionPreviewHandler(resolver, locale)); err != nil {
		return err
	}
	return registerTool(registrar, domain.FusionExecuteTool(), domain.FusionExecuteHandler(resolver, recorder, locale))
}

func registerOutcomeTools(registrar mcpRegistrationTarget, store ledger.Store, locale string) error {
	if err := registerTool(registrar, domain.OutcomeGetTool(), domain.OutcomeGetHandler(store, locale)); err != nil {
		return err
	}
	return registerTool(registrar, domain.OutcomeListTool(), domain.OutcomeListHandler(store, locale))
}

func registerCatalogResources(registrar mcpRegistrationTarget, cat *catalog.Catalog, generator *hatchery.Generator) {
	registrar.AddResource(domain.EggCatalogResource(), domain.EggCatalogResourceHandler(cat))
	registrar.AddResource(domain.TierCatalogResource(), domain.TierCatalogResourceHandler(cat))
	registrar.AddResource(domain.AffinityCatalogResource(), domain.AffinityCatalogResourceHandler(cat))
	registrar.AddResourceTemplate(domain.EggOddsResourceTemplate(), domain.EggOddsResourceHandler(generator))
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
