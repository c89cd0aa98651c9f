package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/mcp/domain"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(mcpRegistrationTarget) error
}

const (
	mcpHatcheryToolsModuleName   = "hatchery-tools"
	mcpArenaToolsModuleName      = "arena-tools"
	mcpFusionToolsModuleName     = "fusion-tools"
	mcpOutcomeToolsModuleName    = "outcome-tools"
	mcpCatalogResourceModuleName = "catalog-resources"
)

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

func (r mcpServerRegistrationAdapter) AddResourceTemplate(resourceTemplate *mcp.ResourceTemplate, handler mcp.ResourceHandler) {
	r.server.AddResourceTemplate(resourceTemplate, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.EggPreviewInput, domain.EggPreviewResult](),
	newMCPToolRegistrar[domain.EggHatchInput, domain.EggHatchResult](),
	newMCPToolRegistrar[domain.BattleResolveInput, domain.BattleResolveResult](),
	newMCPToolRegistrar[domain.FusionPreviewInput, domain.FusionPreviewResult](),
	newMCPToolRegistrar[domain.FusionExecuteInput, domain.FusionExecuteResult](),
	newMCPToolRegistrar[domain.OutcomeGetInput, domain.OutcomePayload](),
	newMCPToolRegistrar[domain.OutcomeListInput, domain.OutcomeListResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(deps Dependencies, locale string) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpHatcheryToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerHatcheryTools(registrar, deps.Hatchery, deps.Catalog, deps.Ledger, locale)
			},
		},
		{
			name: mcpArenaToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerArenaTools(registrar, deps.Arena, deps.Ledger, locale)
			},
		},
		{
			name: mcpFusionToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerFusionTools(registrar, deps.Fusion, deps.Ledger, locale)
			},
		},
		{
			name: mcpOutcomeToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerOutcomeTools(registrar, deps.Ledger, locale)
			},
		},
		{
			name: mcpCatalogResourceModuleName,
			kind: mcpRegistrationKindResources,
			register: func(registrar mcpRegistrationTarget) error {
				registerCatalogResources(registrar, deps.Catalog, deps.Hatchery)
				return nil
			},
		},
	}
}
