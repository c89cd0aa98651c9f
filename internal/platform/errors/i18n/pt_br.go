package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeUnknown: "Ocorreu um erro inesperado",

		// Catalog errors
		CodeCatalogSourceInvalid:      "Não foi possível ler o catálogo do jogo",
		CodeCatalogTierUnknown:        "Raridade {{.Tier}} desconhecida no catálogo do jogo",
		CodeCatalogTierMissing:        "Raridade {{.Tier}} ausente do catálogo do jogo",
		CodeCatalogMultiplierInvalid:  "Multiplicador de atributos da raridade {{.Tier}} é inválido",
		CodeCatalogAffinityUnknown:    "Afinidade {{.Affinity}} desconhecida no catálogo do jogo",
		CodeCatalogAffinityMissing:    "Afinidade {{.Affinity}} ausente do catálogo do jogo",
		CodeCatalogAdvantageSelf:      "Afinidade {{.Affinity}} não pode ser forte ou fraca contra si mesma",
		CodeCatalogAdvantageSymmetric: "Afinidades {{.Affinity}} e {{.Other}} não podem ser fortes uma contra a outra",
		CodeCatalogAdvantageConflict:  "Afinidade {{.Affinity}} não pode ser forte e fraca contra {{.Other}}",
		CodeCatalogAbilityPoolEmpty:   "Afinidade {{.Affinity}} não tem habilidades configuradas",
		CodeCatalogSpeciesMissing:     "Afinidade {{.Affinity}} não tem espécie configurada",
		CodeCatalogEggDuplicate:       "Tipo de ovo {{.EggType}} está definido mais de uma vez",
		CodeCatalogDropTableEmpty:     "Tipo de ovo {{.EggType}} não tem entradas de sorteio",
		CodeCatalogDropWeightInvalid:  "Peso de sorteio da raridade {{.Tier}} no ovo {{.EggType}} é inválido",
		CodeCatalogDropTierDuplicate:  "Raridade {{.Tier}} aparece mais de uma vez no ovo {{.EggType}}",
		CodeCatalogDropSumInvalid:     "Pesos de sorteio do ovo {{.EggType}} somam {{.Sum}}, esperado 100",
		CodeCatalogStatRangeInvalid:   "Faixa base de atributos é inválida",
		CodeCatalogFusionRuleInvalid:  "Regras de fusão são inválidas",

		// Draw errors
		CodeDrawEntriesMissing: "Pelo menos uma entrada ponderada deve ser fornecida",
		CodeDrawWeightNegative: "Entradas ponderadas não podem ter pesos negativos",
		CodeDrawWeightSumZero:  "Entradas ponderadas precisam de peso total positivo",
		CodeDrawRangeInvalid:   "Mínimo do sorteio não pode exceder o máximo",

		// Hatchery errors
		CodeEggTypeUnknown: "Tipo de ovo desconhecido: {{.EggType}}",

		// Battle errors
		CodeRosterEmpty:         "O time {{.Side}} precisa de pelo menos uma criatura",
		CodeRosterMemberInvalid: "Uma criatura do time {{.Side}} é inválida",

		// Fusion errors
		CodeFusionTargetInvalid:         "Criaturas não podem ser fundidas para a raridade {{.Tier}}",
		CodeFusionInsufficientMaterials: "Fusão para {{.Tier}} exige {{.Need}} materiais, recebeu {{.Have}}",
		CodeFusionMaterialTierTooLow:    "Material {{.Material}} está abaixo da raridade {{.MinTier}} exigida para fusão em {{.Tier}}",
		CodeFusionMaterialInvalid:       "Um material de fusão é inválido",

		// Random/seed errors
		CodeSeedOutOfRange:  "Semente aleatória fora do intervalo válido",
		CodeRollModeInvalid: "Modo de rolagem deve ser live ou replay",

		// Storage errors
		CodeNotFound:         "O recurso solicitado não foi encontrado",
		CodeAlreadyExists:    "O recurso já existe",
		CodeFilterInvalid:    "A expressão de filtro de resultados é inválida",
		CodePageTokenInvalid: "O token de página é inválido ou expirou",
	},
}
