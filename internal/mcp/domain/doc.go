// Package domain translates MCP tool calls into game engine operations.
//
// The package is intentionally explicit about that mapping:
// - parse MCP inputs into engine request values,
// - route calls to the hatchery, arena, and fusion engines,
// - record every resolved outcome in the ledger with its roll provenance,
// - and surface structured outputs that MCP clients can render.
//
// This keeps every probabilistic result auditable from protocol message ->
// engine draw -> ledger record.
package domain
