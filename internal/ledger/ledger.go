// Package ledger defines persistence contracts for resolved game outcomes.
//
// Every hatch, battle, and fusion resolution is recorded with its full roll
// provenance (seed, seed source, roll mode, algorithm) so that any outcome
// can be replayed and verified later.
package ledger

import (
	"context"
	"time"
)

// Kind identifies the kind of recorded outcome.
type Kind string

const (
	// KindHatch records an egg hatch resolution.
	KindHatch Kind = "hatch"
	// KindBattle records a battle resolution.
	KindBattle Kind = "battle"
	// KindFusion records a fusion attempt resolution.
	KindFusion Kind = "fusion"
)

// Outcome stores one resolved game outcome together with its roll provenance.
//
// The facet columns (EggType, Tier, Affinity, Winner, Success) carry the
// canonical wire forms of the result so outcomes can be filtered without
// decoding Payload; fields that do not apply to a Kind stay empty. Payload
// holds the request and result encoded as JSON, enough to re-execute the
// outcome from Seed alone.
type Outcome struct {
	ID         string
	Kind       Kind
	EggType    string
	Tier       string
	Affinity   string
	Winner     string
	Success    bool
	Seed       int64
	SeedSource string
	RollMode   string
	Algo       string
	Payload    string
	CreatedAt  time.Time
}

// Page stores one page of outcome records.
type Page struct {
	Outcomes      []Outcome
	NextPageToken string
}

// Query bounds one ListOutcomes call.
type Query struct {
	PageSize  int
	PageToken string
	// Filter is an AIP-160 expression over the outcome facet fields.
	// Empty means no filtering.
	Filter string
}

// Store persists resolved outcomes.
type Store interface {
	RecordOutcome(ctx context.Context, outcome Outcome) error
	GetOutcome(ctx context.Context, id string) (Outcome, error)
	ListOutcomes(ctx context.Context, query Query) (Page, error)
	Close() error
}
