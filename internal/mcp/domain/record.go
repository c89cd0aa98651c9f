package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/emberhatch/menagerie/internal/ledger"
	"github.com/emberhatch/menagerie/internal/platform/id"
	"github.com/emberhatch/menagerie/internal/platform/timeouts"
)

// Recorder persists resolved outcomes. ledger.Store satisfies it.
type Recorder interface {
	RecordOutcome(ctx context.Context, outcome ledger.Outcome) error
}

// HatchRecord is the payload persisted for a hatch outcome. Every record
// pairs the request as submitted with the result handed out, so an auditor
// can re-execute the roll from the stored seed alone.
type HatchRecord struct {
	Request EggHatchInput  `json:"request"`
	Result  EggHatchResult `json:"result"`
}

// BattleRecord is the payload persisted for a battle outcome.
type BattleRecord struct {
	Request BattleResolveInput  `json:"request"`
	Result  BattleResolveResult `json:"result"`
}

// FusionRecord is the payload persisted for a fusion outcome.
type FusionRecord struct {
	Request FusionExecuteInput  `json:"request"`
	Result  FusionExecuteResult `json:"result"`
}

// recordOutcome assigns an ID, snapshots the request and result as the
// payload, and persists the outcome. Tool handlers fail when recording
// fails: an outcome that cannot be audited later must not be handed out.
func recordOutcome(ctx context.Context, recorder Recorder, outcome ledger.Outcome, payload any) (string, error) {
	if recorder == nil {
		return "", fmt.Errorf("outcome recorder is not configured")
	}

	outcomeID, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate outcome id: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outcome payload: %w", err)
	}

	outcome.ID = outcomeID
	outcome.Payload = string(data)
	outcome.CreatedAt = time.Now().UTC()

	writeCtx, cancel := context.WithTimeout(ctx, timeouts.StorageWrite)
	defer cancel()
	if err := recorder.RecordOutcome(writeCtx, outcome); err != nil {
		return "", fmt.Errorf("record outcome: %w", err)
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		log.Printf("recorded %s outcome %s trace_id=%s span_id=%s", outcome.Kind, outcomeID, sc.TraceID(), sc.SpanID())
	}
	return outcomeID, nil
}
