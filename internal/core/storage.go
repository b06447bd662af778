package core

import (
	"context"
	"time"
)

// TurnRecord is the per-turn log entry handed to the transcript collaborator.
// Intent is empty when nothing matched.
type TurnRecord struct {
	Seq        uint64            `json:"seq"`
	RawText    string            `json:"raw_text"`
	Intent     Intent            `json:"intent,omitempty"`
	Slots      map[string]string `json:"slots,omitempty"`
	ActionKind ActionKind        `json:"action_kind"`
	Reply      string            `json:"reply"`
	CreatedAt  time.Time         `json:"created_at"`
}

type TranscriptRepository interface {
	AddTurn(ctx context.Context, rec TurnRecord) error
	RecentTurns(ctx context.Context, limit int) ([]TurnRecord, error)
}
