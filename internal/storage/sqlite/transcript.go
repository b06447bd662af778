package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/pkg/log"
)

// Transcript persists processed turns for history inspection.
type Transcript struct {
	db *sql.DB
}

func NewTranscript(db *sql.DB) *Transcript {
	return &Transcript{db: db}
}

func (t *Transcript) AddTurn(ctx context.Context, rec core.TurnRecord) error {
	slotsJSON, err := json.Marshal(rec.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}

	// If Slots is "null" (no captures), store as empty string to save space
	slotsStr := string(slotsJSON)
	if slotsStr == "null" {
		slotsStr = ""
	}

	query := `INSERT INTO turns (seq, raw_text, intent, slots, action_kind, reply, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = t.db.ExecContext(ctx, query, rec.Seq, rec.RawText, rec.Intent, slotsStr, rec.ActionKind, rec.Reply, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (t *Transcript) RecentTurns(ctx context.Context, limit int) ([]core.TurnRecord, error) {
	// Fetch the LAST 'limit' turns by ordering DESC
	query := `SELECT seq, raw_text, intent, slots, action_kind, reply, created_at FROM turns ORDER BY id DESC LIMIT ?`

	rows, err := t.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var records []core.TurnRecord
	for rows.Next() {
		var rec core.TurnRecord
		var intent, slotsStr, reply sql.NullString

		// Use NullString to safely handle potential NULLs in DB
		if err := rows.Scan(&rec.Seq, &rec.RawText, &intent, &slotsStr, &rec.ActionKind, &reply, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}

		rec.Intent = core.Intent(intent.String)
		rec.Reply = reply.String

		if slotsStr.Valid && slotsStr.String != "" && slotsStr.String != "null" {
			if err := json.Unmarshal([]byte(slotsStr.String), &rec.Slots); err != nil {
				return nil, fmt.Errorf("failed to unmarshal slots: %w", err)
			}
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returned turns in reverse chronological order.
	// Reverse them back so callers render oldest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(records)).Msg("loaded transcript turns")
	return records, nil
}
