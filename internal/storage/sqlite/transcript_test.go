package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/marvin/internal/core"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTranscriptRoundTrip(t *testing.T) {
	ctx := context.Background()
	tr := NewTranscript(newTestDB(t))

	rec := core.TurnRecord{
		Seq:        1,
		RawText:    "what's the weather in Boston?",
		Intent:     core.IntentWeather,
		Slots:      map[string]string{"city": "boston"},
		ActionKind: core.ActionSpeakAndExecute,
		Reply:      "Fetching the weather for boston.",
		CreatedAt:  time.Now().UTC(),
	}
	if err := tr.AddTurn(ctx, rec); err != nil {
		t.Fatalf("AddTurn: %v", err)
	}

	got, err := tr.RecentTurns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentTurns: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Seq != rec.Seq || got[0].RawText != rec.RawText || got[0].Intent != rec.Intent {
		t.Errorf("got %+v, want %+v", got[0], rec)
	}
	if got[0].Slots["city"] != "boston" {
		t.Errorf("slots = %v", got[0].Slots)
	}
	if got[0].Reply != rec.Reply {
		t.Errorf("reply = %q", got[0].Reply)
	}
}

func TestTranscriptEmptySlotsStayNil(t *testing.T) {
	ctx := context.Background()
	tr := NewTranscript(newTestDB(t))

	rec := core.TurnRecord{
		Seq:        1,
		RawText:    "what time is it",
		Intent:     core.IntentTime,
		ActionKind: core.ActionSpeakAndExecute,
		CreatedAt:  time.Now().UTC(),
	}
	if err := tr.AddTurn(ctx, rec); err != nil {
		t.Fatalf("AddTurn: %v", err)
	}

	got, err := tr.RecentTurns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentTurns: %v", err)
	}
	if got[0].Slots != nil {
		t.Errorf("slots = %v, want nil", got[0].Slots)
	}
}

func TestRecentTurnsLimitAndOrder(t *testing.T) {
	ctx := context.Background()
	tr := NewTranscript(newTestDB(t))

	for i := 1; i <= 5; i++ {
		rec := core.TurnRecord{
			Seq:        uint64(i),
			RawText:    fmt.Sprintf("command %d", i),
			ActionKind: core.ActionSpeak,
			CreatedAt:  time.Now().UTC(),
		}
		if err := tr.AddTurn(ctx, rec); err != nil {
			t.Fatalf("AddTurn %d: %v", i, err)
		}
	}

	got, err := tr.RecentTurns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentTurns: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	// The newest three, oldest first.
	for i, want := range []uint64{3, 4, 5} {
		if got[i].Seq != want {
			t.Errorf("got[%d].Seq = %d, want %d", i, got[i].Seq, want)
		}
	}
}
