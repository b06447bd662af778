package dispatch

import (
	"context"
	"reflect"
	"testing"

	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/internal/service/nlu"
	"github.com/sandevgo/marvin/internal/service/session"
)

type recordingTranscript struct {
	records []core.TurnRecord
}

func (r *recordingTranscript) AddTurn(_ context.Context, rec core.TurnRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingTranscript) RecentTurns(_ context.Context, limit int) ([]core.TurnRecord, error) {
	if limit > len(r.records) {
		limit = len(r.records)
	}
	return r.records[len(r.records)-limit:], nil
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingTranscript) {
	t.Helper()
	norm := nlu.NewNormalizer(nil)
	matcher, err := nlu.NewMatcher(norm, nlu.DefaultPatterns())
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	sess := session.New(3, core.ModeManual, core.VoiceSettings{Style: core.StyleFormal, Volume: 7})
	tr := &recordingTranscript{}
	return New(norm, matcher, sess, tr), tr
}

func TestProcessTurnNoMatch(t *testing.T) {
	d, _ := newTestDispatcher(t)

	action := d.ProcessTurn(context.Background(), "flibber jabber")
	if action.Kind != core.ActionClarification {
		t.Fatalf("kind = %q, want clarification", action.Kind)
	}
	if action.Reason != core.ReasonNoMatch {
		t.Errorf("reason = %q, want no_match", action.Reason)
	}
	if d.Session().MemoryLen() != 0 {
		t.Error("clarification must not enter command memory")
	}
}

func TestProcessTurnSimpleIntent(t *testing.T) {
	d, tr := newTestDispatcher(t)

	action := d.ProcessTurn(context.Background(), "what time is it")
	if action.Kind != core.ActionSpeakAndExecute {
		t.Fatalf("kind = %q, want speak_and_execute", action.Kind)
	}
	if action.Call == nil || action.Call.Op != core.OpGetTime {
		t.Fatalf("call = %+v, want get-time", action.Call)
	}
	if d.Session().MemoryLen() != 1 {
		t.Errorf("MemoryLen = %d, want 1", d.Session().MemoryLen())
	}
	if len(tr.records) != 1 || tr.records[0].Intent != core.IntentTime {
		t.Errorf("transcript records = %+v", tr.records)
	}
}

func TestConfirmationAccepted(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	action := d.ProcessTurn(ctx, "open the calculator")
	if action.Kind != core.ActionConfirmation {
		t.Fatalf("kind = %q, want confirmation_request", action.Kind)
	}
	if d.Session().MemoryLen() != 0 {
		t.Fatal("proposal must not enter command memory")
	}
	if d.Session().PendingConfirmation() == nil {
		t.Fatal("no pending confirmation stored")
	}

	action = d.ProcessTurn(ctx, "yes")
	if action.Kind != core.ActionSpeakAndExecute {
		t.Fatalf("kind after yes = %q, want speak_and_execute", action.Kind)
	}
	if action.Call == nil || action.Call.Op != core.OpOpenApplication || action.Call.Arg("name") != "calculator" {
		t.Fatalf("call after yes = %+v", action.Call)
	}
	if d.Session().PendingConfirmation() != nil {
		t.Error("pending confirmation not cleared after yes")
	}
	if d.Session().MemoryLen() != 1 {
		t.Errorf("MemoryLen = %d, want exactly 1 after confirmed execution", d.Session().MemoryLen())
	}
}

func TestConfirmationDeclined(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	d.ProcessTurn(ctx, "set alarm for 5 minutes")
	action := d.ProcessTurn(ctx, "no")

	if action.Kind != core.ActionCancelled {
		t.Fatalf("kind = %q, want cancelled", action.Kind)
	}
	if d.Session().PendingConfirmation() != nil {
		t.Error("pending confirmation not cleared after no")
	}
	if d.Session().MemoryLen() != 0 {
		t.Error("declined command must not enter memory")
	}
}

func TestConfirmationReprompts(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	first := d.ProcessTurn(ctx, "open calculator")
	reprompt := d.ProcessTurn(ctx, "what time is it")

	if reprompt.Kind != core.ActionConfirmation {
		t.Fatalf("kind = %q, want confirmation_request reprompt", reprompt.Kind)
	}
	if reprompt.Text != first.Text {
		t.Errorf("reprompt text %q differs from original %q", reprompt.Text, first.Text)
	}
	if d.Session().PendingConfirmation() == nil {
		t.Error("pending confirmation dropped by reprompt")
	}
	if d.Session().MemoryLen() != 0 {
		t.Error("nothing must enter memory while awaiting confirmation")
	}
}

func TestConfirmationInterruptedBySessionControl(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	d.ProcessTurn(ctx, "open calculator")
	action := d.ProcessTurn(ctx, "voice mode")

	if action.Kind != core.ActionSpeakAndExecute || action.Call == nil || action.Call.Op != core.OpSwitchMode {
		t.Fatalf("session-control interrupt produced %+v", action)
	}
	if d.Session().PendingConfirmation() != nil {
		t.Error("interrupt must clear the pending confirmation")
	}
	if d.Session().Mode() != core.ModeVoice {
		t.Errorf("mode = %q, want voice", d.Session().Mode())
	}

	// A later yes has nothing to confirm.
	after := d.ProcessTurn(ctx, "yes")
	if after.Kind != core.ActionClarification || after.Reason != core.ReasonNoMatch {
		t.Errorf("yes after interrupt = %+v, want no_match clarification", after)
	}
}

func TestRepeatAndUndo(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	timeAction := d.ProcessTurn(ctx, "what time is it")
	dateAction := d.ProcessTurn(ctx, "what is the date")

	repeated := d.ProcessTurn(ctx, "repeat that")
	if !reflect.DeepEqual(repeated, dateAction) {
		t.Errorf("repeat = %+v, want the date action", repeated)
	}

	undone := d.ProcessTurn(ctx, "do the previous one")
	if !reflect.DeepEqual(undone, timeAction) {
		t.Errorf("undo = %+v, want the time action", undone)
	}

	// Re-emissions never re-enter memory.
	if got := d.Session().MemoryLen(); got != 2 {
		t.Errorf("MemoryLen = %d, want 2", got)
	}
}

func TestRepeatWithEmptyMemory(t *testing.T) {
	d, _ := newTestDispatcher(t)

	action := d.ProcessTurn(context.Background(), "repeat that")
	if action.Kind != core.ActionClarification || action.Reason != core.ReasonNothingToRepeat {
		t.Errorf("repeat on empty memory = %+v", action)
	}
}

func TestUndoWithSingleEntry(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	d.ProcessTurn(ctx, "what time is it")
	action := d.ProcessTurn(ctx, "undo")
	if action.Kind != core.ActionClarification || action.Reason != core.ReasonNothingToUndo {
		t.Errorf("undo with one entry = %+v", action)
	}
}

func TestInvalidVoiceStyleClarifies(t *testing.T) {
	d, _ := newTestDispatcher(t)

	action := d.ProcessTurn(context.Background(), "change voice to operatic")
	if action.Kind != core.ActionClarification || action.Reason != core.ReasonInvalidConfig {
		t.Fatalf("invalid style = %+v", action)
	}
	if got := d.Session().Voice().Style; got != core.StyleFormal {
		t.Errorf("style = %q, want formal unchanged", got)
	}
	if d.Session().MemoryLen() != 0 {
		t.Error("failed configuration must not enter memory")
	}
}

func TestVolumeCommands(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	d.ProcessTurn(ctx, "louder")
	if got := d.Session().Voice().Volume; got != 8 {
		t.Errorf("volume after louder = %d, want 8", got)
	}

	for i := 0; i < 5; i++ {
		d.ProcessTurn(ctx, "volume up")
	}
	if got := d.Session().Voice().Volume; got != core.VolumeMax {
		t.Errorf("volume = %d, want clamp at %d", got, core.VolumeMax)
	}

	d.ProcessTurn(ctx, "mute")
	v := d.Session().Voice()
	if !v.Muted || v.Volume != core.VolumeMax {
		t.Errorf("voice after mute = %+v, want muted with volume kept", v)
	}

	d.ProcessTurn(ctx, "unmute")
	if d.Session().Voice().Muted {
		t.Error("voice still muted after unmute")
	}
}

func TestListeningToggle(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	d.ProcessTurn(ctx, "start listening")
	if !d.Session().IsListening() {
		t.Error("listening not enabled")
	}

	action := d.ProcessTurn(ctx, "stop listening")
	if action.Call == nil || action.Call.Op != core.OpToggleListening {
		t.Fatalf("stop listening produced %+v", action)
	}
	if d.Session().IsListening() {
		t.Error("listening not disabled")
	}
}

func TestSequenceNumbersIncrease(t *testing.T) {
	d, tr := newTestDispatcher(t)
	ctx := context.Background()

	d.ProcessTurn(ctx, "what time is it")
	d.ProcessTurn(ctx, "nonsense input here")
	d.ProcessTurn(ctx, "help")

	if len(tr.records) != 3 {
		t.Fatalf("records = %d, want 3", len(tr.records))
	}
	for i, rec := range tr.records {
		if rec.Seq != uint64(i+1) {
			t.Errorf("record %d seq = %d, want %d", i, rec.Seq, i+1)
		}
	}
}

func TestMemoryCapacityThroughDispatcher(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	inputs := []string{"what time is it", "what is the date", "help", "system status"}
	for _, in := range inputs {
		d.ProcessTurn(ctx, in)
	}

	if got := d.Session().MemoryLen(); got != 3 {
		t.Fatalf("MemoryLen = %d, want capacity 3", got)
	}

	// Oldest command (time) was evicted; repeat returns the newest.
	repeated := d.ProcessTurn(ctx, "repeat")
	if repeated.Call == nil || repeated.Call.Op != core.OpSystemStatus {
		t.Errorf("repeat = %+v, want system-status re-emission", repeated)
	}
}
