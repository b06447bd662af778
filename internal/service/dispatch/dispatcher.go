package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/internal/service/nlu"
	"github.com/sandevgo/marvin/internal/service/session"
	"github.com/sandevgo/marvin/pkg/log"
)

// Dispatcher orchestrates one turn: normalize, resolve, consult session
// state, emit an Action. It is total: any input yields an Action. Turns are
// serialized; a turn completes before the next utterance is accepted.
type Dispatcher struct {
	norm       *nlu.Normalizer
	matcher    *nlu.Matcher
	session    *session.Session
	transcript core.TranscriptRepository // optional

	mu  sync.Mutex
	seq uint64
}

func New(
	norm *nlu.Normalizer,
	matcher *nlu.Matcher,
	sess *session.Session,
	transcript core.TranscriptRepository,
) *Dispatcher {
	return &Dispatcher{
		norm:       norm,
		matcher:    matcher,
		session:    sess,
		transcript: transcript,
	}
}

// Session exposes the dispatcher-owned session for read access by
// collaborators (voice rendering, transports). Mutation stays in here.
func (d *Dispatcher) Session() *session.Session {
	return d.session
}

func (d *Dispatcher) ProcessTurn(ctx context.Context, text string) core.Action {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	utt := core.Utterance{Text: text, Seq: d.seq}
	normalized := d.norm.Normalize(text)

	var (
		action   core.Action
		resolved *core.ResolvedIntent
	)
	if pending := d.session.PendingConfirmation(); pending != nil {
		action, resolved = d.resumeConfirmation(utt, normalized, pending)
	} else {
		action, resolved = d.dispatch(utt, normalized)
	}

	d.record(ctx, utt, resolved, action)
	return action
}

// dispatch handles a turn with no confirmation outstanding.
func (d *Dispatcher) dispatch(utt core.Utterance, normalized string) (core.Action, *core.ResolvedIntent) {
	ri, ok := d.matcher.Match(normalized)
	if !ok {
		return core.Clarification(core.ReasonNoMatch,
			"I didn't understand that. Say 'help' for available commands."), nil
	}

	switch ri.Intent {
	case core.IntentRepeat:
		last, ok := d.session.LastEntry()
		if !ok {
			return core.Clarification(core.ReasonNothingToRepeat, "There is no command to repeat."), &ri
		}
		return last.Action, &ri
	case core.IntentUndo:
		prev, ok := d.session.PreviousEntry()
		if !ok {
			return core.Clarification(core.ReasonNothingToUndo, "There is no previous command."), &ri
		}
		return prev.Action, &ri
	}

	if ri.Sensitive {
		d.session.SetPendingConfirmation(ri, utt.Seq, utt.Text)
		return core.ConfirmationRequest(describe(ri)), &ri
	}

	return d.perform(utt.Text, ri), &ri
}

// resumeConfirmation interprets a turn while a confirmation is pending. A
// session-control intent interrupts and clears the pending slot; anything
// that is neither yes nor no re-issues the identical request.
func (d *Dispatcher) resumeConfirmation(utt core.Utterance, normalized string, pending *session.PendingConfirmation) (core.Action, *core.ResolvedIntent) {
	if ri, ok := d.matcher.Match(normalized); ok && ri.Intent.SessionControl() {
		d.session.ClearPendingConfirmation()
		return d.perform(utt.Text, ri), &ri
	}

	if nlu.Affirmative(normalized) {
		intent := pending.Intent
		d.session.ClearPendingConfirmation()
		return d.perform(pending.Utterance, intent), &intent
	}

	if nlu.Negative(normalized) {
		d.session.ClearPendingConfirmation()
		return core.Cancelled("Cancelled."), nil
	}

	return core.ConfirmationRequest(describe(pending.Intent)), nil
}

// perform builds the Action for a resolved intent, applies any session state
// change, and pushes memory at the point of execution. Repeat/undo
// re-emissions never come through here, so memory reflects distinct commands.
func (d *Dispatcher) perform(rawText string, ri core.ResolvedIntent) core.Action {
	action := d.actionFor(ri)
	if action.Kind == core.ActionSpeak || action.Kind == core.ActionSpeakAndExecute {
		d.session.PushMemory(core.MemoryEntry{
			Intent:    ri,
			Utterance: rawText,
			Action:    action,
			At:        time.Now(),
		})
	}
	return action
}

func (d *Dispatcher) actionFor(ri core.ResolvedIntent) core.Action {
	switch ri.Intent {
	case core.IntentTime:
		return core.SpeakAndExecute("Checking the time.", core.SystemCall{Op: core.OpGetTime})

	case core.IntentDate:
		return core.SpeakAndExecute("Checking today's date.", core.SystemCall{Op: core.OpGetDate})

	case core.IntentWeather:
		city := ri.Slot("city")
		text := "Fetching the weather."
		if city != "" {
			text = fmt.Sprintf("Fetching the weather for %s.", city)
		}
		return core.SpeakAndExecute(text, core.SystemCall{
			Op:   core.OpFetchWeather,
			Args: map[string]string{"city": city},
		})

	case core.IntentWikipedia:
		topic := ri.Slot("topic")
		return core.SpeakAndExecute(fmt.Sprintf("Looking up %s.", topic), core.SystemCall{
			Op:   core.OpWikipediaSummary,
			Args: map[string]string{"topic": topic},
		})

	case core.IntentSearch:
		query := ri.Slot("query")
		return core.SpeakAndExecute(fmt.Sprintf("Searching for %s.", query), core.SystemCall{
			Op:   core.OpWebSearch,
			Args: map[string]string{"query": query},
		})

	case core.IntentSystemStatus:
		metric := ri.Slot("metric")
		if metric == "" {
			metric = "all"
		}
		return core.SpeakAndExecute("Checking system status.", core.SystemCall{
			Op:   core.OpSystemStatus,
			Args: map[string]string{"metric": metric},
		})

	case core.IntentOpenApp:
		app := ri.Slot("app")
		return core.SpeakAndExecute(fmt.Sprintf("Opening %s.", app), core.SystemCall{
			Op:   core.OpOpenApplication,
			Args: map[string]string{"name": app},
		})

	case core.IntentAlarm:
		duration := ri.Slot("duration")
		return core.SpeakAndExecute(fmt.Sprintf("Setting an alarm for %s.", duration), core.SystemCall{
			Op:   core.OpSetAlarm,
			Args: map[string]string{"duration": duration},
		})

	case core.IntentReminder:
		message := ri.Slot("message")
		duration := ri.Slot("duration")
		text := fmt.Sprintf("Setting a reminder: %s.", message)
		if duration != "" {
			text = fmt.Sprintf("Setting a reminder in %s: %s.", duration, message)
		}
		return core.SpeakAndExecute(text, core.SystemCall{
			Op:   core.OpSetReminder,
			Args: map[string]string{"message": message, "duration": duration},
		})

	case core.IntentVoiceStyle:
		style := core.VoiceStyle(ri.Slot("style"))
		if err := d.session.SetVoiceStyle(style); err != nil {
			return core.Clarification(core.ReasonInvalidConfig,
				fmt.Sprintf("I don't have a %s voice. Styles are formal, casual and robotic.", style))
		}
		return core.SpeakAndExecute(fmt.Sprintf("Voice changed to %s style.", style), core.SystemCall{
			Op:   core.OpChangeVoice,
			Args: map[string]string{"style": string(style)},
		})

	case core.IntentVolume:
		return d.volumeAction(ri.Slot("direction"))

	case core.IntentMode:
		mode := core.Mode(ri.Slot("mode"))
		if err := d.session.SetMode(mode); err != nil {
			return core.Clarification(core.ReasonInvalidConfig,
				fmt.Sprintf("I can't switch to %s mode. Modes are voice and manual.", mode))
		}
		return core.SpeakAndExecute(fmt.Sprintf("Switched to %s mode.", mode), core.SystemCall{
			Op:   core.OpSwitchMode,
			Args: map[string]string{"mode": string(mode)},
		})

	case core.IntentListening:
		on := ri.Slot("state") == "on"
		d.session.SetListening(on)
		text := "Stopping continuous listening."
		if on {
			text = "Starting continuous listening."
		}
		return core.SpeakAndExecute(text, core.SystemCall{
			Op:   core.OpToggleListening,
			Args: map[string]string{"state": ri.Slot("state")},
		})

	case core.IntentHelp:
		return core.SpeakAndExecute("Here's what I can do.", core.SystemCall{Op: core.OpHelp})

	case core.IntentExit:
		return core.SpeakAndExecute("Goodbye! Shutting down.", core.SystemCall{Op: core.OpExit})
	}

	// Custom catalogs can declare intents this dispatcher has no rule for.
	return core.Clarification(core.ReasonNoMatch,
		"I didn't understand that. Say 'help' for available commands.")
}

func (d *Dispatcher) volumeAction(direction string) core.Action {
	switch direction {
	case "up":
		level := d.session.AdjustVolume(1)
		return core.SpeakAndExecute(fmt.Sprintf("Volume up to %d.", level), core.SystemCall{
			Op:   core.OpAdjustVolume,
			Args: map[string]string{"delta": "1"},
		})
	case "down":
		level := d.session.AdjustVolume(-1)
		return core.SpeakAndExecute(fmt.Sprintf("Volume down to %d.", level), core.SystemCall{
			Op:   core.OpAdjustVolume,
			Args: map[string]string{"delta": "-1"},
		})
	case "mute":
		d.session.SetMuted(true)
		return core.SpeakAndExecute("Voice muted.", core.SystemCall{Op: core.OpMute})
	case "unmute":
		d.session.SetMuted(false)
		return core.SpeakAndExecute("Voice unmuted.", core.SystemCall{Op: core.OpUnmute})
	}
	return core.Clarification(core.ReasonInvalidConfig,
		"I can adjust the volume up, down, mute or unmute.")
}

func describe(ri core.ResolvedIntent) string {
	switch ri.Intent {
	case core.IntentOpenApp:
		return fmt.Sprintf("Do you want me to open %s? Say yes or no.", ri.Slot("app"))
	case core.IntentAlarm:
		return fmt.Sprintf("Do you want me to set an alarm for %s? Say yes or no.", ri.Slot("duration"))
	case core.IntentReminder:
		return fmt.Sprintf("Do you want me to set a reminder for %s? Say yes or no.", ri.Slot("message"))
	}
	return "Do you want me to continue? Say yes or no."
}

// record emits the per-turn log entry. Transcript failures are logged and
// swallowed: the turn already produced its Action.
func (d *Dispatcher) record(ctx context.Context, utt core.Utterance, resolved *core.ResolvedIntent, action core.Action) {
	logger := log.FromCtx(ctx)
	rec := core.TurnRecord{
		Seq:        utt.Seq,
		RawText:    utt.Text,
		ActionKind: action.Kind,
		Reply:      action.Text,
		CreatedAt:  time.Now(),
	}
	if resolved != nil {
		rec.Intent = resolved.Intent
		rec.Slots = resolved.Slots
	}

	logger.Debug().
		Uint64("seq", rec.Seq).
		Str("intent", string(rec.Intent)).
		Str("action", string(rec.ActionKind)).
		Msg("turn dispatched")

	if d.transcript == nil {
		return
	}
	if err := d.transcript.AddTurn(ctx, rec); err != nil {
		logger.Error().Err(err).Uint64("seq", rec.Seq).Msg("failed to record turn")
	}
}
