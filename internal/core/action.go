package core

// ActionKind tags the result of one dispatched turn.
type ActionKind string

const (
	ActionSpeak           ActionKind = "speak"
	ActionSpeakAndExecute ActionKind = "speak_and_execute"
	ActionConfirmation    ActionKind = "confirmation_request"
	ActionClarification   ActionKind = "clarification"
	ActionCancelled       ActionKind = "cancelled"
)

// ClarifyReason explains why a turn degraded to a clarification.
type ClarifyReason string

const (
	ReasonNoMatch         ClarifyReason = "no_match"
	ReasonNothingToRepeat ClarifyReason = "nothing_to_repeat"
	ReasonNothingToUndo   ClarifyReason = "nothing_to_undo"
	ReasonInvalidConfig   ClarifyReason = "invalid_configuration"
)

// Op identifies one of the fixed external operations an Action can request.
type Op string

const (
	OpGetTime          Op = "get-time"
	OpGetDate          Op = "get-date"
	OpFetchWeather     Op = "fetch-weather"
	OpWebSearch        Op = "web-search"
	OpWikipediaSummary Op = "wikipedia-summary"
	OpSystemStatus     Op = "system-status"
	OpOpenApplication  Op = "open-application"
	OpSetAlarm         Op = "set-alarm"
	OpSetReminder      Op = "set-reminder"
	OpChangeVoice      Op = "change-voice"
	OpAdjustVolume     Op = "adjust-volume"
	OpMute             Op = "mute"
	OpUnmute           Op = "unmute"
	OpSwitchMode       Op = "switch-mode"
	OpToggleListening  Op = "toggle-listening"
	OpHelp             Op = "help"
	OpExit             Op = "exit"
)

// SystemCall names an external operation and its arguments.
type SystemCall struct {
	Op   Op
	Args map[string]string
}

func (c SystemCall) Arg(name string) string {
	return c.Args[name]
}

// Action is the tagged per-turn result consumed by execution collaborators.
// Text is the announce line; Call is set only for ActionSpeakAndExecute.
type Action struct {
	Kind   ActionKind
	Text   string
	Call   *SystemCall
	Reason ClarifyReason
}

func Speak(text string) Action {
	return Action{Kind: ActionSpeak, Text: text}
}

func SpeakAndExecute(text string, call SystemCall) Action {
	return Action{Kind: ActionSpeakAndExecute, Text: text, Call: &call}
}

func ConfirmationRequest(text string) Action {
	return Action{Kind: ActionConfirmation, Text: text}
}

func Clarification(reason ClarifyReason, text string) Action {
	return Action{Kind: ActionClarification, Text: text, Reason: reason}
}

func Cancelled(text string) Action {
	return Action{Kind: ActionCancelled, Text: text}
}
