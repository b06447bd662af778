package core

import "time"

const (
	MarvinName          = "Marvin"
	MarvinUserAgent     = "Marvin-Assistant/0.1"
	MarvinRepositoryURL = "https://github.com/sandevgo/marvin"
	MarvinVersion       = "0.1.0"
)

// Mode is the input mode the assistant is running in.
type Mode string

const (
	ModeVoice  Mode = "voice"
	ModeManual Mode = "manual"
)

// VoiceStyle selects how spoken replies are rendered.
type VoiceStyle string

const (
	StyleFormal  VoiceStyle = "formal"
	StyleCasual  VoiceStyle = "casual"
	StyleRobotic VoiceStyle = "robotic"
)

const (
	VolumeMin     = 0
	VolumeMax     = 10
	VolumeDefault = 7
)

type VoiceSettings struct {
	Style  VoiceStyle
	Volume int
	Muted  bool
}

// Utterance is one raw user turn. Seq increases monotonically per session.
type Utterance struct {
	Text string
	Seq  uint64
}

// Intent is the canonical action category an utterance resolves to.
type Intent string

const (
	IntentTime         Intent = "time"
	IntentDate         Intent = "date"
	IntentWeather      Intent = "weather"
	IntentWikipedia    Intent = "wikipedia"
	IntentSearch       Intent = "search"
	IntentOpenApp      Intent = "open_app"
	IntentSystemStatus Intent = "system_status"
	IntentAlarm        Intent = "alarm"
	IntentReminder     Intent = "reminder"
	IntentVolume       Intent = "volume"
	IntentVoiceStyle   Intent = "voice_style"
	IntentMode         Intent = "mode"
	IntentListening    Intent = "listening"
	IntentRepeat       Intent = "repeat"
	IntentUndo         Intent = "undo"
	IntentHelp         Intent = "help"
	IntentExit         Intent = "exit"
)

// SessionControl reports whether the intent always executes immediately,
// taking precedence even over a pending confirmation.
func (i Intent) SessionControl() bool {
	switch i {
	case IntentMode, IntentListening, IntentHelp, IntentExit:
		return true
	}
	return false
}

// ResolvedIntent is the matcher output for one turn: the canonical intent
// plus any slot values extracted from the utterance.
type ResolvedIntent struct {
	Intent    Intent
	Slots     map[string]string
	Sensitive bool
}

// Slot returns the named slot value or "".
func (r ResolvedIntent) Slot(name string) string {
	return r.Slots[name]
}

// MemoryEntry is one executed command remembered for repeat/undo.
type MemoryEntry struct {
	Intent    ResolvedIntent
	Utterance string
	Action    Action
	At        time.Time
}
