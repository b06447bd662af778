package session

import (
	"errors"

	"github.com/sandevgo/marvin/internal/core"
)

var (
	ErrInvalidMode  = errors.New("invalid mode")
	ErrInvalidStyle = errors.New("invalid voice style")
)

// PendingConfirmation holds the one intent awaiting a yes/no reply, the turn
// at which it was proposed and the utterance that proposed it.
type PendingConfirmation struct {
	Intent    core.ResolvedIntent
	Seq       uint64
	Utterance string
}

// Session is the short-lived conversational context for one running
// assistant: bounded command memory, at most one pending confirmation, the
// input mode, the continuous-listening flag and voice settings. It has a
// single owner (the dispatcher) and no internal locking.
type Session struct {
	capacity  int
	memory    []core.MemoryEntry
	pending   *PendingConfirmation
	mode      core.Mode
	listening bool
	voice     core.VoiceSettings
}

// New builds a session. A non-positive capacity falls back to 3, matching
// the default command memory depth.
func New(capacity int, mode core.Mode, voice core.VoiceSettings) *Session {
	if capacity <= 0 {
		capacity = 3
	}
	if mode != core.ModeVoice && mode != core.ModeManual {
		mode = core.ModeManual
	}
	if !validStyle(voice.Style) {
		voice.Style = core.StyleFormal
	}
	voice.Volume = clampVolume(voice.Volume)
	return &Session{
		capacity: capacity,
		memory:   make([]core.MemoryEntry, 0, capacity),
		mode:     mode,
		voice:    voice,
	}
}

// PushMemory appends an executed command, evicting the oldest entry once
// the fixed capacity is reached.
func (s *Session) PushMemory(entry core.MemoryEntry) {
	if len(s.memory) == s.capacity {
		copy(s.memory, s.memory[1:])
		s.memory = s.memory[:s.capacity-1]
	}
	s.memory = append(s.memory, entry)
}

// LastEntry peeks the most recent executed command.
func (s *Session) LastEntry() (core.MemoryEntry, bool) {
	if len(s.memory) == 0 {
		return core.MemoryEntry{}, false
	}
	return s.memory[len(s.memory)-1], true
}

// PreviousEntry peeks the second-most-recent executed command, the target
// of "do the previous one".
func (s *Session) PreviousEntry() (core.MemoryEntry, bool) {
	if len(s.memory) < 2 {
		return core.MemoryEntry{}, false
	}
	return s.memory[len(s.memory)-2], true
}

func (s *Session) MemoryLen() int {
	return len(s.memory)
}

func (s *Session) SetPendingConfirmation(intent core.ResolvedIntent, seq uint64, utterance string) {
	s.pending = &PendingConfirmation{Intent: intent, Seq: seq, Utterance: utterance}
}

func (s *Session) ClearPendingConfirmation() {
	s.pending = nil
}

func (s *Session) PendingConfirmation() *PendingConfirmation {
	return s.pending
}

func (s *Session) SetMode(mode core.Mode) error {
	if mode != core.ModeVoice && mode != core.ModeManual {
		return ErrInvalidMode
	}
	s.mode = mode
	return nil
}

func (s *Session) Mode() core.Mode {
	return s.mode
}

func (s *Session) SetListening(on bool) {
	s.listening = on
}

func (s *Session) IsListening() bool {
	return s.listening
}

func (s *Session) SetVoiceStyle(style core.VoiceStyle) error {
	if !validStyle(style) {
		return ErrInvalidStyle
	}
	s.voice.Style = style
	return nil
}

// AdjustVolume shifts volume by delta, clamped to the allowed range, and
// returns the resulting level.
func (s *Session) AdjustVolume(delta int) int {
	s.voice.Volume = clampVolume(s.voice.Volume + delta)
	return s.voice.Volume
}

func (s *Session) SetMuted(muted bool) {
	s.voice.Muted = muted
}

func (s *Session) Voice() core.VoiceSettings {
	return s.voice
}

func validStyle(style core.VoiceStyle) bool {
	switch style {
	case core.StyleFormal, core.StyleCasual, core.StyleRobotic:
		return true
	}
	return false
}

func clampVolume(v int) int {
	if v < core.VolumeMin {
		return core.VolumeMin
	}
	if v > core.VolumeMax {
		return core.VolumeMax
	}
	return v
}
