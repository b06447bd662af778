package nlu

import (
	"errors"
	"testing"

	"github.com/sandevgo/marvin/internal/core"
)

func newTestMatcher(t *testing.T) (*Normalizer, *Matcher) {
	t.Helper()
	norm := NewNormalizer(nil)
	m, err := NewMatcher(norm, DefaultPatterns())
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return norm, m
}

func TestMatchDefaultCatalog(t *testing.T) {
	norm, m := newTestMatcher(t)

	tests := []struct {
		name      string
		input     string
		intent    core.Intent
		slots     map[string]string
		sensitive bool
	}{
		{
			name:   "weather with city slot",
			input:  "What's the weather in Boston?",
			intent: core.IntentWeather,
			slots:  map[string]string{"city": "boston"},
		},
		{
			name:   "weather without city",
			input:  "weather",
			intent: core.IntentWeather,
		},
		{
			name:      "open app captures name",
			input:     "Hey Marvin, open the calculator",
			intent:    core.IntentOpenApp,
			slots:     map[string]string{"app": "calculator"},
			sensitive: true,
		},
		{
			name:      "start resolves as app launch",
			input:     "start calculator",
			intent:    core.IntentOpenApp,
			slots:     map[string]string{"app": "calculator"},
			sensitive: true,
		},
		{
			name:   "stop listening beats exit stop",
			input:  "stop listening",
			intent: core.IntentListening,
			slots:  map[string]string{"state": "off"},
		},
		{
			name:   "bare stop is exit",
			input:  "stop",
			intent: core.IntentExit,
		},
		{
			name:   "cpu beats wikipedia what-is",
			input:  "what is the cpu usage",
			intent: core.IntentSystemStatus,
			slots:  map[string]string{"metric": "cpu"},
		},
		{
			name:   "wikipedia topic capture",
			input:  "tell me about Alan Turing",
			intent: core.IntentWikipedia,
			slots:  map[string]string{"topic": "alan turing"},
		},
		{
			name:      "reminder with message and duration",
			input:     "remind me to stretch in 10 minutes",
			intent:    core.IntentReminder,
			slots:     map[string]string{"message": "stretch", "duration": "10 minutes"},
			sensitive: true,
		},
		{
			name:      "alarm duration capture",
			input:     "set alarm for 5 minutes",
			intent:    core.IntentAlarm,
			slots:     map[string]string{"duration": "5 minutes"},
			sensitive: true,
		},
		{
			name:   "volume set value",
			input:  "louder",
			intent: core.IntentVolume,
			slots:  map[string]string{"direction": "up"},
		},
		{
			name:   "unmute is not mute",
			input:  "unmute",
			intent: core.IntentVolume,
			slots:  map[string]string{"direction": "unmute"},
		},
		{
			name:   "voice style slot",
			input:  "change voice to robotic",
			intent: core.IntentVoiceStyle,
			slots:  map[string]string{"style": "robotic"},
		},
		{
			name:   "mode switch",
			input:  "voice mode",
			intent: core.IntentMode,
			slots:  map[string]string{"mode": "voice"},
		},
		{
			name:   "repeat",
			input:  "say that again",
			intent: core.IntentRepeat,
		},
		{
			name:   "help despite filler phrase in template",
			input:  "what can you do",
			intent: core.IntentHelp,
		},
		{
			name:   "search query",
			input:  "search for go concurrency patterns",
			intent: core.IntentSearch,
			slots:  map[string]string{"query": "go concurrency patterns"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ri, ok := m.Match(norm.Normalize(tt.input))
			if !ok {
				t.Fatalf("Match(%q): no match", tt.input)
			}
			if ri.Intent != tt.intent {
				t.Fatalf("Match(%q) intent = %q, want %q", tt.input, ri.Intent, tt.intent)
			}
			if ri.Sensitive != tt.sensitive {
				t.Errorf("Match(%q) sensitive = %v, want %v", tt.input, ri.Sensitive, tt.sensitive)
			}
			for name, want := range tt.slots {
				if got := ri.Slot(name); got != want {
					t.Errorf("Match(%q) slot %q = %q, want %q", tt.input, name, got, want)
				}
			}
		})
	}
}

func TestMatchMisses(t *testing.T) {
	norm, m := newTestMatcher(t)

	for _, input := range []string{"", "flibber jabber", "hey marvin please"} {
		if _, ok := m.Match(norm.Normalize(input)); ok {
			t.Errorf("Match(%q) matched, want miss", input)
		}
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	norm, m := newTestMatcher(t)

	text := norm.Normalize("what is the weather in london")
	first, ok := m.Match(text)
	if !ok {
		t.Fatal("no match")
	}
	for i := 0; i < 50; i++ {
		ri, ok := m.Match(text)
		if !ok || ri.Intent != first.Intent || ri.Slot("city") != first.Slot("city") {
			t.Fatalf("iteration %d: result changed: %+v vs %+v", i, ri, first)
		}
	}
}

func TestNewMatcherRejectsMalformedCatalogs(t *testing.T) {
	norm := NewNormalizer(nil)

	tests := []struct {
		name     string
		patterns []Pattern
	}{
		{
			name:     "empty catalog",
			patterns: nil,
		},
		{
			name: "empty intent",
			patterns: []Pattern{
				{Intent: "", Templates: []Template{{Text: "x"}}},
			},
		},
		{
			name: "duplicate intent",
			patterns: []Pattern{
				{Intent: core.IntentTime, Templates: []Template{{Text: "time"}}},
				{Intent: core.IntentTime, Templates: []Template{{Text: "clock"}}},
			},
		},
		{
			name: "negative priority",
			patterns: []Pattern{
				{Intent: core.IntentTime, Priority: -1, Templates: []Template{{Text: "time"}}},
			},
		},
		{
			name: "no templates",
			patterns: []Pattern{
				{Intent: core.IntentTime},
			},
		},
		{
			name: "sensitive session control",
			patterns: []Pattern{
				{Intent: core.IntentExit, Sensitive: true, Templates: []Template{{Text: "exit"}}},
			},
		},
		{
			name: "empty template text",
			patterns: []Pattern{
				{Intent: core.IntentTime, Templates: []Template{{Text: "  "}}},
			},
		},
		{
			name: "unclosed slot",
			patterns: []Pattern{
				{Intent: core.IntentWeather, Templates: []Template{{Text: "weather in <city"}}},
			},
		},
		{
			name: "invalid slot name",
			patterns: []Pattern{
				{Intent: core.IntentWeather, Templates: []Template{{Text: "weather in <City!>"}}},
			},
		},
		{
			name: "adjacent slots",
			patterns: []Pattern{
				{Intent: core.IntentReminder, Templates: []Template{{Text: "remind <message> <duration>"}}},
			},
		},
		{
			name: "repeated slot",
			patterns: []Pattern{
				{Intent: core.IntentReminder, Templates: []Template{{Text: "remind <x> then <x>"}}},
			},
		},
		{
			name: "slot without literal anchor",
			patterns: []Pattern{
				{Intent: core.IntentSearch, Templates: []Template{{Text: "<query>"}}},
			},
		},
		{
			name: "only fillers",
			patterns: []Pattern{
				{Intent: core.IntentTime, Templates: []Template{{Text: "the a an"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatcher(norm, tt.patterns)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedPattern) {
				t.Errorf("error %v is not ErrMalformedPattern", err)
			}
		})
	}
}
