package nlu

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sandevgo/marvin/internal/core"
)

// DefaultPatterns is the built-in intent catalog. Priorities rank overlapping
// matches: session control and memory commands sit on top so "stop listening"
// never resolves as "stop" (exit) and "start calculator" never toggles
// listening mode.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Intent: core.IntentRepeat, Priority: 90, Templates: []Template{
			{Text: "repeat that"},
			{Text: "repeat"},
			{Text: "say that again", Ordered: true},
		}},
		{Intent: core.IntentUndo, Priority: 90, Templates: []Template{
			{Text: "undo"},
			{Text: "do the previous one", Ordered: true},
			{Text: "previous command", Ordered: true},
		}},
		{Intent: core.IntentListening, Priority: 85, Templates: []Template{
			{Text: "start listening", Ordered: true, Set: map[string]string{"state": "on"}},
			{Text: "continuous listening", Ordered: true, Set: map[string]string{"state": "on"}},
			{Text: "stop listening", Ordered: true, Set: map[string]string{"state": "off"}},
		}},
		{Intent: core.IntentMode, Priority: 85, Templates: []Template{
			{Text: "voice mode", Set: map[string]string{"mode": "voice"}},
			{Text: "manual mode", Set: map[string]string{"mode": "manual"}},
			{Text: "switch to typing", Ordered: true, Set: map[string]string{"mode": "manual"}},
		}},
		{Intent: core.IntentHelp, Priority: 80, Templates: []Template{
			{Text: "help"},
			{Text: "what can you do", Ordered: true},
			{Text: "commands"},
		}},
		{Intent: core.IntentExit, Priority: 80, Templates: []Template{
			{Text: "exit"},
			{Text: "quit"},
			{Text: "goodbye"},
			{Text: "bye"},
			{Text: "shut down", Ordered: true},
			{Text: "stop"},
		}},
		{Intent: core.IntentTime, Priority: 75, Templates: []Template{
			{Text: "time"},
			{Text: "clock"},
		}},
		{Intent: core.IntentDate, Priority: 75, Templates: []Template{
			{Text: "date"},
			{Text: "today"},
			{Text: "what day", Ordered: true},
		}},
		{Intent: core.IntentVoiceStyle, Priority: 70, Templates: []Template{
			{Text: "change voice to <style>"},
			{Text: "formal voice", Set: map[string]string{"style": "formal"}},
			{Text: "casual voice", Set: map[string]string{"style": "casual"}},
			{Text: "robotic voice", Set: map[string]string{"style": "robotic"}},
			{Text: "robot voice", Set: map[string]string{"style": "robotic"}},
		}},
		{Intent: core.IntentVolume, Priority: 70, Templates: []Template{
			{Text: "louder", Set: map[string]string{"direction": "up"}},
			{Text: "volume up", Ordered: true, Set: map[string]string{"direction": "up"}},
			{Text: "increase volume", Ordered: true, Set: map[string]string{"direction": "up"}},
			{Text: "softer", Set: map[string]string{"direction": "down"}},
			{Text: "quieter", Set: map[string]string{"direction": "down"}},
			{Text: "volume down", Ordered: true, Set: map[string]string{"direction": "down"}},
			{Text: "unmute", Set: map[string]string{"direction": "unmute"}},
			{Text: "mute", Set: map[string]string{"direction": "mute"}},
			{Text: "silence", Set: map[string]string{"direction": "mute"}},
		}},
		{Intent: core.IntentSystemStatus, Priority: 65, Templates: []Template{
			{Text: "system status", Ordered: true},
			{Text: "system info", Ordered: true},
			{Text: "cpu", Set: map[string]string{"metric": "cpu"}},
			{Text: "memory usage", Ordered: true, Set: map[string]string{"metric": "memory"}},
			{Text: "ram", Set: map[string]string{"metric": "memory"}},
			{Text: "battery", Set: map[string]string{"metric": "battery"}},
			{Text: "network", Set: map[string]string{"metric": "network"}},
		}},
		{Intent: core.IntentAlarm, Priority: 60, Sensitive: true, Templates: []Template{
			{Text: "set alarm for <duration>"},
			{Text: "alarm for <duration>"},
			{Text: "wake me in <duration>"},
		}},
		{Intent: core.IntentReminder, Priority: 60, Sensitive: true, Templates: []Template{
			{Text: "remind me to <message> in <duration>"},
			{Text: "remind me to <message>"},
			{Text: "reminder to <message> in <duration>"},
		}},
		{Intent: core.IntentWeather, Priority: 55, Templates: []Template{
			{Text: "weather in <city>"},
			{Text: "temperature in <city>"},
			{Text: "forecast in <city>"},
			{Text: "weather"},
			{Text: "temperature"},
			{Text: "forecast"},
		}},
		{Intent: core.IntentWikipedia, Priority: 50, Templates: []Template{
			{Text: "tell me about <topic>"},
			{Text: "who is <topic>"},
			{Text: "who was <topic>"},
			{Text: "what is <topic>"},
			{Text: "wikipedia <topic>"},
			{Text: "wiki <topic>"},
		}},
		{Intent: core.IntentSearch, Priority: 45, Templates: []Template{
			{Text: "search for <query>"},
			{Text: "search <query>"},
			{Text: "google <query>"},
			{Text: "look up <query>"},
			{Text: "find <query>"},
		}},
		{Intent: core.IntentOpenApp, Priority: 40, Sensitive: true, Templates: []Template{
			{Text: "open <app>"},
			{Text: "launch <app>"},
			{Text: "start <app>"},
			{Text: "run <app>"},
		}},
	}
}

type catalogFile struct {
	Patterns []Pattern `json:"patterns"`
}

// LoadCatalog reads a pattern catalog override from disk. A missing file is
// not an error: the built-in catalog is returned instead. A present but
// unreadable or invalid file is fatal to startup, like any malformed pattern.
func LoadCatalog(path string) ([]Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPatterns(), nil
		}
		return nil, fmt.Errorf("failed to read pattern catalog: %w", err)
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPattern, path, err)
	}
	if len(f.Patterns) == 0 {
		return nil, fmt.Errorf("%w: %s contains no patterns", ErrMalformedPattern, path)
	}
	return f.Patterns, nil
}
