package voice

import "github.com/sandevgo/marvin/internal/core"

// Profile carries the synthesis parameters for a voice style: words per
// minute and a base gain the volume level scales.
type Profile struct {
	Rate     int
	BaseGain float64
}

var profiles = map[core.VoiceStyle]Profile{
	core.StyleFormal:  {Rate: 150, BaseGain: 0.9},
	core.StyleCasual:  {Rate: 175, BaseGain: 0.9},
	core.StyleRobotic: {Rate: 120, BaseGain: 1.0},
}

// Rendered is a reply prepared for a speech collaborator: the text plus the
// synthesis parameters derived from the session's voice settings.
type Rendered struct {
	Text  string
	Rate  int
	Gain  float64
	Muted bool
}

// Render applies voice settings to a reply. Muted output keeps the text so
// text surfaces can still display it while audio stays silent.
func Render(settings core.VoiceSettings, text string) Rendered {
	p, ok := profiles[settings.Style]
	if !ok {
		p = profiles[core.StyleFormal]
	}
	return Rendered{
		Text:  text,
		Rate:  p.Rate,
		Gain:  p.BaseGain * float64(settings.Volume) / float64(core.VolumeMax),
		Muted: settings.Muted,
	}
}
