package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// VoiceStyleStep selects the voice profile used for spoken replies
type VoiceStyleStep struct {
	choices []string
	descs   []string
	cursor  int
}

func NewVoiceStyleStep() Step {
	return &VoiceStyleStep{
		choices: []string{"formal", "casual", "robotic"},
		descs: []string{
			"measured pace, neutral delivery",
			"faster, conversational delivery",
			"slow monotone delivery",
		},
		cursor: 0,
	}
}

func (s *VoiceStyleStep) Init() tea.Cmd {
	return nil
}

func (s *VoiceStyleStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.Settings.VoiceStyle = s.choices[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *VoiceStyleStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select a voice style:\n\n")
	for i, choice := range s.choices {
		line := fmt.Sprintf("%s (%s)", choice, s.descs[i])
		if s.cursor == i {
			b.WriteString(selStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
