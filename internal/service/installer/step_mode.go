package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ModeStep selects the default interaction mode
type ModeStep struct {
	choices []string
	cursor  int
}

func NewModeStep() Step {
	return &ModeStep{
		choices: []string{"manual", "voice"},
		cursor:  0,
	}
}

func (s *ModeStep) Init() tea.Cmd {
	return nil
}

func (s *ModeStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
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
			state.Settings.DefaultMode = s.choices[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *ModeStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the default interaction mode:\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = ">"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
