package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// WeatherKeyStep collects the OpenWeatherMap API key. Leaving it empty keeps
// weather lookups disabled.
type WeatherKeyStep struct {
	input textinput.Model
}

func NewWeatherKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "leave empty to skip weather"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'

	return &WeatherKeyStep{
		input: ti,
	}
}

func (s *WeatherKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *WeatherKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.WeatherAPIKey = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *WeatherKeyStep) View(state *InstallState) string {
	return "Enter your OpenWeatherMap API key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// CityStep collects the fallback city for weather lookups
type CityStep struct {
	input textinput.Model
}

func NewCityStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Placeholder = "London"

	return &CityStep{
		input: ti,
	}
}

func (s *CityStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CityStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.DefaultCity = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *CityStep) View(state *InstallState) string {
	return "Enter your default city for weather lookups:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm, empty to skip)\n"
}
