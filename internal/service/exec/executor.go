package exec

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/pkg/log"
)

// Executor carries out dispatched Actions against the external
// collaborators and produces the spoken reply for the turn. Collaborator
// failures degrade to a spoken apology; Execute fails only on a SystemCall
// it has no rule for.
type Executor struct {
	weather  core.WeatherProvider
	wiki     core.KnowledgeProvider
	sys      core.SystemOps
	notifier core.Notifier
	shutdown func()

	defaultCity string
}

func New(
	weather core.WeatherProvider,
	wiki core.KnowledgeProvider,
	sys core.SystemOps,
	notifier core.Notifier,
	defaultCity string,
	shutdown func(),
) *Executor {
	return &Executor{
		weather:     weather,
		wiki:        wiki,
		sys:         sys,
		notifier:    notifier,
		defaultCity: defaultCity,
		shutdown:    shutdown,
	}
}

func (e *Executor) Execute(ctx context.Context, action core.Action) (string, error) {
	if action.Kind != core.ActionSpeakAndExecute || action.Call == nil {
		// Speak, clarification, confirmation and cancellation actions carry
		// their full reply already.
		return action.Text, nil
	}
	return e.call(ctx, *action.Call)
}

func (e *Executor) call(ctx context.Context, call core.SystemCall) (string, error) {
	logger := log.FromCtx(ctx)

	switch call.Op {
	case core.OpGetTime:
		return time.Now().Format("It is 3:04 PM."), nil

	case core.OpGetDate:
		return time.Now().Format("Today is Monday, January 2, 2006."), nil

	case core.OpFetchWeather:
		city := call.Arg("city")
		if city == "" {
			city = e.defaultCity
		}
		if city == "" {
			return "I don't know which city to check. Try 'weather in Boston'.", nil
		}
		report, err := e.weather.Current(ctx, city)
		if err != nil {
			logger.Error().Err(err).Str("city", city).Msg("weather lookup failed")
			return fmt.Sprintf("I couldn't fetch the weather for %s right now.", city), nil
		}
		return report, nil

	case core.OpWikipediaSummary:
		topic := call.Arg("topic")
		summary, err := e.wiki.Summary(ctx, topic)
		if err != nil {
			logger.Error().Err(err).Str("topic", topic).Msg("wikipedia lookup failed")
			return fmt.Sprintf("I couldn't find anything about %s.", topic), nil
		}
		return summary, nil

	case core.OpWebSearch:
		query := call.Arg("query")
		searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
		if err := e.sys.OpenURL(ctx, searchURL); err != nil {
			logger.Error().Err(err).Str("query", query).Msg("failed to open search results")
			return "I couldn't open the browser for that search.", nil
		}
		return fmt.Sprintf("I opened search results for %s.", query), nil

	case core.OpSystemStatus:
		status, err := e.sys.Status(ctx, call.Arg("metric"))
		if err != nil {
			logger.Error().Err(err).Msg("system status failed")
			return "I couldn't read the system status.", nil
		}
		return status, nil

	case core.OpOpenApplication:
		name := call.Arg("name")
		if err := e.sys.OpenApplication(ctx, name); err != nil {
			logger.Error().Err(err).Str("app", name).Msg("failed to open application")
			return fmt.Sprintf("I couldn't open %s.", name), nil
		}
		return fmt.Sprintf("Opening %s.", name), nil

	case core.OpSetAlarm:
		d, err := ParseDuration(call.Arg("duration"))
		if err != nil {
			return "I couldn't understand that duration. Try 'set alarm for 5 minutes'.", nil
		}
		e.schedule(d, fmt.Sprintf("Alarm! %s has passed.", call.Arg("duration")))
		return fmt.Sprintf("Alarm set for %s.", call.Arg("duration")), nil

	case core.OpSetReminder:
		message := call.Arg("message")
		durText := call.Arg("duration")
		if durText == "" {
			return fmt.Sprintf("I'll remember: %s. Tell me 'in 10 minutes' next time to get a reminder.", message), nil
		}
		d, err := ParseDuration(durText)
		if err != nil {
			return "I couldn't understand that duration. Try 'remind me to stretch in 10 minutes'.", nil
		}
		e.schedule(d, fmt.Sprintf("Reminder: %s.", message))
		return fmt.Sprintf("Reminder set for %s: %s.", durText, message), nil

	case core.OpChangeVoice, core.OpAdjustVolume, core.OpMute, core.OpUnmute,
		core.OpSwitchMode, core.OpToggleListening:
		// Session state was already updated at dispatch; the announce line
		// is the reply.
		return "", nil

	case core.OpHelp:
		return helpText, nil

	case core.OpExit:
		if e.shutdown != nil {
			e.shutdown()
		}
		return "", nil
	}

	return "", fmt.Errorf("no handler for system call %q", call.Op)
}

// schedule fires a notification after d. Timers live outside the synchronous
// turn pipeline and are dropped on process exit, like the rest of the session.
func (e *Executor) schedule(d time.Duration, text string) {
	if e.notifier == nil {
		return
	}
	time.AfterFunc(d, func() {
		e.notifier.Notify(text)
	})
}

var durationUnits = map[string]time.Duration{
	"second": time.Second, "seconds": time.Second,
	"minute": time.Minute, "minutes": time.Minute,
	"hour": time.Hour, "hours": time.Hour,
}

// ParseDuration reads spoken durations like "5 minutes" or "1 hour".
func ParseDuration(text string) (time.Duration, error) {
	var value int
	var unit string
	if _, err := fmt.Sscanf(text, "%d %s", &value, &unit); err != nil {
		return 0, fmt.Errorf("unrecognized duration %q", text)
	}
	mult, ok := durationUnits[unit]
	if !ok || value <= 0 {
		return 0, fmt.Errorf("unrecognized duration %q", text)
	}
	return time.Duration(value) * mult, nil
}

const helpText = `Here's what I can do:
- Tell the time and date
- Get weather information ("weather in Boston")
- Search the web ("search for go tutorials")
- Summarize topics ("tell me about Alan Turing")
- Check system status ("cpu", "memory usage")
- Open applications ("open calculator")
- Set alarms and reminders ("remind me to stretch in 10 minutes")
- Change voice style: formal, casual or robotic
- Adjust volume: louder, softer, mute, unmute
- Switch modes: voice mode or manual mode
- Repeat recent commands: "repeat that" or "undo"
- Say "exit" to quit`
