package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/marvin/internal/config"
	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/internal/service/dispatch"
	"github.com/sandevgo/marvin/internal/service/ui"
	"github.com/sandevgo/marvin/internal/service/voice"
	"github.com/sandevgo/marvin/pkg/log"
)

const historyLimit = 10

type ReadLine struct {
	cfg        *config.AppConfig
	dispatcher *dispatch.Dispatcher
	executor   core.Executor
	transcript core.TranscriptRepository
	rl         *readline.Instance
}

func NewReadLine(
	dispatcher *dispatch.Dispatcher,
	executor core.Executor,
	transcript core.TranscriptRepository,
	cfg *config.AppConfig,
) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:        cfg,
		dispatcher: dispatcher,
		executor:   executor,
		transcript: transcript,
		rl:         rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("console session started. Type '/history' to review turns, 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/history" {
			r.printHistory(ctx)
			continue
		}

		action := r.dispatcher.ProcessTurn(ctx, line)

		reply, err := r.executor.Execute(ctx, action)
		if err != nil {
			logger.Error().Err(err).Msg("turn execution failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}
		if reply == "" {
			reply = action.Text
		}

		r.speak(action, reply)

		if action.Kind == core.ActionSpeakAndExecute && action.Call != nil && action.Call.Op == core.OpExit {
			return nil
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// Notify delivers scheduled alarm and reminder messages to the terminal.
func (r *ReadLine) Notify(text string) {
	fmt.Fprintf(r.rl.Stdout(), "\n%s\n", ui.NoticeStyle.Render(text))
	r.rl.Refresh()
}

func (r *ReadLine) speak(action core.Action, reply string) {
	if reply == "" {
		return
	}

	rendered := voice.Render(r.dispatcher.Session().Voice(), reply)
	if rendered.Muted {
		fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.DescStyle.Render(rendered.Text))
		return
	}

	switch action.Kind {
	case core.ActionConfirmation:
		fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.PromptStyle.Render(rendered.Text))
	case core.ActionClarification, core.ActionCancelled:
		fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.DescStyle.Render(rendered.Text))
	default:
		fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.SpeakStyle.Render(rendered.Text))
	}
}

func (r *ReadLine) printHistory(ctx context.Context) {
	records, err := r.transcript.RecentTurns(ctx, historyLimit)
	if err != nil {
		fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.DescStyle.Render("No turns recorded yet."))
		return
	}

	fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.TitleStyle.Render("Recent turns"))
	for _, rec := range records {
		intent := rec.Intent
		if intent == "" {
			intent = "-"
		}
		fmt.Fprintf(r.rl.Stdout(), "%s %s\n",
			ui.UsageStyle.Render(fmt.Sprintf("#%d [%s]", rec.Seq, intent)),
			rec.RawText)
		if rec.Reply != "" {
			fmt.Fprintf(r.rl.Stdout(), "    %s\n", ui.DescStyle.Render(rec.Reply))
		}
	}
}
