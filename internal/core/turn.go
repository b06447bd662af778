package core

import "context"

// Dispatcher resolves one utterance into an Action, updating session state.
// Implementations must be total: any input yields an Action, never an error.
type Dispatcher interface {
	ProcessTurn(ctx context.Context, text string) Action
}

// Executor carries out a dispatched Action and returns the spoken reply.
type Executor interface {
	Execute(ctx context.Context, action Action) (string, error)
}

// Notifier delivers asynchronous announcements (alarms, reminders) back to
// whatever surface the user is on.
type Notifier interface {
	Notify(text string)
}
