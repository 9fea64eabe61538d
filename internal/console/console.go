package console

import (
	"context"

	"github.com/nhath/fastquery/internal/backend"
)

// Backend is the remote query service
type Backend interface {
	Connect(ctx context.Context, creds backend.Credentials) (backend.ConnectReply, error)
	Query(ctx context.Context, req backend.QueryRequest) (backend.QueryReply, error)
	Preview(ctx context.Context, req backend.QueryRequest) (backend.QueryReply, error)
}

// Dispatch sends a started query call to the endpoint its mode selects
func Dispatch(ctx context.Context, b Backend, call QueryCall) (backend.QueryReply, error) {
	if call.Mode == ModePreview {
		return b.Preview(ctx, call.Request)
	}
	return b.Query(ctx, call.Request)
}

// Console drives a State against a Backend synchronously. The TUI uses
// State directly so calls can overlap; Console serves one-shot callers.
type Console struct {
	State   *State
	backend Backend
}

// NewConsole creates a console with a fresh state
func NewConsole(b Backend, msgs Messages) *Console {
	return &Console{State: New(msgs), backend: b}
}

// Connect runs the connect operation and returns the resulting outcome
func (c *Console) Connect(ctx context.Context) Outcome {
	call := c.State.StartConnect()
	reply, err := c.backend.Connect(ctx, call.Credentials)
	c.State.ApplyConnect(call, reply, err)
	return c.State.Outcome()
}

// Preview runs the query through /preview
func (c *Console) Preview(ctx context.Context) Outcome {
	return c.run(ctx, ModePreview)
}

// Execute runs the query through /query
func (c *Console) Execute(ctx context.Context) Outcome {
	return c.run(ctx, ModeExecute)
}

func (c *Console) run(ctx context.Context, mode Mode) Outcome {
	call, err := c.State.StartQuery(mode)
	if err != nil {
		return c.State.Outcome()
	}
	reply, err := Dispatch(ctx, c.backend, call)
	c.State.ApplyQuery(call, reply, err)
	return c.State.Outcome()
}
