// Package console holds the query console state and its transitions.
//
// Every backend call is split in two: a Start method snapshots the inputs
// and hands out a sequence number, an Apply method folds the reply back in.
// Apply ignores replies whose sequence number is no longer the latest for
// their counter, so overlapping calls resolve in request order.
package console

import (
	"errors"
	"fmt"
	"log"

	"github.com/nhath/fastquery/internal/backend"
)

// ErrNoDatabase is returned by StartQuery when no database is selected
var ErrNoDatabase = errors.New("no database selected")

// Mode selects the query endpoint
type Mode int

const (
	ModePreview Mode = iota
	ModeExecute
)

// Op maps the mode to its backend operation
func (m Mode) Op() backend.Op {
	if m == ModePreview {
		return backend.OpPreview
	}
	return backend.OpQuery
}

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "execute"
}

// ConnectionInput is what the user typed. It only ever lives in memory.
type ConnectionInput struct {
	Server   string
	User     string
	Password string
}

// Credentials converts the input to the wire form
func (c ConnectionInput) Credentials() backend.Credentials {
	return backend.Credentials{Server: c.Server, User: c.User, Password: c.Password}
}

// OutcomeKind tags the last outcome
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeResult
	OutcomeError
)

// Outcome is the single "last outcome" slot: nothing, a result, or an error
type Outcome struct {
	Kind   OutcomeKind
	Result *backend.ResultSet
	Error  string
	Mode   Mode // which call produced a result
}

// ConnectCall is a started connect request
type ConnectCall struct {
	Seq         uint64
	Credentials backend.Credentials
}

// QueryCall is a started preview or execute request
type QueryCall struct {
	Seq     uint64
	Mode    Mode
	Request backend.QueryRequest
}

// State is the console's whole in-memory state
type State struct {
	Input ConnectionInput
	Query string

	databases []string
	selected  int // index into databases, -1 when empty
	outcome   Outcome

	connectSeq uint64
	querySeq   uint64
	connecting bool
	querying   bool

	messages Messages
}

// New returns a disconnected console state
func New(msgs Messages) *State {
	return &State{selected: -1, messages: msgs}
}

// Messages returns the active message set
func (s *State) Messages() Messages {
	return s.messages
}

// Databases returns a copy of the database list
func (s *State) Databases() []string {
	out := make([]string, len(s.databases))
	copy(out, s.databases)
	return out
}

// Connected reports whether the last connect produced a list
func (s *State) Connected() bool {
	return len(s.databases) > 0
}

// SelectedDatabase returns the selected name, if any
func (s *State) SelectedDatabase() (string, bool) {
	if s.selected < 0 || s.selected >= len(s.databases) {
		return "", false
	}
	return s.databases[s.selected], true
}

// SelectedIndex returns the selected position or -1
func (s *State) SelectedIndex() int {
	return s.selected
}

// SelectIndex selects the i-th database
func (s *State) SelectIndex(i int) error {
	if i < 0 || i >= len(s.databases) {
		return fmt.Errorf("database index out of range: %d", i)
	}
	s.selected = i
	return nil
}

// Select selects the first database with the given name
func (s *State) Select(name string) error {
	for i, db := range s.databases {
		if db == name {
			s.selected = i
			return nil
		}
	}
	return fmt.Errorf("unknown database: %s", name)
}

// Outcome returns the last outcome
func (s *State) Outcome() Outcome {
	return s.outcome
}

// Connecting reports whether the latest connect is still in flight
func (s *State) Connecting() bool {
	return s.connecting
}

// Querying reports whether the latest preview/execute is still in flight
func (s *State) Querying() bool {
	return s.querying
}

// StartConnect snapshots the credentials for a new connect call
func (s *State) StartConnect() ConnectCall {
	s.connectSeq++
	s.connecting = true
	return ConnectCall{Seq: s.connectSeq, Credentials: s.Input.Credentials()}
}

// ApplyConnect folds a connect reply into the state. It returns false
// when the reply is stale and was dropped.
func (s *State) ApplyConnect(call ConnectCall, reply backend.ConnectReply, err error) bool {
	if call.Seq != s.connectSeq {
		log.Printf("console: dropping stale connect reply seq=%d latest=%d", call.Seq, s.connectSeq)
		return false
	}
	s.connecting = false

	if err != nil || reply == nil {
		if err != nil {
			log.Printf("console: connect transport failure: %v", err)
		}
		s.setError(s.messages.ConnectFailed)
		return true
	}

	switch r := reply.(type) {
	case backend.Connected:
		s.databases = append([]string{}, r.Databases...)
		s.selected = -1
		if len(s.databases) > 0 {
			s.selected = 0
		}
		if s.outcome.Kind == OutcomeError {
			s.outcome = Outcome{}
		}
	case backend.Failure:
		s.databases = nil
		s.selected = -1
		s.setError(r.Error)
	}
	return true
}

// StartQuery snapshots the inputs for a preview or execute call. Without
// a selected database it records the error and returns ErrNoDatabase;
// the caller must not contact the backend.
func (s *State) StartQuery(mode Mode) (QueryCall, error) {
	db, ok := s.SelectedDatabase()
	if !ok {
		s.setError(s.messages.SelectDatabase)
		return QueryCall{}, ErrNoDatabase
	}
	s.querySeq++
	s.querying = true
	return QueryCall{
		Seq:  s.querySeq,
		Mode: mode,
		Request: backend.QueryRequest{
			Credentials: s.Input.Credentials(),
			Database:    db,
			Query:       s.Query,
		},
	}, nil
}

// ApplyQuery folds a preview/execute reply into the state. It returns
// false when the reply is stale and was dropped.
func (s *State) ApplyQuery(call QueryCall, reply backend.QueryReply, err error) bool {
	if call.Seq != s.querySeq {
		log.Printf("console: dropping stale %s reply seq=%d latest=%d", call.Mode, call.Seq, s.querySeq)
		return false
	}
	s.querying = false

	if err != nil || reply == nil {
		if err != nil {
			log.Printf("console: %s transport failure: %v", call.Mode, err)
		}
		s.setError(s.messages.transportFailure(call.Mode))
		return true
	}

	switch r := reply.(type) {
	case *backend.ResultSet:
		if r == nil {
			r = &backend.ResultSet{}
		}
		s.outcome = Outcome{Kind: OutcomeResult, Result: r, Mode: call.Mode}
	case backend.Failure:
		s.setError(r.Error)
	}
	return true
}

func (s *State) setError(msg string) {
	s.outcome = Outcome{Kind: OutcomeError, Error: msg}
}
