// Package session threads board state through a chat conversation.
//
// A [Session] is the caller side of the interpreter: it owns the current
// [workflow.State], feeds each line of user text to an [engine.Engine] and
// stores the returned state. It also keeps the transcript and the decaying
// highlight shown on the board.
//
// Turns are serialized. A turn that arrives while another is still being
// processed is rejected with [ErrBusy] instead of queued.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flowbot/internal/config"
	"flowbot/internal/engine"
	"flowbot/internal/router"
	"flowbot/internal/workflow"
)

// Sentinel errors returned by [Session.Send].
var (
	// ErrBusy indicates a turn is already in flight.
	ErrBusy = errors.New("still working on the previous command")

	// ErrEmptyInput indicates the text was blank after trimming.
	ErrEmptyInput = errors.New("input is empty")
)

// Session holds one conversation with its board.
//
// Use [NewSession] to create an instance. All methods are safe for
// concurrent use.
type Session struct {
	id     string
	engine *engine.Engine
	logger *zap.Logger
	now    engine.Clock
	newID  engine.IDGenerator

	thinkingDelay time.Duration
	highlightTTL  time.Duration

	turn sync.Mutex

	mu          sync.Mutex
	state       workflow.State
	transcript  []Message
	highlight   *workflow.Ref
	highlightAt time.Time
	turns       int
}

// NewSession creates a session over initial, greeting the user with
// cfg.Greeting. A nil logger disables logging.
func NewSession(eng *engine.Engine, initial workflow.State, cfg config.SessionConfig, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		id:            uuid.NewString(),
		engine:        eng,
		now:           time.Now,
		newID:         engine.NewID,
		thinkingDelay: cfg.ThinkingDelay,
		highlightTTL:  cfg.HighlightTTL,
		state:         initial,
	}
	s.logger = logger.With(zap.String("session", s.id))

	greeting := cfg.Greeting
	if greeting == "" {
		greeting = config.DefaultGreeting
	}
	s.transcript = []Message{s.message(RoleSystem, greeting)}

	s.logger.Info("session started",
		zap.Int("workflows", len(initial.Workflows)),
		zap.Duration("thinking_delay", s.thinkingDelay))
	return s
}

// SetClock replaces the time source used for message timestamps and
// highlight decay.
func (s *Session) SetClock(c engine.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = c
}

// SetIDGenerator replaces the generator used for message ids.
func (s *Session) SetIDGenerator(g engine.IDGenerator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newID = g
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Send runs one chat turn.
//
// The user message is recorded first, then the session waits for the
// thinking delay before interpreting. Cancelling ctx during the delay aborts
// the turn with ctx.Err() and leaves the board untouched. On success the
// assistant reply is recorded, the new state stored and the highlight
// refreshed.
func (s *Session) Send(ctx context.Context, text string) (engine.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return engine.Result{}, ErrEmptyInput
	}
	if !s.turn.TryLock() {
		s.logger.Warn("input rejected while busy", zap.String("input", text))
		return engine.Result{}, ErrBusy
	}
	defer s.turn.Unlock()

	s.mu.Lock()
	s.transcript = append(s.transcript, s.message(RoleUser, text))
	s.turns++
	turn := s.turns
	state := s.state
	s.mu.Unlock()

	if err := s.think(ctx); err != nil {
		s.logger.Info("turn cancelled", zap.Int("turn", turn), zap.Error(err))
		return engine.Result{}, err
	}

	start := time.Now()
	res := s.engine.Interpret(state, text)

	s.mu.Lock()
	s.state = res.State
	s.transcript = append(s.transcript, s.message(RoleAssistant, res.Reply))
	if res.Highlighted != nil {
		s.highlight = res.Highlighted
		s.highlightAt = s.now()
	}
	s.mu.Unlock()

	s.logger.Debug("turn",
		zap.Int("turn", turn),
		zap.String("input", text),
		zap.String("intent", string(res.Intent)),
		zap.String("outcome", string(res.Outcome)),
		zap.Duration("took", time.Since(start)))
	if res.Intent.Mutates() && res.Outcome != engine.OutcomeApplied {
		s.logger.Info("edit not applied",
			zap.Int("turn", turn),
			zap.String("intent", string(res.Intent)),
			zap.String("outcome", string(res.Outcome)))
	}
	return res, nil
}

func (s *Session) think(ctx context.Context) error {
	if s.thinkingDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.thinkingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// State returns the current board.
func (s *Session) State() workflow.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Highlighted returns the workflow the board should emphasize.
//
// A workflow highlighted by a recent turn wins until the highlight TTL
// elapses. After that the selected workflow is returned, or nil when the
// board has no selection.
func (s *Session) Highlighted() *workflow.Ref {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.highlight != nil && s.now().Sub(s.highlightAt) < s.highlightTTL {
		if w, _ := s.state.Find(s.highlight.ID); w != nil {
			return s.highlight
		}
	}
	if w := s.state.Selected(); w != nil {
		return w.Ref()
	}
	return nil
}

// Suggestions returns example commands to offer the user.
func (s *Session) Suggestions() []string {
	out := make([]string, len(router.Examples))
	copy(out, router.Examples)
	return out
}

// message must be called with mu held or before the session is shared.
func (s *Session) message(role Role, content string) Message {
	return Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
}
