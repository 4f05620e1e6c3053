package calculator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/session"
)

// DefaultBlinkInterval is how long the input cursor stays in one phase.
const DefaultBlinkInterval = 500 * time.Millisecond

var modeBanners = map[models.Mode]string{
	models.ModeCommand: "Enter expression (e.g. 3+5*2)",
	models.ModeMenu:    "Menu mode - Select operation with number keys",
	models.ModeHelp:    "Help - F1: Command  F2: Menu  F3: Help",
}

// HistoryWriter persists successful calculations.
type HistoryWriter interface {
	Append(ctx context.Context, record models.CalculationRecord) error
}

// Notifier is told about every record that was persisted.
type Notifier interface {
	NotifyRecord(ctx context.Context, record models.CalculationRecord) error
}

// State is what the calculator screen shows for one session.
type State struct {
	Mode          models.Mode   `json:"mode"`
	Input         string        `json:"input"`
	Result        *float64      `json:"result"`
	Steps         []models.Step `json:"steps"`
	Error         string        `json:"error,omitempty"`
	Banner        string        `json:"banner"`
	CursorVisible bool          `json:"cursorVisible"`

	startedAt time.Time
}

func newState(now time.Time) State {
	return State{
		Mode:      models.ModeCommand,
		Steps:     []models.Step{},
		startedAt: now,
	}
}

// Service runs the calculator screen: mode switching, live evaluation of the
// input line and recording of successful results.
type Service struct {
	evaluator *Evaluator
	history   HistoryWriter
	notifier  Notifier
	sessions  *session.Manager[State]
	blink     time.Duration
	logger    *zap.Logger
}

// NewService wires a calculator flow. notifier may be nil.
func NewService(evaluator *Evaluator, history HistoryWriter, notifier Notifier, blink time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if evaluator == nil {
		evaluator = NewEvaluator()
	}
	if blink <= 0 {
		blink = DefaultBlinkInterval
	}
	return &Service{
		evaluator: evaluator,
		history:   history,
		notifier:  notifier,
		sessions:  session.NewManager(newState),
		blink:     blink,
		logger:    logger,
	}
}

// SetClock overrides the time source used for sessions and the cursor.
func (s *Service) SetClock(now func() time.Time) {
	s.sessions.SetClock(now)
}

// SweepSessions forgets sessions idle for longer than ttl.
func (s *Service) SweepSessions(ttl time.Duration) int {
	return s.sessions.Sweep(ttl)
}

// View returns the current screen state of a session.
func (s *Service) View(sessionID string) State {
	var out State
	s.sessions.Update(sessionID, func(st *State, now time.Time) {
		out = s.snapshot(st, now)
	})
	return out
}

// HandleKey applies a key press. F1, F2 and F3 switch mode from any state;
// other keys are ignored.
func (s *Service) HandleKey(sessionID string, key models.Key) State {
	var out State
	s.sessions.Update(sessionID, func(st *State, now time.Time) {
		if mode, ok := models.ModeForKey(key); ok && mode != st.Mode {
			s.logger.Debug("mode switched", zap.String("session", sessionID), zap.String("from", string(st.Mode)), zap.String("to", string(mode)))
			st.Mode = mode
		}
		out = s.snapshot(st, now)
	})
	return out
}

// HandleInput replaces the input line. In command mode the expression is
// evaluated immediately; a success is recorded in the history, a failure only
// changes what the screen shows.
func (s *Service) HandleInput(ctx context.Context, sessionID, input string) State {
	var mode models.Mode
	s.sessions.Update(sessionID, func(st *State, _ time.Time) {
		st.Input = input
		mode = st.Mode
	})
	if mode != models.ModeCommand {
		return s.View(sessionID)
	}

	result, steps, err := s.evaluator.Calculate(input)

	var (
		out State
		at  time.Time
	)
	s.sessions.Update(sessionID, func(st *State, now time.Time) {
		at = now
		if err != nil {
			st.Result = nil
			st.Steps = []models.Step{}
			st.Error = Message(err)
		} else {
			v := result
			st.Result = &v
			st.Steps = steps
			st.Error = ""
		}
		out = s.snapshot(st, now)
	})

	if err != nil {
		s.logger.Debug("expression rejected", zap.String("session", sessionID), zap.String("input", input), zap.Error(err))
		return out
	}

	s.record(ctx, models.NewCalculationRecord(input, steps, result, at))
	return out
}

func (s *Service) record(ctx context.Context, record models.CalculationRecord) {
	if s.history == nil {
		return
	}

	if err := s.history.Append(ctx, record); err != nil {
		s.logger.Warn("failed to persist calculation", zap.String("expression", record.Expression), zap.Error(err))
		return
	}

	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyRecord(ctx, record); err != nil {
		s.logger.Warn("failed to notify calculation", zap.Int64("id", record.ID), zap.Error(err))
	}
}

func (s *Service) snapshot(st *State, now time.Time) State {
	out := *st
	out.Steps = append([]models.Step{}, st.Steps...)
	out.Banner = modeBanners[st.Mode]
	out.CursorVisible = cursorVisible(st.startedAt, now, s.blink)
	return out
}

func cursorVisible(started, now time.Time, blink time.Duration) bool {
	elapsed := now.Sub(started)
	if elapsed < 0 {
		return true
	}
	return (elapsed/blink)%2 == 0
}
