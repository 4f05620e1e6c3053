package animation

import (
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/session"
)

// DefaultInterval is how long each frame stays on screen.
const DefaultInterval = 1500 * time.Millisecond

// View is what the animation screen shows.
type View struct {
	Operation   models.Operation       `json:"operation"`
	Title       string                 `json:"title"`
	Steps       []models.AnimationStep `json:"steps"`
	CurrentStep int                    `json:"currentStep"`
	Current     models.AnimationStep   `json:"current"`
	Playing     bool                   `json:"playing"`
}

// Service plays the scripted demonstrations, one player per session.
type Service struct {
	interval time.Duration
	sessions *session.Manager[player]
	logger   *zap.Logger
}

// NewService wires the animation demo.
func NewService(interval time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		interval: interval,
		sessions: session.NewManager(func(now time.Time) player {
			p := player{}
			p.reset(models.OperationAddition, now)
			return p
		}),
		logger: logger,
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.sessions.SetClock(now)
}

// SweepSessions forgets sessions idle for longer than ttl.
func (s *Service) SweepSessions(ttl time.Duration) int {
	return s.sessions.Sweep(ttl)
}

// View returns the current frame of a session.
func (s *Service) View(sessionID string) View {
	var out View
	s.sessions.Update(sessionID, func(p *player, now time.Time) {
		out = s.render(p, now)
	})
	return out
}

// HandleKey toggles play and pause on Space; other keys are ignored.
func (s *Service) HandleKey(sessionID string, key models.Key) View {
	var out View
	s.sessions.Update(sessionID, func(p *player, now time.Time) {
		if key == models.KeySpace {
			p.toggle(now, s.interval, len(scripts[p.op]))
			s.logger.Debug("animation toggled", zap.String("session", sessionID), zap.Bool("playing", p.playing))
		}
		out = s.render(p, now)
	})
	return out
}

// Select switches the demonstrated operation and restarts playback.
func (s *Service) Select(sessionID, operation string) (View, error) {
	op, err := ParseOperation(operation)
	if err != nil {
		return View{}, err
	}

	var out View
	s.sessions.Update(sessionID, func(p *player, now time.Time) {
		p.reset(op, now)
		out = s.render(p, now)
	})
	return out, nil
}

func (s *Service) render(p *player, now time.Time) View {
	op := p.op
	steps, _ := Script(op)
	idx := p.current(now, s.interval, len(steps))

	view := View{
		Operation:   op,
		Title:       titles[op],
		Steps:       steps,
		CurrentStep: idx,
		Playing:     p.playing,
	}
	if idx < len(steps) {
		view.Current = steps[idx]
	}
	return view
}
