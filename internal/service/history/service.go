package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/session"
)

// HomeRoute is where Escape navigates to.
const HomeRoute = "/"

// Reader loads the most recent records, most recent first.
type Reader interface {
	LoadRecent(ctx context.Context, n int) []models.CalculationRecord
}

// View is what the history screen shows.
type View struct {
	Records  []models.CalculationRecord `json:"records"`
	Selected int                        `json:"selected"`
	Navigate string                     `json:"navigate,omitempty"`
}

// SelectedRecord returns the highlighted record, if any.
func (v View) SelectedRecord() (models.CalculationRecord, bool) {
	if v.Selected < 0 || v.Selected >= len(v.Records) {
		return models.CalculationRecord{}, false
	}
	return v.Records[v.Selected], true
}

type cursor struct {
	selected int
}

// Service drives the read-only history screen.
type Service struct {
	reader   Reader
	limit    int
	sessions *session.Manager[cursor]
	logger   *zap.Logger
}

// NewService wires a history viewer showing at most limit records.
func NewService(reader Reader, limit int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = 10
	}
	return &Service{
		reader:   reader,
		limit:    limit,
		sessions: session.NewManager(func(time.Time) cursor { return cursor{} }),
		logger:   logger,
	}
}

// SweepSessions forgets sessions idle for longer than ttl.
func (s *Service) SweepSessions(ttl time.Duration) int {
	return s.sessions.Sweep(ttl)
}

// View loads the recent history for a session.
func (s *Service) View(ctx context.Context, sessionID string) View {
	records := s.reader.LoadRecent(ctx, s.limit)

	var selected int
	s.sessions.Update(sessionID, func(c *cursor, _ time.Time) {
		c.selected = clamp(c.selected, len(records))
		selected = c.selected
	})

	return View{Records: records, Selected: selected}
}

// HandleKey moves the selection with ArrowUp and ArrowDown. Escape asks the
// client to navigate back to the calculator.
func (s *Service) HandleKey(ctx context.Context, sessionID string, key models.Key) View {
	records := s.reader.LoadRecent(ctx, s.limit)

	var selected int
	s.sessions.Update(sessionID, func(c *cursor, _ time.Time) {
		switch key {
		case models.KeyArrowUp:
			c.selected--
		case models.KeyArrowDown:
			c.selected++
		}
		c.selected = clamp(c.selected, len(records))
		selected = c.selected
	})

	view := View{Records: records, Selected: selected}
	if key == models.KeyEscape {
		view.Navigate = HomeRoute
		s.sessions.Clear(sessionID)
	}
	return view
}

func clamp(i, n int) int {
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
