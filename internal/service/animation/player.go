package animation

import (
	"time"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
)

// player tracks one session's position in a script. While playing, the
// position is derived from the time elapsed since anchor.
type player struct {
	op      models.Operation
	index   int
	playing bool
	anchor  time.Time
}

func (p *player) current(now time.Time, interval time.Duration, n int) int {
	if n == 0 {
		return 0
	}
	if !p.playing || interval <= 0 {
		return p.index % n
	}
	elapsed := now.Sub(p.anchor)
	if elapsed < 0 {
		elapsed = 0
	}
	return (p.index + int(elapsed/interval)) % n
}

func (p *player) toggle(now time.Time, interval time.Duration, n int) {
	if p.playing {
		p.index = p.current(now, interval, n)
		p.playing = false
		return
	}
	p.playing = true
	p.anchor = now
}

func (p *player) reset(op models.Operation, now time.Time) {
	p.op = op
	p.index = 0
	p.playing = true
	p.anchor = now
}
