package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type counter struct {
	Hits    int
	Created time.Time
}

func newCounter(now time.Time) counter { return counter{Created: now} }

func TestManager_UpdateCreatesAndMutates(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(newCounter)
	m.SetClock(func() time.Time { return base })

	m.Update("a", func(s *counter, _ time.Time) { s.Hits++ })
	m.Update("a", func(s *counter, _ time.Time) { s.Hits++ })

	got := m.Get("a")
	assert.Equal(t, 2, got.Hits)
	assert.Equal(t, base, got.Created)
	assert.Equal(t, 0, m.Get("b").Hits)
	assert.Equal(t, 2, m.Len())
}

func TestManager_Clear(t *testing.T) {
	m := NewManager(newCounter)
	m.Update("a", func(s *counter, _ time.Time) { s.Hits = 5 })
	m.Clear("a")
	assert.Equal(t, 0, m.Get("a").Hits)
}

func TestManager_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(newCounter)
	m.SetClock(func() time.Time { return now })

	m.Get("old")
	now = now.Add(20 * time.Minute)
	m.Get("fresh")
	now = now.Add(15 * time.Minute)

	removed := m.Sweep(30 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Len())
}

func TestManager_ConcurrentUpdates(t *testing.T) {
	m := NewManager(newCounter)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Update("shared", func(s *counter, _ time.Time) { s.Hits++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.Get("shared").Hits)
}
