package tui

import (
	"io"
	"sync"
	"time"
)

// Bell plays selected sound cues as the terminal bell.
type Bell struct {
	mu   sync.Mutex
	out  io.Writer
	cues map[string]bool
	gap  time.Duration
	last time.Time
	now  func() time.Time
}

// NewBell rings on out for the given cues, at most once per gap.
func NewBell(out io.Writer, gap time.Duration, cues ...string) *Bell {
	b := &Bell{out: out, cues: make(map[string]bool, len(cues)), gap: gap, now: time.Now}
	for _, c := range cues {
		b.cues[c] = true
	}
	return b
}

func (b *Bell) PlaySound(cue string) {
	if b == nil || !b.cues[cue] {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) < b.gap {
		return
	}
	b.last = now
	//nolint:errcheck // A missed bell is not worth reporting
	b.out.Write([]byte{'\a'})
}
