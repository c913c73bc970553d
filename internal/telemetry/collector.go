// Package telemetry records per-wave statistics of a run and writes them
// out as CSV.
package telemetry

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/wave-arena/internal/wave"
)

// WaveRecord holds the statistics of one wave.
type WaveRecord struct {
	RunID        string  `csv:"run_id"`
	Wave         int     `csv:"wave"`
	Boss         bool    `csv:"boss"`
	Grunts       int     `csv:"grunts"`
	Fast         int     `csv:"fast"`
	Spawned      int     `csv:"spawned"`
	Kills        int     `csv:"kills"`
	ShotsFired   int     `csv:"shots_fired"`
	Hits         int     `csv:"hits"`
	DamageTaken  float64 `csv:"damage_taken"`
	Pickups      int     `csv:"pickups"`
	DurationMs   int64   `csv:"duration_ms"`
	PlayerHealth float64 `csv:"player_health"`
	Score        int     `csv:"score"`
	Cleared      bool    `csv:"cleared"`
}

// Accuracy returns hits per shot fired.
func (r WaveRecord) Accuracy() float64 {
	if r.ShotsFired == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.ShotsFired)
}

// Status is the player state sampled when a wave closes.
type Status struct {
	Health float64
	Score  int
}

// Sink receives finished records.
type Sink interface {
	WriteWave(WaveRecord) error
}

// Collector accumulates events of the current wave and closes a record
// whenever the director reports a completed wave. Events counted while no
// wave is open are carried into the next wave's record. It implements
// wave.Observer.
type Collector struct {
	runID   string
	current WaveRecord
	open    bool
	gap     WaveRecord
	records []WaveRecord
	status  func() Status
	sink    Sink
	err     error
}

var _ wave.Observer = (*Collector)(nil)

// NewCollector creates a collector with a fresh run ID. status may be nil.
func NewCollector(status func() Status) *Collector {
	return &Collector{
		runID:  uuid.NewString(),
		status: status,
	}
}

// RunID returns the identifier stamped on every record.
func (c *Collector) RunID() string { return c.runID }

// SetSink forwards every finished record to s.
func (c *Collector) SetSink(s Sink) { c.sink = s }

// Err returns the first sink error.
func (c *Collector) Err() error { return c.err }

// Records returns the finished records in wave order.
func (c *Collector) Records() []WaveRecord { return c.records }

// Current returns the record of the wave in progress.
func (c *Collector) Current() (WaveRecord, bool) { return c.current, c.open }

func (c *Collector) WaveStarted(comp wave.Composition) {
	c.current = WaveRecord{
		RunID:   c.runID,
		Wave:    comp.Wave,
		Boss:    comp.Boss,
		Spawned: comp.Total(),
	}
	if !comp.Boss {
		c.current.Grunts = comp.Grunts
		c.current.Fast = comp.Fast
	}
	c.current.Kills = c.gap.Kills
	c.current.ShotsFired = c.gap.ShotsFired
	c.current.Hits = c.gap.Hits
	c.current.DamageTaken = c.gap.DamageTaken
	c.current.Pickups = c.gap.Pickups
	c.gap = WaveRecord{}
	c.open = true
}

// Pending returns the events counted since the last wave closed that no
// open wave has taken yet.
func (c *Collector) Pending() WaveRecord { return c.gap }

// tally is the record events are counted into.
func (c *Collector) tally() *WaveRecord {
	if c.open {
		return &c.current
	}
	return &c.gap
}

func (c *Collector) WaveCompleted(n int, elapsed time.Duration) {
	if !c.open || c.current.Wave != n {
		return
	}
	c.current.Cleared = true
	c.close(elapsed)
}

// Finish closes a wave still in progress, e.g. when the player dies.
// Events left over from the break between waves are closed as an
// uncleared record of the wave that was about to start.
func (c *Collector) Finish(elapsed time.Duration) {
	if !c.open && c.gap != (WaveRecord{}) {
		c.current = c.gap
		c.current.RunID = c.runID
		if n := len(c.records); n > 0 {
			c.current.Wave = c.records[n-1].Wave + 1
		}
		c.gap = WaveRecord{}
		c.open = true
		elapsed = 0
	}
	if c.open {
		c.close(elapsed)
	}
}

func (c *Collector) close(elapsed time.Duration) {
	c.current.DurationMs = elapsed.Milliseconds()
	if c.status != nil {
		s := c.status()
		c.current.PlayerHealth = s.Health
		c.current.Score = s.Score
	}
	c.records = append(c.records, c.current)
	c.open = false
	if c.sink != nil {
		if err := c.sink.WriteWave(c.current); err != nil && c.err == nil {
			c.err = err
		}
	}
}

// EnemyKilled counts a kill.
func (c *Collector) EnemyKilled() { c.tally().Kills++ }

// ShotsFired counts fired projectiles.
func (c *Collector) ShotsFired(n int) { c.tally().ShotsFired += n }

// ProjectileHit counts a projectile that struck an enemy.
func (c *Collector) ProjectileHit() { c.tally().Hits++ }

// PlayerDamaged adds damage taken by the player.
func (c *Collector) PlayerDamaged(amount float64) { c.tally().DamageTaken += amount }

// PowerUpPicked counts a pickup.
func (c *Collector) PowerUpPicked() { c.tally().Pickups++ }

// Totals sums all finished records, the wave in progress and any events
// waiting for the next wave.
func (c *Collector) Totals() WaveRecord {
	t := WaveRecord{RunID: c.runID}
	all := append(c.records[:len(c.records):len(c.records)], c.gap)
	if c.open {
		all = append(all, c.current)
	}
	for _, r := range all {
		t.Wave = max(t.Wave, r.Wave)
		t.Spawned += r.Spawned
		t.Kills += r.Kills
		t.ShotsFired += r.ShotsFired
		t.Hits += r.Hits
		t.DamageTaken += r.DamageTaken
		t.Pickups += r.Pickups
		t.DurationMs += r.DurationMs
		t.Score = max(t.Score, r.Score)
	}
	return t
}
