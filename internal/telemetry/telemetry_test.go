package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/wave"
)

func TestCollectorClosesWaves(t *testing.T) {
	c := NewCollector(func() Status { return Status{Health: 80, Score: 40} })
	require.NotEmpty(t, c.RunID())

	c.WaveStarted(wave.Composition{Wave: 1, Grunts: 3, Fast: 1})
	c.ShotsFired(4)
	c.ProjectileHit()
	c.ProjectileHit()
	c.EnemyKilled()
	c.PlayerDamaged(20)
	c.PowerUpPicked()
	c.WaveCompleted(1, 1500*time.Millisecond)

	require.Len(t, c.Records(), 1)
	r := c.Records()[0]
	assert.Equal(t, c.RunID(), r.RunID)
	assert.Equal(t, 4, r.Spawned)
	assert.Equal(t, 1, r.Kills)
	assert.Equal(t, 20.0, r.DamageTaken)
	assert.Equal(t, int64(1500), r.DurationMs)
	assert.Equal(t, 80.0, r.PlayerHealth)
	assert.Equal(t, 40, r.Score)
	assert.True(t, r.Cleared)
	assert.InDelta(t, 0.5, r.Accuracy(), 1e-9)
}

func TestCollectorBossWave(t *testing.T) {
	c := NewCollector(nil)
	c.WaveStarted(wave.Composition{Wave: 5, Grunts: 11, Fast: 5, Boss: true})
	c.Finish(time.Second)

	require.Len(t, c.Records(), 1)
	r := c.Records()[0]
	assert.Equal(t, 1, r.Spawned)
	assert.Zero(t, r.Grunts)
	assert.False(t, r.Cleared)
}

func TestCollectorTotalsIncludeOpenWave(t *testing.T) {
	c := NewCollector(nil)
	c.WaveStarted(wave.Composition{Wave: 1, Grunts: 3, Fast: 1})
	c.EnemyKilled()
	c.WaveCompleted(1, time.Second)
	c.WaveStarted(wave.Composition{Wave: 2, Grunts: 5, Fast: 2})
	c.EnemyKilled()
	c.EnemyKilled()

	tot := c.Totals()
	assert.Equal(t, 3, tot.Kills)
	assert.Equal(t, 11, tot.Spawned)
	assert.Equal(t, 2, tot.Wave)
	assert.Len(t, c.Records(), 1)
}

func TestCollectorCarriesEventsBetweenWaves(t *testing.T) {
	c := NewCollector(nil)
	c.WaveStarted(wave.Composition{Wave: 1, Grunts: 3, Fast: 1})
	c.WaveCompleted(1, time.Second)

	c.PowerUpPicked()
	c.ShotsFired(2)
	c.PlayerDamaged(5)
	_, open := c.Current()
	assert.False(t, open)
	assert.Equal(t, 1, c.Pending().Pickups)
	assert.Equal(t, 1, c.Totals().Pickups)
	assert.Zero(t, c.Records()[0].Pickups)

	c.WaveStarted(wave.Composition{Wave: 2, Grunts: 5, Fast: 2})
	cur, open := c.Current()
	require.True(t, open)
	assert.Equal(t, 2, cur.Wave)
	assert.Equal(t, 1, cur.Pickups)
	assert.Equal(t, 2, cur.ShotsFired)
	assert.Equal(t, 5.0, cur.DamageTaken)
	assert.Equal(t, 7, cur.Spawned)
	assert.Zero(t, c.Pending())
	assert.Equal(t, 1, c.Totals().Pickups)
}

func TestCollectorFinishDuringBreak(t *testing.T) {
	c := NewCollector(func() Status { return Status{Health: 0, Score: 30} })
	c.WaveStarted(wave.Composition{Wave: 1, Grunts: 3, Fast: 1})
	c.WaveCompleted(1, time.Second)
	c.PlayerDamaged(100)
	c.Finish(5 * time.Second)

	require.Len(t, c.Records(), 2)
	r := c.Records()[1]
	assert.Equal(t, 2, r.Wave)
	assert.Equal(t, 100.0, r.DamageTaken)
	assert.Zero(t, r.Spawned)
	assert.False(t, r.Cleared)
	assert.Equal(t, c.RunID(), r.RunID)

	c.Finish(time.Second)
	assert.Len(t, c.Records(), 2)
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	c := NewCollector(nil)
	c.SetSink(om)
	for n := 1; n <= 3; n++ {
		c.WaveStarted(wave.Composition{Wave: n, Grunts: n, Fast: 1})
		c.EnemyKilled()
		c.WaveCompleted(n, time.Duration(n)*time.Second)
	}
	require.NoError(t, c.Err())
	require.NoError(t, om.WriteConfig(config.DefaultArenaConfig()))
	require.NoError(t, om.Close())

	f, err := os.Open(filepath.Join(dir, "waves.csv"))
	require.NoError(t, err)
	defer f.Close()

	var rows []WaveRecord
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, 3, rows[2].Wave)
	assert.Equal(t, int64(3000), rows[2].DurationMs)

	read, err := ReadWaves(filepath.Join(dir, "waves.csv"))
	require.NoError(t, err)
	assert.Equal(t, rows, read)
	assert.Equal(t, c.RunID(), read[0].RunID)

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultArenaConfig().Waves, loaded.Waves)
}

func TestReadWavesMissingFile(t *testing.T) {
	_, err := ReadWaves(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestOutputDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)
	assert.NoError(t, om.WriteWave(WaveRecord{}))
	assert.NoError(t, om.Close())
	assert.Empty(t, om.Dir())
}
