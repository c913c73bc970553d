// Package arena is the wave-survival game: the World that runs the
// simulation tick and the registry.Game adapter that renders it.
package arena

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/behavior"
	"github.com/vovakirdan/wave-arena/internal/collision"
	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/pathfind"
	"github.com/vovakirdan/wave-arena/internal/powerup"
	"github.com/vovakirdan/wave-arena/internal/spatial"
	"github.com/vovakirdan/wave-arena/internal/steering"
	"github.com/vovakirdan/wave-arena/internal/telemetry"
	"github.com/vovakirdan/wave-arena/internal/wave"
	"github.com/vovakirdan/wave-arena/internal/weapon"
)

// Options configure a World.
type Options struct {
	Config  config.ArenaConfig
	Seed    int64
	Endless bool
	// Viewport is the visible world size around the player. Projectiles
	// leaving it by more than the off-screen margin expire.
	Viewport  r2.Vec
	Presenter Presenter
	Audio     Audio
	Logger    *log.Logger
}

// World owns every entity of one run and advances them one tick at a time.
type World struct {
	cfg       config.ArenaConfig
	rng       *rand.Rand
	logger    *log.Logger
	presenter Presenter
	audio     Audio

	registry  *entity.Registry
	grid      *spatial.Grid[*entity.Entity]
	obstacles *collision.Obstacles
	paths     *pathfind.Pathfinder
	director  *wave.Director
	weapons   *weapon.Catalog
	powerups  *powerup.Catalog
	dropper   *powerup.Spawner
	stats     *telemetry.Collector

	player   *entity.Entity
	frame    time.Duration // Reference frame velocities are expressed against
	viewport r2.Vec

	tick    uint64
	clock   time.Duration
	score   int
	kills   int
	over    bool
	victory bool

	shown    map[entity.ID]string // Intent last accepted by the presenter
	rejected map[entity.ID]string // Intent the presenter refused
	cues     []string

	queryBuf    []*entity.Entity
	neighborBuf []steering.Neighbor
}

// control is the input of one tick, polled once.
type control struct {
	move   r2.Vec
	fire   bool
	aim    r2.Vec
	hasAim bool
}

// NewWorld generates the obstacles, places the player at the origin and
// spawns the first wave.
func NewWorld(opts Options) *World {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := &World{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		logger:    logger,
		presenter: opts.Presenter,
		audio:     opts.Audio,
		registry:  entity.NewRegistry(),
		grid:      spatial.NewGrid[*entity.Entity](cfg.World.SpatialCellSize),
		obstacles: collision.NewObstacles(),
		frame:     time.Second / time.Duration(max(cfg.World.ReferenceFPS, 1)),
		viewport:  opts.Viewport,
		shown:     make(map[entity.ID]string),
		rejected:  make(map[entity.ID]string),
	}
	if w.presenter == nil {
		w.presenter = NopPresenter{}
	}
	if w.audio == nil {
		w.audio = NopAudio{}
	}
	if w.viewport.X <= 0 || w.viewport.Y <= 0 {
		w.viewport = r2.Vec{X: 800, Y: 480}
	}

	placed := collision.NewGenerator(cfg.Obstacles, opts.Seed).Generate(r2.Vec{}, w.obstacles)
	w.paths = pathfind.New(w.obstacles, pathfind.Options{
		CellSize:       cfg.Pathfinding.CellSize,
		GoalSearchMax:  cfg.Pathfinding.GoalSearchMax,
		GoalSearchStep: cfg.Pathfinding.GoalSearchStep,
		MaxExpansions:  cfg.Pathfinding.MaxExpansions,
	})

	w.weapons = weapon.NewCatalog(cfg.Weapons, logger)
	w.powerups = powerup.NewCatalog(cfg.PowerUps, logger)
	w.dropper = powerup.NewSpawner(cfg.PowerUps, w.powerups, logger)

	w.player = entity.NewPlayer(cfg.Player, w.weapons.Get(cfg.Player.StartWeapon), r2.Vec{})
	w.player.Player.Brain = behavior.NewPlayerBrain(w.player)
	w.registry.Add(w.player)

	w.stats = telemetry.NewCollector(func() telemetry.Status {
		return telemetry.Status{Health: w.player.Health, Score: w.score}
	})
	w.director = wave.NewDirector(cfg.Waves, cfg.Enemies, w, w.rng, logger)
	w.director.SetEndless(opts.Endless)
	w.director.SetObserver(w)

	logger.Info("world ready", "seed", opts.Seed, "obstacles", placed, "endless", opts.Endless, "run", w.stats.RunID())
	w.director.Start()
	return w
}

// Player returns the player entity.
func (w *World) Player() *entity.Entity { return w.player }

// Registry returns the entity registry.
func (w *World) Registry() *entity.Registry { return w.registry }

// Obstacles returns the static obstacle set.
func (w *World) Obstacles() *collision.Obstacles { return w.obstacles }

// Director returns the wave director.
func (w *World) Director() *wave.Director { return w.director }

// Stats returns the telemetry collector of this run.
func (w *World) Stats() *telemetry.Collector { return w.stats }

// Weapons returns the weapon catalog.
func (w *World) Weapons() *weapon.Catalog { return w.weapons }

// Config returns the configuration the world was built with.
func (w *World) Config() config.ArenaConfig { return w.cfg }

// Score returns the archetype-weighted kill score.
func (w *World) Score() int { return w.score }

// Kills returns the number of enemies killed.
func (w *World) Kills() int { return w.kills }

// Tick returns the number of steps taken.
func (w *World) Tick() uint64 { return w.tick }

// Clock returns the simulated time.
func (w *World) Clock() time.Duration { return w.clock }

// Over reports whether the run has ended, by death or victory.
func (w *World) Over() bool { return w.over }

// Victory reports whether the terminal wave was cleared.
func (w *World) Victory() bool { return w.victory }

// Viewport returns the visible world size.
func (w *World) Viewport() r2.Vec { return w.viewport }

// SetViewport changes the visible world size, e.g. after a resize.
func (w *World) SetViewport(v r2.Vec) { w.viewport = v }

// SetAudio replaces the audio sink.
func (w *World) SetAudio(a Audio) { w.audio = a }

// SetPresenter replaces the presenter. Intents already shown are not
// re-sent.
func (w *World) SetPresenter(p Presenter) { w.presenter = p }

// Shown returns the intent the presenter last accepted for id.
func (w *World) Shown(id entity.ID) string { return w.shown[id] }

// Step advances the simulation by dt.
func (w *World) Step(in Input, dt time.Duration) {
	if w.over || dt <= 0 {
		return
	}
	w.tick++
	w.clock += dt

	ctl := w.poll(in)
	w.rebuildGrid()
	w.updatePlayer(ctl, dt)
	w.updateEnemies(dt)
	w.updateProjectiles(dt)
	w.updatePickups(dt)
	w.flush()

	w.director.Update(dt)
	w.director.CheckCompletion(w.registry.Count(entity.TagEnemy))
	w.checkEnd()

	w.syncPresentation()
}

// frames converts dt into reference frames for velocity integration.
func (w *World) frames(dt time.Duration) float64 {
	return float64(dt) / float64(w.frame)
}

func (w *World) poll(in Input) control {
	var ctl control
	if in == nil {
		return ctl
	}
	if in.ActionDown(core.ActionUp) {
		ctl.move.Y--
	}
	if in.ActionDown(core.ActionDown) {
		ctl.move.Y++
	}
	if in.ActionDown(core.ActionLeft) {
		ctl.move.X--
	}
	if in.ActionDown(core.ActionRight) {
		ctl.move.X++
	}
	ctl.move = core.SafeUnit(ctl.move)
	ctl.fire = in.ActionDown(core.ActionFire) || in.PrimaryPressed()

	if p, ok := in.PointerWorld(); ok {
		ctl.aim, ctl.hasAim = p, true
	} else if e, ok := w.NearestEnemy(w.player.Pos); ok {
		ctl.aim, ctl.hasAim = e.Pos, true
	}
	return ctl
}

func (w *World) rebuildGrid() {
	w.grid.Clear()
	w.registry.Each(func(e *entity.Entity) {
		w.grid.Insert(e, e.Pos)
	})
}

// NearestEnemy returns the living enemy closest to pos.
func (w *World) NearestEnemy(pos r2.Vec) (*entity.Entity, bool) {
	var best *entity.Entity
	bestD := math.Inf(1)
	w.registry.Each(func(e *entity.Entity) {
		if e.Tag != entity.TagEnemy || !e.Alive() {
			return
		}
		if d := r2.Norm2(r2.Sub(e.Pos, pos)); d < bestD {
			best, bestD = e, d
		}
	})
	return best, best != nil
}

func (w *World) move(e *entity.Entity, dt time.Duration) {
	to := r2.Add(e.Pos, r2.Scale(w.frames(dt), e.Vel))
	e.Pos = w.obstacles.Slide(e.Pos, to, e.Radius)
}

func (w *World) updatePlayer(ctl control, dt time.Duration) {
	p := w.player
	pd := p.Player
	p.Tick(dt)

	p.Vel = core.ClampLength(r2.Scale(pd.Speed, ctl.move), pd.MaxSpeed)
	pd.Brain.Update(dt)

	if ctl.hasAim {
		if d := r2.Sub(ctl.aim, p.Pos); !core.IsZero(d) {
			pd.Aim = core.SafeUnit(d)
		}
	}

	w.firePending(dt)
	if ctl.fire && pd.Cooldown <= 0 {
		w.fire()
	}
	w.move(p, dt)
}

func (w *World) fire() {
	p := w.player
	pd := p.Player
	shots := pd.Weapon.Fire(p.Pos, r2.Add(p.Pos, pd.Aim), w.rng)
	for _, s := range shots {
		if s.Delay <= 0 {
			w.spawnProjectile(s)
			continue
		}
		pd.Pending = append(pd.Pending, entity.PendingShot{Shot: s, Remaining: s.Delay})
	}
	pd.Cooldown = pd.Weapon.Stats().Cooldown
}

// firePending releases delayed burst shots whose countdown ran out.
func (w *World) firePending(dt time.Duration) {
	pd := w.player.Player
	kept := pd.Pending[:0]
	for _, ps := range pd.Pending {
		ps.Remaining -= dt
		if ps.Remaining <= 0 {
			w.spawnProjectile(ps.Shot)
			continue
		}
		kept = append(kept, ps)
	}
	pd.Pending = kept
}

func (w *World) spawnProjectile(s weapon.Shot) {
	pc := w.cfg.Projectile
	p := w.player
	vel := r2.Scale(pc.Speed, s.Dir)
	if pc.InheritVelocity != 0 {
		vel = r2.Add(vel, r2.Scale(pc.InheritVelocity, p.Vel))
	}
	lifetime := time.Duration(pc.LifetimeMs) * time.Millisecond
	w.registry.Add(entity.NewProjectile(p.Pos, vel, pc.Radius, s.Damage, lifetime))
	w.cue(CueProjectileFired)
	w.stats.ShotsFired(1)
}

// target is the actor enemies react to: the player while alive.
func (w *World) target() *entity.Entity {
	if w.player.Alive() {
		return w.player
	}
	return nil
}

func (w *World) updateEnemies(dt time.Duration) {
	p := w.player
	before := p.Health

	for _, e := range w.registry.ByCapability(entity.TagEnemy) {
		e.Tick(dt)
		ns := w.neighborsOf(e)
		e.Enemy.Brain.UpdateWithActor(dt, w.target())

		cfg := e.Enemy.Config
		f := steering.Forces{
			Separation: steering.Separation(e.Pos, ns, w.cfg.Enemies.SeparationRadius),
			Alignment:  steering.Alignment(ns),
			Cohesion:   steering.Cohesion(e.Pos, ns, w.cfg.Enemies.CohesionRadius),
		}
		if p.Alive() {
			f.Seek = steering.Seek(e.Pos, w.steerTarget(e), cfg.Seek, w.rng)
		}
		e.Vel = steering.Apply(e.Vel, f, cfg.Weights, cfg.Speed)
		w.move(e, dt)
	}

	if lost := before - p.Health; lost > 0 {
		w.cue(CuePlayerDamaged)
		w.stats.PlayerDamaged(lost)
		w.logger.Debug("player hit", "damage", lost, "health", p.Health)
	}
}

// neighborsOf collects the enemies in the 3x3 cell block around e.
func (w *World) neighborsOf(e *entity.Entity) []steering.Neighbor {
	w.queryBuf = w.grid.QueryInto(w.queryBuf[:0], e.Pos)
	ns := w.neighborBuf[:0]
	for _, o := range w.queryBuf {
		if o == e || o.Tag != entity.TagEnemy || o.Removed() {
			continue
		}
		ns = append(ns, steering.Neighbor{
			Pos:           o.Pos,
			Vel:           o.Vel,
			SameArchetype: o.Archetype == e.Archetype,
		})
	}
	w.neighborBuf = ns
	return ns
}

// steerTarget returns where e should seek: the player when in line of
// sight, otherwise the next waypoint of a cached A* route. Without a route
// the enemy holds course toward the player.
func (w *World) steerTarget(e *entity.Entity) r2.Vec {
	goal := w.player.Pos
	pc := w.cfg.Pathfinding
	cache := &e.Enemy.Path
	if !pc.Enabled || w.obstacles.LineOfSight(e.Pos, goal, e.Radius, 0) {
		cache.Reset()
		return goal
	}
	if !cache.Valid(goal, pc.RepathDistance, time.Duration(pc.MaxPathAgeMs)*time.Millisecond) {
		path := w.paths.FindPath(e.Pos, goal, pc.EntityRadius)
		if len(path) == 0 {
			cache.Reset()
			return goal
		}
		cache.Set(path, goal)
	}
	if wp, ok := cache.Next(e.Pos, pc.WaypointArrival); ok {
		return wp
	}
	return goal
}

func (w *World) updateProjectiles(dt time.Duration) {
	pc := w.cfg.Projectile
	limit := r2.Add(r2.Scale(0.5, w.viewport), r2.Vec{X: pc.OffscreenMargin, Y: pc.OffscreenMargin})

	for _, pr := range w.registry.ByCapability(entity.TagProjectile) {
		pr.Tick(dt)
		if pr.Projectile.Lifetime > 0 && pr.Projectile.Age >= pr.Projectile.Lifetime {
			w.registry.Remove(pr)
			continue
		}
		pr.Pos = r2.Add(pr.Pos, r2.Scale(w.frames(dt), pr.Vel))

		off := r2.Sub(pr.Pos, w.player.Pos)
		if math.Abs(off.X) > limit.X || math.Abs(off.Y) > limit.Y {
			w.registry.Remove(pr)
			continue
		}

		if hit, ok := w.firstEnemyHit(pr); ok {
			w.registry.Remove(pr)
			w.stats.ProjectileHit()
			hit.TakeDamage(pr.Projectile.Damage)
			if hit.Health <= 0 {
				w.kill(hit)
			}
		}
	}
}

func (w *World) firstEnemyHit(pr *entity.Entity) (*entity.Entity, bool) {
	w.queryBuf = w.grid.QueryInto(w.queryBuf[:0], pr.Pos)
	for _, e := range w.queryBuf {
		if e.Tag != entity.TagEnemy || !e.Alive() {
			continue
		}
		if collision.CirclesOverlap(pr.Pos, pr.Radius, e.Pos, e.Radius) {
			return e, true
		}
	}
	return nil, false
}

func (w *World) kill(e *entity.Entity) {
	w.registry.Remove(e)
	w.score += e.Enemy.Config.Score
	w.kills++
	w.cue(CueEnemyDied)
	w.stats.EnemyKilled()
	w.logger.Debug("enemy died", "enemy", e, "score", w.score)
}

func (w *World) updatePickups(dt time.Duration) {
	p := w.player
	if !p.Alive() {
		return
	}
	reach := p.Radius + w.cfg.PowerUps.PickupPadding
	for _, pu := range w.registry.ByCapability(entity.TagPowerUp) {
		if !collision.CirclesOverlap(p.Pos, reach, pu.Pos, pu.Radius) {
			continue
		}
		kind := powerup.Kind(pu.PowerUp.Kind)
		w.powerups.Apply(kind, p, w.weapons)
		w.registry.Remove(pu)
		w.cue(CuePowerUpPicked)
		w.stats.PowerUpPicked()
		w.logger.Debug("power-up picked", "kind", kind)
	}

	onScreen := w.registry.Count(entity.TagPowerUp)
	if drop, ok := w.dropper.Update(dt, w.director.Wave(), onScreen, p.Pos, w.rng); ok {
		w.addPowerUp(drop.Kind, drop.Pos)
	}
}

func (w *World) addPowerUp(kind powerup.Kind, pos r2.Vec) {
	w.registry.Add(entity.NewPowerUp(string(kind), pos, w.cfg.PowerUps.Radius))
}

func (w *World) flush() {
	for _, e := range w.registry.Flush() {
		delete(w.shown, e.ID)
		delete(w.rejected, e.ID)
	}
}

func (w *World) checkEnd() {
	switch {
	case !w.player.Alive():
		w.over = true
		w.stats.Finish(w.director.Elapsed())
		w.logger.Info("player died", "wave", w.director.Wave(), "score", w.score, "kills", w.kills)
	case w.director.Victory():
		w.over = true
		w.victory = true
		w.logger.Info("all waves cleared", "score", w.score, "kills", w.kills)
	}
}

func (w *World) cue(name string) {
	w.cues = append(w.cues, name)
}

// syncPresentation forwards changed intents to the presenter and flushes
// the sound cues of this tick.
func (w *World) syncPresentation() {
	w.registry.Each(func(e *entity.Entity) {
		if e.Intent == "" || e.Intent == w.shown[e.ID] || e.Intent == w.rejected[e.ID] {
			return
		}
		if err := w.presenter.SetAnimationIntent(e.ID, e.Intent); err != nil {
			w.rejected[e.ID] = e.Intent
			w.logger.Warn("animation unavailable, keeping previous", "entity", e, "intent", e.Intent, "err", err)
			return
		}
		w.shown[e.ID] = e.Intent
		delete(w.rejected, e.ID)
	})

	for _, c := range w.cues {
		w.audio.PlaySound(c)
	}
	w.cues = w.cues[:0]
}

// SpawnEnemy places an enemy for the director. A spawn point inside an
// obstacle is moved to the nearest clear point.
func (w *World) SpawnEnemy(arch entity.Archetype, cfg entity.EnemyConfig, pos r2.Vec) {
	if w.obstacles.Colliding(pos, cfg.Radius) {
		if alt, ok := w.paths.NearestWalkable(pos, cfg.Radius); ok {
			pos = alt
		}
	}
	e := entity.NewEnemy(arch, cfg, pos)
	e.Enemy.Brain = behavior.NewEnemyBrain(e)
	w.registry.Add(e)
	e.Enemy.Brain.OnTransition(func(from, to string) {
		w.logger.Debug("enemy state", "enemy", e, "from", from, "to", to)
	})
}

// SpawnPowerUp drops a bonus power-up near the player.
func (w *World) SpawnPowerUp(kind string) {
	w.addPowerUp(w.powerups.Parse(kind), w.dropper.Place(w.player.Pos, w.rng))
}

// PlayerPosition is the center of the enemy spawn ring.
func (w *World) PlayerPosition() r2.Vec { return w.player.Pos }

func (w *World) WaveStarted(c wave.Composition) {
	w.cue(CueWaveStarted)
	w.stats.WaveStarted(c)
}

func (w *World) WaveCompleted(n int, elapsed time.Duration) {
	w.stats.WaveCompleted(n, elapsed)
}

var (
	_ wave.Spawner  = (*World)(nil)
	_ wave.Observer = (*World)(nil)
)
