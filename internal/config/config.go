// Package config provides YAML-based configuration loading and difficulty
// presets for the arena.
//
// Distances are world units, speeds are world units per reference frame
// (1/60 s) and durations are milliseconds.
package config

// ArenaConfig is the complete constants table of the arena.
type ArenaConfig struct {
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Enemies     EnemiesConfig     `yaml:"enemies"`
	Waves       WavesConfig       `yaml:"waves"`
	Weapons     WeaponsConfig     `yaml:"weapons"`
	Projectile  ProjectileConfig  `yaml:"projectile"`
	PowerUps    PowerUpsConfig    `yaml:"powerups"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Obstacles   ObstaclesConfig   `yaml:"obstacles"`
	Render      RenderConfig      `yaml:"render"`
}

// WorldConfig holds global simulation constants.
type WorldConfig struct {
	SpatialCellSize float64 `yaml:"spatial_cell_size"`
	ReferenceFPS    int     `yaml:"reference_fps"` // Frame rate velocities are expressed against
}

// PlayerConfig defines the player character.
type PlayerConfig struct {
	Health          float64 `yaml:"health"`
	MaxHealth       float64 `yaml:"max_health"`
	Speed           float64 `yaml:"speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Radius          float64 `yaml:"radius"`
	InvincibilityMs int     `yaml:"invincibility_ms"`
	StartWeapon     string  `yaml:"start_weapon"`
}

// EnemiesConfig holds the shared flocking radii, spawn ring and the three
// enemy archetypes.
type EnemiesConfig struct {
	SeparationRadius float64         `yaml:"separation_radius"`
	CohesionRadius   float64         `yaml:"cohesion_radius"`
	SpawnMinDistance float64         `yaml:"spawn_min_distance"`
	SpawnMaxDistance float64         `yaml:"spawn_max_distance"`
	Grunt            ArchetypeConfig `yaml:"grunt"`
	Fast             ArchetypeConfig `yaml:"fast"`
	Boss             ArchetypeConfig `yaml:"boss"`
}

// ArchetypeConfig is the per-archetype tuning of an enemy.
type ArchetypeConfig struct {
	Speed            float64       `yaml:"speed"`
	Health           float64       `yaml:"health"`
	Damage           float64       `yaml:"damage"`
	AttackCooldownMs int           `yaml:"attack_cooldown_ms"`
	AttackRange      float64       `yaml:"attack_range"`
	Radius           float64       `yaml:"radius"`
	Score            int           `yaml:"score"`
	Weights          WeightsConfig `yaml:"weights"`
	Seek             SeekConfig    `yaml:"seek"`
	Attack           AttackConfig  `yaml:"attack"`
}

// WeightsConfig are the steering force weights.
type WeightsConfig struct {
	Separation float64 `yaml:"separation"`
	Alignment  float64 `yaml:"alignment"`
	Cohesion   float64 `yaml:"cohesion"`
	Seek       float64 `yaml:"seek"`
}

// SeekConfig shapes the raw seek force before weighting.
type SeekConfig struct {
	Intensity      float64 `yaml:"intensity"`
	CloseRange     float64 `yaml:"close_range"` // 0 disables the close-range intensity
	CloseIntensity float64 `yaml:"close_intensity"`
	ScaleJitterMin float64 `yaml:"scale_jitter_min"` // Multiplier range, both 0 to disable
	ScaleJitterMax float64 `yaml:"scale_jitter_max"`
	AxisJitter     float64 `yaml:"axis_jitter"` // Uniform +/- added per axis
}

// AttackConfig shapes one attack state entry.
type AttackConfig struct {
	DurationMs    int `yaml:"duration_ms"`
	WindupMs      int `yaml:"windup_ms"`       // Delay before the first hit may land
	MaxHits       int `yaml:"max_hits"`        // 0 means unlimited
	HitIntervalMs int `yaml:"hit_interval_ms"` // Minimum gap between hits within one entry
}

// WavesConfig drives the wave director.
type WavesConfig struct {
	GruntBase         int           `yaml:"grunt_base"`
	GruntMultiplier   int           `yaml:"grunt_multiplier"`
	FastBase          int           `yaml:"fast_base"`
	FastMultiplier    int           `yaml:"fast_multiplier"`
	CompletionDelayMs int           `yaml:"completion_delay_ms"`
	VictoryWave       int           `yaml:"victory_wave"` // 0 means endless
	BossWaves         []int         `yaml:"boss_waves"`
	PowerUpWaves      []int         `yaml:"powerup_waves"`
	PowerUpDelayMs    int           `yaml:"powerup_delay_ms"`
	Scaling           ScalingConfig `yaml:"scaling"`
	BossBoost         ScalingConfig `yaml:"boss_boost"` // Multiplied into Scaling on boss waves
}

// ScalingConfig holds per-wave growth factors, applied as factor^(wave-1).
type ScalingConfig struct {
	Health float64 `yaml:"health"`
	Damage float64 `yaml:"damage"`
	Speed  float64 `yaml:"speed"`
}

// WeaponsConfig lists the weapon catalog.
type WeaponsConfig struct {
	Default string         `yaml:"default"`
	Catalog []WeaponConfig `yaml:"catalog"`
}

// WeaponConfig describes one weapon.
type WeaponConfig struct {
	Name              string  `yaml:"name"`
	Damage            float64 `yaml:"damage"`
	CooldownMs        int     `yaml:"cooldown_ms"`
	ProjectileCount   int     `yaml:"projectile_count"`
	SpreadDegrees     float64 `yaml:"spread_degrees"`
	BurstIntervalMs   int     `yaml:"burst_interval_ms"`
	InaccuracyDegrees float64 `yaml:"inaccuracy_degrees"`
}

// ProjectileConfig defines fired projectiles.
type ProjectileConfig struct {
	Speed           float64 `yaml:"speed"`
	LifetimeMs      int     `yaml:"lifetime_ms"`
	Radius          float64 `yaml:"radius"`
	OffscreenMargin float64 `yaml:"offscreen_margin"`
	InheritVelocity float64 `yaml:"inherit_velocity"` // Fraction of shooter velocity added
}

// PowerUpsConfig drives power-up drops.
type PowerUpsConfig struct {
	IntervalMs    int            `yaml:"interval_ms"`
	MaxOnScreen   int            `yaml:"max_on_screen"`
	Radius        float64        `yaml:"radius"`
	PickupPadding float64        `yaml:"pickup_padding"`
	MinDistance   float64        `yaml:"min_distance"`
	MaxDistance   float64        `yaml:"max_distance"`
	HealAmount    float64        `yaml:"heal_amount"`
	SpeedBoost    float64        `yaml:"speed_boost"`
	Default       string         `yaml:"default"`
	Weights       map[string]int `yaml:"weights"`
}

// PathfindingConfig tunes the A* grid and path following.
type PathfindingConfig struct {
	Enabled         bool    `yaml:"enabled"`
	CellSize        float64 `yaml:"cell_size"`
	EntityRadius    float64 `yaml:"entity_radius"`
	GoalSearchMax   float64 `yaml:"goal_search_max"`
	GoalSearchStep  float64 `yaml:"goal_search_step"`
	MaxExpansions   int     `yaml:"max_expansions"`
	RepathDistance  float64 `yaml:"repath_distance"`
	MaxPathAgeMs    int     `yaml:"max_path_age_ms"`
	WaypointArrival float64 `yaml:"waypoint_arrival"`
}

// ObstaclesConfig drives world generation.
type ObstaclesConfig struct {
	ClearRadius float64         `yaml:"clear_radius"` // Kept free around the player start
	Clusters    []ClusterConfig `yaml:"clusters"`
	Scattered   ScatteredConfig `yaml:"scattered"`
}

// ClusterConfig places Count obstacles of one kind around an offset from
// the world center, either at random within Spread ("radial") or on a
// Columns-wide grid ("grid").
type ClusterConfig struct {
	Kind     string    `yaml:"kind"`
	Layout   string    `yaml:"layout"`
	OffsetX  float64   `yaml:"offset_x"`
	OffsetY  float64   `yaml:"offset_y"`
	Count    int       `yaml:"count"`
	Spread   float64   `yaml:"spread"`
	Columns  int       `yaml:"columns"`
	SpacingX float64   `yaml:"spacing_x"`
	SpacingY float64   `yaml:"spacing_y"`
	Size     SizeRange `yaml:"size"`
}

// ScatteredConfig places single obstacles in a ring around the center.
// Candidates where the Perlin noise falls below NoiseThreshold are
// re-rolled, so scattered obstacles clump.
type ScatteredConfig struct {
	Count          int                  `yaml:"count"`
	MinDistance    float64              `yaml:"min_distance"`
	Range          float64              `yaml:"range"`
	NoiseScale     float64              `yaml:"noise_scale"`
	NoiseThreshold float64              `yaml:"noise_threshold"`
	Kinds          []string             `yaml:"kinds"`
	Sizes          map[string]SizeRange `yaml:"sizes"`
}

// SizeRange is a uniform range of obstacle footprints.
type SizeRange struct {
	MinW   float64 `yaml:"min_w"`
	MaxW   float64 `yaml:"max_w"`
	MinH   float64 `yaml:"min_h"`
	MaxH   float64 `yaml:"max_h"`
	Square bool    `yaml:"square"` // H follows W
}

// RenderConfig maps world units to terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}
