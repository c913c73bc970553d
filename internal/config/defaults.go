package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the hard-coded defaults. It mirrors
// defaults/arena.yaml and is used when the embedded file cannot be parsed.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		World: WorldConfig{SpatialCellSize: 55, ReferenceFPS: 60},
		Player: PlayerConfig{
			Health:          100,
			MaxHealth:       100,
			Speed:           5,
			MaxSpeed:        10,
			Radius:          15,
			InvincibilityMs: 1000,
			StartWeapon:     "bow",
		},
		Enemies: EnemiesConfig{
			SeparationRadius: 80,
			CohesionRadius:   150,
			SpawnMinDistance: 550,
			SpawnMaxDistance: 1100,
			Grunt: ArchetypeConfig{
				Speed: 3, Health: 20, Damage: 25,
				AttackCooldownMs: 1000, AttackRange: 50, Radius: 15, Score: 10,
				Weights: WeightsConfig{Separation: 15, Alignment: 0.3, Cohesion: 0.05, Seek: 1.5},
				Seek:    SeekConfig{Intensity: 0.6, CloseRange: 50, CloseIntensity: 0.3},
				Attack:  AttackConfig{DurationMs: 1200, WindupMs: 600, MaxHits: 1},
			},
			Fast: ArchetypeConfig{
				Speed: 3.5, Health: 10, Damage: 15,
				AttackCooldownMs: 1000, AttackRange: 50, Radius: 12, Score: 15,
				Weights: WeightsConfig{Separation: 8, Alignment: 0.1, Cohesion: 0.01, Seek: 1.5},
				Seek:    SeekConfig{Intensity: 1.2, ScaleJitterMin: 0.8, ScaleJitterMax: 1.2},
				Attack:  AttackConfig{DurationMs: 800},
			},
			Boss: ArchetypeConfig{
				Speed: 2, Health: 200, Damage: 50,
				AttackCooldownMs: 600, AttackRange: 80, Radius: 30, Score: 100,
				Weights: WeightsConfig{Separation: 12, Alignment: 0.2, Cohesion: 0.1, Seek: 1.8},
				Seek:    SeekConfig{Intensity: 0.9, AxisJitter: 0.2},
				Attack:  AttackConfig{DurationMs: 400, MaxHits: 2, HitIntervalMs: 200},
			},
		},
		Waves: WavesConfig{
			GruntBase:         3,
			GruntMultiplier:   2,
			FastBase:          1,
			FastMultiplier:    1,
			CompletionDelayMs: 3000,
			VictoryWave:       20,
			BossWaves:         []int{5, 10, 15, 20},
			PowerUpWaves:      []int{3, 7, 12},
			PowerUpDelayMs:    2000,
			Scaling:           ScalingConfig{Health: 1.1, Damage: 1.05, Speed: 1.02},
			BossBoost:         ScalingConfig{Health: 1.5, Damage: 1.3, Speed: 1.1},
		},
		Weapons: WeaponsConfig{
			Default: "bow",
			Catalog: []WeaponConfig{
				{Name: "bow", Damage: 25, CooldownMs: 300, ProjectileCount: 1},
				{Name: "wand", Damage: 20, CooldownMs: 600, ProjectileCount: 3, SpreadDegrees: 20},
				{Name: "staff", Damage: 15, CooldownMs: 80, ProjectileCount: 1, InaccuracyDegrees: 5},
				{Name: "whip", Damage: 22, CooldownMs: 400, ProjectileCount: 5, SpreadDegrees: 15, BurstIntervalMs: 50},
			},
		},
		Projectile: ProjectileConfig{
			Speed:           20,
			LifetimeMs:      5000,
			Radius:          5,
			OffscreenMargin: 100,
		},
		PowerUps: PowerUpsConfig{
			IntervalMs:    8000,
			MaxOnScreen:   4,
			Radius:        10,
			PickupPadding: 20,
			MinDistance:   200,
			MaxDistance:   500,
			HealAmount:    25,
			SpeedBoost:    1,
			Default:       "bow",
			Weights: map[string]int{
				"bow": 3, "wand": 2, "staff": 2, "whip": 1, "health": 4, "speed": 2,
			},
		},
		Pathfinding: PathfindingConfig{
			Enabled:         true,
			CellSize:        32,
			EntityRadius:    15,
			GoalSearchMax:   80,
			GoalSearchStep:  10,
			MaxExpansions:   4000,
			RepathDistance:  32,
			MaxPathAgeMs:    1500,
			WaypointArrival: 16,
		},
		Obstacles: ObstaclesConfig{
			ClearRadius: 60,
			Clusters: []ClusterConfig{
				{
					Kind: "tree", Layout: "radial", OffsetX: 200, OffsetY: -150, Count: 15, Spread: 80,
					Size: SizeRange{MinW: 32, MaxW: 56, Square: true},
				},
				{
					Kind: "rock", Layout: "radial", OffsetX: -200, OffsetY: 100, Count: 10, Spread: 60,
					Size: SizeRange{MinW: 24, MaxW: 40, MinH: 20, MaxH: 32},
				},
				{
					Kind: "building", Layout: "grid", OffsetX: 300, OffsetY: 200, Count: 5,
					Columns: 3, SpacingX: 80, SpacingY: 60,
					Size: SizeRange{MinW: 48, MaxW: 80, MinH: 32, MaxH: 56},
				},
			},
			Scattered: ScatteredConfig{
				Count:          20,
				MinDistance:    100,
				Range:          500,
				NoiseScale:     0.004,
				NoiseThreshold: -0.1,
				Kinds:          []string{"tree", "rock"},
				Sizes: map[string]SizeRange{
					"tree": {MinW: 32, MaxW: 48, Square: true},
					"rock": {MinW: 24, MaxW: 36, Square: true},
				},
			},
		},
		Render: RenderConfig{CellWidth: 10, CellHeight: 20},
	}
}
