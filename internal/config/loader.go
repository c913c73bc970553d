package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up on disk.
const FileName = "arena.yaml"

// Load loads the arena configuration.
// Search order: customPath -> ~/.arena/arena.yaml -> ./configs/arena.yaml -> embedded default.
//
// Files found on disk are overlaid on the embedded defaults, so a file only
// needs the keys it changes. A customPath that cannot be read or parsed is
// an error; the other locations are optional and skipped when unusable.
func Load(customPath string) (ArenaConfig, error) {
	cfg := Embedded()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		overlay := Embedded()
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			continue
		}
		if overlay.Validate() != nil {
			continue
		}
		return overlay, nil
	}

	return cfg, nil
}

// Embedded returns the embedded default configuration, falling back to
// DefaultArenaConfig when the embedded YAML cannot be parsed.
func Embedded() ArenaConfig {
	var cfg ArenaConfig
	if err := yaml.Unmarshal(defaultArenaYAML, &cfg); err != nil {
		return DefaultArenaConfig()
	}
	return cfg
}

// WriteYAML writes the configuration to a YAML file.
func (c ArenaConfig) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate reports values the simulation cannot run with.
func (c ArenaConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("world.spatial_cell_size", c.World.SpatialCellSize)
	positive("world.reference_fps", float64(c.World.ReferenceFPS))
	positive("player.health", c.Player.Health)
	positive("player.speed", c.Player.Speed)
	positive("pathfinding.cell_size", c.Pathfinding.CellSize)
	positive("render.cell_width", c.Render.CellWidth)
	positive("render.cell_height", c.Render.CellHeight)
	positive("projectile.speed", c.Projectile.Speed)

	if c.Enemies.SpawnMaxDistance < c.Enemies.SpawnMinDistance {
		errs = append(errs, fmt.Errorf("enemies.spawn_max_distance (%v) is below spawn_min_distance (%v)",
			c.Enemies.SpawnMaxDistance, c.Enemies.SpawnMinDistance))
	}
	if c.PowerUps.MaxDistance < c.PowerUps.MinDistance {
		errs = append(errs, fmt.Errorf("powerups.max_distance (%v) is below min_distance (%v)",
			c.PowerUps.MaxDistance, c.PowerUps.MinDistance))
	}
	if len(c.Weapons.Catalog) == 0 {
		errs = append(errs, errors.New("weapons.catalog must list at least one weapon"))
	}
	for _, w := range c.Weapons.Catalog {
		if w.ProjectileCount < 1 {
			errs = append(errs, fmt.Errorf("weapon %q: projectile_count must be at least 1", w.Name))
		}
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", filename)
}
