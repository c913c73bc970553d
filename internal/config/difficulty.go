package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts player durability and wave growth for a preset.
// Normal leaves the configuration untouched.
func ApplyPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Health *= 1.5
		cfg.Player.MaxHealth *= 1.5
		cfg.Player.InvincibilityMs += 500
		cfg.Waves.CompletionDelayMs += 2000
		cfg.Waves.Scaling.Health = 1 + (cfg.Waves.Scaling.Health-1)/2
		cfg.Waves.Scaling.Damage = 1 + (cfg.Waves.Scaling.Damage-1)/2
	case DifficultyHard:
		cfg.Player.Health *= 0.75
		cfg.Player.MaxHealth *= 0.75
		cfg.Waves.CompletionDelayMs = max(cfg.Waves.CompletionDelayMs-1000, 1000)
		cfg.Waves.GruntMultiplier++
		cfg.Waves.Scaling.Health += 0.05
		cfg.Waves.Scaling.Speed += 0.01
	}
}
