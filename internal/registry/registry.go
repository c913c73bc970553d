// Package registry maps mode IDs to game factories. Modes register
// themselves from init functions so the CLI and the terminal front end can
// start them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/wave-arena/internal/core"
)

// Game is a playable mode driven by the terminal front end. Implementations
// hold simulation state only; input mapping, timing and drawing to the
// terminal belong to the platform.
type Game interface {
	// ID is the name used on the command line, e.g. "arena".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the run into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, wave and end-of-run flags.
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
