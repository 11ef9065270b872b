// Package registry lets 2048 variants register themselves so the terminal,
// SSH and CLI front-ends can list and create them by id.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ErrUnknown is returned by Create for an id nobody registered.
var ErrUnknown = errors.New("registry: unknown game")

// Game is a tick-driven variant. Implementations hold no terminal state;
// the platform maps keys to actions, drives Step at a fixed rate and paints
// the Screen that Render fills.
type Game interface {
	// ID is the stable identifier used on the command line and as score key.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new board for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the game clears itself.
	Render(dst *core.Screen)

	// State reports score and terminal flags.
	State() core.GameState

	// Resize adapts to a new screen size without restarting.
	Resize(width, height int)
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	byID    = make(map[string]int)
	entries []entry
)

// Register adds a variant. It panics on a duplicate id, which is a
// programming error in an init function.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := byID[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	byID[id] = len(entries)
	entries = append(entries, entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	})
}

// List returns the registered variants in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Create instantiates the variant registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	i, ok := byID[id]
	var f Factory
	if ok {
		f = entries[i].factory
	}
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := byID[id]
	return ok
}
