// Package variant provides a registry of 2048 rule sets.
// Rule sets register themselves in init(), allowing the CLI, storage and
// front ends to discover them by ID without hardcoded lists.
package variant

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// Variant defines one rule set.
type Variant struct {
	ID         string
	Title      string
	Size       int     // Board dimension
	Target     int     // Winning tile; 0 = endless
	Spawn4Prob float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Endless reports whether the variant has no winning tile.
func (v Variant) Endless() bool {
	return v.Target <= 0
}

// Options returns session options for this variant.
func (v Variant) Options() session.Options {
	target := v.Target
	if target <= 0 {
		target = -1
	}
	return session.Options{
		Size:       v.Size,
		Target:     target,
		Spawn4Prob: v.Spawn4Prob,
	}
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Panics if a variant with the same ID is already registered or the
// board is smaller than 2×2.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("variant: %q already registered", v.ID))
	}
	if v.Size < 2 {
		panic(fmt.Sprintf("variant: %q has board size %d", v.ID, v.Size))
	}

	variants[v.ID] = v
}

// List returns all registered variants, sorted by ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the variant with the given ID.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("variant: unknown variant %q", id)
	}
	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}

// Default is the ID used when none is configured.
const Default = "classic"

func init() {
	Register(Variant{ID: "classic", Title: "Classic 2048", Size: engine.DefaultSize, Target: engine.DefaultTarget, Spawn4Prob: engine.DefaultSpawn4Prob})
	Register(Variant{ID: "endless", Title: "Endless", Size: engine.DefaultSize, Target: 0, Spawn4Prob: engine.DefaultSpawn4Prob})
	Register(Variant{ID: "mini", Title: "Mini 3x3", Size: 3, Target: 256, Spawn4Prob: engine.DefaultSpawn4Prob})
	Register(Variant{ID: "big", Title: "Big 5x5", Size: 5, Target: 4096, Spawn4Prob: engine.DefaultSpawn4Prob})
	Register(Variant{ID: "hard", Title: "Hard (25% fours)", Size: engine.DefaultSize, Target: engine.DefaultTarget, Spawn4Prob: 0.25})
}
