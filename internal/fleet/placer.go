package fleet

import (
	"errors"
	"fmt"
)

// ErrPlacementExhausted is returned when the placer runs out of its retry
// budget. For the default fleet on a 10x10 board this does not happen in
// practice; it guards generalized manifests that cannot be packed.
var ErrPlacementExhausted = errors.New("fleet: placement retry budget exhausted")

// Default retry budget.
const (
	DefaultMaxAttempts = 10000 // Random picks per pass
	DefaultMaxRestarts = 32    // Passes before giving up
)

// Rand is the randomness the placer needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Placer randomly places a fleet so that no two ships touch, not even
// diagonally. It uses rejection sampling: pick a random free cell, try to lay
// the current ship rightwards, then downwards, otherwise pick again.
type Placer struct {
	Width       int
	Height      int
	MaxAttempts int
	MaxRestarts int
}

// NewPlacer creates a placer for a width x height board with the default
// retry budget.
func NewPlacer(width, height int) *Placer {
	return &Placer{
		Width:       width,
		Height:      height,
		MaxAttempts: DefaultMaxAttempts,
		MaxRestarts: DefaultMaxRestarts,
	}
}

// Place generates a ship map for the manifest. The manifest itself is never
// modified. The result is deterministic for a given random source.
func (p *Placer) Place(rng Rand, manifest Manifest) (ShipMap, error) {
	if err := manifest.Validate(p.Width, p.Height); err != nil {
		return ShipMap{}, err
	}

	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	restarts := p.MaxRestarts
	if restarts <= 0 {
		restarts = 1
	}

	for range restarts {
		if m, ok := p.placeOnce(rng, manifest, attempts); ok {
			return m, nil
		}
	}

	return ShipMap{}, fmt.Errorf("%w: %d ships (%d cells) on %dx%d after %d passes",
		ErrPlacementExhausted, manifest.ShipCount(), manifest.TotalCells(), p.Width, p.Height, restarts)
}

// placeOnce runs one pass on an empty board. It reports false when the pass
// used up its attempt budget.
func (p *Placer) placeOnce(rng Rand, manifest Manifest, budget int) (ShipMap, bool) {
	m := NewShipMap(p.Width, p.Height)
	queue := manifest.Clone()

	for len(queue) > 0 {
		if budget == 0 {
			return ShipMap{}, false
		}
		budget--

		c := Coord{Row: rng.Intn(p.Height), Col: rng.Intn(p.Width)}
		if !m.isPointFree(c) {
			continue
		}

		length := queue[0].Length
		switch {
		case m.freeRun(c, 0, 1, length) >= length:
			m.stamp(c, 0, 1, length)
		case m.freeRun(c, 1, 0, length) >= length:
			m.stamp(c, 1, 0, length)
		default:
			continue
		}

		queue[0].Count--
		if queue[0].Count < 1 {
			queue = queue[1:]
		}
	}

	return m, true
}

// isPointFree reports whether c and all eight neighbours are water.
func (m ShipMap) isPointFree(c Coord) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if m.IsShip(Coord{Row: c.Row + dr, Col: c.Col + dc}) {
				return false
			}
		}
	}
	return true
}

// freeRun counts, up to limit, the consecutive cells from start in direction
// (dr, dc) that can hold a ship segment. A cell qualifies when it, its two
// flanking cells, the next cell along the run and both diagonals ahead are all
// water. Off-board neighbours count as water; the run itself stops at the edge.
func (m ShipMap) freeRun(start Coord, dr, dc, limit int) int {
	// Perpendicular offset for the flanking cells.
	pr, pc := dc, dr

	n := 0
	for c := start; n < limit && m.InBounds(c); c = (Coord{Row: c.Row + dr, Col: c.Col + dc}) {
		ahead := Coord{Row: c.Row + dr, Col: c.Col + dc}
		if m.IsShip(c) ||
			m.IsShip(Coord{Row: c.Row - pr, Col: c.Col - pc}) ||
			m.IsShip(Coord{Row: c.Row + pr, Col: c.Col + pc}) ||
			m.IsShip(ahead) ||
			m.IsShip(Coord{Row: ahead.Row - pr, Col: ahead.Col - pc}) ||
			m.IsShip(Coord{Row: ahead.Row + pr, Col: ahead.Col + pc}) {
			break
		}
		n++
	}
	return n
}

// stamp writes length ship cells from start in direction (dr, dc).
func (m ShipMap) stamp(start Coord, dr, dc, length int) {
	for i := range length {
		m.Set(Coord{Row: start.Row + i*dr, Col: start.Col + i*dc}, CellShip)
	}
}
