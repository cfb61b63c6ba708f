package fleet

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidLayout is returned by Validate when a map breaks a fleet rule.
var ErrInvalidLayout = errors.New("fleet: invalid layout")

// Run is one ship: a straight line of ship cells.
type Run struct {
	Start    Coord
	Length   int
	Vertical bool
}

// Cells returns the coordinates covered by the run.
func (r Run) Cells() []Coord {
	cells := make([]Coord, r.Length)
	for i := range r.Length {
		if r.Vertical {
			cells[i] = Coord{Row: r.Start.Row + i, Col: r.Start.Col}
		} else {
			cells[i] = Coord{Row: r.Start.Row, Col: r.Start.Col + i}
		}
	}
	return cells
}

// component is a group of ship cells connected through any of the eight
// neighbour directions.
type component []Coord

// components groups the ship cells into 8-connected components, ordered by
// their top-left cell.
func (m ShipMap) components() []component {
	seen := make(map[Coord]bool)
	var out []component

	for _, start := range m.Coords() {
		if !m.IsShip(start) || seen[start] {
			continue
		}

		var comp component
		stack := []Coord{start}
		seen[start] = true
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, c)

			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					n := Coord{Row: c.Row + dr, Col: c.Col + dc}
					if m.IsShip(n) && !seen[n] {
						seen[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// asRun reports whether the component forms one straight, gap-free line.
func (comp component) asRun() (Run, bool) {
	sorted := make(component, len(comp))
	copy(sorted, comp)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	first := sorted[0]
	run := Run{Start: first, Length: len(sorted)}
	if len(sorted) == 1 {
		return run, true
	}

	run.Vertical = sorted[1].Col == first.Col
	for i, c := range sorted {
		want := Coord{Row: first.Row, Col: first.Col + i}
		if run.Vertical {
			want = Coord{Row: first.Row + i, Col: first.Col}
		}
		if c != want {
			return Run{}, false
		}
	}
	return run, true
}

// Runs returns the ships on the map. Groups of touching cells that do not
// form a straight line are skipped; use Validate to detect them.
func (m ShipMap) Runs() []Run {
	var runs []Run
	for _, comp := range m.components() {
		if run, ok := comp.asRun(); ok {
			runs = append(runs, run)
		}
	}
	return runs
}

// Validate checks that the map holds exactly the manifest's fleet: every
// group of touching ship cells is a single straight ship, ship lengths and
// counts match the manifest, and so does the total number of ship cells.
func Validate(m ShipMap, manifest Manifest) error {
	if got, want := m.ShipCells(), manifest.TotalCells(); got != want {
		return fmt.Errorf("%w: %d ship cells, want %d", ErrInvalidLayout, got, want)
	}

	want := manifest.CountByLength()
	got := make(map[int]int, len(want))
	for _, comp := range m.components() {
		run, ok := comp.asRun()
		if !ok {
			return fmt.Errorf("%w: ships touch near %s", ErrInvalidLayout, comp[0])
		}
		if want[run.Length] == 0 {
			return fmt.Errorf("%w: unexpected ship of length %d at %s", ErrInvalidLayout, run.Length, run.Start)
		}
		got[run.Length]++
	}

	for length, count := range want {
		if got[length] != count {
			return fmt.Errorf("%w: %d ships of length %d, want %d", ErrInvalidLayout, got[length], length, count)
		}
	}
	return nil
}
