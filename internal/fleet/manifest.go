package fleet

import (
	"errors"
	"fmt"
)

// ErrInvalidManifest is returned when a manifest cannot describe a fleet for
// the requested board.
var ErrInvalidManifest = errors.New("fleet: invalid manifest")

// Entry describes how many ships of one length make up the fleet.
type Entry struct {
	Length int `yaml:"length"`
	Count  int `yaml:"count"`
}

// Manifest is the ordered list of ship sizes to place. Placement consumes it
// front to back.
type Manifest []Entry

// DefaultManifest returns the classic fleet: one 4-deck, two 3-deck, three
// 2-deck and four 1-deck ships (20 cells).
func DefaultManifest() Manifest {
	return Manifest{
		{Length: 4, Count: 1},
		{Length: 3, Count: 2},
		{Length: 2, Count: 3},
		{Length: 1, Count: 4},
	}
}

// TotalCells returns the number of ship cells the manifest occupies. This is
// also the number of hits needed to win.
func (m Manifest) TotalCells() int {
	total := 0
	for _, e := range m {
		total += e.Length * e.Count
	}
	return total
}

// ShipCount returns the number of ships in the manifest.
func (m Manifest) ShipCount() int {
	n := 0
	for _, e := range m {
		n += e.Count
	}
	return n
}

// Clone returns a copy that can be consumed without touching m.
func (m Manifest) Clone() Manifest {
	out := make(Manifest, len(m))
	copy(out, m)
	return out
}

// CountByLength aggregates ship counts per length.
func (m Manifest) CountByLength() map[int]int {
	counts := make(map[int]int, len(m))
	for _, e := range m {
		counts[e.Length] += e.Count
	}
	return counts
}

// Validate checks that the manifest is placeable in principle on a board of
// the given size.
func (m Manifest) Validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidManifest, width, height)
	}
	if len(m) == 0 {
		return fmt.Errorf("%w: no ships", ErrInvalidManifest)
	}
	for i, e := range m {
		if e.Length <= 0 || e.Count <= 0 {
			return fmt.Errorf("%w: entry %d has length %d count %d", ErrInvalidManifest, i, e.Length, e.Count)
		}
		if e.Length > max(width, height) {
			return fmt.Errorf("%w: ship of length %d does not fit a %dx%d board", ErrInvalidManifest, e.Length, width, height)
		}
	}
	if total := m.TotalCells(); total > width*height {
		return fmt.Errorf("%w: %d ship cells exceed %d board cells", ErrInvalidManifest, total, width*height)
	}
	return nil
}
