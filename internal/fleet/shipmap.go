// Package fleet generates random, non-touching ship layouts for a battle board.
// It has no dependency on rendering or turn logic so that layouts can be
// generated and validated in isolation.
package fleet

import (
	"fmt"
	"strings"
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 10
)

// Coord addresses a single board cell.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String renders the coordinate as a board label: column letter followed by
// the 1-based row number (A1 is the top-left cell).
func (c Coord) String() string {
	if c.Col < 0 || c.Col >= 26 {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// Cell is the content of a board cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellShip
)

// String returns a human-readable name for the cell.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "Empty"
	case CellShip:
		return "Ship"
	default:
		return "Unknown"
	}
}

// ShipMap is a width x height grid of cells describing one side's fleet.
// The zero value is an empty 0x0 map.
type ShipMap struct {
	width  int
	height int
	cells  []Cell
}

// NewShipMap creates an all-water map.
func NewShipMap(width, height int) ShipMap {
	return ShipMap{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (m ShipMap) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m ShipMap) Height() int {
	return m.height
}

// InBounds reports whether c lies on the board.
func (m ShipMap) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < m.height && c.Col >= 0 && c.Col < m.width
}

// At returns the cell at c. Off-board coordinates read as water.
func (m ShipMap) At(c Coord) Cell {
	if !m.InBounds(c) {
		return CellEmpty
	}
	return m.cells[c.Row*m.width+c.Col]
}

// Set writes a cell. Off-board coordinates are ignored.
func (m ShipMap) Set(c Coord, v Cell) {
	if !m.InBounds(c) {
		return
	}
	m.cells[c.Row*m.width+c.Col] = v
}

// IsShip reports whether c holds part of a ship.
func (m ShipMap) IsShip(c Coord) bool {
	return m.At(c) == CellShip
}

// ShipCells counts the cells occupied by ships.
func (m ShipMap) ShipCells() int {
	n := 0
	for _, v := range m.cells {
		if v == CellShip {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the map.
func (m ShipMap) Clone() ShipMap {
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	return ShipMap{width: m.width, height: m.height, cells: cells}
}

// Coords returns every coordinate on the board in row-major order.
func (m ShipMap) Coords() []Coord {
	coords := make([]Coord, 0, m.width*m.height)
	for row := range m.height {
		for col := range m.width {
			coords = append(coords, Coord{Row: row, Col: col})
		}
	}
	return coords
}

// String dumps the map using '#' for ships and '.' for water.
func (m ShipMap) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	for row := range m.height {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range m.width {
			if m.IsShip(Coord{Row: row, Col: col}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseShipMap builds a map from the String format. Rows must have equal length.
func ParseShipMap(s string) (ShipMap, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	width := len(strings.TrimSpace(lines[0]))
	m := NewShipMap(width, len(lines))
	for row, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != width {
			return ShipMap{}, fmt.Errorf("fleet: row %d has %d cells, want %d", row, len(line), width)
		}
		for col, ch := range line {
			switch ch {
			case '#':
				m.Set(Coord{Row: row, Col: col}, CellShip)
			case '.':
			default:
				return ShipMap{}, fmt.Errorf("fleet: unexpected %q at row %d col %d", ch, row, col)
			}
		}
	}
	return m, nil
}
