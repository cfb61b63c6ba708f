package fleet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) ShipMap {
	t.Helper()
	m, err := ParseShipMap(s)
	require.NoError(t, err)
	return m
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		manifest Manifest
		wantErr  bool
	}{
		{
			name: "valid",
			layout: `
				##..#
				.....
				#...#
				#...#`,
			manifest: Manifest{{Length: 2, Count: 3}, {Length: 1, Count: 1}},
		},
		{
			name: "diagonal contact",
			layout: `
				#.
				.#`,
			manifest: Manifest{{Length: 1, Count: 2}},
			wantErr:  true,
		},
		{
			name: "bent ship",
			layout: `
				##.
				.#.
				...`,
			manifest: Manifest{{Length: 3, Count: 1}},
			wantErr:  true,
		},
		{
			name: "wrong lengths",
			layout: `
				##.##
				.....`,
			manifest: Manifest{{Length: 1, Count: 4}},
			wantErr:  true,
		},
		{
			name: "wrong cell total",
			layout: `
				#....
				.....`,
			manifest: Manifest{{Length: 1, Count: 2}},
			wantErr:  true,
		},
		{
			name: "wrong count per length",
			layout: `
				###.#
				.....
				#....`,
			manifest: Manifest{{Length: 2, Count: 2}, {Length: 1, Count: 1}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustParse(t, tt.layout), tt.manifest)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLayout)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRuns(t *testing.T) {
	m := mustParse(t, `
		##..#
		.....
		#....
		#....`)

	require.Equal(t, []Run{
		{Start: C(0, 0), Length: 2},
		{Start: C(0, 4), Length: 1},
		{Start: C(2, 0), Length: 2, Vertical: true},
	}, m.Runs())

	require.Equal(t, []Coord{C(2, 0), C(3, 0)}, m.Runs()[2].Cells())
}

func TestCoordString(t *testing.T) {
	require.Equal(t, "A1", C(0, 0).String())
	require.Equal(t, "J10", C(9, 9).String())
	require.Equal(t, "C5", C(4, 2).String())
}

func TestShipMapBounds(t *testing.T) {
	m := NewShipMap(3, 2)
	m.Set(C(-1, 0), CellShip)
	m.Set(C(0, 3), CellShip)
	require.Equal(t, 0, m.ShipCells())
	require.Equal(t, CellEmpty, m.At(C(5, 5)))

	m.Set(C(1, 2), CellShip)
	clone := m.Clone()
	m.Set(C(1, 2), CellEmpty)
	require.True(t, clone.IsShip(C(1, 2)))
	require.False(t, m.IsShip(C(1, 2)))
}

func TestParseShipMapRejectsRaggedRows(t *testing.T) {
	_, err := ParseShipMap("##.\n#.")
	require.Error(t, err)
}
