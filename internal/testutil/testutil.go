// Package testutil provides shared geometry and record fixtures for tests.
package testutil

import (
	"github.com/paulmach/orb"

	"github.com/florisys/field.report/internal/field"
)

// SquareRing returns a closed axis-aligned square ring with the given
// lower-left corner and side length.
func SquareRing(origin orb.Point, side float64) orb.Ring {
	x, y := origin[0], origin[1]
	return orb.Ring{
		{x, y},
		{x, y + side},
		{x + side, y + side},
		{x + side, y},
		{x, y},
	}
}

// SquareBed returns a bed record whose footprint is a unit square at the
// given origin.
func SquareBed(id, name string, origin orb.Point) field.Bed {
	return field.Bed{
		ID:          id,
		Name:        name,
		Coordinates: orb.Polygon{SquareRing(origin, 1)},
	}
}
