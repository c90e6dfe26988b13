// Package geo converts between the raster's working projection and
// geographic (lon, lat) coordinates, and provides ring helpers for the bed
// editor. Supported working projections are the identity (EPSG:4326), web
// mercator (EPSG:3857) and the WGS84 UTM zones (EPSG:32601-32660 north,
// EPSG:32701-32760 south), which covers every projection code the raster
// binding produces for drone orthomosaics.
package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ErrProjectionUnavailable is returned when a geometry operation is
// attempted before the raster binding has supplied a usable projection
// code, or with a code this package cannot handle.
var ErrProjectionUnavailable = errors.New("geo: projection unavailable")

// Geographic is the projection code of geographic lon/lat coordinates.
const Geographic = "EPSG:4326"

// WebMercator is the spherical mercator code used by slippy-map rasters.
const WebMercator = "EPSG:3857"

type projKind int

const (
	kindGeographic projKind = iota
	kindWebMercator
	kindUTM
)

type projection struct {
	kind  projKind
	zone  int // UTM only, 1..60
	south bool
}

func parseCode(code string) (projection, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch c {
	case "":
		return projection{}, fmt.Errorf("%w: no projection code", ErrProjectionUnavailable)
	case Geographic:
		return projection{kind: kindGeographic}, nil
	case WebMercator:
		return projection{kind: kindWebMercator}, nil
	}
	if num, ok := strings.CutPrefix(c, "EPSG:"); ok {
		if n, err := strconv.Atoi(num); err == nil {
			switch {
			case n >= 32601 && n <= 32660:
				return projection{kind: kindUTM, zone: n - 32600}, nil
			case n >= 32701 && n <= 32760:
				return projection{kind: kindUTM, zone: n - 32700, south: true}, nil
			}
		}
	}
	return projection{}, fmt.Errorf("%w: unsupported code %q", ErrProjectionUnavailable, code)
}

// ToGeographic projects a point from the working projection identified by
// fromCode into geographic lon/lat.
func ToGeographic(p orb.Point, fromCode string) (orb.Point, error) {
	proj, err := parseCode(fromCode)
	if err != nil {
		return orb.Point{}, err
	}
	return proj.inverse(p), nil
}

// ToWorking projects a geographic lon/lat point into the working projection
// identified by toCode. ToWorking and ToGeographic are exact inverses within
// floating-point tolerance.
func ToWorking(p orb.Point, toCode string) (orb.Point, error) {
	proj, err := parseCode(toCode)
	if err != nil {
		return orb.Point{}, err
	}
	return proj.forward(p), nil
}

// RingToGeographic maps ToGeographic over every vertex, preserving order.
func RingToGeographic(r orb.Ring, fromCode string) (orb.Ring, error) {
	proj, err := parseCode(fromCode)
	if err != nil {
		return nil, err
	}
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[i] = proj.inverse(p)
	}
	return out, nil
}

// RingToWorking maps ToWorking over every vertex, preserving order.
func RingToWorking(r orb.Ring, toCode string) (orb.Ring, error) {
	proj, err := parseCode(toCode)
	if err != nil {
		return nil, err
	}
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[i] = proj.forward(p)
	}
	return out, nil
}

// CloseRing appends the first point when the last point differs from it.
// Rings of fewer than two points are returned unchanged. The input slice is
// never mutated, and the function is idempotent.
func CloseRing(r orb.Ring) orb.Ring {
	if len(r) < 2 {
		return r
	}
	if r[0] == r[len(r)-1] {
		return r
	}
	out := make(orb.Ring, 0, len(r)+1)
	out = append(out, r...)
	return append(out, r[0])
}
